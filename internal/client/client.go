// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/modesq/dynamic-form-fullstack-app/internal/core"
	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
	"github.com/modesq/dynamic-form-fullstack-app/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Fallback messages used when the server gives none.
const (
	MsgFetchConfigFailed = "Failed to fetch form configuration"
	MsgSubmitFailed      = "Failed to submit form data"
)

// HTTPClient is the subset of *http.Client used here.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// TransportError wraps failures to reach the backend or to decode its reply.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ConfigResponse is the body of GET /form-fields/config.
type ConfigResponse struct {
	Data []domain.FieldDefinition `json:"data"`
}

// Client talks to the form backend.
type Client struct {
	baseURL string
	http    HTTPClient
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) { c.http = h }
}

// New returns a Client for baseURL. Requests time out after timeout unless a
// custom HTTPClient is supplied.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchConfig loads the ordered field definitions.
func (c *Client) FetchConfig(ctx context.Context) ([]domain.FieldDefinition, error) {
	var resp ConfigResponse
	if err := c.do(ctx, http.MethodGet, "/form-fields/config", nil, &resp, MsgFetchConfigFailed); err != nil {
		return nil, err
	}
	customLog.Debugf("Client: Fetched %d field definition(s)", len(resp.Data))
	return resp.Data, nil
}

// Submit posts a transformed submission and returns the created user.
func (c *Client) Submit(ctx context.Context, payload core.Payload) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/users", payload, &user, MsgSubmitFailed); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: "encode request", Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		customLog.Warnf("Client: %s %s failed: %v", method, path, err)
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serverMessage(raw)
		if msg == "" {
			msg = fallback
		}
		customLog.Warnf("Client: %s %s returned %d: %s", method, path, resp.StatusCode, msg)
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Op: "decode response", Err: err}
	}
	return nil
}

// serverMessage pulls "message" out of an error body. Validation failures
// sometimes carry a list of messages; those are joined.
func serverMessage(raw []byte) string {
	var body struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Message) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(body.Message, &single); err == nil {
		return strings.TrimSpace(single)
	}
	var list []string
	if err := json.Unmarshal(body.Message, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

// Message turns any error from this package into text fit for the user.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			return "The server took too long to respond"
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
