package models

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// RequestError reports a malformed path or query parameter. Message is
// returned to the client as is.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }
