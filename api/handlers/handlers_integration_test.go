// api/handlers/handlers_integration_test.go
package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modesq/dynamic-form-fullstack-app/api"
	"github.com/modesq/dynamic-form-fullstack-app/api/models"
	"github.com/modesq/dynamic-form-fullstack-app/config"
	"github.com/modesq/dynamic-form-fullstack-app/internal/auth"
	"github.com/modesq/dynamic-form-fullstack-app/internal/client"
	"github.com/modesq/dynamic-form-fullstack-app/internal/core"
	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
	"github.com/modesq/dynamic-form-fullstack-app/internal/storage"
)

const (
	testSecret   = "test_secret_key_for_integration_tests_1234567890"
	testAdmin    = "admin@example.com"
	testPassword = "StrongPassword123!"
)

// testDBSetup creates a temporary, seeded SQLite DB for testing.
func testDBSetup(t *testing.T) (*sql.DB, *config.Config) {
	t.Helper()

	testCfg := &config.Config{
		ServerPort:         "0",
		JWTSecret:          testSecret,
		JWTExpiration:      time.Minute * 5,
		DatabaseDir:        t.TempDir(),
		DatabaseFile:       "test_forms.db",
		AdminEmail:         testAdmin,
		AdminPassword:      testPassword,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}

	db, err := storage.ConnectDB(testCfg)
	require.NoError(t, err, "Failed to connect to test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	_, err = storage.SeedFormFields(context.Background(), db)
	require.NoError(t, err)
	return db, testCfg
}

// setupTestServer creates a test server instance with a test DB.
func setupTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cfg := testDBSetup(t)
	router, err := api.SetupRouter(db, cfg)
	require.NoError(t, err)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, db
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, raw
}

func login(t *testing.T, serverURL string) string {
	t.Helper()
	res, raw := doJSON(t, http.MethodPost, serverURL+"/auth/login", "",
		models.LoginRequest{Email: testAdmin, Password: testPassword})
	require.Equal(t, http.StatusOK, res.StatusCode, string(raw))
	var body models.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Token
}

func decodeError(t *testing.T, raw []byte) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body
}

func TestPing(t *testing.T) {
	server, _ := setupTestServer(t)

	res, raw := doJSON(t, http.MethodGet, server.URL+"/ping", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"message":"pong"}`, string(raw))
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

// TestAuthEndpoints performs integration tests on /auth/login.
func TestAuthEndpoints(t *testing.T) {
	server, _ := setupTestServer(t)

	t.Run("Login Success", func(t *testing.T) {
		token := login(t, server.URL)
		subject, err := auth.ValidateJWT(token, testSecret)
		assert.NoError(t, err, "Returned token should be valid")
		assert.Equal(t, testAdmin, subject)
	})

	t.Run("Login Unauthorized (Wrong Password)", func(t *testing.T) {
		res, raw := doJSON(t, http.MethodPost, server.URL+"/auth/login", "",
			models.LoginRequest{Email: testAdmin, Password: "IncorrectPassword"})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "Invalid email or password", decodeError(t, raw).Message)
	})

	t.Run("Login Unauthorized (Unknown Email)", func(t *testing.T) {
		res, _ := doJSON(t, http.MethodPost, server.URL+"/auth/login", "",
			models.LoginRequest{Email: "nosuchuser@example.com", Password: testPassword})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("Login Bad Request (Invalid Email Format)", func(t *testing.T) {
		res, _ := doJSON(t, http.MethodPost, server.URL+"/auth/login", "",
			models.LoginRequest{Email: "invalid-email-format", Password: testPassword})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

func TestFormFieldConfig(t *testing.T) {
	server, _ := setupTestServer(t)

	res, raw := doJSON(t, http.MethodGet, server.URL+"/form-fields/config", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Data, 4)

	names := make([]string, 0, len(body.Data))
	for _, f := range body.Data {
		names = append(names, f["name"].(string))
	}
	assert.Equal(t, []string{"Full Name", "Email", "Gender", "Love React?"}, names)

	gender := body.Data[2]
	assert.Equal(t, "LIST", gender["fieldType"])
	assert.Equal(t, []any{"Male", "Female", "Others"}, gender["options"])
	assert.NotContains(t, gender, "minLength", "unset optionals are omitted")
	assert.NotContains(t, gender, "createdAt")

	fullName := body.Data[0]
	assert.EqualValues(t, 100, fullName["maxLength"])
	assert.NotContains(t, fullName, "options")
}

func TestFormFieldAdministration(t *testing.T) {
	server, _ := setupTestServer(t)
	newField := map[string]any{
		"name":      "Favourite Colour",
		"fieldType": "radio",
		"required":  false,
		"options":   []string{"Red", "Blue"},
	}

	t.Run("Create requires a token", func(t *testing.T) {
		res, raw := doJSON(t, http.MethodPost, server.URL+"/form-fields", "", newField)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "authorization header required", decodeError(t, raw).Message)
	})

	token := login(t, server.URL)
	var created domain.FieldDefinition

	t.Run("Create", func(t *testing.T) {
		res, raw := doJSON(t, http.MethodPost, server.URL+"/form-fields", token, newField)
		require.Equal(t, http.StatusCreated, res.StatusCode, string(raw))
		require.NoError(t, json.Unmarshal(raw, &created))
		assert.Equal(t, domain.FieldTypeRadio, created.FieldType)
		assert.Equal(t, []string{"Red", "Blue"}, created.Options)
	})

	t.Run("Create rejects LIST without options", func(t *testing.T) {
		res, _ := doJSON(t, http.MethodPost, server.URL+"/form-fields", token, map[string]any{
			"name": "Country", "fieldType": "LIST",
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("Update", func(t *testing.T) {
		url := fmt.Sprintf("%s/form-fields/%d", server.URL, created.ID)
		res, raw := doJSON(t, http.MethodPut, url, token, map[string]any{"required": true})
		require.Equal(t, http.StatusOK, res.StatusCode, string(raw))
		var updated domain.FieldDefinition
		require.NoError(t, json.Unmarshal(raw, &updated))
		assert.True(t, updated.Required)
		assert.Equal(t, "Favourite Colour", updated.Name, "absent attributes are kept")
	})

	t.Run("Delete", func(t *testing.T) {
		url := fmt.Sprintf("%s/form-fields/%d", server.URL, created.ID)
		res, raw := doJSON(t, http.MethodDelete, url, token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var body models.DeleteResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, created.ID, body.ID)

		res, _ = doJSON(t, http.MethodGet, url, "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("Non-numeric id", func(t *testing.T) {
		res, _ := doJSON(t, http.MethodGet, server.URL+"/form-fields/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

func TestUserEndpoints(t *testing.T) {
	server, _ := setupTestServer(t)
	jo := models.CreateUserRequest{FullName: "Jo", Email: "jo@x.com", Gender: "Female"}

	t.Run("Create", func(t *testing.T) {
		res, raw := doJSON(t, http.MethodPost, server.URL+"/users", "", jo)
		require.Equal(t, http.StatusCreated, res.StatusCode, string(raw))
		var user domain.User
		require.NoError(t, json.Unmarshal(raw, &user))
		assert.Positive(t, user.ID)
		assert.Equal(t, "jo@x.com", user.Email)
		assert.False(t, user.LoveReactFlag)
	})

	t.Run("Duplicate email is a conflict", func(t *testing.T) {
		res, raw := doJSON(t, http.MethodPost, server.URL+"/users", "", jo)
		assert.Equal(t, http.StatusConflict, res.StatusCode)
		assert.Equal(t, "Email already exists", decodeError(t, raw).Message)
	})

	t.Run("Invalid body is a bad request", func(t *testing.T) {
		res, raw := doJSON(t, http.MethodPost, server.URL+"/users", "",
			models.CreateUserRequest{FullName: "Al", Email: "not-an-email", Gender: "Male"})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.NotEqual(t, "Email already exists", decodeError(t, raw).Message)

		res, _ = doJSON(t, http.MethodPost, server.URL+"/users", "", `{"fullName":`)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("Blank full name is a bad request", func(t *testing.T) {
		res, raw := doJSON(t, http.MethodPost, server.URL+"/users", "",
			`{"fullName":"   ","email":"blank@x.com","gender":"Male"}`)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "fullName must not be blank", decodeError(t, raw).Message)
	})

	t.Run("List newest first", func(t *testing.T) {
		res, _ := doJSON(t, http.MethodPost, server.URL+"/users", "",
			models.CreateUserRequest{FullName: "Sam", Email: "sam@x.com", Gender: "Others", LoveReactFlag: true})
		require.Equal(t, http.StatusCreated, res.StatusCode)

		res, raw := doJSON(t, http.MethodGet, server.URL+"/users", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var users []domain.User
		require.NoError(t, json.Unmarshal(raw, &users))
		require.Len(t, users, 2)
		assert.Equal(t, "sam@x.com", users[0].Email)
		assert.Equal(t, "jo@x.com", users[1].Email)

		res, _ = doJSON(t, http.MethodGet, server.URL+"/users?limit=-1", "", nil)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("Update clash and delete", func(t *testing.T) {
		res, raw := doJSON(t, http.MethodGet, server.URL+"/users", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var users []domain.User
		require.NoError(t, json.Unmarshal(raw, &users))
		sam := users[0]

		url := fmt.Sprintf("%s/users/%d", server.URL, sam.ID)
		res, _ = doJSON(t, http.MethodPut, url, "", map[string]any{"email": "jo@x.com"})
		assert.Equal(t, http.StatusConflict, res.StatusCode)

		res, raw = doJSON(t, http.MethodPut, url, "", map[string]any{"fullName": "Samantha"})
		require.Equal(t, http.StatusOK, res.StatusCode, string(raw))
		var updated domain.User
		require.NoError(t, json.Unmarshal(raw, &updated))
		assert.Equal(t, "Samantha", updated.FullName)
		assert.True(t, updated.LoveReactFlag)

		res, _ = doJSON(t, http.MethodDelete, url, "", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		res, raw = doJSON(t, http.MethodGet, url, "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "User not found", decodeError(t, raw).Message)
	})
}

// TestClientAgainstServer drives the HTTP client through the real router.
func TestClientAgainstServer(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()
	c := client.New(server.URL, 5*time.Second)

	fields, err := c.FetchConfig(ctx)
	require.NoError(t, err)
	require.Len(t, fields, 4)

	answers := core.ResolveDefaults(fields)
	answers["Full Name"] = "Jo"
	answers["Email"] = "jo@x.com"
	answers["Love React?"] = "No"
	payload := core.TransformSubmission(answers)

	user, err := c.Submit(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, "Female", user.Gender, "default index 1 resolves to the second option")
	assert.False(t, user.LoveReactFlag)

	_, err = c.Submit(ctx, payload)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Email already exists", client.Message(err, client.MsgSubmitFailed))
}
