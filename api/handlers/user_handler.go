// api/handlers/user_handler.go
package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modesq/dynamic-form-fullstack-app/api/models"
	"github.com/modesq/dynamic-form-fullstack-app/internal/core"
	"github.com/modesq/dynamic-form-fullstack-app/internal/storage"
)

// UserHandler stores and serves form submissions.
type UserHandler struct {
	DB *sql.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *sql.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// CreateUser accepts a submission. Duplicate emails are rejected with 409.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("CreateUser binding error: %v", err)
		_ = c.Error(err)
		return
	}

	user, err := storage.CreateUser(c.Request.Context(), h.DB, req.ToDomain())
	if err != nil {
		customLog.Warnf("Failed to create user %s: %v", req.Email, err)
		_ = c.Error(err)
		return
	}

	customLog.Printf("Handler: Stored submission %d for %s", user.ID, user.Email)
	c.JSON(http.StatusCreated, user)
}

// ListUsers returns submissions newest first; limit, offset and order are
// accepted as query parameters.
func (h *UserHandler) ListUsers(c *gin.Context) {
	opts, err := core.ParseListQueryOptions(c.Request.URL.Query())
	if err != nil {
		_ = c.Error(&models.RequestError{Message: err.Error()})
		return
	}

	users, err := storage.ListUsers(c.Request.Context(), h.DB, opts)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := storage.GetUser(c.Request.Context(), h.DB, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("UpdateUser binding error: %v", err)
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	user, err := storage.GetUser(ctx, h.DB, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	req.ApplyTo(user)

	updated, err := storage.UpdateUser(ctx, h.DB, user)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := storage.DeleteUser(c.Request.Context(), h.DB, id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.DeleteResponse{
		Message: fmt.Sprintf("User with ID %d has been deleted successfully", id),
		ID:      id,
	})
}
