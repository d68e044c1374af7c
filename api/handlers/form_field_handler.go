// api/handlers/form_field_handler.go
package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modesq/dynamic-form-fullstack-app/api/models"
	"github.com/modesq/dynamic-form-fullstack-app/internal/storage"
)

// FormFieldHandler serves field definitions and the form configuration.
type FormFieldHandler struct {
	DB *sql.DB
}

// NewFormFieldHandler creates a new FormFieldHandler.
func NewFormFieldHandler(db *sql.DB) *FormFieldHandler {
	return &FormFieldHandler{DB: db}
}

// GetConfig returns the ordered field definitions in the shape the client
// renders from.
func (h *FormFieldHandler) GetConfig(c *gin.Context) {
	fields, err := storage.ListFormFields(c.Request.Context(), h.DB)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.NewConfigResponse(fields))
}

func (h *FormFieldHandler) ListFormFields(c *gin.Context) {
	fields, err := storage.ListFormFields(c.Request.Context(), h.DB)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, fields)
}

func (h *FormFieldHandler) GetFormField(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	field, err := storage.GetFormField(c.Request.Context(), h.DB, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, field)
}

func (h *FormFieldHandler) CreateFormField(c *gin.Context) {
	var req models.CreateFormFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("CreateFormField binding error: %v", err)
		_ = c.Error(err)
		return
	}

	def, err := req.ToDomain()
	if err != nil {
		_ = c.Error(err)
		return
	}

	created, err := storage.CreateFormField(c.Request.Context(), h.DB, def)
	if err != nil {
		_ = c.Error(err)
		return
	}
	customLog.Printf("Handler: Created form field %d (%s)", created.ID, created.Name)
	c.JSON(http.StatusCreated, created)
}

// UpdateFormField applies a partial update.
func (h *FormFieldHandler) UpdateFormField(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateFormFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("UpdateFormField binding error: %v", err)
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	def, err := storage.GetFormField(ctx, h.DB, id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := req.ApplyTo(def); err != nil {
		_ = c.Error(err)
		return
	}

	updated, err := storage.UpdateFormField(ctx, h.DB, def)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *FormFieldHandler) DeleteFormField(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := storage.DeleteFormField(c.Request.Context(), h.DB, id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.DeleteResponse{
		Message: fmt.Sprintf("FormField with ID %d has been deleted successfully", id),
		ID:      id,
	})
}
