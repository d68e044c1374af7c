// api/models/form_field_models.go
package models

import (
	"strings"

	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
)

// CreateFormFieldRequest is the body of POST /form-fields.
type CreateFormFieldRequest struct {
	Name         string   `json:"name" binding:"required,notblank,max=100"`
	FieldType    string   `json:"fieldType" binding:"required"`
	MinLength    *int     `json:"minLength" binding:"omitempty,min=0"`
	MaxLength    *int     `json:"maxLength" binding:"omitempty,min=0"`
	DefaultValue *string  `json:"defaultValue"`
	Required     bool     `json:"required"`
	Options      []string `json:"options" binding:"omitempty,dive,required"`
}

// ToDomain builds a validated FieldDefinition from the request.
func (r *CreateFormFieldRequest) ToDomain() (*domain.FieldDefinition, error) {
	def := &domain.FieldDefinition{
		Name:         strings.TrimSpace(r.Name),
		FieldType:    domain.FieldType(strings.ToUpper(strings.TrimSpace(r.FieldType))),
		MinLength:    r.MinLength,
		MaxLength:    r.MaxLength,
		DefaultValue: r.DefaultValue,
		Required:     r.Required,
		Options:      r.Options,
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// UpdateFormFieldRequest is the body of PUT /form-fields/:id. Absent
// attributes keep their stored value.
type UpdateFormFieldRequest struct {
	Name         *string   `json:"name" binding:"omitempty,notblank,max=100"`
	FieldType    *string   `json:"fieldType"`
	MinLength    *int      `json:"minLength" binding:"omitempty,min=0"`
	MaxLength    *int      `json:"maxLength" binding:"omitempty,min=0"`
	DefaultValue *string   `json:"defaultValue"`
	Required     *bool     `json:"required"`
	Options      *[]string `json:"options"`
}

// ApplyTo merges the request into def and re-validates the result.
func (r *UpdateFormFieldRequest) ApplyTo(def *domain.FieldDefinition) error {
	if r.Name != nil {
		def.Name = strings.TrimSpace(*r.Name)
	}
	if r.FieldType != nil {
		def.FieldType = domain.FieldType(strings.ToUpper(strings.TrimSpace(*r.FieldType)))
	}
	if r.MinLength != nil {
		def.MinLength = r.MinLength
	}
	if r.MaxLength != nil {
		def.MaxLength = r.MaxLength
	}
	if r.DefaultValue != nil {
		def.DefaultValue = r.DefaultValue
	}
	if r.Required != nil {
		def.Required = *r.Required
	}
	if r.Options != nil {
		def.Options = *r.Options
	}
	return def.Validate()
}

// ConfigField is one entry of the form configuration. Optional attributes
// that are unset, zero or empty are left out of the JSON.
type ConfigField struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	FieldType    domain.FieldType `json:"fieldType"`
	MinLength    *int             `json:"minLength,omitempty"`
	MaxLength    *int             `json:"maxLength,omitempty"`
	DefaultValue *string          `json:"defaultValue,omitempty"`
	Required     bool             `json:"required"`
	Options      []string         `json:"options,omitempty"`
}

// ConfigResponse is the body of GET /form-fields/config.
type ConfigResponse struct {
	Data []ConfigField `json:"data"`
}

// NewConfigResponse projects stored definitions into the config view.
func NewConfigResponse(fields []domain.FieldDefinition) ConfigResponse {
	data := make([]ConfigField, 0, len(fields))
	for _, f := range fields {
		cf := ConfigField{
			ID:        f.ID,
			Name:      f.Name,
			FieldType: f.FieldType,
			Required:  f.Required,
		}
		if f.MinLength != nil && *f.MinLength != 0 {
			cf.MinLength = f.MinLength
		}
		if f.MaxLength != nil && *f.MaxLength != 0 {
			cf.MaxLength = f.MaxLength
		}
		if f.DefaultValue != nil && *f.DefaultValue != "" {
			cf.DefaultValue = f.DefaultValue
		}
		if len(f.Options) > 0 {
			cf.Options = f.Options
		}
		data = append(data, cf)
	}
	return ConfigResponse{Data: data}
}
