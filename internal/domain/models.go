// internal/domain/models.go
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// FieldType is the closed set of input kinds a field definition can declare.
type FieldType string

const (
	FieldTypeText  FieldType = "TEXT"  // free text, optional min/max length
	FieldTypeList  FieldType = "LIST"  // single-select dropdown
	FieldTypeRadio FieldType = "RADIO" // radio group
)

var (
	ErrInvalidFieldDefinition = errors.New("invalid form field definition")
	ErrUnknownFieldType       = errors.New("unknown field type")
)

// ParseFieldType normalizes s (case-insensitive) into a known FieldType.
func ParseFieldType(s string) (FieldType, error) {
	switch ft := FieldType(strings.ToUpper(strings.TrimSpace(s))); ft {
	case FieldTypeText, FieldTypeList, FieldTypeRadio:
		return ft, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFieldType, s)
	}
}

// HasOptions reports whether the type picks its value from an option list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeList || t == FieldTypeRadio
}

// FieldDefinition describes one administrator-authored form input.
type FieldDefinition struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	FieldType    FieldType `json:"fieldType"`
	MinLength    *int      `json:"minLength,omitempty"`
	MaxLength    *int      `json:"maxLength,omitempty"`
	DefaultValue *string   `json:"defaultValue,omitempty"`
	Required     bool      `json:"required"`
	Options      []string  `json:"options,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

// Validate checks the invariants a stored definition must hold.
func (f *FieldDefinition) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidFieldDefinition)
	}
	if _, err := ParseFieldType(string(f.FieldType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFieldDefinition, err)
	}
	if f.FieldType.HasOptions() && len(f.Options) == 0 {
		return fmt.Errorf("%w: %s fields require at least one option", ErrInvalidFieldDefinition, f.FieldType)
	}
	if f.MinLength != nil && *f.MinLength < 0 {
		return fmt.Errorf("%w: minLength must not be negative", ErrInvalidFieldDefinition)
	}
	if f.MaxLength != nil && *f.MaxLength < 0 {
		return fmt.Errorf("%w: maxLength must not be negative", ErrInvalidFieldDefinition)
	}
	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		return fmt.Errorf("%w: minLength %d exceeds maxLength %d", ErrInvalidFieldDefinition, *f.MinLength, *f.MaxLength)
	}
	return nil
}

// User is a persisted form submission.
type User struct {
	ID            int64     `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Gender        string    `json:"gender"`
	LoveReactFlag bool      `json:"loveReactFlag"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Genders accepted for User.Gender.
var Genders = []string{"Male", "Female", "Others"}

// AnswerSet maps a field name to the value the user entered.
type AnswerSet map[string]string

// Clone returns an independent copy of a.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
