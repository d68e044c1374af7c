// internal/core/validation.go
package core

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
)

// InvalidEmailMessage is reported for values that do not look like local@domain.tld.
const InvalidEmailMessage = "Please enter a valid email address"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s matches a plain local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsEmailField reports whether a field name designates an email input.
func IsEmailField(name string) bool {
	return strings.Contains(strings.ToLower(name), "email")
}

// ValidateField returns the first failing rule's message for value, or "" when
// value is acceptable. Rules in order: required, email format, text length.
func ValidateField(def domain.FieldDefinition, value string) string {
	if def.Required && strings.TrimSpace(value) == "" {
		return fmt.Sprintf("%s is required", def.Name)
	}

	if value != "" && IsEmailField(def.Name) && !IsValidEmail(value) {
		return InvalidEmailMessage
	}

	if def.FieldType == domain.FieldTypeText && value != "" {
		length := utf8.RuneCountInString(value)
		if def.MinLength != nil && length < *def.MinLength {
			return fmt.Sprintf("%s must be at least %d characters", def.Name, *def.MinLength)
		}
		if def.MaxLength != nil && length > *def.MaxLength {
			return fmt.Sprintf("%s must be no more than %d characters", def.Name, *def.MaxLength)
		}
	}

	return ""
}

// ValidateAllFields validates every field and returns only the failures,
// keyed by field name. An empty result means the form may be submitted.
func ValidateAllFields(answers domain.AnswerSet, fields []domain.FieldDefinition) map[string]string {
	errs := make(map[string]string)
	for _, field := range fields {
		if msg := ValidateField(field, answers[field.Name]); msg != "" {
			errs[field.Name] = msg
		}
	}
	return errs
}
