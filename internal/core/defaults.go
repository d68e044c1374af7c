package core

import (
	"strconv"
	"strings"

	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
)

// ResolveDefault returns the initial value for a field. Text fields use the
// default literally; option fields read it as a zero-based option index and
// fall back to "" when it is missing, unparsable or out of range.
func ResolveDefault(field domain.FieldDefinition) string {
	if field.DefaultValue == nil {
		return ""
	}

	switch field.FieldType {
	case domain.FieldTypeText:
		return *field.DefaultValue
	case domain.FieldTypeList, domain.FieldTypeRadio:
		idx, err := strconv.Atoi(strings.TrimSpace(*field.DefaultValue))
		if err != nil || idx < 0 || idx >= len(field.Options) {
			return ""
		}
		return field.Options[idx]
	default:
		return ""
	}
}

// ResolveDefaults builds the initial AnswerSet for a form.
func ResolveDefaults(fields []domain.FieldDefinition) domain.AnswerSet {
	answers := make(domain.AnswerSet, len(fields))
	for _, field := range fields {
		answers[field.Name] = ResolveDefault(field)
	}
	return answers
}
