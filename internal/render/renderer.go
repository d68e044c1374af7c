// internal/render/renderer.go
package render

import (
	"github.com/modesq/dynamic-form-fullstack-app/internal/core"
	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
	"github.com/modesq/dynamic-form-fullstack-app/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// Kind is the presentation variant chosen for a field.
type Kind int

const (
	KindNone Kind = iota
	KindTextInput
	KindEmailInput
	KindDropdown
	KindRadioGroup
)

func (k Kind) String() string {
	switch k {
	case KindTextInput:
		return "text"
	case KindEmailInput:
		return "email"
	case KindDropdown:
		return "dropdown"
	case KindRadioGroup:
		return "radio"
	default:
		return "none"
	}
}

// Props is the contract every widget receives.
type Props struct {
	Field    domain.FieldDefinition
	Value    string
	Error    string
	OnChange func(value string)
}

// Select maps a field definition to its renderer kind. Unsupported field types
// yield (KindNone, false) and a warning; callers omit such fields.
func Select(field domain.FieldDefinition) (Kind, bool) {
	switch field.FieldType {
	case domain.FieldTypeText:
		if core.IsEmailField(field.Name) {
			return KindEmailInput, true
		}
		return KindTextInput, true
	case domain.FieldTypeList:
		return KindDropdown, true
	case domain.FieldTypeRadio:
		return KindRadioGroup, true
	}

	customLog.Warnf("Unsupported field type: %s (field %q)", field.FieldType, field.Name)
	return KindNone, false
}

// Build returns the widget for props.Field, or false when the type is unsupported.
func Build(props Props) (Widget, bool) {
	kind, ok := Select(props.Field)
	if !ok {
		return nil, false
	}

	switch kind {
	case KindTextInput, KindEmailInput:
		return &textInput{props: props, kind: kind}, true
	case KindDropdown, KindRadioGroup:
		return &choiceInput{props: props, kind: kind}, true
	}
	return nil, false
}

// Form builds one widget per supported field, in definition order. onChange
// receives the field name with every new value.
func Form(fields []domain.FieldDefinition, answers domain.AnswerSet, errs map[string]string, onChange func(name, value string)) []Widget {
	widgets := make([]Widget, 0, len(fields))
	for _, field := range fields {
		name := field.Name
		w, ok := Build(Props{
			Field: field,
			Value: answers[name],
			Error: errs[name],
			OnChange: func(value string) {
				if onChange != nil {
					onChange(name, value)
				}
			},
		})
		if !ok {
			continue
		}
		widgets = append(widgets, w)
	}
	return widgets
}
