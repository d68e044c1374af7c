package render

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
)

func TestSelect(t *testing.T) {
	testCases := []struct {
		name   string
		field  domain.FieldDefinition
		want   Kind
		wantOk bool
	}{
		{"text", domain.FieldDefinition{Name: "Full Name", FieldType: domain.FieldTypeText}, KindTextInput, true},
		{"email by name", domain.FieldDefinition{Name: "Work E-Mail or EMAIL", FieldType: domain.FieldTypeText}, KindEmailInput, true},
		{"email lower", domain.FieldDefinition{Name: "email", FieldType: domain.FieldTypeText}, KindEmailInput, true},
		{"list", domain.FieldDefinition{Name: "Gender", FieldType: domain.FieldTypeList}, KindDropdown, true},
		{"list named email stays dropdown", domain.FieldDefinition{Name: "Email Frequency", FieldType: domain.FieldTypeList}, KindDropdown, true},
		{"radio", domain.FieldDefinition{Name: "Love React?", FieldType: domain.FieldTypeRadio}, KindRadioGroup, true},
		{"unknown", domain.FieldDefinition{Name: "Agree", FieldType: "CHECKBOX"}, KindNone, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Select(tc.field)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOk, ok)
		})
	}
}

func TestFormOmitsUnsupportedFields(t *testing.T) {
	fields := []domain.FieldDefinition{
		{Name: "Full Name", FieldType: domain.FieldTypeText},
		{Name: "Agree", FieldType: "CHECKBOX"},
		{Name: "Gender", FieldType: domain.FieldTypeList, Options: domain.Genders},
	}

	widgets := Form(fields, domain.AnswerSet{"Gender": "Male"}, map[string]string{"Full Name": "Full Name is required"}, nil)
	require.Len(t, widgets, 2)
	assert.Equal(t, KindTextInput, widgets[0].Kind())
	assert.Equal(t, "Full Name is required", widgets[0].Props().Error)
	assert.Equal(t, KindDropdown, widgets[1].Kind())
	assert.Equal(t, "Male", widgets[1].Props().Value)
}

func TestTextInputRenderAndPrompt(t *testing.T) {
	min, max := 1, 100
	var changed []string
	w, ok := Build(Props{
		Field:    domain.FieldDefinition{Name: "Full Name", FieldType: domain.FieldTypeText, Required: true, MinLength: &min, MaxLength: &max},
		Value:    "John Doe",
		OnChange: func(v string) { changed = append(changed, v) },
	})
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, w.Render(&out))
	assert.Equal(t, "Full Name * [John Doe]\n  Min: 1 Max: 100\n", out.String())

	in := bufio.NewReader(strings.NewReader("\nJo\n"))
	require.NoError(t, w.Prompt(in, &out))
	assert.Empty(t, changed, "empty line keeps the current value")
	require.NoError(t, w.Prompt(in, &out))
	assert.Equal(t, []string{"Jo"}, changed)
	assert.Equal(t, "Jo", w.Props().Value)
}

func TestTextInputShowsErrorInsteadOfHelper(t *testing.T) {
	max := 50
	w, ok := Build(Props{
		Field: domain.FieldDefinition{Name: "Email", FieldType: domain.FieldTypeText, MaxLength: &max},
		Value: "bad",
		Error: "Please enter a valid email address",
	})
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, w.Render(&out))
	assert.Equal(t, "Email <email> [bad]\n  ! Please enter a valid email address\n", out.String())
}

func TestChoiceInput(t *testing.T) {
	var got string
	w, ok := Build(Props{
		Field:    domain.FieldDefinition{Name: "Love React?", FieldType: domain.FieldTypeRadio, Required: true, Options: []string{"Yes", "No"}},
		Value:    "No",
		OnChange: func(v string) { got = v },
	})
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, w.Render(&out))
	assert.Equal(t, "Love React? *\n  ( ) 1. Yes\n  (x) 2. No\n", out.String())

	err := w.Prompt(bufio.NewReader(strings.NewReader("3\n")), &out)
	assert.True(t, errors.Is(err, ErrInvalidChoice))
	assert.Empty(t, got)

	require.NoError(t, w.Prompt(bufio.NewReader(strings.NewReader("1\n")), &out))
	assert.Equal(t, "Yes", got)

	require.NoError(t, w.Prompt(bufio.NewReader(strings.NewReader("no")), &out))
	assert.Equal(t, "No", got)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "dropdown", KindDropdown.String())
	assert.Equal(t, "none", KindNone.String())
}
