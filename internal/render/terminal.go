package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidChoice is returned by Prompt when the input names no option.
var ErrInvalidChoice = errors.New("invalid choice")

// Widget is a terminal control for a single field.
type Widget interface {
	Kind() Kind
	Props() Props
	// Render writes the label, current value, helper text and error.
	Render(w io.Writer) error
	// Prompt reads one line. An empty line keeps the current value; anything
	// else is passed to OnChange.
	Prompt(r *bufio.Reader, w io.Writer) error
}

type textInput struct {
	props Props
	kind  Kind
}

func (t *textInput) Kind() Kind   { return t.kind }
func (t *textInput) Props() Props { return t.props }

func (t *textInput) Render(w io.Writer) error {
	field := t.props.Field
	var b strings.Builder

	fmt.Fprintf(&b, "%s%s", field.Name, requiredMark(field.Required))
	if t.kind == KindEmailInput {
		b.WriteString(" <email>")
	}
	if t.props.Value != "" {
		fmt.Fprintf(&b, " [%s]", t.props.Value)
	}
	b.WriteString("\n")

	if t.props.Error != "" {
		fmt.Fprintf(&b, "  ! %s\n", t.props.Error)
	} else if helper := lengthHelper(field.MinLength, field.MaxLength); helper != "" {
		fmt.Fprintf(&b, "  %s\n", helper)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (t *textInput) Prompt(r *bufio.Reader, w io.Writer) error {
	if _, err := io.WriteString(w, "> "); err != nil {
		return err
	}
	line, err := readLine(r)
	if err != nil {
		return err
	}
	if line == "" {
		return nil
	}
	t.props.Value = line
	if t.props.OnChange != nil {
		t.props.OnChange(line)
	}
	return nil
}

type choiceInput struct {
	props Props
	kind  Kind
}

func (c *choiceInput) Kind() Kind   { return c.kind }
func (c *choiceInput) Props() Props { return c.props }

func (c *choiceInput) Render(w io.Writer) error {
	field := c.props.Field
	var b strings.Builder

	fmt.Fprintf(&b, "%s%s\n", field.Name, requiredMark(field.Required))
	for i, opt := range field.Options {
		marker := " "
		if opt == c.props.Value {
			marker = "x"
		}
		if c.kind == KindRadioGroup {
			fmt.Fprintf(&b, "  (%s) %d. %s\n", marker, i+1, opt)
		} else {
			fmt.Fprintf(&b, "  [%s] %d. %s\n", marker, i+1, opt)
		}
	}
	if c.props.Error != "" {
		fmt.Fprintf(&b, "  ! %s\n", c.props.Error)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (c *choiceInput) Prompt(r *bufio.Reader, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "choose 1-%d > ", len(c.props.Field.Options)); err != nil {
		return err
	}
	line, err := readLine(r)
	if err != nil {
		return err
	}
	if line == "" {
		return nil
	}

	value, ok := c.resolve(line)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidChoice, line)
	}
	c.props.Value = value
	if c.props.OnChange != nil {
		c.props.OnChange(value)
	}
	return nil
}

// resolve accepts a 1-based option number or the option text (case-insensitive).
func (c *choiceInput) resolve(input string) (string, bool) {
	opts := c.props.Field.Options
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(opts) {
			return opts[n-1], true
		}
		return "", false
	}
	for _, opt := range opts {
		if strings.EqualFold(opt, input) {
			return opt, true
		}
	}
	return "", false
}

func requiredMark(required bool) string {
	if required {
		return " *"
	}
	return ""
}

func lengthHelper(min, max *int) string {
	var parts []string
	if min != nil && *min > 0 {
		parts = append(parts, fmt.Sprintf("Min: %d", *min))
	}
	if max != nil && *max > 0 {
		parts = append(parts, fmt.Sprintf("Max: %d", *max))
	}
	return strings.Join(parts, " ")
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
