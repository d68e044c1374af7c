package form

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/modesq/dynamic-form-fullstack-app/internal/render"
)

const consoleMenu = "[e]dit  [s]ave  [r]estore  [c]lear  s[u]bmit  [q]uit > "

// Console drives a Session from line-oriented input.
type Console struct {
	session *Session
	in      *bufio.Reader
	out     io.Writer
}

// NewConsole wires a session to in and out. Notifications are printed to out
// as they are shown.
func NewConsole(session *Session, in io.Reader, out io.Writer) *Console {
	c := &Console{session: session, in: bufio.NewReader(in), out: out}
	session.Notifier().OnShow(func(n Notification) {
		fmt.Fprintf(out, "[%s] %s\n", n.Level, n.Text)
	})
	return c
}

// Run shows the form and processes actions until quit or end of input.
func (c *Console) Run(ctx context.Context) error {
	if err := c.render(); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(c.out, consoleMenu); err != nil {
			return err
		}
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		err = nil

		switch action := strings.ToLower(strings.TrimSpace(line)); action {
		case "e", "edit":
			if err := c.edit(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case "s", "save":
			_ = c.session.Save()
		case "r", "restore":
			c.session.Restore()
			err = c.render()
		case "c", "clear":
			c.session.Clear()
			err = c.render()
		case "u", "submit":
			err = c.submit(ctx)
		case "q", "quit":
			return nil
		case "":
			err = c.render()
		default:
			fmt.Fprintf(c.out, "unknown action %q\n", action)
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) render() error {
	for _, w := range c.session.Widgets() {
		if err := w.Render(c.out); err != nil {
			return err
		}
	}
	return nil
}

// edit walks every field once. Invalid choices are asked again.
func (c *Console) edit() error {
	for _, w := range c.session.Widgets() {
		for {
			if err := w.Render(c.out); err != nil {
				return err
			}
			err := w.Prompt(c.in, c.out)
			if errors.Is(err, render.ErrInvalidChoice) {
				fmt.Fprintf(c.out, "  ! %v\n", err)
				continue
			}
			if err != nil {
				return err
			}
			break
		}
	}
	return nil
}

func (c *Console) submit(ctx context.Context) error {
	result, err := c.session.Submit(ctx)
	switch {
	case errors.Is(err, ErrInvalidAnswers):
		return c.render()
	case err != nil:
		// already reported through the notifier
		return nil
	}
	fmt.Fprintln(c.out, "Submitted data:")
	return WriteSummary(c.out, result.Payload)
}
