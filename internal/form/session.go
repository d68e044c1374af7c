// internal/form/session.go
package form

import (
	"context"
	"errors"
	"sync"

	"github.com/modesq/dynamic-form-fullstack-app/internal/client"
	"github.com/modesq/dynamic-form-fullstack-app/internal/core"
	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
	"github.com/modesq/dynamic-form-fullstack-app/internal/draft"
	"github.com/modesq/dynamic-form-fullstack-app/internal/logger"
	"github.com/modesq/dynamic-form-fullstack-app/internal/render"
)

var (
	customLog = logger.NewLogger()
)

// Notification texts.
const (
	MsgSaved           = "Form data saved locally!"
	MsgRestored        = "Form data restored from local storage!"
	MsgCleared         = "Form cleared and local storage removed!"
	MsgFixErrors       = "Please fix the errors below"
	MsgSubmitted       = "Form submitted successfully!"
	MsgSubmitFailed    = "Failed to submit form"
	MsgDraftSaveFailed = "Could not save form data locally"
)

var (
	ErrInvalidAnswers   = errors.New("form has validation errors")
	ErrSubmitInProgress = errors.New("a submission is already in progress")
)

// Submitter sends a transformed submission to the backend.
type Submitter interface {
	Submit(ctx context.Context, payload core.Payload) (*domain.User, error)
}

// Result is what a successful Submit produced.
type Result struct {
	User    *domain.User
	Payload core.Payload
}

// Session is the state of one open form: the current answers, the
// validation errors on display, and the draft and notification services.
type Session struct {
	fields    []domain.FieldDefinition
	key       string
	drafts    *draft.Cache
	submitter Submitter
	notifier  *Notifier

	mu         sync.Mutex
	answers    domain.AnswerSet
	errors     map[string]string
	submitting bool
}

// NewSession opens a form over fields. Answers start from the resolved
// defaults merged with whatever draft is stored for this form.
func NewSession(fields []domain.FieldDefinition, drafts *draft.Cache, submitter Submitter, notifier *Notifier) *Session {
	if notifier == nil {
		notifier = NewNotifier(0)
	}
	s := &Session{
		fields:    fields,
		key:       draft.StorageKey(fields),
		drafts:    drafts,
		submitter: submitter,
		notifier:  notifier,
		errors:    map[string]string{},
	}
	s.answers = drafts.Restore(s.key, fields)
	return s
}

func (s *Session) Fields() []domain.FieldDefinition { return s.fields }
func (s *Session) Key() string                      { return s.key }
func (s *Session) Notifier() *Notifier              { return s.notifier }

// Answers returns a copy of the current answers.
func (s *Session) Answers() domain.AnswerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Clone()
}

// Errors returns a copy of the displayed validation errors.
func (s *Session) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Submitting reports whether a submission is in flight.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// SetValue records an edit, clears that field's error and schedules a
// debounced draft save.
func (s *Session) SetValue(name, value string) {
	s.mu.Lock()
	s.answers[name] = value
	delete(s.errors, name)
	snapshot := s.answers.Clone()
	s.mu.Unlock()

	s.drafts.SaveDebounced(s.key, snapshot)
}

// Widgets builds the terminal controls for the current state. Edits made
// through them flow back into SetValue.
func (s *Session) Widgets() []render.Widget {
	s.mu.Lock()
	answers := s.answers.Clone()
	errs := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		errs[k] = v
	}
	s.mu.Unlock()

	return render.Form(s.fields, answers, errs, s.SetValue)
}

// Save writes the draft immediately.
func (s *Session) Save() error {
	if err := s.drafts.Save(s.key, s.Answers()); err != nil {
		s.notifier.Error(MsgDraftSaveFailed)
		return err
	}
	s.notifier.Info(MsgSaved)
	return nil
}

// Restore reloads answers from the stored draft and clears errors.
func (s *Session) Restore() {
	restored := s.drafts.Restore(s.key, s.fields)

	s.mu.Lock()
	s.answers = restored
	s.errors = map[string]string{}
	s.mu.Unlock()

	s.notifier.Info(MsgRestored)
}

// Clear removes the stored draft and resets every answer to its default.
func (s *Session) Clear() {
	if err := s.drafts.Clear(s.key); err != nil {
		customLog.Warnf("Form: Error clearing draft %s: %v", s.key, err)
	}
	s.reset()
	s.notifier.Info(MsgCleared)
}

// Submit validates the answers and, when they pass, transforms and sends
// them. On success the draft is removed and the form goes back to its
// defaults. Any failure leaves the answers in place for another attempt.
func (s *Session) Submit(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	s.notifier.Clear()

	if errs := core.ValidateAllFields(s.answers, s.fields); len(errs) > 0 {
		s.errors = errs
		s.mu.Unlock()
		s.notifier.Error(MsgFixErrors)
		return nil, ErrInvalidAnswers
	}

	s.submitting = true
	payload := core.TransformSubmission(s.answers)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	user, err := s.submitter.Submit(ctx, payload)
	if err != nil {
		customLog.Warnf("Form: Submission failed: %v", err)
		s.notifier.Error(client.Message(err, MsgSubmitFailed))
		return nil, err
	}

	s.notifier.Success(MsgSubmitted)
	if err := s.drafts.Clear(s.key); err != nil {
		customLog.Warnf("Form: Error clearing draft %s after submit: %v", s.key, err)
	}
	s.reset()

	return &Result{User: user, Payload: payload}, nil
}

// Close flushes the pending draft write and stops the notification timer.
func (s *Session) Close() error {
	s.notifier.Close()
	return s.drafts.Close()
}

func (s *Session) reset() {
	s.mu.Lock()
	s.answers = core.ResolveDefaults(s.fields)
	s.errors = map[string]string{}
	s.mu.Unlock()
}
