package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modesq/dynamic-form-fullstack-app/internal/client"
	"github.com/modesq/dynamic-form-fullstack-app/internal/core"
	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
	"github.com/modesq/dynamic-form-fullstack-app/internal/draft"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	if !ok {
		return nil, draft.ErrNotFound
	}
	return d, nil
}

func (m *memStore) Set(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *memStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type fakeSubmitter struct {
	payloads []core.Payload
	err      error
}

func (f *fakeSubmitter) Submit(_ context.Context, payload core.Payload) (*domain.User, error) {
	f.payloads = append(f.payloads, payload)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: int64(len(f.payloads))}, nil
}

func scenarioFields() []domain.FieldDefinition {
	one := "1"
	min, max := 1, 100
	return []domain.FieldDefinition{
		{ID: 1, Name: "Full Name", FieldType: domain.FieldTypeText, Required: true, MinLength: &min, MaxLength: &max},
		{ID: 2, Name: "Email", FieldType: domain.FieldTypeText, Required: true},
		{ID: 3, Name: "Gender", FieldType: domain.FieldTypeList, Required: true, Options: []string{"Male", "Female", "Others"}, DefaultValue: &one},
		{ID: 4, Name: "Love React?", FieldType: domain.FieldTypeRadio, Required: true, Options: []string{"Yes", "No"}, DefaultValue: &one},
	}
}

func newTestSession(t *testing.T, sub Submitter, debounce time.Duration) (*Session, *memStore) {
	t.Helper()
	store := &memStore{data: map[string][]byte{}}
	cache := draft.New(store, draft.WithDebounce(debounce))
	s := NewSession(scenarioFields(), cache, sub, NewNotifier(time.Hour))
	t.Cleanup(func() { _ = s.Close() })
	return s, store
}

func TestEndToEndScenario(t *testing.T) {
	sub := &fakeSubmitter{}
	s, _ := newTestSession(t, sub, time.Hour)

	answers := s.Answers()
	assert.Equal(t, "Female", answers["Gender"])
	assert.Equal(t, "No", answers["Love React?"])

	s.SetValue("Full Name", "Jo")
	s.SetValue("Email", "bad-email")

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalidAnswers)
	assert.Equal(t, map[string]string{"Email": core.InvalidEmailMessage}, s.Errors())
	assert.Empty(t, sub.payloads, "invalid answers never reach the network")
	note, ok := s.Notifier().Current()
	require.True(t, ok)
	assert.Equal(t, Notification{Level: LevelError, Text: MsgFixErrors}, note)

	s.SetValue("Email", "jo@x.com")
	assert.Empty(t, s.Errors(), "editing a field clears its error")

	res, err := s.Submit(context.Background())
	require.NoError(t, err)
	want := core.Payload{"fullName": "Jo", "email": "jo@x.com", "gender": "Female", "loveReactFlag": false}
	assert.Equal(t, want, res.Payload)
	require.Len(t, sub.payloads, 1)
	assert.Equal(t, want, sub.payloads[0])
}

func TestSubmitSuccessResetsFormAndClearsDraft(t *testing.T) {
	s, store := newTestSession(t, &fakeSubmitter{}, time.Hour)

	s.SetValue("Full Name", "Jo")
	s.SetValue("Email", "jo@x.com")
	require.NoError(t, s.Save())
	require.True(t, store.has(s.Key()))

	_, err := s.Submit(context.Background())
	require.NoError(t, err)

	assert.False(t, store.has(s.Key()))
	assert.Equal(t, domain.AnswerSet{"Full Name": "", "Email": "", "Gender": "Female", "Love React?": "No"}, s.Answers())
	note, _ := s.Notifier().Current()
	assert.Equal(t, Notification{Level: LevelSuccess, Text: MsgSubmitted}, note)
	assert.False(t, s.Submitting())
}

func TestSubmitFailureKeepsAnswers(t *testing.T) {
	sub := &fakeSubmitter{err: &client.APIError{Status: 409, Message: "Email already exists"}}
	s, _ := newTestSession(t, sub, time.Hour)

	s.SetValue("Full Name", "Jo")
	s.SetValue("Email", "jo@x.com")

	_, err := s.Submit(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 409, apiErr.Status)

	note, _ := s.Notifier().Current()
	assert.Equal(t, Notification{Level: LevelError, Text: "Email already exists"}, note)
	assert.Equal(t, "Jo", s.Answers()["Full Name"])
	assert.False(t, s.Submitting())

	sub.err = &client.TransportError{Op: "POST /users", Err: errors.New("connection refused")}
	_, err = s.Submit(context.Background())
	require.Error(t, err)
	note, _ = s.Notifier().Current()
	assert.Equal(t, MsgSubmitFailed, note.Text)
}

func TestEditsAreSavedAfterDebounce(t *testing.T) {
	s, store := newTestSession(t, &fakeSubmitter{}, 10*time.Millisecond)

	s.SetValue("Full Name", "Jo")
	assert.Eventually(t, func() bool { return store.has(s.Key()) }, time.Second, 5*time.Millisecond)
}

func TestRestoreAndClear(t *testing.T) {
	s, store := newTestSession(t, &fakeSubmitter{}, time.Hour)

	s.SetValue("Full Name", "Jo")
	require.NoError(t, s.Save())
	note, _ := s.Notifier().Current()
	assert.Equal(t, MsgSaved, note.Text)

	s.SetValue("Full Name", "Someone Else")
	_, _ = s.Submit(context.Background())
	require.NotEmpty(t, s.Errors())

	s.Restore()
	assert.Equal(t, "Jo", s.Answers()["Full Name"])
	assert.Empty(t, s.Errors())
	note, _ = s.Notifier().Current()
	assert.Equal(t, MsgRestored, note.Text)

	s.Clear()
	assert.False(t, store.has(s.Key()))
	assert.Equal(t, "", s.Answers()["Full Name"])
	assert.Equal(t, "Female", s.Answers()["Gender"])
	note, _ = s.Notifier().Current()
	assert.Equal(t, MsgCleared, note.Text)
}

func TestNewSessionMergesStoredDraft(t *testing.T) {
	store := &memStore{data: map[string][]byte{
		"dynamic_form_1": []byte(`{"Email":"jo@x.com","Gender":"Others","Retired Field":"x"}`),
	}}
	s := NewSession(scenarioFields(), draft.New(store), &fakeSubmitter{}, nil)
	defer s.Close()

	assert.Equal(t, domain.AnswerSet{"Full Name": "", "Email": "jo@x.com", "Gender": "Others", "Love React?": "No"}, s.Answers())
}

func TestWidgetsRouteEditsIntoSession(t *testing.T) {
	s, _ := newTestSession(t, &fakeSubmitter{}, time.Hour)

	widgets := s.Widgets()
	require.Len(t, widgets, 4)
	widgets[0].Props().OnChange("Jo")
	assert.Equal(t, "Jo", s.Answers()["Full Name"])
}
