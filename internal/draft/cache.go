// internal/draft/cache.go
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/modesq/dynamic-form-fullstack-app/internal/core"
	"github.com/modesq/dynamic-form-fullstack-app/internal/domain"
	"github.com/modesq/dynamic-form-fullstack-app/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// DefaultDebounce is the edit inactivity window before a debounced save is written.
const DefaultDebounce = 500 * time.Millisecond

const keyPrefix = "dynamic_form_"

var ErrClosed = errors.New("draft cache is closed")

// Cache persists in-progress answers between sessions. It owns at most one
// pending debounced write; every new SaveDebounced call replaces it.
type Cache struct {
	store    Store
	debounce time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	pendingKey string
	pending    domain.AnswerSet
	closed     bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(c *Cache) { c.debounce = d }
}

// New creates a Cache on top of store. Call Close when the form goes away.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{store: store, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StorageKey derives the per-form key from the first field's id.
func StorageKey(fields []domain.FieldDefinition) string {
	if len(fields) == 0 || fields[0].ID == 0 {
		return keyPrefix + "default"
	}
	return fmt.Sprintf("%s%d", keyPrefix, fields[0].ID)
}

// Sparse drops blank answers.
func Sparse(answers domain.AnswerSet) domain.AnswerSet {
	out := make(domain.AnswerSet, len(answers))
	for name, value := range answers {
		if strings.TrimSpace(value) != "" {
			out[name] = value
		}
	}
	return out
}

// Reconcile keeps stored answers only for fields that still exist and fills
// every other field with its resolved default.
func Reconcile(stored domain.AnswerSet, fields []domain.FieldDefinition) domain.AnswerSet {
	answers := core.ResolveDefaults(fields)
	for _, field := range fields {
		if value, ok := stored[field.Name]; ok {
			answers[field.Name] = value
		}
	}
	return answers
}

// Save writes answers immediately and cancels any pending debounced write.
// An answer set with no non-blank values removes the entry instead.
func (c *Cache) Save(key string, answers domain.AnswerSet) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.cancelLocked()
	c.mu.Unlock()

	return c.write(key, answers)
}

// SaveDebounced schedules a write after the debounce window. A later call
// before the window elapses replaces the pending snapshot and restarts the timer.
func (c *Cache) SaveDebounced(key string, answers domain.AnswerSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.cancelLocked()
	c.pendingKey = key
	c.pending = answers.Clone()
	c.timer = time.AfterFunc(c.debounce, c.fire)
}

// Pending reports whether a debounced write is waiting.
func (c *Cache) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Flush writes the pending debounced snapshot now, if there is one.
func (c *Cache) Flush() error {
	c.mu.Lock()
	key, answers, ok := c.takeLocked()
	c.mu.Unlock()

	if !ok {
		return nil
	}
	return c.write(key, answers)
}

// Load returns the stored answers for key. Missing, unreadable or malformed
// entries all yield an empty set.
func (c *Cache) Load(key string) domain.AnswerSet {
	data, err := c.store.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			customLog.Warnf("Draft: Error reading %s: %v", key, err)
		}
		return domain.AnswerSet{}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		customLog.Warnf("Draft: Ignoring malformed draft %s: %v", key, err)
		return domain.AnswerSet{}
	}

	answers := make(domain.AnswerSet, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			answers[name] = v
		case bool:
			if v {
				answers[name] = "Yes"
			} else {
				answers[name] = "No"
			}
		case float64:
			answers[name] = fmt.Sprint(v)
		}
	}
	return Sparse(answers)
}

// Restore loads key and reconciles it against the current field definitions.
func (c *Cache) Restore(key string, fields []domain.FieldDefinition) domain.AnswerSet {
	return Reconcile(c.Load(key), fields)
}

// Clear removes the entry for key and drops any pending write for it.
func (c *Cache) Clear(key string) error {
	c.mu.Lock()
	if c.pendingKey == key {
		c.cancelLocked()
	}
	c.mu.Unlock()

	if err := c.store.Delete(key); err != nil {
		customLog.Warnf("Draft: Error clearing %s: %v", key, err)
		return err
	}
	return nil
}

// Close flushes the pending write and stops accepting new ones.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	key, answers, ok := c.takeLocked()
	c.mu.Unlock()

	if !ok {
		return nil
	}
	return c.write(key, answers)
}

func (c *Cache) fire() {
	if err := c.Flush(); err != nil {
		customLog.Warnf("Draft: Debounced save failed: %v", err)
	}
}

func (c *Cache) write(key string, answers domain.AnswerSet) error {
	sparse := Sparse(answers)
	if len(sparse) == 0 {
		if err := c.store.Delete(key); err != nil {
			customLog.Warnf("Draft: Error removing empty draft %s: %v", key, err)
			return err
		}
		return nil
	}

	data, err := json.Marshal(sparse)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := c.store.Set(key, data); err != nil {
		customLog.Warnf("Draft: Error saving %s: %v", key, err)
		return err
	}
	customLog.Debugf("Draft: Saved %d answer(s) under %s", len(sparse), key)
	return nil
}

func (c *Cache) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = nil
	c.pendingKey = ""
	c.pending = nil
}

func (c *Cache) takeLocked() (string, domain.AnswerSet, bool) {
	if c.timer == nil {
		return "", nil, false
	}
	key, answers := c.pendingKey, c.pending
	c.cancelLocked()
	return key, answers, true
}
