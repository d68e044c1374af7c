package form

import (
	"sync"
	"time"
)

// DefaultNotifyTimeout is how long a notification stays visible.
const DefaultNotifyTimeout = 3 * time.Second

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a transient message shown above the form.
type Notification struct {
	Level Level
	Text  string
}

// Notifier holds at most one visible notification and dismisses it after a
// timeout. Showing a new one replaces the old one and restarts the timer.
type Notifier struct {
	timeout time.Duration

	mu       sync.Mutex
	current  *Notification
	timer    *time.Timer
	listener func(Notification)
}

// NewNotifier returns a Notifier. A non-positive timeout uses DefaultNotifyTimeout.
func NewNotifier(timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	return &Notifier{timeout: timeout}
}

// OnShow registers fn to be called synchronously for every new notification.
func (n *Notifier) OnShow(fn func(Notification)) {
	n.mu.Lock()
	n.listener = fn
	n.mu.Unlock()
}

func (n *Notifier) Success(text string) { n.Show(LevelSuccess, text, 0) }
func (n *Notifier) Error(text string)   { n.Show(LevelError, text, 0) }
func (n *Notifier) Info(text string)    { n.Show(LevelInfo, text, 0) }

// Show displays text at level for timeout, or the notifier default when
// timeout is zero.
func (n *Notifier) Show(level Level, text string, timeout time.Duration) {
	if timeout <= 0 {
		timeout = n.timeout
	}
	msg := Notification{Level: level, Text: text}

	n.mu.Lock()
	n.stopLocked()
	n.current = &msg
	var t *time.Timer
	t = time.AfterFunc(timeout, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// a newer notification owns the slot now
		if n.timer == t {
			n.current = nil
			n.timer = nil
		}
	})
	n.timer = t
	listener := n.listener
	n.mu.Unlock()

	if listener != nil {
		listener(msg)
	}
}

// Current returns the visible notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Clear dismisses the visible notification immediately.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
	n.current = nil
}

// Close stops the dismiss timer.
func (n *Notifier) Close() {
	n.Clear()
}

func (n *Notifier) stopLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
