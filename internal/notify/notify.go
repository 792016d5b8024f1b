// Package notify delivers transient outcome messages from the flows to
// whatever displays them.
package notify

import (
	"sync"
	"time"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 3 * time.Second

// Severity classifies a notification.
type Severity int

const (
	Success Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "success"
}

// Sink receives notifications. Implementations must be safe for concurrent use.
type Sink interface {
	Notify(message string, severity Severity)
}

// Func adapts an ordinary function to a Sink.
type Func func(message string, severity Severity)

// Notify calls f.
func (f Func) Notify(message string, severity Severity) {
	f(message, severity)
}

// Notification is one shown message.
type Notification struct {
	ID       uint64
	Message  string
	Severity Severity
	Expires  time.Time
}

// Center keeps the latest notification until it expires or is dismissed.
// A newer notification replaces the previous one.
type Center struct {
	mu       sync.Mutex
	now      func() time.Time
	duration time.Duration
	seq      uint64
	current  *Notification
	onNotify func(Notification)
}

// CenterOption configures a Center.
type CenterOption func(*Center)

// WithDuration overrides DefaultDuration.
func WithDuration(d time.Duration) CenterOption {
	return func(c *Center) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CenterOption {
	return func(c *Center) {
		c.now = now
	}
}

// OnNotify registers a callback run after every Notify, outside the lock.
func OnNotify(fn func(Notification)) CenterOption {
	return func(c *Center) {
		c.onNotify = fn
	}
}

// NewCenter creates an empty Center.
func NewCenter(opts ...CenterOption) *Center {
	c := &Center{now: time.Now, duration: DefaultDuration}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Duration returns how long each notification is shown.
func (c *Center) Duration() time.Duration {
	return c.duration
}

// Notify implements Sink.
func (c *Center) Notify(message string, severity Severity) {
	c.mu.Lock()
	c.seq++
	n := Notification{
		ID:       c.seq,
		Message:  message,
		Severity: severity,
		Expires:  c.now().Add(c.duration),
	}
	c.current = &n
	cb := c.onNotify
	c.mu.Unlock()

	if cb != nil {
		cb(n)
	}
}

// Current returns the visible notification at now, if any.
func (c *Center) Current(now time.Time) (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil || !now.Before(c.current.Expires) {
		return Notification{}, false
	}
	return *c.current, true
}

// Dismiss closes the visible notification.
func (c *Center) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// Expire closes the notification with the given ID if it is still the
// visible one. A timer for a replaced notification is a no-op.
func (c *Center) Expire(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil && c.current.ID == id {
		c.current = nil
	}
}

// Recorder is a Sink that keeps every notification it receives.
type Recorder struct {
	mu      sync.Mutex
	entries []Notification
}

// Notify implements Sink.
func (r *Recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Notification{
		ID:       uint64(len(r.entries) + 1),
		Message:  message,
		Severity: severity,
	})
}

// All returns a copy of the received notifications in order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.entries...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Notification{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Count returns how many notifications of severity were received.
func (r *Recorder) Count(severity Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Severity == severity {
			n++
		}
	}
	return n
}
