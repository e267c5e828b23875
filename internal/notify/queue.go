// internal/notify/queue.go
package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoAction             = errors.New("notification has no action")
)

// Queue holds the active notifications of one owner in arrival order.
// Entries with a positive duration remove themselves through the Clock.
type Queue struct {
	mu        sync.Mutex
	clock     Clock
	logger    *logrus.Entry
	durations map[Severity]time.Duration
	entries   []*entry
}

type entry struct {
	notification Notification
	timer        Timer
}

type Option func(*Queue)

func WithClock(clock Clock) Option {
	return func(q *Queue) {
		q.clock = clock
	}
}

func WithLogger(logger *logrus.Entry) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

// WithDefaultDuration overrides the default lifetime of one severity.
// Non-positive values are ignored.
func WithDefaultDuration(severity Severity, d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.durations[severity] = d
		}
	}
}

func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		clock:     RealClock(),
		logger:    logrus.NewEntry(logrus.StandardLogger()),
		durations: make(map[Severity]time.Duration),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Add appends a notification and returns its id. Unknown severities are
// treated as info.
func (q *Queue) Add(in Input) string {
	severity := in.Severity
	if !severity.Valid() {
		severity = SeverityInfo
	}

	duration := in.Duration
	switch {
	case duration == 0:
		duration = q.defaultDuration(severity)
	case duration < 0:
		duration = 0
	}

	n := Notification{
		ID:          newID(),
		Title:       in.Title,
		Description: in.Description,
		Severity:    severity,
		Duration:    duration,
		CreatedAt:   q.clock.Now(),
		Action:      in.Action,
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	e := &entry{notification: n}
	if duration > 0 {
		id := n.ID
		e.timer = q.clock.AfterFunc(duration, func() { q.expire(id) })
	}
	q.entries = append(q.entries, e)

	q.logger.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"type":            n.Severity,
		"duration_ms":     duration.Milliseconds(),
	}).Debug("Notification added")

	return n.ID
}

// Remove dismisses a notification and cancels its pending expiry. It
// reports whether the id was present.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	e := q.take(id)
	if e == nil {
		return false
	}
	if e.timer != nil {
		e.timer.Stop()
	}

	q.logger.WithField("notification_id", id).Debug("Notification dismissed")
	return true
}

// Clear dismisses every notification.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, e := range q.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	q.entries = nil
}

// Trigger runs the notification's action and dismisses it.
func (q *Queue) Trigger(id string) error {
	q.mu.Lock()
	var action *Action
	for _, e := range q.entries {
		if e.notification.ID == id {
			action = e.notification.Action
			break
		}
	}
	q.mu.Unlock()

	if action == nil {
		if q.Get(id) == nil {
			return ErrNotificationNotFound
		}
		return ErrNoAction
	}

	q.Remove(id)
	if action.Callback != nil {
		action.Callback()
	}
	return nil
}

// Get returns a copy of the notification, or nil when it is not active.
func (q *Queue) Get(id string) *Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, e := range q.entries {
		if e.notification.ID == id {
			n := e.notification
			return &n
		}
	}
	return nil
}

// List returns the active notifications in arrival order.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, 0, len(q.entries))
	for _, e := range q.entries {
		out = append(out, e.notification)
	}
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func (q *Queue) Success(title string, description ...string) string {
	return q.add(SeveritySuccess, title, description)
}

func (q *Queue) Error(title string, description ...string) string {
	return q.add(SeverityError, title, description)
}

func (q *Queue) Warning(title string, description ...string) string {
	return q.add(SeverityWarning, title, description)
}

func (q *Queue) Info(title string, description ...string) string {
	return q.add(SeverityInfo, title, description)
}

func (q *Queue) add(severity Severity, title string, description []string) string {
	in := Input{Title: title, Severity: severity}
	if len(description) > 0 {
		in.Description = description[0]
	}
	return q.Add(in)
}

func (q *Queue) expire(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.take(id) == nil {
		return
	}
	q.logger.WithField("notification_id", id).Debug("Notification expired")
}

// take unlinks the entry for id. Callers hold q.mu.
func (q *Queue) take(id string) *entry {
	for i, e := range q.entries {
		if e.notification.ID == id {
			q.entries = append(q.entries[:i:i], q.entries[i+1:]...)
			return e
		}
	}
	return nil
}

func (q *Queue) defaultDuration(severity Severity) time.Duration {
	if d, ok := q.durations[severity]; ok {
		return d
	}
	return severity.DefaultDuration()
}

// newID returns a time-ordered UUID: a millisecond timestamp followed by
// random bits.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
