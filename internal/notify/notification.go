// internal/notify/notification.go
package notify

import (
	"encoding/json"
	"time"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Persistent, used as Input.Duration, keeps a notification until it is
// dismissed.
const Persistent time.Duration = -1

func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// DefaultDuration is how long a notification of this severity stays
// visible when the caller does not choose.
func (s Severity) DefaultDuration() time.Duration {
	switch s {
	case SeverityError:
		return 7 * time.Second
	case SeverityWarning:
		return 6 * time.Second
	default:
		return 5 * time.Second
	}
}

// Action is an optional button bound to a notification.
type Action struct {
	Label    string `json:"label"`
	Callback func() `json:"-"`
}

// Input describes a notification to add.
type Input struct {
	Title       string
	Description string
	Severity    Severity
	// Duration is the lifetime before automatic removal. Zero does not mean
	// persistent: it selects the severity default, since an unset field is
	// indistinguishable from 0. Pass Persistent to keep the notification
	// until it is dismissed.
	Duration time.Duration
	Action   *Action
}

type Notification struct {
	ID          string
	Title       string
	Description string
	Severity    Severity
	// Duration is the effective lifetime; zero means persistent.
	Duration  time.Duration
	CreatedAt time.Time
	Action    *Action
}

// ExpiresAt reports when the notification removes itself.
func (n Notification) ExpiresAt() (time.Time, bool) {
	if n.Duration <= 0 {
		return time.Time{}, false
	}
	return n.CreatedAt.Add(n.Duration), true
}

func (n Notification) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID          string     `json:"id"`
		Title       string     `json:"title"`
		Description string     `json:"description,omitempty"`
		Type        Severity   `json:"type"`
		DurationMS  int64      `json:"duration"`
		CreatedAt   time.Time  `json:"created_at"`
		ExpiresAt   *time.Time `json:"expires_at,omitempty"`
		Action      *Action    `json:"action,omitempty"`
	}

	w := wire{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Type:        n.Severity,
		DurationMS:  n.Duration.Milliseconds(),
		CreatedAt:   n.CreatedAt,
		Action:      n.Action,
	}
	if at, ok := n.ExpiresAt(); ok {
		w.ExpiresAt = &at
	}
	return json.Marshal(w)
}
