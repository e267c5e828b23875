// internal/notify/clock.go
package notify

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer is a pending deferred callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// ran or was already stopped.
	Stop() bool
}

// Clock schedules deferred callbacks. The queue never sleeps; it only asks
// its Clock to run a removal later. Callbacks run on their own goroutine.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type clockworkClock struct {
	clockwork.Clock
}

// NewClock adapts a clockwork clock. Tests pass a clockwork.FakeClock and
// move time with Advance.
func NewClock(c clockwork.Clock) Clock {
	return clockworkClock{Clock: c}
}

// RealClock returns a Clock backed by the runtime timers.
func RealClock() Clock {
	return NewClock(clockwork.NewRealClock())
}

func (c clockworkClock) AfterFunc(d time.Duration, f func()) Timer {
	return c.Clock.AfterFunc(d, f)
}
