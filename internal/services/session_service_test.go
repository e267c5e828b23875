package services

import (
	"os"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront/internal/cart"
	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/notify"
	"github.com/javajoker/storefront/internal/utils"
)

var testStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	if err := i18n.Initialize(i18n.DefaultLanguage); err != nil {
		panic(err)
	}
	utils.SetJWTSecret("test-secret")
	os.Exit(m.Run())
}

func testNotificationConfig() config.NotificationConfig {
	return config.NotificationConfig{
		SuccessDuration: 5 * time.Second,
		ErrorDuration:   7 * time.Second,
		WarningDuration: 6 * time.Second,
		InfoDuration:    5 * time.Second,
	}
}

func newTestSessionService(clock clockwork.FakeClock) *SessionService {
	svc := NewSessionService(config.SessionConfig{
		TokenTTL:      time.Hour,
		IdleTimeout:   30 * time.Minute,
		SweepInterval: time.Minute,
	}, NewNotificationService(testNotificationConfig(), notify.NewClock(clock)))
	svc.now = clock.Now
	return svc
}

func TestSessionService_CreateAndResolve(t *testing.T) {
	svc := newTestSessionService(clockwork.NewFakeClockAt(testStart))

	sess, token, err := svc.Create()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.Resolve(token)
	require.NoError(t, err)
	assert.Same(t, sess, resolved)
	assert.Equal(t, testStart, resolved.CreatedAt)
	assert.Equal(t, 0, resolved.Cart().Len())
	assert.Equal(t, 1, svc.Len())
}

func TestSessionService_ResolveRejectsBadTokens(t *testing.T) {
	svc := newTestSessionService(clockwork.NewFakeClockAt(testStart))

	_, err := svc.Resolve("not-a-token")
	assert.Error(t, err)

	token, err := utils.GenerateSessionToken("unknown-session", time.Hour)
	require.NoError(t, err)
	_, err = svc.Resolve(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_Delete(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testStart)
	svc := newTestSessionService(clock)

	sess, _, err := svc.Create()
	require.NoError(t, err)
	sess.Notifications.Success("hello")
	require.Equal(t, 1, sess.Notifications.Len())

	assert.True(t, svc.Delete(sess.ID))
	assert.False(t, svc.Delete(sess.ID))
	assert.Equal(t, 0, svc.Len())
	assert.Equal(t, 0, sess.Notifications.Len())
	assert.NotPanics(t, func() { clock.Advance(time.Minute) })
}

func TestSessionService_SweepEvictsIdleSessions(t *testing.T) {
	clock := clockwork.NewFakeClockAt(testStart)
	svc := newTestSessionService(clock)

	idle, _, err := svc.Create()
	require.NoError(t, err)
	idle.Notifications.Add(notify.Input{Title: "stays", Duration: notify.Persistent})

	clock.Advance(20 * time.Minute)
	active, _, err := svc.Create()
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	_, err = svc.Get(active.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, svc.Sweep())
	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, 0, idle.Notifications.Len())

	_, err = svc.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get(active.ID)
	assert.NoError(t, err)
}

func TestSession_Update(t *testing.T) {
	svc := newTestSessionService(clockwork.NewFakeClockAt(testStart))
	sess, _, err := svc.Create()
	require.NoError(t, err)

	item := cart.Item{ID: "a", Name: "Alpha", Price: 10, Available: true}
	prev, next := sess.Update(func(s cart.State) cart.State {
		return s.AddItem(item, 2)
	})

	assert.Equal(t, 0, prev.Len())
	assert.Equal(t, 2, next.ItemCount())
	assert.True(t, next.Equal(sess.Cart()))
}
