package notify

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(opts ...Option) (*Queue, clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewQueue(append([]Option{WithClock(NewClock(clock))}, opts...)...), clock
}

// assertGone waits for the expiry callback, which runs on its own goroutine.
func assertGone(t *testing.T, q *Queue, id string) {
	t.Helper()
	assert.Eventually(t, func() bool { return q.Get(id) == nil }, time.Second, time.Millisecond)
}

func assertEmpty(t *testing.T, q *Queue) {
	t.Helper()
	assert.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, time.Millisecond)
}

func TestQueue_SuccessExpiresAfterDefault(t *testing.T) {
	q, clock := newTestQueue()

	id := q.Add(Input{Title: "x", Severity: SeveritySuccess})

	clock.Advance(4999 * time.Millisecond)
	assert.NotNil(t, q.Get(id), "retained before 5000ms")

	clock.Advance(time.Millisecond)
	assertGone(t, q, id)
}

func TestQueue_DefaultDurations(t *testing.T) {
	q, _ := newTestQueue()

	tests := []struct {
		severity Severity
		want     time.Duration
	}{
		{SeveritySuccess, 5 * time.Second},
		{SeverityInfo, 5 * time.Second},
		{SeverityWarning, 6 * time.Second},
		{SeverityError, 7 * time.Second},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			id := q.Add(Input{Title: "t", Severity: tt.severity})
			assert.Equal(t, tt.want, q.Get(id).Duration)
		})
	}
}

func TestQueue_DefaultDurationOverride(t *testing.T) {
	q, clock := newTestQueue(WithDefaultDuration(SeverityError, 2*time.Second))

	id := q.Error("falhou")
	clock.Advance(2 * time.Second)
	assertGone(t, q, id)
}

func TestQueue_ExplicitDuration(t *testing.T) {
	q, clock := newTestQueue()

	id := q.Add(Input{Title: "rápida", Severity: SeverityError, Duration: 1500 * time.Millisecond})
	clock.Advance(1499 * time.Millisecond)
	assert.NotNil(t, q.Get(id))
	clock.Advance(time.Millisecond)
	assertGone(t, q, id)
}

func TestQueue_PersistentNeverExpires(t *testing.T) {
	q, clock := newTestQueue()

	id := q.Add(Input{Title: "fixa", Severity: SeverityInfo, Duration: Persistent})

	clock.Advance(24 * time.Hour)
	n := q.Get(id)
	require.NotNil(t, n)
	assert.Equal(t, time.Duration(0), n.Duration)
	_, expires := n.ExpiresAt()
	assert.False(t, expires)

	assert.True(t, q.Remove(id))
	assert.Equal(t, 0, q.Len())
}

func TestQueue_DismissBeforeExpiry(t *testing.T) {
	q, clock := newTestQueue()

	dismissed := q.Success("salvo")
	kept := q.Success("outro")

	assert.True(t, q.Remove(dismissed))
	assert.False(t, q.Remove(dismissed), "second dismissal is a no-op")
	assert.Equal(t, 1, q.Len())

	assert.NotPanics(t, func() { clock.Advance(10 * time.Second) })
	assertGone(t, q, kept)
	assertEmpty(t, q)
}

func TestQueue_ZeroDurationIsNotPersistent(t *testing.T) {
	q, clock := newTestQueue()

	id := q.Add(Input{Title: "padrão", Severity: SeverityWarning, Duration: 0})
	n := q.Get(id)
	require.NotNil(t, n)
	assert.Equal(t, 6*time.Second, n.Duration)

	clock.Advance(6 * time.Second)
	assertGone(t, q, id)
}

func TestQueue_RemoveUnknownIsNoOp(t *testing.T) {
	q, _ := newTestQueue()
	q.Info("a")

	assert.False(t, q.Remove("missing"))
	assert.Equal(t, 1, q.Len())
}

func TestQueue_ArrivalOrder(t *testing.T) {
	q, _ := newTestQueue()

	first := q.Error("1")
	second := q.Info("2")
	third := q.Warning("3")

	var got []string
	for _, n := range q.List() {
		got = append(got, n.ID)
	}
	assert.Equal(t, []string{first, second, third}, got)
}

func TestQueue_ExpiryOrderFollowsDuration(t *testing.T) {
	q, clock := newTestQueue()

	errID := q.Error("erro")
	warnID := q.Warning("aviso")
	okID := q.Success("ok")

	clock.Advance(5 * time.Second)
	assertGone(t, q, okID)
	assert.NotNil(t, q.Get(warnID))

	clock.Advance(time.Second)
	assertGone(t, q, warnID)
	assert.NotNil(t, q.Get(errID))

	clock.Advance(time.Second)
	assertEmpty(t, q)
}

func TestQueue_UniqueIDsUnderRapidAdds(t *testing.T) {
	q, _ := newTestQueue()

	const n = 500
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := q.Info("x")
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, n)
	assert.Equal(t, n, q.Len())
}

func TestQueue_WrappersSetDescription(t *testing.T) {
	q, _ := newTestQueue()

	withDesc := q.Warning("Estoque baixo", "Restam 2 unidades")
	without := q.Warning("Sem descrição")

	assert.Equal(t, "Restam 2 unidades", q.Get(withDesc).Description)
	assert.Empty(t, q.Get(without).Description)
	assert.Equal(t, SeverityWarning, q.Get(without).Severity)
}

func TestQueue_UnknownSeverityFallsBackToInfo(t *testing.T) {
	q, _ := newTestQueue()

	id := q.Add(Input{Title: "?", Severity: "fatal"})
	assert.Equal(t, SeverityInfo, q.Get(id).Severity)
}

func TestQueue_Clear(t *testing.T) {
	q, clock := newTestQueue()
	q.Success("a")
	q.Error("b")

	q.Clear()
	assert.Equal(t, 0, q.Len())

	kept := q.Add(Input{Title: "c", Duration: Persistent})
	assert.NotPanics(t, func() { clock.Advance(time.Minute) })
	assert.Never(t, func() bool { return q.Get(kept) == nil }, 20*time.Millisecond, time.Millisecond)
}

func TestQueue_Trigger(t *testing.T) {
	q, _ := newTestQueue()

	called := 0
	id := q.Add(Input{
		Title:    "Item removido",
		Severity: SeverityInfo,
		Action:   &Action{Label: "Desfazer", Callback: func() { called++ }},
	})
	plain := q.Info("sem ação")

	require.NoError(t, q.Trigger(id))
	assert.Equal(t, 1, called)
	assert.Nil(t, q.Get(id))
	assert.Equal(t, 1, q.Len())

	assert.ErrorIs(t, q.Trigger(id), ErrNotificationNotFound)
	assert.ErrorIs(t, q.Trigger(plain), ErrNoAction)
}

func TestQueue_CallbackMayUseQueue(t *testing.T) {
	q, _ := newTestQueue()

	id := q.Add(Input{
		Title:    "Desfazer?",
		Severity: SeverityInfo,
		Action:   &Action{Label: "Sim", Callback: func() { q.Success("Desfeito") }},
	})

	require.NoError(t, q.Trigger(id))
	require.Equal(t, 1, q.Len())
	assert.Equal(t, "Desfeito", q.List()[0].Title)
}

func TestQueue_LogsLifecycle(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	q, clock := newTestQueue(WithLogger(logrus.NewEntry(logger)))

	id := q.Success("x")
	clock.Advance(5 * time.Second)
	assertGone(t, q, id)
	assert.False(t, q.Remove(id))

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{"Notification added", "Notification expired"}, messages)
}

func TestNotification_MarshalJSON(t *testing.T) {
	q, _ := newTestQueue()
	id := q.Add(Input{
		Title:       "Adicionado",
		Description: "Caneca",
		Severity:    SeveritySuccess,
		Action:      &Action{Label: "Ver carrinho", Callback: func() {}},
	})

	data, err := json.Marshal(q.Get(id))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded["id"])
	assert.Equal(t, "success", decoded["type"])
	assert.Equal(t, float64(5000), decoded["duration"])
	assert.Equal(t, "2024-03-01T12:00:05Z", decoded["expires_at"])
	assert.Equal(t, map[string]interface{}{"label": "Ver carrinho"}, decoded["action"])
}

func TestContext(t *testing.T) {
	q, _ := newTestQueue()

	ctx := NewContext(context.Background(), q)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, q, got)
	assert.Same(t, q, MustFromContext(ctx))

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
	assert.Panics(t, func() { MustFromContext(context.Background()) })
}
