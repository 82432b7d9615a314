package reminder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/notelog/backend/internal/localstore"
	"github.com/notelog/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu        sync.Mutex
	permitted bool
	fail      error
	sent      []Notification
}

func (n *recordingNotifier) Permitted() bool { return n.permitted }

func (n *recordingNotifier) Notify(ctx context.Context, note Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.sent = append(n.sent, note)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func todoAt(title string, at time.Time) model.Todo {
	return model.Todo{
		Meta:         model.Meta{ID: uuid.New()},
		Title:        title,
		ReminderDate: &at,
	}
}

func TestPoller_FiresOnceWithinWindow(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: base}

	board := NewBoard()
	board.Replace([]model.Todo{todoAt("stretch", base.Add(2*time.Second))})

	notifier := &recordingNotifier{permitted: true}
	p := NewPoller(board, notifier, NewMemoryDedup(), discardLogger(), WithClock(clock.Now))

	for _, offset := range []time.Duration{time.Second, 2 * time.Second, 3 * time.Second, 4 * time.Second} {
		clock.Set(base.Add(offset))
		_, err := p.Tick(ctx)
		require.NoError(t, err)
	}

	require.Equal(t, 1, notifier.count())
	assert.Equal(t, NotificationTitle, notifier.sent[0].Title)
	assert.Equal(t, "Reminder: stretch", notifier.sent[0].Body)
}

func TestPoller_RendersUsername(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	board := NewBoard()
	board.Replace([]model.Todo{todoAt("stretch", now.Add(-time.Second))})

	notifier := &recordingNotifier{permitted: true}
	p := NewPoller(board, notifier, NewMemoryDedup(), discardLogger(),
		WithClock(func() time.Time { return now }),
		WithBody("{{user.username}}, time to {{todo.title}}"),
		WithUsername("alice"),
	)

	fired, err := p.Tick(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, fired)
	assert.Equal(t, "alice, time to stretch", notifier.sent[0].Body)
	assert.Equal(t, "alice", notifier.sent[0].Username)
}

func TestPoller_PermissionDenied(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	board := NewBoard()
	board.Replace([]model.Todo{todoAt("stretch", base)})

	dedup := NewMemoryDedup()
	notifier := &recordingNotifier{permitted: false}
	p := NewPoller(board, notifier, dedup, discardLogger(), WithClock(func() time.Time { return base.Add(time.Second) }))

	fired, err := p.Tick(ctx)
	require.NoError(t, err)
	assert.Zero(t, fired)
	assert.Zero(t, notifier.count())

	seen, err := dedup.Seen(ctx, Key(board.Snapshot()[0]))
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestPoller_SkipsCompletedFutureAndExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	done := todoAt("done", now.Add(-time.Second))
	done.IsCompleted = true
	future := todoAt("future", now.Add(time.Second))
	expired := todoAt("expired", now.Add(-DefaultWindow-time.Second))
	edge := todoAt("edge", now.Add(-DefaultWindow))
	noReminder := model.Todo{Meta: model.Meta{ID: uuid.New()}, Title: "none"}

	board := NewBoard()
	board.Replace([]model.Todo{done, future, expired, edge, noReminder})

	notifier := &recordingNotifier{permitted: true}
	p := NewPoller(board, notifier, NewMemoryDedup(), discardLogger(), WithClock(func() time.Time { return now }))

	fired, err := p.Tick(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, fired)
	assert.Equal(t, "edge", notifier.sent[0].Todo.Title)
}

func TestPoller_ChangedReminderFiresAgain(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: base}

	todo := todoAt("water", base)
	board := NewBoard()
	board.Replace([]model.Todo{todo})

	notifier := &recordingNotifier{permitted: true}
	p := NewPoller(board, notifier, NewMemoryDedup(), discardLogger(), WithClock(clock.Now))

	_, err := p.Tick(ctx)
	require.NoError(t, err)

	later := base.Add(time.Minute)
	todo.ReminderDate = &later
	board.Replace([]model.Todo{todo})
	clock.Set(later)

	_, err = p.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, notifier.count())
}

func TestPoller_FailedDeliveryRetries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	board := NewBoard()
	board.Replace([]model.Todo{todoAt("retry", now)})

	notifier := &recordingNotifier{permitted: true, fail: errors.New("offline")}
	p := NewPoller(board, notifier, NewMemoryDedup(), discardLogger(), WithClock(func() time.Time { return now }))

	fired, err := p.Tick(ctx)
	require.NoError(t, err)
	assert.Zero(t, fired)

	notifier.fail = nil
	fired, err = p.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fired)
}

func TestPoller_PersistedKeysSurviveRestart(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	store, err := localstore.Open(ctx, localstore.MemoryDSN)
	require.NoError(t, err)
	defer store.Close()

	board := NewBoard()
	board.Replace([]model.Todo{todoAt("persist", now)})

	first := &recordingNotifier{permitted: true}
	_, err = NewPoller(board, first, store, discardLogger(), WithClock(func() time.Time { return now })).Tick(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, first.count())

	second := &recordingNotifier{permitted: true}
	_, err = NewPoller(board, second, store, discardLogger(), WithClock(func() time.Time { return now.Add(time.Second) })).Tick(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.count())
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	board := NewBoard()
	board.Replace([]model.Todo{todoAt("now", time.Now())})

	notifier := &recordingNotifier{permitted: true}
	p := NewPoller(board, notifier, NewMemoryDedup(), discardLogger(), WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool { return notifier.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancel")
	}
	assert.Equal(t, 1, notifier.count())
}

func TestKey(t *testing.T) {
	at := time.UnixMilli(1700000000123).UTC()
	todo := todoAt("k", at)
	assert.Equal(t, todo.ID.String()+":1700000000123", Key(todo))
}
