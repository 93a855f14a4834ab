package dialogue

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/jurassictravel/internal/intent"
	"github.com/myrjola/jurassictravel/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopResolver struct{}

func (nopResolver) Resolve(string) intent.Response { return intent.Response{Text: "ok"} }
func (nopResolver) Greeting() string { return "hello" }

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

type neverScheduler struct{}

func (neverScheduler) AfterFunc(time.Duration, func()) Timer { return idleTimer{} }

func newTestRegistry(t *testing.T, now *time.Time) *Registry {
	t.Helper()
	logger := testhelpers.NewLogger(io.Discard)
	clock := func() time.Time { return *now }
	r := NewRegistry(func(id string) *Session {
		return NewSession(id, nopResolver{}, nil, logger, WithScheduler(neverScheduler{}), WithClock(clock))
	}, time.Hour, logger)
	r.now = clock
	return r
}

func TestRegistry_GetOrCreate(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRegistry(t, &now)

	s := r.GetOrCreate("")
	_, err := uuid.Parse(s.ID())
	require.NoError(t, err, "chat ids are uuids")
	assert.Same(t, s, r.GetOrCreate(s.ID()))

	other := r.GetOrCreate("attacker-chosen-id")
	assert.NotEqual(t, "attacker-chosen-id", other.ID())
	assert.Equal(t, 2, r.Len())

	got, ok := r.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	r.Remove(s.ID())
	assert.True(t, s.Closed())
	_, ok = r.Get(s.ID())
	assert.False(t, ok)
}

func TestRegistry_Sweep(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRegistry(t, &now)

	stale := r.GetOrCreate("")
	now = now.Add(45 * time.Minute)
	active := r.GetOrCreate("")
	now = now.Add(30 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	assert.True(t, stale.Closed())
	assert.False(t, active.Closed())

	active.SendUserMessage("still here")
	now = now.Add(59 * time.Minute)
	assert.Equal(t, 0, r.Sweep())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Run_closesOnShutdown(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	r := newTestRegistry(t, &now)
	s := r.GetOrCreate("")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	assert.True(t, s.Closed())
	assert.Equal(t, 0, r.Len())
}
