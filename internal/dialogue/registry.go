package dialogue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Factory creates the session for a new chat id.
type Factory func(id string) *Session

// Registry tracks the assistant sessions of all visitors.
type Registry struct {
	newSession Factory
	idleTTL    time.Duration
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates a Registry that closes sessions idle for longer than idleTTL once Run is started.
func NewRegistry(newSession Factory, idleTTL time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		newSession: newSession,
		idleTTL:    idleTTL,
		logger:     logger.With(slog.String("source", "dialogue.Registry")),
		now:        time.Now,
		sessions:   map[string]*Session{},
	}
}

// Get returns the live session with the id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// GetOrCreate returns the live session with the id or starts a new one under a fresh id. Unknown ids are never
// adopted so that visitors cannot pick their chat ids.
func (r *Registry) GetOrCreate(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	id = uuid.NewString()
	s := r.newSession(id)
	r.sessions[id] = s
	return s
}

// Remove closes and forgets the session.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes the sessions idle for longer than the TTL and returns how many were evicted.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL)
	var idle []*Session
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.LastActive().Before(cutoff) {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	return len(idle)
}

// Run sweeps idle sessions periodically until ctx is cancelled and then closes every session.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(max(r.idleTTL/2, time.Second)) //nolint:mnd // sweep twice per TTL
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.LogAttrs(ctx, slog.LevelDebug, "evicted idle dialogues", slog.Int("count", n))
			}
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = map[string]*Session{}
	r.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}
