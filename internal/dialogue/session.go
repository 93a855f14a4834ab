// Package dialogue orchestrates conversations with the guest relations assistant.
//
// A Session records the turns of one conversation and simulates the assistant's thinking time with scheduled
// callbacks. Responses that request a selection change apply it to the store shortly after the reply appears. A
// closed session stops its pending callbacks and never touches its history or the store again.
package dialogue

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/myrjola/jurassictravel/internal/intent"
	"github.com/myrjola/jurassictravel/internal/logging"
	"github.com/myrjola/jurassictravel/internal/models"
	"github.com/myrjola/jurassictravel/internal/random"
)

const (
	greetingDelay   = 600 * time.Millisecond
	minThinkingTime = 400 * time.Millisecond
	thinkingJitter  = 800 // milliseconds
	effectDelay     = 500 * time.Millisecond
)

// Resolver answers guest messages.
type Resolver interface {
	Resolve(text string) intent.Response
	Greeting() string
}

// View is a snapshot of a Session for rendering.
type View struct {
	ID          string
	IsOpen      bool
	IsTyping    bool
	Turns       []models.Turn
	Suggestions []string
}

type Session struct {
	id       string
	resolver Resolver
	store    intent.Selector
	logger   *slog.Logger
	sched    Scheduler
	rng      random.Source
	now      func() time.Time
	onChange func(id string)

	mu          sync.Mutex
	turns       []models.Turn
	suggestions []string
	// pending counts scheduled replies, the assistant is typing while it is positive.
	pending    int
	isOpen     bool
	greeted    bool
	closed     bool
	lastActive time.Time
	timers     map[int]Timer
	nextTimer  int
}

type Option func(*Session)

func WithScheduler(s Scheduler) Option {
	return func(session *Session) {
		session.sched = s
	}
}

func WithRandom(src random.Source) Option {
	return func(session *Session) {
		session.rng = src
	}
}

func WithClock(now func() time.Time) Option {
	return func(session *Session) {
		session.now = now
	}
}

// WithOnChange registers a callback invoked after every change to the session. It runs without the session lock
// held and may call Snapshot.
func WithOnChange(f func(id string)) Option {
	return func(session *Session) {
		session.onChange = f
	}
}

// NewSession creates a closed-panel session whose responses drive store.
func NewSession(id string, resolver Resolver, store intent.Selector, logger *slog.Logger, opts ...Option) *Session {
	s := &Session{
		id:       id,
		resolver: resolver,
		store:    store,
		logger:   logger,
		sched:    WallClock,
		rng:      random.NewSource(),
		now:      time.Now,
		onChange: func(string) {},
		timers:   map[int]Timer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.suggestions = slices.Clone(intent.QuickReplies[:4])
	s.lastActive = s.now()
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) logCtx() context.Context {
	return logging.WithAttrs(context.Background(), slog.String("chat_id", s.id))
}

// Open shows the assistant panel. The first open greets the guest after a short delay.
func (s *Session) Open() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.lastActive = s.now()
	s.isOpen = true
	if !s.greeted && len(s.turns) == 0 {
		s.greeted = true
		s.pending++
		s.scheduleLocked(greetingDelay, s.greet)
	}
	s.mu.Unlock()
	s.onChange(s.id)
}

// Hide hides the assistant panel. Pending replies still arrive.
func (s *Session) Hide() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.lastActive = s.now()
	s.isOpen = false
	s.mu.Unlock()
	s.onChange(s.id)
}

// SendUserMessage records the guest's message and schedules the assistant's reply. Blank messages are rejected.
func (s *Session) SendUserMessage(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	now := s.now()
	s.lastActive = now
	s.turns = append(s.turns, models.Turn{Role: models.RoleUser, Text: text, Timestamp: now})
	s.suggestions = nil
	s.pending++
	delay := minThinkingTime + time.Duration(s.rng.IntN(thinkingJitter))*time.Millisecond
	s.scheduleLocked(delay, func() { s.reply(text) })
	s.mu.Unlock()

	s.onChange(s.id)
	return true
}

// Close cancels pending replies and effects. Further calls on the session are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.isOpen = false
	stopped := 0
	for id, t := range s.timers {
		if t.Stop() {
			stopped++
		}
		delete(s.timers, id)
	}
	s.pending = 0
	s.mu.Unlock()

	s.logger.LogAttrs(s.logCtx(), slog.LevelDebug, "dialogue closed", slog.Int("cancelled_callbacks", stopped))
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// LastActive is the time of the latest guest interaction.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:          s.id,
		IsOpen:      s.isOpen,
		IsTyping:    s.pending > 0,
		Turns:       slices.Clone(s.turns),
		Suggestions: slices.Clone(s.suggestions),
	}
}

// scheduleLocked registers f to run after d unless the session is closed first. Callers hold s.mu.
func (s *Session) scheduleLocked(d time.Duration, f func()) {
	id := s.nextTimer
	s.nextTimer++
	s.timers[id] = s.sched.AfterFunc(d, func() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		delete(s.timers, id)
		s.mu.Unlock()
		f()
	})
}

func (s *Session) greet() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.turns = append(s.turns, models.Turn{Role: models.RoleAssistant, Text: s.resolver.Greeting(), Timestamp: s.now()})
	s.pending--
	s.mu.Unlock()
	s.onChange(s.id)
}

func (s *Session) reply(text string) {
	resp := s.resolver.Resolve(text)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if resp.Effect != nil {
		effect := *resp.Effect
		s.scheduleLocked(effectDelay, func() { s.apply(effect) })
	}
	s.turns = append(s.turns, models.Turn{Role: models.RoleAssistant, Text: resp.Text, Timestamp: s.now()})
	s.suggestions = slices.Clone(resp.Suggestions)
	s.pending--
	s.mu.Unlock()

	s.logger.LogAttrs(s.logCtx(), slog.LevelInfo, "assistant replied",
		slog.String("intent", resp.Intent), slog.Bool("effect", resp.Effect != nil))
	s.onChange(s.id)
}

// apply holds the session lock while driving the store so that Close cannot interleave. Store observers must not
// call back into the session.
func (s *Session) apply(effect intent.Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	effect.Apply(s.store)
}
