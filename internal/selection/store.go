// Package selection is the single source of truth for cross-surface selection and booking state.
//
// Every command is a total function of the current state: the store never rejects a command. Validation happens
// before AddBooking is called, see the booking package.
package selection

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/models"
)

// MaxCompareTours is the capacity of the compare tray.
const MaxCompareTours = 3

// Ledger persists the booking ledger. It is the only part of the state that survives a restart.
type Ledger interface {
	List(ctx context.Context) ([]models.Booking, error)
	Insert(ctx context.Context, booking models.Booking) error
	Delete(ctx context.Context, id int64) error
}

// State is a snapshot of the store. Snapshots are copies and can be kept after the store changes.
type State struct {
	ActiveZone    *models.Specimen
	ActiveTour    *models.Tour
	CompareTours  []models.Tour
	IsCompareOpen bool
	Bookings      []models.Booking
}

// InCompare reports whether the tour is in the compare tray.
func (s State) InCompare(tourID string) bool {
	return slices.ContainsFunc(s.CompareTours, func(t models.Tour) bool { return t.ID == tourID })
}

// CanCompare reports whether the compare panel has enough tours to be opened.
func (s State) CanCompare() bool {
	return len(s.CompareTours) >= 2 //nolint:mnd // a comparison needs two tours
}

// Observer is notified synchronously after every command with the new state.
type Observer func(State)

type Store struct {
	// ledgerMu orders ledger writes the same way as the in-memory changes they mirror.
	ledgerMu  sync.Mutex
	mu        sync.Mutex
	state     State
	lastID    int64
	ledger    Ledger
	logger    *slog.Logger
	now       func() time.Time
	observers map[int]Observer
	nextObsID int
}

type Option func(*Store)

// WithClock replaces time.Now for booking id assignment.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store. A nil ledger keeps the bookings in memory only.
func NewStore(ledger Ledger, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		ledger:    ledger,
		logger:    logger.With(slog.String("source", "selection.Store")),
		now:       time.Now,
		observers: map[int]Observer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory bookings with the persisted ledger. Ephemeral selection state is reset to defaults.
func (s *Store) Load(ctx context.Context) error {
	if s.ledger == nil {
		return nil
	}
	bookings, err := s.ledger.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list bookings")
	}
	s.update(func(st *State) {
		*st = State{Bookings: bookings}
		for _, b := range bookings {
			s.lastID = max(s.lastID, b.ID)
		}
	})
	return nil
}

// Subscribe registers an observer. Call the returned function to unsubscribe.
func (s *Store) Subscribe(o Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = o
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// update applies fn under the lock and notifies observers after releasing it.
func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state.clone()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	for _, o := range observers {
		o(snapshot)
	}
}

// SetActiveZone selects the specimen driving the zone panel. It does not touch the active tour.
func (s *Store) SetActiveZone(specimen *models.Specimen) {
	s.update(func(st *State) {
		st.ActiveZone = clonePtr(specimen)
	})
}

// SetActiveTour opens the tour drawer, replacing any tour that was open.
func (s *Store) SetActiveTour(tour *models.Tour) {
	s.update(func(st *State) {
		st.ActiveTour = clonePtr(tour)
	})
}

func (s *Store) CloseTourDrawer() {
	s.SetActiveTour(nil)
}

// ToggleCompareTour removes the tour from the compare tray if present, otherwise appends it. Adding to a full tray is
// silently ignored.
func (s *Store) ToggleCompareTour(tour models.Tour) {
	s.update(func(st *State) {
		if i := slices.IndexFunc(st.CompareTours, func(t models.Tour) bool { return t.ID == tour.ID }); i >= 0 {
			st.CompareTours = slices.Delete(st.CompareTours, i, i+1)
			return
		}
		if len(st.CompareTours) >= MaxCompareTours {
			return
		}
		st.CompareTours = append(st.CompareTours, tour)
	})
}

// OpenCompare opens the compare panel. Callers must only open it when State.CanCompare holds.
func (s *Store) OpenCompare() {
	s.update(func(st *State) {
		st.IsCompareOpen = true
	})
}

func (s *Store) CloseCompare() {
	s.update(func(st *State) {
		st.IsCompareOpen = false
	})
}

// ClearCompare empties the tray and closes the panel.
func (s *Store) ClearCompare() {
	s.update(func(st *State) {
		st.CompareTours = nil
		st.IsCompareOpen = false
	})
}

// nextID returns the creation timestamp in milliseconds, bumped so that ids are strictly increasing.
func (s *Store) nextID() int64 {
	id := max(s.now().UnixMilli(), s.lastID+1)
	s.lastID = id
	return id
}

// AddBooking assigns an id to the draft and appends it to the ledger. Duplicate bookings are permitted. A failure to
// persist is logged and the booking stays in memory for the rest of the session.
func (s *Store) AddBooking(ctx context.Context, draft models.BookingDraft) models.Booking {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()
	var booking models.Booking
	s.update(func(st *State) {
		booking = models.NewBooking(s.nextID(), draft)
		st.Bookings = append(st.Bookings, booking)
	})

	if s.ledger != nil {
		if err := s.ledger.Insert(ctx, booking); err != nil {
			err = errors.Wrap(err, "persist booking", slog.Int64("booking_id", booking.ID))
			s.logger.LogAttrs(ctx, slog.LevelError, "booking kept in memory only", errors.SlogError(err))
		}
	}
	return booking
}

// RemoveBooking cancels the booking with the id. Unknown ids are ignored.
func (s *Store) RemoveBooking(ctx context.Context, id int64) {
	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()
	removed := false
	s.update(func(st *State) {
		before := len(st.Bookings)
		st.Bookings = slices.DeleteFunc(st.Bookings, func(b models.Booking) bool { return b.ID == id })
		removed = len(st.Bookings) != before
	})

	if removed && s.ledger != nil {
		if err := s.ledger.Delete(ctx, id); err != nil {
			err = errors.Wrap(err, "delete booking", slog.Int64("booking_id", id))
			s.logger.LogAttrs(ctx, slog.LevelError, "booking removed in memory only", errors.SlogError(err))
		}
	}
}

func (st State) clone() State {
	return State{
		ActiveZone:    clonePtr(st.ActiveZone),
		ActiveTour:    clonePtr(st.ActiveTour),
		CompareTours:  slices.Clone(st.CompareTours),
		IsCompareOpen: st.IsCompareOpen,
		Bookings:      slices.Clone(st.Bookings),
	}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// TourFinder is the catalog lookup used by ZoneTour.
type TourFinder interface {
	TourFeaturing(specimenID string) (models.Tour, bool)
}

// ZoneTour returns the tour behind the zone panel's booking protocol button. The second result is false when no
// zone is active or the specimen is not bookable yet.
func (s State) ZoneTour(tours TourFinder) (models.Tour, bool) {
	if s.ActiveZone == nil {
		return models.Tour{}, false
	}
	return tours.TourFeaturing(s.ActiveZone.ID)
}
