package selection_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/myrjola/jurassictravel/internal/catalog"
	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/models"
	"github.com/myrjola/jurassictravel/internal/selection"
	"github.com/myrjola/jurassictravel/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	mu        sync.Mutex
	bookings  []models.Booking
	failWrite bool
}

var errLedger = errors.NewSentinel("ledger unavailable")

func (f *fakeLedger) List(_ context.Context) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Booking(nil), f.bookings...), nil
}

func (f *fakeLedger) Insert(_ context.Context, booking models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errLedger
	}
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeLedger) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errLedger
	}
	for i, b := range f.bookings {
		if b.ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			break
		}
	}
	return nil
}

func newTestStore(t *testing.T, ledger selection.Ledger, opts ...selection.Option) *selection.Store {
	t.Helper()
	return selection.NewStore(ledger, testhelpers.NewLogger(testhelpers.NewWriter(t)), opts...)
}

func loadTours(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)
	return c
}

func mustTour(t *testing.T, c *catalog.Catalog, id string) models.Tour {
	t.Helper()
	tour, ok := c.Tour(id)
	require.True(t, ok, "tour %s", id)
	return tour
}

func draftFor(tour models.Tour, name string) models.BookingDraft {
	return models.BookingDraft{
		TourID: tour.ID,
		Tour:   tour.Name,
		Name:   name,
		Phone:  "555-0100",
		Date:   time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		Status: models.BookingStatusConfirmed,
		Price:  tour.Price,
	}
}

func TestStore_ToggleCompareTour(t *testing.T) {
	c := loadTours(t)
	tours := c.AllTours()

	t.Run("toggle twice restores the tray", func(t *testing.T) {
		store := newTestStore(t, nil)
		store.ToggleCompareTour(tours[0])
		before := store.State().CompareTours
		store.ToggleCompareTour(tours[1])
		store.ToggleCompareTour(tours[1])
		assert.Equal(t, before, store.State().CompareTours)
	})

	t.Run("tray never exceeds capacity", func(t *testing.T) {
		store := newTestStore(t, nil)
		for _, tour := range tours {
			store.ToggleCompareTour(tour)
			require.LessOrEqual(t, len(store.State().CompareTours), selection.MaxCompareTours)
		}
		state := store.State()
		require.Len(t, state.CompareTours, selection.MaxCompareTours)
		assert.Equal(t, tours[0].ID, state.CompareTours[0].ID)
		assert.Equal(t, tours[2].ID, state.CompareTours[2].ID)
		assert.False(t, state.InCompare(tours[3].ID))
	})

	t.Run("removing from a full tray frees a slot", func(t *testing.T) {
		store := newTestStore(t, nil)
		for _, tour := range tours[:3] {
			store.ToggleCompareTour(tour)
		}
		store.ToggleCompareTour(tours[1])
		store.ToggleCompareTour(tours[4])
		ids := []string{}
		for _, tour := range store.State().CompareTours {
			ids = append(ids, tour.ID)
		}
		assert.Equal(t, []string{tours[0].ID, tours[2].ID, tours[4].ID}, ids)
	})
}

func TestStore_compareLifecycle(t *testing.T) {
	c := loadTours(t)
	store := newTestStore(t, nil)

	store.ToggleCompareTour(mustTour(t, c, "cretaceous-safari"))
	require.False(t, store.State().CanCompare())
	store.ToggleCompareTour(mustTour(t, c, "apex-predator"))
	require.True(t, store.State().CanCompare())

	store.OpenCompare()
	require.True(t, store.State().IsCompareOpen)
	store.CloseCompare()
	require.False(t, store.State().IsCompareOpen)
	require.Len(t, store.State().CompareTours, 2)

	store.OpenCompare()
	store.ClearCompare()
	state := store.State()
	assert.Empty(t, state.CompareTours)
	assert.False(t, state.IsCompareOpen)
}

func TestStore_activeSelection(t *testing.T) {
	c := loadTours(t)
	store := newTestStore(t, nil)
	apex := mustTour(t, c, "apex-predator")
	safari := mustTour(t, c, "cretaceous-safari")
	rex, ok := c.Specimen("tyrannosaurus")
	require.True(t, ok)

	store.SetActiveZone(&rex)
	store.SetActiveTour(&apex)
	store.SetActiveTour(&safari)
	state := store.State()
	require.NotNil(t, state.ActiveTour)
	assert.Equal(t, safari.ID, state.ActiveTour.ID, "tours replace each other")
	require.NotNil(t, state.ActiveZone)
	assert.Equal(t, "tyrannosaurus", state.ActiveZone.ID, "opening a tour keeps the zone")

	store.CloseTourDrawer()
	assert.Nil(t, store.State().ActiveTour)

	store.SetActiveTour(&apex)
	store.SetActiveTour(nil)
	assert.Nil(t, store.State().ActiveTour)

	store.SetActiveZone(nil)
	assert.Nil(t, store.State().ActiveZone)
}

func TestStore_snapshotsAreCopies(t *testing.T) {
	c := loadTours(t)
	store := newTestStore(t, nil)
	apex := mustTour(t, c, "apex-predator")
	store.SetActiveTour(&apex)
	store.ToggleCompareTour(apex)

	state := store.State()
	state.ActiveTour.Name = "mutated"
	state.CompareTours[0].Name = "mutated"
	apex.Name = "mutated"

	fresh := store.State()
	assert.Equal(t, "Apex Predator VIP Night Tour", fresh.ActiveTour.Name)
	assert.Equal(t, "Apex Predator VIP Night Tour", fresh.CompareTours[0].Name)
}

func TestStore_bookings(t *testing.T) {
	ctx := context.Background()
	c := loadTours(t)
	apex := mustTour(t, c, "apex-predator")
	now := time.UnixMilli(1_718_000_000_000)
	ledger := &fakeLedger{}
	store := newTestStore(t, ledger, selection.WithClock(func() time.Time { return now }))

	first := store.AddBooking(ctx, draftFor(apex, "Alan Grant"))
	second := store.AddBooking(ctx, draftFor(apex, "Alan Grant"))
	third := store.AddBooking(ctx, draftFor(apex, "Ellie Sattler"))

	assert.Equal(t, now.UnixMilli(), first.ID)
	assert.Greater(t, second.ID, first.ID, "ids stay unique within the same millisecond")
	assert.Greater(t, third.ID, second.ID)
	assert.Equal(t, 1999, first.Price)
	assert.Equal(t, "2030-06-01", first.Date)
	require.Len(t, store.State().Bookings, 3, "duplicates are permitted")
	require.Len(t, ledger.bookings, 3)

	store.RemoveBooking(ctx, second.ID)
	assert.Equal(t, []models.Booking{first, third}, store.State().Bookings)
	assert.Equal(t, []models.Booking{first, third}, ledger.bookings)

	store.RemoveBooking(ctx, 42)
	assert.Len(t, store.State().Bookings, 2)
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()
	c := loadTours(t)
	apex := mustTour(t, c, "apex-predator")
	ledger := &fakeLedger{bookings: []models.Booking{
		models.NewBooking(5000, draftFor(apex, "Ian Malcolm")),
	}}
	store := newTestStore(t, ledger, selection.WithClock(func() time.Time { return time.UnixMilli(10) }))
	store.SetActiveTour(&apex)

	require.NoError(t, store.Load(ctx))
	state := store.State()
	assert.Nil(t, state.ActiveTour)
	require.Len(t, state.Bookings, 1)

	booking := store.AddBooking(ctx, draftFor(apex, "John Hammond"))
	assert.Equal(t, int64(5001), booking.ID, "ids continue after the persisted ledger")
}

func TestStore_persistenceFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	c := loadTours(t)
	apex := mustTour(t, c, "apex-predator")
	var logs bytes.Buffer
	ledger := &fakeLedger{failWrite: true}
	store := selection.NewStore(ledger, testhelpers.NewLogger(&logs))

	booking := store.AddBooking(ctx, draftFor(apex, "Dennis Nedry"))
	require.Len(t, store.State().Bookings, 1)
	assert.Contains(t, logs.String(), "booking kept in memory only")

	store.RemoveBooking(ctx, booking.ID)
	assert.Empty(t, store.State().Bookings)
	assert.Contains(t, logs.String(), "booking removed in memory only")
}

func TestStore_Subscribe(t *testing.T) {
	c := loadTours(t)
	store := newTestStore(t, nil)
	apex := mustTour(t, c, "apex-predator")

	var seen []selection.State
	unsubscribe := store.Subscribe(func(s selection.State) {
		seen = append(seen, s)
	})
	store.ToggleCompareTour(apex)
	store.SetActiveTour(&apex)
	require.Len(t, seen, 2)
	assert.Len(t, seen[0].CompareTours, 1)
	assert.Nil(t, seen[0].ActiveTour)
	assert.NotNil(t, seen[1].ActiveTour)

	unsubscribe()
	store.CloseTourDrawer()
	assert.Len(t, seen, 2)
}

func TestStore_observerCanReadState(t *testing.T) {
	store := newTestStore(t, nil)
	done := make(chan struct{})
	store.Subscribe(func(selection.State) {
		// Observers run outside the lock, so reading back must not deadlock.
		_ = store.State()
		close(done)
	})
	store.OpenCompare()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("observer deadlocked")
	}
}

func TestState_ZoneTour(t *testing.T) {
	c := loadTours(t)
	store := newTestStore(t, nil)

	_, ok := store.State().ZoneTour(c)
	assert.False(t, ok, "no zone selected")

	tests := []struct {
		specimenID string
		wantTour   string
	}{
		{specimenID: "tyrannosaurus", wantTour: "apex-predator"},
		{specimenID: "argentinosaurus", wantTour: "cretaceous-safari"},
	}
	for _, tt := range tests {
		t.Run(tt.specimenID, func(t *testing.T) {
			specimen, found := c.Specimen(tt.specimenID)
			require.True(t, found)
			store.SetActiveZone(&specimen)
			tour, ok := store.State().ZoneTour(c)
			require.True(t, ok)
			assert.Equal(t, tt.wantTour, tour.ID)
		})
	}
}

// slowLedger holds inserts until released and records the order of writes.
type slowLedger struct {
	fakeLedger
	inserting chan struct{}
	release   chan struct{}
	opsMu     sync.Mutex
	ops       []string
}

func (l *slowLedger) Insert(ctx context.Context, booking models.Booking) error {
	close(l.inserting)
	<-l.release
	l.record("insert")
	return l.fakeLedger.Insert(ctx, booking)
}

func (l *slowLedger) Delete(ctx context.Context, id int64) error {
	l.record("delete")
	return l.fakeLedger.Delete(ctx, id)
}

func (l *slowLedger) record(op string) {
	l.opsMu.Lock()
	defer l.opsMu.Unlock()
	l.ops = append(l.ops, op)
}

func TestStore_ledgerWritesFollowMemoryOrder(t *testing.T) {
	ctx := context.Background()
	ledger := &slowLedger{inserting: make(chan struct{}), release: make(chan struct{})}
	store := newTestStore(t, ledger)
	tour := mustTour(t, loadTours(t), "cretaceous-safari")

	added := make(chan struct{})
	go func() {
		defer close(added)
		store.AddBooking(ctx, draftFor(tour, "Ellie Sattler"))
	}()
	<-ledger.inserting
	bookings := store.State().Bookings
	require.Len(t, bookings, 1)

	removed := make(chan struct{})
	go func() {
		defer close(removed)
		store.RemoveBooking(ctx, bookings[0].ID)
	}()
	select {
	case <-removed:
		t.Fatal("cancellation persisted before the booking it cancels")
	case <-time.After(50 * time.Millisecond):
	}

	close(ledger.release)
	<-added
	<-removed
	assert.Equal(t, []string{"insert", "delete"}, ledger.ops)
	list, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "a cancelled booking does not come back after restart")
}
