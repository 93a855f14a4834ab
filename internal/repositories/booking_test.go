package repositories_test

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/models"
	"github.com/myrjola/jurassictravel/internal/repositories"
	"github.com/myrjola/jurassictravel/internal/selection"
	"github.com/myrjola/jurassictravel/internal/sqlite"
	"github.com/myrjola/jurassictravel/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB creates a new in-memory database for testing purposes.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	db, err := sqlite.NewDatabase(ctx, ":memory:", testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() {
		cancel()
		require.NoError(t, db.Close())
	})
	return db
}

func newBooking(id int64, name string) models.Booking {
	return models.NewBooking(id, models.BookingDraft{
		TourID: "apex-predator",
		Tour:   "Apex Predator VIP Night Tour",
		Name:   name,
		Phone:  "555-0100",
		Date:   time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		Notes:  "night vision goggles",
		Status: models.BookingStatusConfirmed,
		Price:  1999,
	})
}

func TestBookingRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewBookingRepository(newTestDB(t), testhelpers.NewLogger(io.Discard))

	bookings, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	second := newBooking(1_718_000_000_002, "Ellie Sattler")
	first := newBooking(1_718_000_000_001, "Alan Grant")
	require.NoError(t, repo.Insert(ctx, second))
	require.NoError(t, repo.Insert(ctx, first))

	bookings, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Booking{first, second}, bookings, "ledger is ordered by id")

	got, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	require.Error(t, repo.Insert(ctx, first), "ids are unique")

	require.NoError(t, repo.Delete(ctx, first.ID))
	require.NoError(t, repo.Delete(ctx, 42), "unknown ids are ignored")
	_, err = repo.Get(ctx, first.ID)
	require.True(t, errors.Is(err, sql.ErrNoRows))

	bookings, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Booking{second}, bookings)
}

func TestBookingRepository_rejectsMalformedRows(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewBookingRepository(newTestDB(t), testhelpers.NewLogger(io.Discard))

	b := newBooking(1, "Dennis Nedry")
	b.Date = "June 1st"
	require.Error(t, repo.Insert(ctx, b))

	b = newBooking(2, "Dennis Nedry")
	b.Price = 0
	require.Error(t, repo.Insert(ctx, b))
}

func TestBookingRepository_survivesRestart(t *testing.T) {
	ctx := context.Background()
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewBookingRepository(newTestDB(t), logger)

	store := selection.NewStore(repo, logger)
	booking := store.AddBooking(ctx, models.BookingDraft{
		TourID: "cretaceous-safari",
		Tour:   "Cretaceous Safari",
		Name:   "Tim Murphy",
		Phone:  "555-0111",
		Date:   time.Date(2030, 7, 4, 0, 0, 0, 0, time.UTC),
		Status: models.BookingStatusConfirmed,
		Price:  299,
	})

	restarted := selection.NewStore(repo, logger)
	require.NoError(t, restarted.Load(ctx))
	assert.Equal(t, []models.Booking{booking}, restarted.State().Bookings)

	restarted.RemoveBooking(ctx, booking.ID)
	bookings, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
