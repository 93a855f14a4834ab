package repositories

import (
	"context"
	"log/slog"

	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/models"
	"github.com/myrjola/jurassictravel/internal/sqlite"
)

// BookingRepository persists the booking ledger.
type BookingRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewBookingRepository(db *sqlite.Database, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{
		db:     db,
		logger: logger.With(slog.String("source", "BookingRepository")),
	}
}

// List returns the ledger in creation order.
func (r *BookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	stmt := `SELECT id, tour_id, tour, name, phone, date, notes, status, price FROM bookings ORDER BY id`
	if err := r.db.ReadOnly.SelectContext(ctx, &bookings, stmt); err != nil {
		return nil, errors.Wrap(err, "select bookings")
	}
	return bookings, nil
}

func (r *BookingRepository) Get(ctx context.Context, id int64) (models.Booking, error) {
	var booking models.Booking
	stmt := `SELECT id, tour_id, tour, name, phone, date, notes, status, price FROM bookings WHERE id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &booking, stmt, id); err != nil {
		return models.Booking{}, errors.Wrap(err, "get booking", slog.Int64("booking_id", id))
	}
	return booking, nil
}

func (r *BookingRepository) Insert(ctx context.Context, booking models.Booking) error {
	stmt := `INSERT INTO bookings (id, tour_id, tour, name, phone, date, notes, status, price)
VALUES (:id, :tour_id, :tour, :name, :phone, :date, :notes, :status, :price)`
	if _, err := r.db.ReadWrite.NamedExecContext(ctx, stmt, booking); err != nil {
		return errors.Wrap(err, "insert booking", slog.Int64("booking_id", booking.ID))
	}
	return nil
}

// Delete removes the booking. Deleting an unknown id is not an error.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id); err != nil {
		return errors.Wrap(err, "delete booking", slog.Int64("booking_id", id))
	}
	return nil
}
