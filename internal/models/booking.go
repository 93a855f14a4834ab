package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format of booking dates in forms and storage.
const DateLayout = time.DateOnly

// BookingStatus is effectively always BookingStatusConfirmed.
type BookingStatus string

const BookingStatusConfirmed BookingStatus = "Confirmed"

// BookingDraft is a validated submission that has not been assigned an ID yet.
type BookingDraft struct {
	TourID string
	// Tour is the tour name at booking time.
	Tour   string
	Name   string
	Phone  string
	Date   time.Time
	Notes  string
	Status BookingStatus
	// Price is copied from the tour at booking time and never re-derived.
	Price int
}

// Booking is a confirmed reservation in the booking ledger.
type Booking struct {
	ID     int64         `db:"id"`
	TourID string        `db:"tour_id"`
	Tour   string        `db:"tour"`
	Name   string        `db:"name"`
	Phone  string        `db:"phone"`
	Date   string        `db:"date"`
	Notes  string        `db:"notes"`
	Status BookingStatus `db:"status"`
	Price  int           `db:"price"`
}

// NewBooking assigns id to draft.
func NewBooking(id int64, draft BookingDraft) Booking {
	return Booking{
		ID:     id,
		TourID: draft.TourID,
		Tour:   draft.Tour,
		Name:   draft.Name,
		Phone:  draft.Phone,
		Date:   draft.Date.Format(DateLayout),
		Notes:  draft.Notes,
		Status: draft.Status,
		Price:  draft.Price,
	}
}

// Reference is the boarding pass code, e.g. JW-123456.
func (b Booking) Reference() string {
	digits := fmt.Sprintf("%06d", b.ID)
	return "JW-" + digits[len(digits)-6:]
}

// Seat is the boarding pass seat, row A-F and number 1-20.
func (b Booking) Seat() string {
	const rows, seats = 6, 20
	return fmt.Sprintf("%c%d", 'A'+rune(b.ID%rows), b.ID%seats+1)
}

// Gate is the boarding pass gate G1-G8.
func (b Booking) Gate() string {
	const gates = 8
	return fmt.Sprintf("G%d", b.ID%gates+1)
}

// Day parses Date.
func (b Booking) Day() (time.Time, error) {
	return time.Parse(DateLayout, b.Date)
}
