// Package booking is the validation boundary in front of the booking ledger.
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/myrjola/jurassictravel/internal/models"
)

const (
	MsgRequiredFields = "Required fields missing. Complete all mandatory fields."
	MsgDateInPast     = "Invalid temporal coordinates. Date cannot be in the past."
	MsgWaiverRequired = "Liability waiver must be accepted for this sector."
)

// ValidationError is shown to the guest verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Form is a booking submission as entered by the guest.
type Form struct {
	Name  string
	Phone string
	// Date is a calendar date formatted as models.DateLayout.
	Date   string
	Notes  string
	Waiver bool
}

// Booker appends bookings to the ledger.
type Booker interface {
	AddBooking(ctx context.Context, draft models.BookingDraft) models.Booking
}

// Validate checks form against tour and returns the draft to store. Checks run in order and the first failure wins.
// A date that cannot be parsed counts as missing.
func Validate(tour models.Tour, form Form, now time.Time) (models.BookingDraft, error) {
	name := strings.TrimSpace(form.Name)
	phone := strings.TrimSpace(form.Phone)
	if name == "" || phone == "" {
		return models.BookingDraft{}, &ValidationError{Message: MsgRequiredFields}
	}
	date, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(form.Date), now.Location())
	if err != nil {
		return models.BookingDraft{}, &ValidationError{Message: MsgRequiredFields}
	}
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(startOfToday) {
		return models.BookingDraft{}, &ValidationError{Message: MsgDateInPast}
	}
	if tour.RequiresWaiver() && !form.Waiver {
		return models.BookingDraft{}, &ValidationError{Message: MsgWaiverRequired}
	}
	return models.BookingDraft{
		TourID: tour.ID,
		Tour:   tour.Name,
		Name:   name,
		Phone:  phone,
		Date:   date,
		Notes:  strings.TrimSpace(form.Notes),
		Status: models.BookingStatusConfirmed,
		Price:  tour.Price,
	}, nil
}

// Submit validates form and appends the booking to the ledger. Validation failures return a *ValidationError and
// leave the ledger untouched.
func Submit(ctx context.Context, ledger Booker, tour models.Tour, form Form, now time.Time) (models.Booking, error) {
	draft, err := Validate(tour, form, now)
	if err != nil {
		return models.Booking{}, err
	}
	return ledger.AddBooking(ctx, draft), nil
}

// WaiverText is the label of the liability waiver checkbox. It is empty for tours without an age restriction.
func WaiverText(tour models.Tour) string {
	if !tour.RequiresWaiver() {
		return ""
	}
	const adult = 18
	age := *tour.AgeRestriction
	if age >= adult {
		return fmt.Sprintf("I confirm all participants are aged %d+ and accept the Life Liability Waiver. "+
			"InGen Corp is NOT responsible for injuries, trauma, or loss of life.", age)
	}
	return fmt.Sprintf("I confirm all participants are aged %d+ and accept the liability waiver.", age)
}
