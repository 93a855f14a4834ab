package main

import (
	"encoding/gob"

	"github.com/myrjola/jurassictravel/internal/booking"
)

func init() {
	gob.Register(booking.Form{})
}

const (
	// chatIDSessionKey is the id of the visitor's assistant conversation in the dialogue registry.
	chatIDSessionKey = "chatID"
	// bookingErrorSessionKey flashes a booking validation message to the next page view.
	bookingErrorSessionKey = "bookingError"
	// bookingFormSessionKey flashes the rejected booking form so that the guest does not need to retype it.
	bookingFormSessionKey = "bookingForm"
	// confirmedBookingSessionKey flashes the id of the booking just made so the drawer can show the boarding pass.
	confirmedBookingSessionKey = "confirmedBooking"
)
