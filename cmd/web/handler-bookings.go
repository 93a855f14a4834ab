package main

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/myrjola/jurassictravel/internal/booking"
	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/logging"
)

// submitBooking validates the booking form of a tour and adds the booking to the ledger.
func (app *application) submitBooking(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	tour, ok := app.catalog.Tour(r.PostForm.Get("tour_id"))
	if !ok {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	// Bookings are only taken for the tour open in the drawer.
	if active := app.store.State().ActiveTour; active == nil || active.ID != tour.ID {
		app.clientError(w, r, http.StatusConflict)
		return
	}
	ctx := logging.WithAttrs(r.Context(), slog.String("tour_id", tour.ID))
	form := booking.Form{
		Name:   r.PostForm.Get("name"),
		Phone:  r.PostForm.Get("phone"),
		Date:   r.PostForm.Get("date"),
		Notes:  r.PostForm.Get("notes"),
		Waiver: r.PostForm.Get("waiver") != "",
	}

	b, err := booking.Submit(ctx, app.store, tour, form, app.now())
	var validationErr *booking.ValidationError
	switch {
	case errors.As(err, &validationErr):
		app.logger.LogAttrs(ctx, slog.LevelDebug, "booking rejected", slog.String("reason", validationErr.Message))
		app.sessionManager.Put(ctx, bookingErrorSessionKey, validationErr.Message)
		app.sessionManager.Put(ctx, bookingFormSessionKey, form)
	case err != nil:
		app.serverError(w, r, errors.Wrap(err, "submit booking"))
		return
	default:
		app.logger.LogAttrs(ctx, slog.LevelInfo, "booking confirmed",
			slog.Int64("booking_id", b.ID), slog.String("reference", b.Reference()))
		app.sessionManager.Put(ctx, confirmedBookingSessionKey, b.ID)
	}
	app.redirectHome(w, r)
}

// cancelBooking removes a booking from the ledger. Unknown bookings are ignored.
func (app *application) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("bookingID"), 10, 64)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	app.store.RemoveBooking(r.Context(), id)
	app.redirectHome(w, r)
}
