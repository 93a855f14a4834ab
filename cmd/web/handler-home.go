package main

import (
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/myrjola/jurassictravel/internal/booking"
	"github.com/myrjola/jurassictravel/internal/conditions"
	"github.com/myrjola/jurassictravel/internal/models"
)

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	// The event stream identifies the visitor's conversation by the chat id it finds in the session when it
	// connects, so the id has to exist before the page opens the stream.
	app.chatSession(r)
	name := "base"
	if app.htmx.NewHandler(w, r).IsHxRequest() {
		name = "terminal"
	}
	app.renderHome(w, r, name)
}

// renderHome renders the terminal from the current selection state and the visitor's flashes.
func (app *application) renderHome(w http.ResponseWriter, r *http.Request, name string) {
	var (
		ctx   = r.Context()
		state = app.store.State()
		now   = app.now()
	)

	typeFilter := models.SpecimenType(r.URL.Query().Get("type"))
	if !slices.Contains(models.SpecimenTypes, typeFilter) {
		typeFilter = ""
	}
	encyclopedia := app.catalog.AllSpecimens()
	if typeFilter != "" {
		encyclopedia = app.catalog.SpecimensByType(typeFilter)
	}
	refreshURL := "/"
	if typeFilter != "" {
		refreshURL += "?" + url.Values{"type": {string(typeFilter)}}.Encode()
	}

	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		State:            state,
		Sectors:          app.catalog.AllSpecimens(),
		Tours:            app.catalog.AllTours(),
		CompareSlots:     max(0, 3-len(state.CompareTours)), //nolint:mnd // tray capacity.
		Encyclopedia:     encyclopedia,
		TypeFilter:       typeFilter,
		SpecimenTypes:    models.SpecimenTypes,
		Assistant:        app.assistantView(r),
		Testimonials:     app.testimonials(),
		Conditions:       conditions.New(now, app.rng),
		RefreshURL:       refreshURL,
	}

	data.Ledger = newLedger(state.Bookings, now)

	if state.ActiveZone != nil {
		zone := zonePanel{Specimen: *state.ActiveZone}
		if tour, ok := state.ZoneTour(app.catalog); ok {
			zone.Tour = &tour
		}
		data.Zone = &zone
	}

	if state.ActiveTour != nil {
		tour := *state.ActiveTour
		drawer := tourDrawer{
			Tour:    tour,
			Waiver:  booking.WaiverText(tour),
			Error:   app.sessionManager.PopString(ctx, bookingErrorSessionKey),
			MinDate: now.Format(models.DateLayout),
		}
		if anchor, ok := app.catalog.Specimen(tour.AnchorDinoID); ok {
			drawer.Anchor = &anchor
		}
		if form, ok := app.sessionManager.Pop(ctx, bookingFormSessionKey).(booking.Form); ok {
			drawer.Form = form
		}
		if id, ok := app.sessionManager.Pop(ctx, confirmedBookingSessionKey).(int64); ok {
			for _, b := range state.Bookings {
				if b.ID == id && b.TourID == tour.ID {
					drawer.Confirmed = &b
				}
			}
		}
		data.Drawer = &drawer
	}

	app.render(w, r, http.StatusOK, "home", name, data)
}

// newLedger derives the boarding passes of bookings. Dates are calendar days so the countdown compares days in
// now's location.
func newLedger(bookings []models.Booking, now time.Time) []ledgerEntry {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	entries := make([]ledgerEntry, 0, len(bookings))
	for _, b := range bookings {
		entry := ledgerEntry{Booking: b}
		if day, err := b.Day(); err == nil {
			entry.DaysLeft = int(day.Sub(today).Hours() / 24) //nolint:mnd // hours per day.
		}
		entries = append(entries, entry)
	}
	return entries
}

func (app *application) testimonials() []testimonialCard {
	testimonials := app.catalog.Testimonials()
	cards := make([]testimonialCard, 0, len(testimonials))
	for _, t := range testimonials {
		tour, _ := app.catalog.Tour(t.TourID)
		cards = append(cards, testimonialCard{Testimonial: t, Tour: tour})
	}
	return cards
}

// islandConditions renders the conditions widget on its own. The widget polls it every minute.
func (app *application) islandConditions(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "home", "conditions", conditions.New(app.now(), app.rng))
}
