package main

import (
	"net/http"

	"github.com/myrjola/jurassictravel/internal/booking"
	"github.com/myrjola/jurassictravel/internal/conditions"
	"github.com/myrjola/jurassictravel/internal/contexthelpers"
	"github.com/myrjola/jurassictravel/internal/dialogue"
	"github.com/myrjola/jurassictravel/internal/models"
	"github.com/myrjola/jurassictravel/internal/selection"
)

type BaseTemplateData struct {
	CurrentPath string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
	}
}

// zonePanel is the sector detail shown after selecting a map marker.
type zonePanel struct {
	Specimen models.Specimen
	// Tour is the tour behind the booking protocol button, nil when the sector is classified.
	Tour *models.Tour
}

// tourDrawer is the mission briefing and booking form of the active tour.
type tourDrawer struct {
	Tour   models.Tour
	Anchor *models.Specimen
	// Waiver is the liability waiver text, empty for all-ages tours.
	Waiver string
	Error  string
	Form   booking.Form
	// Confirmed is the booking just made on this tour, the drawer shows the boarding pass instead of the form.
	Confirmed *models.Booking
	MinDate   string
}

// testimonialCard is a review on the testimonial wall together with the reviewed tour.
type testimonialCard struct {
	models.Testimonial
	Tour models.Tour
}

// ledgerEntry is a boarding pass of the booking ledger.
type ledgerEntry struct {
	Booking models.Booking
	// DaysLeft counts down to the expedition, it is negative once the date has passed.
	DaysLeft int
}

type homeTemplateData struct {
	BaseTemplateData
	State         selection.State
	Sectors       []models.Specimen
	Zone          *zonePanel
	Tours         []models.Tour
	Drawer        *tourDrawer
	CompareSlots  int
	Encyclopedia  []models.Specimen
	TypeFilter    models.SpecimenType
	SpecimenTypes []models.SpecimenType
	Ledger        []ledgerEntry
	Assistant     dialogue.View
	Testimonials  []testimonialCard
	Conditions    conditions.Report
	// RefreshURL is fetched when the server announces a change.
	RefreshURL string
}

type assistantTemplateData struct {
	BaseTemplateData
	Assistant dialogue.View
}
