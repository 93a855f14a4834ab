package main

import (
	"net/http"
)

// selectZone focuses a map sector.
func (app *application) selectZone(w http.ResponseWriter, r *http.Request) {
	specimen, ok := app.catalog.Specimen(r.PathValue("specimenID"))
	if !ok {
		app.notFound(w, r)
		return
	}
	app.store.SetActiveZone(&specimen)
	app.redirectHome(w, r)
}

func (app *application) clearZone(w http.ResponseWriter, r *http.Request) {
	app.store.SetActiveZone(nil)
	app.redirectHome(w, r)
}

// zoneProtocol opens the tour behind the active sector. Classified sectors have no tour and nothing happens.
func (app *application) zoneProtocol(w http.ResponseWriter, r *http.Request) {
	if tour, ok := app.store.State().ZoneTour(app.catalog); ok {
		app.store.SetActiveTour(&tour)
	}
	app.redirectHome(w, r)
}
