package main

import (
	"net/http"
)

// toggleCompare adds the tour to the comparison tray or removes it. A full tray ignores new tours.
func (app *application) toggleCompare(w http.ResponseWriter, r *http.Request) {
	tour, ok := app.catalog.Tour(r.PathValue("tourID"))
	if !ok {
		app.notFound(w, r)
		return
	}
	app.store.ToggleCompareTour(tour)
	app.redirectHome(w, r)
}

// openCompare opens the comparison panel once the tray holds at least two tours.
func (app *application) openCompare(w http.ResponseWriter, r *http.Request) {
	if app.store.State().CanCompare() {
		app.store.OpenCompare()
	}
	app.redirectHome(w, r)
}

func (app *application) closeCompare(w http.ResponseWriter, r *http.Request) {
	app.store.CloseCompare()
	app.redirectHome(w, r)
}

func (app *application) clearCompare(w http.ResponseWriter, r *http.Request) {
	app.store.ClearCompare()
	app.redirectHome(w, r)
}
