package main

import (
	"net/http"
)

func (app *application) openTour(w http.ResponseWriter, r *http.Request) {
	tour, ok := app.catalog.Tour(r.PathValue("tourID"))
	if !ok {
		app.notFound(w, r)
		return
	}
	app.store.SetActiveTour(&tour)
	app.redirectHome(w, r)
}

func (app *application) closeTour(w http.ResponseWriter, r *http.Request) {
	app.store.CloseTourDrawer()
	app.redirectHome(w, r)
}
