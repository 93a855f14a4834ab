package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	static, err := staticFS()
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", http.FileServerFS(static))))

	session := alice.New(timeout, app.sessionManager.LoadAndSave, app.noSurf, commonContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))

	mux.Handle("POST /zones/clear", session.ThenFunc(app.clearZone))
	mux.Handle("POST /zones/protocol", session.ThenFunc(app.zoneProtocol))
	mux.Handle("POST /zones/{specimenID}", session.ThenFunc(app.selectZone))

	mux.Handle("POST /tours/close", session.ThenFunc(app.closeTour))
	mux.Handle("POST /tours/{tourID}/open", session.ThenFunc(app.openTour))

	mux.Handle("POST /compare/open", session.ThenFunc(app.openCompare))
	mux.Handle("POST /compare/close", session.ThenFunc(app.closeCompare))
	mux.Handle("POST /compare/clear", session.ThenFunc(app.clearCompare))
	mux.Handle("POST /compare/{tourID}/toggle", session.ThenFunc(app.toggleCompare))

	mux.Handle("POST /bookings", session.ThenFunc(app.submitBooking))
	mux.Handle("POST /bookings/{bookingID}/cancel", session.ThenFunc(app.cancelBooking))

	mux.Handle("GET /conditions", session.ThenFunc(app.islandConditions))

	mux.Handle("GET /assistant", session.ThenFunc(app.assistant))
	mux.Handle("POST /assistant/open", session.ThenFunc(app.openAssistant))
	mux.Handle("POST /assistant/close", session.ThenFunc(app.closeAssistant))
	mux.Handle("POST /assistant/messages", session.ThenFunc(app.sendAssistantMessage))

	mux.Handle("GET /api/events", alice.New(app.serverSentEventMiddleware).ThenFunc(app.streamEvents))
	mux.HandleFunc("GET /api/healthy", app.healthy)

	common := alice.New(app.recoverPanic, app.logRequest, app.secureHeaders)
	return common.Then(mux)
}
