package main

import (
	"log/slog"
	"net/http"

	"github.com/myrjola/jurassictravel/internal/errors"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status),
		slog.String("method", method), slog.String("uri", uri), slog.Any("formdata", r.PostForm))
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound)
}

// redirectHome finishes a state-changing request. htmx requests get the refreshed terminal markup and plain form
// posts are redirected back to the page so that a reload does not resubmit the form.
func (app *application) redirectHome(w http.ResponseWriter, r *http.Request) {
	if app.htmx.NewHandler(w, r).IsHxRequest() {
		app.renderHome(w, r, "terminal")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
