package main

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/myrjola/jurassictravel/internal/contexthelpers"
	"github.com/myrjola/jurassictravel/internal/errors"
)

//go:embed ui
var uiFS embed.FS

// staticFS serves the files under ui/static.
func staticFS() (fs.FS, error) {
	sub, err := fs.Sub(uiFS, "ui/static")
	if err != nil {
		return nil, errors.Wrap(err, "sub static fs")
	}
	return sub, nil
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to directory inside ui/templates/pages folder. The page templates are parsed together with
// ui/templates/base.gohtml so partials can be rendered on their own for htmx requests.
func (app *application) pageTemplate(pageName string, funcs template.FuncMap) (*template.Template, error) {
	patterns := []string{
		"ui/templates/base.gohtml",
		fmt.Sprintf("ui/templates/pages/%s/*.gohtml", pageName),
	}
	t, err := template.New(pageName).Funcs(funcs).ParseFS(uiFS, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "parse page templates", slog.String("page", pageName))
	}
	return t, nil
}

// render executes the template name of the page into the response. Use name "base" for the full document.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, name string, data any) {
	var (
		err error
		t   *template.Template
	)

	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>",
		template.HTMLEscapeString(contexthelpers.CSRFToken(ctx)))
	funcs := template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // the token is escaped above.
		},
		"chatMarkup": chatMarkup,
		"percent": func(score int) int {
			return score * 10 //nolint:mnd // scores are 0-10.
		},
	}

	if t, err = app.pageTemplate(page, funcs); err != nil {
		app.serverError(w, r, err)
		return
	}

	buf := new(bytes.Buffer)
	if err = t.ExecuteTemplate(buf, name, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template",
			slog.String("page", page), slog.String("template", name)))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}
