package main

import (
	"log/slog"
	"net/http"

	"github.com/mdobak/go-xerrors"
)

func (app *application) logError(r *http.Request, err error) {
	var attrs []slog.Attr
	attrs = append(attrs, slog.String("request_url", r.URL.String()))
	attrs = append(attrs, slog.String("request_method", r.Method))
	attrs = append(attrs, slog.String("request_host", r.Host))
	attrs = append(attrs, slog.String("stack", xerrors.Sprint(err)))

	app.logger.LogAttrs(r.Context(), slog.LevelError, "Errors in handling request", attrs...)
}

// notFound covers unmatched routes, unregistered subdomains and missing
// records alike.
func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusNotFound, "404.html", app.newTemplateData(r))
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	ts, ok := app.templates["500.html"]
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	if err := ts.ExecuteTemplate(w, "base", app.newTemplateData(r)); err != nil {
		app.logger.Error(err.Error())
	}
}
