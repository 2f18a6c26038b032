package main

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/mdobak/go-xerrors"

	"bloghost/internal/auth"
	"bloghost/models"
	"bloghost/ui"
)

type templateData struct {
	Blog            *models.Blog
	Post            *models.Post
	Posts           []*models.Post
	Nav             []*models.Post
	Content         template.HTML
	MetaDescription string
	Root            string
	Message         string
	Form            any
	User            *auth.User
}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
}

// newTemplateCache parses every page template against the base layout and
// the partials. Pages are keyed by their path below ui/html, so
// "posts.html" and "dashboard/posts.html" stay distinct.
func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	err := fs.WalkDir(ui.Files, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		name := strings.TrimPrefix(path, "html/")
		if name == "base.layout.html" || strings.HasSuffix(name, ".partial.html") {
			return nil
		}

		ts, err := template.New(name).Funcs(functions).ParseFS(ui.Files,
			"html/base.layout.html",
			"html/*.partial.html",
			path,
		)
		if err != nil {
			return err
		}

		cache[name] = ts
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cache, nil
}

func (app *application) newTemplateData(r *http.Request) *templateData {
	data := &templateData{}
	if user, err := app.auth.GetAuthenticatedUser(r); err == nil {
		data.User = user
	}
	return data
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data *templateData) {
	ts, ok := app.templates[page]
	if !ok {
		app.serverError(w, r, xerrors.Newf("the template %q does not exist", page))
		return
	}

	// Render to a buffer first so a template error can still become a
	// clean 500 instead of a half-written page.
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		app.serverError(w, r, err)
		return
	}

	w.WriteHeader(status)
	buf.WriteTo(w)
}
