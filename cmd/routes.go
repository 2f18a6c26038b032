package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFound)

	// Public, host-header driven: the tenant comes from the subdomain,
	// never from the path.
	router.HandlerFunc(http.MethodGet, "/", app.home)
	router.HandlerFunc(http.MethodGet, "/posts", app.posts)
	router.HandlerFunc(http.MethodGet, "/posts/:slug", app.post)

	router.HandlerFunc(http.MethodGet, "/signup", app.signup)
	router.HandlerFunc(http.MethodPost, "/signup", app.signup)
	router.HandlerFunc(http.MethodGet, "/login", app.login)
	router.HandlerFunc(http.MethodPost, "/login", app.login)
	router.HandlerFunc(http.MethodPost, "/logout", app.logout)

	// Require authentication for these routes. httprouter cannot mix the
	// static "new" segment with :id, so postEdit dispatches it.
	router.HandlerFunc(http.MethodGet, "/dashboard", app.requireAuthenticatedUser(app.dashboard))
	router.HandlerFunc(http.MethodPost, "/dashboard", app.requireAuthenticatedUser(app.dashboard))
	router.HandlerFunc(http.MethodGet, "/dashboard/posts", app.requireAuthenticatedUser(app.dashboardPosts))
	router.HandlerFunc(http.MethodGet, "/dashboard/posts/:id", app.requireAuthenticatedUser(app.postEdit))
	router.HandlerFunc(http.MethodPost, "/dashboard/posts/:id", app.requireAuthenticatedUser(app.postEdit))
	router.HandlerFunc(http.MethodGet, "/dashboard/posts/:id/delete", app.requireAuthenticatedUser(app.postDeleteConfirm))
	router.HandlerFunc(http.MethodPost, "/dashboard/posts/:id/delete", app.requireAuthenticatedUser(app.postDelete))

	return app.recoverPanic(app.authenticate(router))
}
