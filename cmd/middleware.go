package main

import (
	"errors"
	"fmt"
	"net/http"

	"bloghost/internal/auth"
	"bloghost/internal/core"
)

func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookie)
		if err == nil && cookie.Value != "" {
			claim, err := app.auth.Authenticate(cookie.Value)
			if err != nil {
				// Expired or tampered token: drop it and continue as an
				// anonymous request.
				http.SetCookie(w, app.auth.ExpiredSessionCookie())
			} else {
				user, err := app.store.GetUserByEmail(r.Context(), claim.Email)
				switch {
				case err == nil:
					r = app.auth.SetAuthenticatedUser(r, user)
				case errors.Is(err, core.NoRecordFound):
					http.SetCookie(w, app.auth.ExpiredSessionCookie())
				default:
					app.serverError(w, r, err)
					return
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) requireAuthenticatedUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !app.auth.IsUserAuthenticated(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
