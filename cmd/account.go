package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"bloghost/internal/auth"
	"bloghost/internal/core"
	"bloghost/internal/validator"
)

const sessionDuration = 24 * time.Hour

type signupForm struct {
	Email     string
	Username  string
	Validator *validator.Validator
}

type loginForm struct {
	Email     string
	Validator *validator.Validator
}

func (app *application) signup(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)

	if r.Method != http.MethodPost {
		data.Form = &signupForm{Validator: validator.New()}
		app.render(w, r, http.StatusOK, "signup.html", data)
		return
	}

	form := &signupForm{
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		Validator: validator.New(),
	}
	password := r.PostFormValue("password")
	data.Form = form

	v := form.Validator
	v.CheckNotBlank(form.Email, "email", "must be provided")
	if form.Email != "" {
		v.Check(v.IsMatch(form.Email, emailRX), "email", "must be a valid email address")
	}
	v.CheckNotBlank(form.Username, "username", "must be provided")
	v.Check(len(form.Username) >= 5, "username", "must be at least 5 characters long")
	v.CheckNotBlank(password, "password", "must be provided")
	v.Check(len(password) >= 8, "password", "must be at least 8 characters long")

	if !v.IsValid() {
		app.render(w, r, http.StatusUnprocessableEntity, "signup.html", data)
		return
	}

	user := &auth.User{
		Email:    form.Email,
		Username: form.Username,
	}
	if err := user.SetPassword(password); err != nil {
		app.serverError(w, r, err)
		return
	}

	err := app.store.CreateNewUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateEmail):
			v.AddError("email", "is already in use")
		case errors.Is(err, core.ErrDuplicateUsername):
			v.AddError("username", "is already in use")
		default:
			app.serverError(w, r, err)
			return
		}
		app.render(w, r, http.StatusUnprocessableEntity, "signup.html", data)
		return
	}

	token, err := app.auth.GenerateToken(user, sessionDuration)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	http.SetCookie(w, app.auth.NewSessionCookie(token, sessionDuration))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)

	if r.Method != http.MethodPost {
		data.Form = &loginForm{Validator: validator.New()}
		app.render(w, r, http.StatusOK, "login.html", data)
		return
	}

	form := &loginForm{
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Validator: validator.New(),
	}
	password := r.PostFormValue("password")
	data.Form = form

	user, err := app.store.GetUserByEmail(r.Context(), form.Email)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			form.Validator.AddError("form", "email or password is incorrect")
			app.render(w, r, http.StatusUnprocessableEntity, "login.html", data)
			return
		}
		app.serverError(w, r, err)
		return
	}

	match, err := user.IsPasswordMatch(password)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if !match {
		form.Validator.AddError("form", "email or password is incorrect")
		app.render(w, r, http.StatusUnprocessableEntity, "login.html", data)
		return
	}

	token, err := app.auth.GenerateToken(user, sessionDuration)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	http.SetCookie(w, app.auth.NewSessionCookie(token, sessionDuration))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, app.auth.ExpiredSessionCookie())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
