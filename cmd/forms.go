package main

import (
	"net/http"
	"regexp"

	"bloghost/internal/validator"
)

var (
	// A subdomain is a single DNS label.
	subdomainRX = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)
	slugRX      = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	emailRX     = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

type blogForm struct {
	Subdomain string
	Content   string
	Validator *validator.Validator
}

func newBlogForm(r *http.Request) *blogForm {
	form := &blogForm{
		Subdomain: r.PostFormValue("subdomain"),
		Content:   r.PostFormValue("content"),
		Validator: validator.New(),
	}

	v := form.Validator
	v.CheckNotBlank(form.Subdomain, "subdomain", "must be provided")
	v.Check(len(form.Subdomain) <= 63, "subdomain", "must be at most 63 characters long")
	if form.Subdomain != "" {
		v.Check(v.IsMatch(form.Subdomain, subdomainRX), "subdomain", "must be lowercase letters, digits and hyphens")
	}

	return form
}

type postForm struct {
	Title     string
	Slug      string
	Content   string
	Publish   bool
	IsPage    bool
	Validator *validator.Validator
}

func newPostForm(r *http.Request) *postForm {
	form := &postForm{
		Title:     r.PostFormValue("title"),
		Slug:      r.PostFormValue("slug"),
		Content:   r.PostFormValue("content"),
		Publish:   r.PostFormValue("publish") == "on",
		IsPage:    r.PostFormValue("is_page") == "on",
		Validator: validator.New(),
	}

	v := form.Validator
	v.CheckNotBlank(form.Title, "title", "must be provided")
	v.Check(len(form.Title) <= 200, "title", "must be at most 200 characters long")
	v.CheckNotBlank(form.Slug, "slug", "must be provided")
	if form.Slug != "" {
		v.Check(v.IsMatch(form.Slug, slugRX), "slug", "must be lowercase letters, digits and hyphens")
	}

	return form
}
