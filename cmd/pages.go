package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bloghost/internal/core"
	"bloghost/internal/markdown"
	"bloghost/internal/tenant"
	"bloghost/models"
)

const metaDescriptionLength = 160

// partitionPosts splits a published listing into navigation entries
// (static pages) and chronological posts, preserving order.
func partitionPosts(all []*models.Post) (nav, posts []*models.Post) {
	for _, p := range all {
		if p.IsPage {
			nav = append(nav, p)
		} else {
			posts = append(posts, p)
		}
	}
	return nav, posts
}

// home serves a tenant's front page, or the platform landing page when the
// request carries no tenant subdomain at all. A subdomain that is present
// but unregistered is a 404, not the landing page.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	host := tenant.Parse(r.Host)

	if app.resolver.IsLanding(host) {
		app.render(w, r, http.StatusOK, "landing.html", app.newTemplateData(r))
		return
	}

	blog, err := app.store.GetBlogBySubdomain(r.Context(), host.Subdomain)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	all, err := app.store.GetPublishedPosts(r.Context(), blog.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	nav, posts := partitionPosts(all)

	content, err := markdown.ToHTML(blog.Content)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Blog = blog
	data.Content = content
	data.Posts = posts
	data.Nav = nav
	data.Root = app.resolver.Root(host, blog.Subdomain)
	data.MetaDescription = markdown.Excerpt(blog.Content, metaDescriptionLength)

	app.render(w, r, http.StatusOK, "home.html", data)
}

func (app *application) posts(w http.ResponseWriter, r *http.Request) {
	host := tenant.Parse(r.Host)

	blog, err := app.store.GetBlogBySubdomain(r.Context(), host.Subdomain)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	all, err := app.store.GetPublishedPosts(r.Context(), blog.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	nav, posts := partitionPosts(all)

	data := app.newTemplateData(r)
	data.Blog = blog
	data.Posts = posts
	data.Nav = nav
	data.Root = app.resolver.Root(host, blog.Subdomain)
	data.MetaDescription = markdown.Excerpt(blog.Content, metaDescriptionLength)

	app.render(w, r, http.StatusOK, "posts.html", data)
}

func (app *application) post(w http.ResponseWriter, r *http.Request) {
	host := tenant.Parse(r.Host)
	slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")

	blog, err := app.store.GetBlogBySubdomain(r.Context(), host.Subdomain)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	all, err := app.store.GetPublishedPosts(r.Context(), blog.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	nav, _ := partitionPosts(all)

	post, err := app.store.GetPublishedPostBySlug(r.Context(), blog.ID, slug)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	content, err := markdown.ToHTML(post.Content)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Blog = blog
	data.Post = post
	data.Content = content
	data.Nav = nav
	data.Root = app.resolver.Root(host, blog.Subdomain)
	data.MetaDescription = markdown.Excerpt(post.Content, metaDescriptionLength)

	app.render(w, r, http.StatusOK, "post.html", data)
}
