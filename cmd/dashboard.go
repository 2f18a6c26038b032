package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"bloghost/internal/auth"
	"bloghost/internal/core"
	"bloghost/internal/tenant"
	"bloghost/internal/validator"
	"bloghost/models"
)

// ownerBlog loads the caller's blog and keeps dashboard usage on the
// caller's own subdomain: a request arriving on someone else's subdomain
// is redirected to the canonical root plus redirectPath. When it returns
// ok=false the response has already been written.
func (app *application) ownerBlog(w http.ResponseWriter, r *http.Request, redirectPath string) (*models.Blog, tenant.Host, bool) {
	host := tenant.Parse(r.Host)

	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.serverError(w, r, err)
		return nil, host, false
	}

	blog, err := app.store.GetBlogByUserID(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFound(w, r)
		} else {
			app.serverError(w, r, err)
		}
		return nil, host, false
	}

	if host.Subdomain != "" && host.Subdomain != blog.Subdomain {
		http.Redirect(w, r, app.resolver.Root(host, blog.Subdomain)+redirectPath, http.StatusSeeOther)
		return nil, host, false
	}

	return blog, host, true
}

func (app *application) dashboard(w http.ResponseWriter, r *http.Request) {
	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	host := tenant.Parse(r.Host)

	blog, err := app.store.GetBlogByUserID(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.blogSetup(w, r, user, host)
			return
		}
		app.serverError(w, r, err)
		return
	}

	if host.Subdomain != "" && host.Subdomain != blog.Subdomain {
		http.Redirect(w, r, app.resolver.Root(host, blog.Subdomain)+"/dashboard", http.StatusSeeOther)
		return
	}

	data := app.newTemplateData(r)
	oldSubdomain := blog.Subdomain
	form := &blogForm{Subdomain: blog.Subdomain, Content: blog.Content, Validator: validator.New()}

	if r.Method == http.MethodPost {
		form = newBlogForm(r)
		if form.Validator.IsValid() {
			blog.Subdomain = form.Subdomain
			blog.Content = form.Content

			err := app.store.UpdateBlog(r.Context(), blog)
			switch {
			case err == nil:
				if blog.Subdomain != oldSubdomain {
					app.provisionDNS(blog.Subdomain)
					data.Message = "It may take ~5 minutes to activate your new subdomain"
				}
			case errors.Is(err, core.ErrDuplicateSubdomain):
				form.Validator.AddError("subdomain", "is already taken")
				blog.Subdomain = oldSubdomain
			default:
				app.serverError(w, r, err)
				return
			}
		}
	}

	data.Form = form
	data.Blog = blog
	data.Root = app.resolver.Root(host, blog.Subdomain)
	app.render(w, r, http.StatusOK, "dashboard/dashboard.html", data)
}

// blogSetup is the dashboard for a user without a blog yet: a blank form,
// and on submission the one place a Blog record is ever created.
func (app *application) blogSetup(w http.ResponseWriter, r *http.Request, user *auth.User, host tenant.Host) {
	data := app.newTemplateData(r)

	if r.Method != http.MethodPost {
		data.Form = &blogForm{Validator: validator.New()}
		app.render(w, r, http.StatusOK, "dashboard/dashboard.html", data)
		return
	}

	form := newBlogForm(r)
	data.Form = form

	if form.Validator.IsValid() {
		blog := &models.Blog{
			UserID:    user.ID,
			Subdomain: form.Subdomain,
			Content:   form.Content,
			CreatedAt: time.Now(),
		}

		err := app.store.CreateBlog(r.Context(), blog)
		switch {
		case err == nil:
			app.provisionDNS(blog.Subdomain)
			data.Blog = blog
			data.Root = app.resolver.Root(host, blog.Subdomain)
			data.Message = "It may take ~5 minutes for your new subdomain to go live"
		case errors.Is(err, core.ErrDuplicateSubdomain):
			form.Validator.AddError("subdomain", "is already taken")
		default:
			app.serverError(w, r, err)
			return
		}
	}

	app.render(w, r, http.StatusOK, "dashboard/dashboard.html", data)
}

// dashboardPosts lists every post of the owner's blog, drafts included.
func (app *application) dashboardPosts(w http.ResponseWriter, r *http.Request) {
	blog, _, ok := app.ownerBlog(w, r, "/dashboard/posts")
	if !ok {
		return
	}

	posts, err := app.store.GetPosts(r.Context(), blog.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Blog = blog
	data.Posts = posts
	app.render(w, r, http.StatusOK, "dashboard/posts.html", data)
}

func (app *application) postNew(w http.ResponseWriter, r *http.Request) {
	blog, _, ok := app.ownerBlog(w, r, "/dashboard/posts/new")
	if !ok {
		return
	}

	data := app.newTemplateData(r)
	form := &postForm{Validator: validator.New()}

	if r.Method == http.MethodPost {
		form = newPostForm(r)
		if form.Validator.IsValid() {
			post := &models.Post{
				BlogID:      blog.ID,
				Title:       form.Title,
				Slug:        form.Slug,
				Content:     form.Content,
				Publish:     form.Publish,
				IsPage:      form.IsPage,
				PublishedAt: time.Now(),
			}

			created, err := app.store.CreatePost(r.Context(), post)
			switch {
			case err == nil:
				http.Redirect(w, r, fmt.Sprintf("/dashboard/posts/%d", created.ID), http.StatusSeeOther)
				return
			case errors.Is(err, core.ErrDuplicateSlug):
				form.Validator.AddError("slug", "is already in use on this blog")
			default:
				app.serverError(w, r, err)
				return
			}
		}
	}

	data.Form = form
	data.Blog = blog
	app.render(w, r, http.StatusOK, "dashboard/post_edit.html", data)
}

func (app *application) postEdit(w http.ResponseWriter, r *http.Request) {
	idParam := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if idParam == "new" {
		app.postNew(w, r)
		return
	}

	blog, host, ok := app.ownerBlog(w, r, "/dashboard/posts")
	if !ok {
		return
	}

	pk, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		app.notFound(w, r)
		return
	}

	// Lookup is by bare primary key; the save below re-binds the post to
	// the caller's blog.
	post, err := app.store.GetPostByID(r.Context(), pk)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	form := &postForm{
		Title:     post.Title,
		Slug:      post.Slug,
		Content:   post.Content,
		Publish:   post.Publish,
		IsPage:    post.IsPage,
		Validator: validator.New(),
	}

	if r.Method == http.MethodPost {
		form = newPostForm(r)
		if form.Validator.IsValid() {
			post.BlogID = blog.ID
			post.Title = form.Title
			post.Slug = form.Slug
			post.Content = form.Content
			post.Publish = form.Publish
			post.IsPage = form.IsPage
			post.PublishedAt = time.Now()

			err := app.store.UpdatePost(r.Context(), post)
			switch {
			case err == nil:
				data.Message = "Saved"
			case errors.Is(err, core.ErrDuplicateSlug):
				form.Validator.AddError("slug", "is already in use on this blog")
			default:
				app.serverError(w, r, err)
				return
			}
		}
	}

	data.Form = form
	data.Blog = blog
	data.Post = post
	data.Root = app.resolver.Root(host, blog.Subdomain)
	app.render(w, r, http.StatusOK, "dashboard/post_edit.html", data)
}

func (app *application) postDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	blog, _, ok := app.ownerBlog(w, r, "/dashboard/posts")
	if !ok {
		return
	}

	pk, err := strconv.ParseInt(httprouter.ParamsFromContext(r.Context()).ByName("id"), 10, 64)
	if err != nil {
		app.notFound(w, r)
		return
	}

	post, err := app.store.GetPostByID(r.Context(), pk)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	data := app.newTemplateData(r)
	data.Blog = blog
	data.Post = post
	app.render(w, r, http.StatusOK, "dashboard/post_delete.html", data)
}

// postDelete deletes by primary key and always lands back on the posts
// listing.
func (app *application) postDelete(w http.ResponseWriter, r *http.Request) {
	pk, err := strconv.ParseInt(httprouter.ParamsFromContext(r.Context()).ByName("id"), 10, 64)
	if err != nil {
		app.notFound(w, r)
		return
	}

	if err := app.store.DeletePost(r.Context(), pk); err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard/posts", http.StatusSeeOther)
}
