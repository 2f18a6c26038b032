package main

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestHomeLanding(t *testing.T) {
	store := newFakeStore()
	app := newTestApplication(t, store, &spyProvisioner{})
	handler := app.routes()

	for _, host := range []string{"example.com", "www.example.com", "localhost:4000"} {
		w := doGet(t, handler, host, "/", nil)
		if w.Code != http.StatusOK {
			t.Errorf("host %q: status = %d, want 200", host, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Sign up") {
			t.Errorf("host %q: expected the landing page", host)
		}
	}
}

func TestHomeUnregisteredSubdomain(t *testing.T) {
	store := newFakeStore()
	app := newTestApplication(t, store, &spyProvisioner{})

	w := doGet(t, app.routes(), "ghost.example.com", "/", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHomeRendersBlog(t *testing.T) {
	store := newFakeStore()
	user := store.seedUser("js@example.com", "jswriter")
	blog := store.seedBlog(user.ID, "js", "# Hi there")
	store.seedPost(blog.ID, "First", "first", true, false, time.Now())
	store.seedPost(blog.ID, "Draft", "draft", false, false, time.Now())

	app := newTestApplication(t, store, &spyProvisioner{})
	w := doGet(t, app.routes(), "js.example.com", "/", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()

	if !strings.Contains(body, "<h1>Hi there</h1>") {
		t.Error("about content should render as an <h1>")
	}
	if !strings.Contains(body, "first") {
		t.Error("published post missing from listing")
	}
	if strings.Contains(body, "draft") {
		t.Error("draft post leaked into the public listing")
	}
	if !strings.Contains(body, `<meta name="description" content="Hi there">`) {
		t.Error("meta description should be the markdown-stripped about content")
	}
}

func TestHomePartitionsPagesIntoNav(t *testing.T) {
	store := newFakeStore()
	user := store.seedUser("js@example.com", "jswriter")
	blog := store.seedBlog(user.ID, "js", "hello")
	store.seedPost(blog.ID, "About me", "about", true, true, time.Now())
	store.seedPost(blog.ID, "First", "first", true, false, time.Now())

	app := newTestApplication(t, store, &spyProvisioner{})
	w := doGet(t, app.routes(), "js.example.com", "/", nil)
	body := w.Body.String()

	if !strings.Contains(body, `href="https://js.example.com/posts/about"`) {
		t.Error("page entry should appear as an absolute nav link")
	}

	list := body[strings.Index(body, `class="posts"`):]
	if strings.Contains(list, "About me") {
		t.Error("page entry should not appear in the chronological listing")
	}
	if !strings.Contains(list, "First") {
		t.Error("chronological post missing from the listing")
	}
}

func TestPostsOrderedNewestFirst(t *testing.T) {
	store := newFakeStore()
	user := store.seedUser("js@example.com", "jswriter")
	blog := store.seedBlog(user.ID, "js", "hello")

	base := time.Now()
	store.seedPost(blog.ID, "Oldest", "oldest", true, false, base.Add(-2*time.Hour))
	store.seedPost(blog.ID, "Newest", "newest", true, false, base)
	store.seedPost(blog.ID, "Middle", "middle", true, false, base.Add(-time.Hour))

	app := newTestApplication(t, store, &spyProvisioner{})
	w := doGet(t, app.routes(), "js.example.com", "/posts", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()

	newest := strings.Index(body, "Newest")
	middle := strings.Index(body, "Middle")
	oldest := strings.Index(body, "Oldest")
	if newest == -1 || middle == -1 || oldest == -1 {
		t.Fatal("expected all three published posts in the listing")
	}
	if !(newest < middle && middle < oldest) {
		t.Errorf("posts out of order: newest=%d middle=%d oldest=%d", newest, middle, oldest)
	}
}

func TestPostsUnregisteredSubdomainIsNotFound(t *testing.T) {
	store := newFakeStore()
	app := newTestApplication(t, store, &spyProvisioner{})

	w := doGet(t, app.routes(), "ghost.example.com", "/posts", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPost(t *testing.T) {
	store := newFakeStore()
	user := store.seedUser("js@example.com", "jswriter")
	blog := store.seedBlog(user.ID, "js", "hello")
	store.seedPost(blog.ID, "First", "first", true, false, time.Now())
	store.seedPost(blog.ID, "Draft", "draft", false, false, time.Now())

	app := newTestApplication(t, store, &spyProvisioner{})
	handler := app.routes()

	w := doGet(t, handler, "js.example.com", "/posts/first", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "First body") {
		t.Error("post body missing")
	}

	// Drafts are invisible even by direct URL.
	if w := doGet(t, handler, "js.example.com", "/posts/draft", nil); w.Code != http.StatusNotFound {
		t.Errorf("draft post: status = %d, want 404", w.Code)
	}

	if w := doGet(t, handler, "js.example.com", "/posts/missing", nil); w.Code != http.StatusNotFound {
		t.Errorf("missing slug: status = %d, want 404", w.Code)
	}
}

func TestPostSlugScopedToBlog(t *testing.T) {
	store := newFakeStore()
	alice := store.seedUser("alice@example.com", "alicewrites")
	bob := store.seedUser("bob@example.com", "bobwrites")
	aliceBlog := store.seedBlog(alice.ID, "alice", "")
	bobBlog := store.seedBlog(bob.ID, "bob", "")
	store.seedPost(aliceBlog.ID, "Alice hello", "hello", true, false, time.Now())
	store.seedPost(bobBlog.ID, "Bob hello", "hello", true, false, time.Now())

	app := newTestApplication(t, store, &spyProvisioner{})

	w := doGet(t, app.routes(), "bob.example.com", "/posts/hello", nil)
	if !strings.Contains(w.Body.String(), "Bob hello") {
		t.Error("expected bob's post for bob's subdomain")
	}
	if strings.Contains(w.Body.String(), "Alice hello") {
		t.Error("got alice's post on bob's subdomain")
	}
}

func TestNotFoundRoute(t *testing.T) {
	store := newFakeStore()
	app := newTestApplication(t, store, &spyProvisioner{})

	w := doGet(t, app.routes(), "example.com", "/nope/nothing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Page not found") {
		t.Error("expected the not-found page body")
	}
}
