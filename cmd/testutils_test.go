package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"bloghost/internal/auth"
	"bloghost/internal/config"
	"bloghost/internal/core"
	"bloghost/internal/tenant"
	"bloghost/models"
)

// fakeStore is an in-memory contentStore mirroring the repository's
// ordering and error semantics.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	blogs  []*models.Blog
	posts  []*models.Post
	users  []*auth.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (s *fakeStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *fakeStore) GetBlogBySubdomain(ctx context.Context, subdomain string) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blogs {
		if b.Subdomain == subdomain {
			cp := *b
			return &cp, nil
		}
	}
	return nil, core.NoRecordFound
}

func (s *fakeStore) GetBlogByUserID(ctx context.Context, userID int64) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blogs {
		if b.UserID == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, core.NoRecordFound
}

func (s *fakeStore) CreateBlog(ctx context.Context, blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blogs {
		if b.Subdomain == blog.Subdomain {
			return core.ErrDuplicateSubdomain
		}
		if b.UserID == blog.UserID {
			return core.ErrBlogExists
		}
	}
	blog.ID = s.id()
	cp := *blog
	s.blogs = append(s.blogs, &cp)
	return nil
}

func (s *fakeStore) UpdateBlog(ctx context.Context, blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blogs {
		if b.Subdomain == blog.Subdomain && b.ID != blog.ID {
			return core.ErrDuplicateSubdomain
		}
	}
	for i, b := range s.blogs {
		if b.ID == blog.ID {
			cp := *blog
			s.blogs[i] = &cp
			return nil
		}
	}
	return core.NoRecordFound
}

func (s *fakeStore) listPosts(blogID int64, publishedOnly bool) []*models.Post {
	var out []*models.Post
	for _, p := range s.posts {
		if p.BlogID != blogID {
			continue
		}
		if publishedOnly && !p.Publish {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out
}

func (s *fakeStore) GetPublishedPosts(ctx context.Context, blogID int64) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listPosts(blogID, true), nil
}

func (s *fakeStore) GetPosts(ctx context.Context, blogID int64) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listPosts(blogID, false), nil
}

func (s *fakeStore) GetPublishedPostBySlug(ctx context.Context, blogID int64, slug string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.BlogID == blogID && p.Slug == slug && p.Publish {
			cp := *p
			return &cp, nil
		}
	}
	return nil, core.NoRecordFound
}

func (s *fakeStore) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, core.NoRecordFound
}

func (s *fakeStore) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.BlogID == post.BlogID && p.Slug == post.Slug {
			return nil, core.ErrDuplicateSlug
		}
	}
	post.ID = s.id()
	cp := *post
	s.posts = append(s.posts, &cp)
	return post, nil
}

func (s *fakeStore) UpdatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.BlogID == post.BlogID && p.Slug == post.Slug && p.ID != post.ID {
			return core.ErrDuplicateSlug
		}
	}
	for i, p := range s.posts {
		if p.ID == post.ID {
			cp := *post
			s.posts[i] = &cp
			return nil
		}
	}
	return core.NoRecordFound
}

func (s *fakeStore) DeletePost(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return core.NoRecordFound
}

func (s *fakeStore) CreateNewUser(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return core.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return core.ErrDuplicateUsername
		}
	}
	user.ID = s.id()
	cp := *user
	s.users = append(s.users, &cp)
	return nil
}

func (s *fakeStore) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.NoRecordFound
}

func (s *fakeStore) seedUser(email, username string) *auth.User {
	u := &auth.User{ID: s.id(), Email: email, Username: username}
	s.users = append(s.users, u)
	return u
}

func (s *fakeStore) seedBlog(userID int64, subdomain, content string) *models.Blog {
	b := &models.Blog{ID: s.id(), UserID: userID, Subdomain: subdomain, Content: content, CreatedAt: time.Now()}
	s.blogs = append(s.blogs, b)
	return b
}

func (s *fakeStore) seedPost(blogID int64, title, slug string, publish, isPage bool, publishedAt time.Time) *models.Post {
	p := &models.Post{
		ID:          s.id(),
		BlogID:      blogID,
		Title:       title,
		Slug:        slug,
		Content:     title + " body",
		Publish:     publish,
		IsPage:      isPage,
		PublishedAt: publishedAt,
	}
	s.posts = append(s.posts, p)
	return p
}

type dnsCall struct {
	recordType string
	name       string
}

// spyProvisioner records SetRecord calls instead of talking to Cloudflare.
type spyProvisioner struct {
	mu    sync.Mutex
	calls []dnsCall
}

func (s *spyProvisioner) SetRecord(ctx context.Context, recordType, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, dnsCall{recordType, name})
	return nil
}

func (s *spyProvisioner) recorded() []dnsCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dnsCall(nil), s.calls...)
}

func newTestApplication(t *testing.T, store *fakeStore, spy *spyProvisioner) *application {
	t.Helper()

	templates, err := newTemplateCache()
	if err != nil {
		t.Fatal(err)
	}

	return &application{
		config:    &config.Config{RootLabel: "www", Scheme: "https"},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		store:     store,
		auth:      auth.New("test-secret"),
		resolver:  tenant.NewResolver("www", "https"),
		dns:       spy,
		templates: templates,
	}
}

// sessionFor logs a seeded user in by minting the cookie the login handler
// would set.
func sessionFor(t *testing.T, app *application, user *auth.User) *http.Cookie {
	t.Helper()

	token, err := app.auth.GenerateToken(user, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return app.auth.NewSessionCookie(token, time.Hour)
}

func doGet(t *testing.T, handler http.Handler, host, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.Host = host
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func doPost(t *testing.T, handler http.Handler, host, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Host = host
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}
