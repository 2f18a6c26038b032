package models

import "time"

// Blog is a tenant: one per user, addressed by its unique subdomain.
// Content is the markdown shown on the blog's home page.
type Blog struct {
	ID        int64
	UserID    int64
	Subdomain string
	Content   string
	CreatedAt time.Time
}

// Post belongs to one blog. Slug is unique within the blog, not globally.
// IsPage marks a static navigation entry instead of a chronological post;
// Publish distinguishes live posts from drafts.
type Post struct {
	ID          int64
	BlogID      int64
	Title       string
	Slug        string
	Content     string
	Publish     bool
	IsPage      bool
	PublishedAt time.Time
}
