package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mdobak/go-xerrors"

	"bloghost/internal/utils/databaseutils"
	"bloghost/models"
)

var ErrDuplicateSlug = xerrors.Message("Duplicate slug")

func scanPost(rows *sql.Rows) (*models.Post, error) {
	post := &models.Post{}
	if err := rows.Scan(
		&post.ID,
		&post.BlogID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.Publish,
		&post.IsPage,
		&post.PublishedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return post, nil
}

// GetPublishedPosts returns a blog's live posts, newest first.
func (c *Core) GetPublishedPosts(ctx context.Context, blogID int64) ([]*models.Post, error) {
	query := `
		SELECT id, blog_id, title, slug, content, publish, is_page, published_at
		FROM posts
		WHERE blog_id = $1 AND publish = TRUE
		ORDER BY published_at DESC
	`

	posts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanPost, blogID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return posts, nil
}

// GetPosts returns every post of a blog, drafts included, newest first.
func (c *Core) GetPosts(ctx context.Context, blogID int64) ([]*models.Post, error) {
	query := `
		SELECT id, blog_id, title, slug, content, publish, is_page, published_at
		FROM posts
		WHERE blog_id = $1
		ORDER BY published_at DESC
	`

	posts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanPost, blogID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return posts, nil
}

// GetPublishedPostBySlug looks a live post up within a single blog. Slugs
// are only unique per blog, so the blog id is part of the key.
func (c *Core) GetPublishedPostBySlug(ctx context.Context, blogID int64, slug string) (*models.Post, error) {
	query := `
		SELECT id, blog_id, title, slug, content, publish, is_page, published_at
		FROM posts
		WHERE blog_id = $1 AND slug = $2 AND publish = TRUE
	`

	post, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanPost, blogID, slug)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return post, nil
}

func (c *Core) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT id, blog_id, title, slug, content, publish, is_page, published_at
		FROM posts
		WHERE id = $1
	`

	post, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanPost, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return post, nil
}

func (c *Core) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (blog_id, title, slug, content, publish, is_page, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	args := []any{post.BlogID, post.Title, post.Slug, post.Content, post.Publish, post.IsPage, post.PublishedAt}
	_, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*models.Post, error) {
		if err := rows.Scan(&post.ID); err != nil {
			return nil, xerrors.New(err)
		}
		return post, nil
	}, args...)

	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "posts_blog_id_slug_key"`:
			return nil, xerrors.New(ErrDuplicateSlug)
		default:
			return nil, xerrors.New(err)
		}
	}

	return post, nil
}

func (c *Core) UpdatePost(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET blog_id = $1, title = $2, slug = $3, content = $4, publish = $5, is_page = $6, published_at = $7
		WHERE id = $8
	`

	args := []any{post.BlogID, post.Title, post.Slug, post.Content, post.Publish, post.IsPage, post.PublishedAt, post.ID}
	affected, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, query, args...)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "posts_blog_id_slug_key"`:
			return xerrors.New(ErrDuplicateSlug)
		default:
			return xerrors.New(err)
		}
	}
	if affected == 0 {
		return xerrors.New(NoRecordFound)
	}

	return nil
}

func (c *Core) DeletePost(ctx context.Context, id int64) error {
	query := `
		DELETE FROM posts
		WHERE id = $1
	`

	affected, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, query, id)
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(NoRecordFound)
	}

	c.log.Info("Post deleted", "post_id", id)
	return nil
}
