package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mdobak/go-xerrors"

	"bloghost/internal/utils/databaseutils"
	"bloghost/models"
)

var (
	ErrDuplicateSubdomain = xerrors.Message("Duplicate subdomain")
	ErrBlogExists         = xerrors.Message("User already has a blog")
)

func scanBlog(rows *sql.Rows) (*models.Blog, error) {
	blog := &models.Blog{}
	if err := rows.Scan(
		&blog.ID,
		&blog.UserID,
		&blog.Subdomain,
		&blog.Content,
		&blog.CreatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return blog, nil
}

func (c *Core) GetBlogBySubdomain(ctx context.Context, subdomain string) (*models.Blog, error) {
	query := `
		SELECT id, user_id, subdomain, content, created_at
		FROM blogs
		WHERE subdomain = $1
	`

	blog, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanBlog, subdomain)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return blog, nil
}

func (c *Core) GetBlogByUserID(ctx context.Context, userID int64) (*models.Blog, error) {
	query := `
		SELECT id, user_id, subdomain, content, created_at
		FROM blogs
		WHERE user_id = $1
	`

	blog, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanBlog, userID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return blog, nil
}

func (c *Core) CreateBlog(ctx context.Context, blog *models.Blog) error {
	query := `
		INSERT INTO blogs (user_id, subdomain, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	args := []any{blog.UserID, blog.Subdomain, blog.Content, blog.CreatedAt}
	_, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*models.Blog, error) {
		if err := rows.Scan(&blog.ID); err != nil {
			return nil, xerrors.New(err)
		}
		return blog, nil
	}, args...)

	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "blogs_subdomain_key"`:
			return xerrors.New(ErrDuplicateSubdomain)
		case err.Error() == `pq: duplicate key value violates unique constraint "blogs_user_id_key"`:
			return xerrors.New(ErrBlogExists)
		default:
			return xerrors.New(err)
		}
	}

	c.log.Info("Blog created", "blog_id", blog.ID, "subdomain", blog.Subdomain)
	return nil
}

func (c *Core) UpdateBlog(ctx context.Context, blog *models.Blog) error {
	query := `
		UPDATE blogs
		SET subdomain = $1, content = $2
		WHERE id = $3
	`

	affected, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, query, blog.Subdomain, blog.Content, blog.ID)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "blogs_subdomain_key"`:
			return xerrors.New(ErrDuplicateSubdomain)
		default:
			return xerrors.New(err)
		}
	}
	if affected == 0 {
		return xerrors.New(NoRecordFound)
	}

	return nil
}
