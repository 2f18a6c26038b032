package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mdobak/go-xerrors"

	"bloghost/internal/auth"
	"bloghost/internal/utils/databaseutils"
)

var (
	ErrDuplicateEmail    = xerrors.Message("Duplicate email")
	ErrDuplicateUsername = xerrors.Message("Duplicate username")
)

func (c *Core) CreateNewUser(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	args := []any{user.Username, user.Email, user.Password}
	_, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*auth.User, error) {
		if err := rows.Scan(&user.ID); err != nil {
			return nil, xerrors.New(err)
		}
		return user, nil
	}, args...)

	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "users_email_key"`:
			return xerrors.New(ErrDuplicateEmail)
		case err.Error() == `pq: duplicate key value violates unique constraint "users_username_key"`:
			return xerrors.New(ErrDuplicateUsername)
		default:
			return xerrors.New(err)
		}
	}

	return nil
}

func (c *Core) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `
		SELECT id, email, username, password
		FROM users
		WHERE email = $1
	`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*auth.User, error) {
		var user = &auth.User{}

		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Username,
			&user.Password,
		); err != nil {
			return nil, xerrors.New(err)
		}
		return user, nil
	}, email)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return user, nil
}
