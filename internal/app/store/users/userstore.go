// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dalemusser/quotebook/internal/app/system/paging"
	"github.com/dalemusser/quotebook/internal/domain/models"
)

const userColumns = `users.id, users.email_address, users.username, users.fullname, users.openid`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.EmailAddress, &u.Username, &u.Fullname, &u.OpenID)
	return u, err
}

// FetchOne loads a user by id. A missing user is (nil, nil), which also
// makes Store an auth.UserFetcher.
func (s *Store) FetchOne(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE users.id = $1`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FetchOne: %w", err)
	}
	return &u, nil
}

// FetchByEmail loads the user whose email address matches exactly.
// A missing user is (nil, nil).
func (s *Store) FetchByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE users.email_address = $1`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FetchByEmail: %w", err)
	}
	return &u, nil
}

// FetchAll lists every user, newest first.
func (s *Store) FetchAll(ctx context.Context) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY users.created_at DESC`
	return s.list(ctx, "FetchAll", query)
}

// Count returns the number of users.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return int(n), nil
}

// FetchPage lists one page of users, newest first.
func (s *Store) FetchPage(ctx context.Context, page paging.Page) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
ORDER BY users.created_at DESC
LIMIT $1 OFFSET $2`
	return s.list(ctx, "FetchPage", query, page.Limit, page.Start)
}

// FetchForContext lists the members of a context, newest first.
func (s *Store) FetchForContext(ctx context.Context, contextID int64) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users
  INNER JOIN contexts_users ON contexts_users.user_id = users.id
WHERE contexts_users.context_id = $1
ORDER BY users.created_at DESC`
	return s.list(ctx, "FetchForContext", query, contextID)
}

func (s *Store) list(ctx context.Context, op, query string, args ...any) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

/*─────────────────────────────────────────────────────────────────────────────*
| Context membership                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// JoinContext adds the user to the context. Joining twice is a no-op.
func (s *Store) JoinContext(ctx context.Context, userID, contextID int64) error {
	const query = `INSERT INTO contexts_users (user_id, context_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, userID, contextID); err != nil {
		return fmt.Errorf("JoinContext: %w", err)
	}
	return nil
}

// LeaveContext removes the user from the context. Leaving a context the
// user is not in is a no-op.
func (s *Store) LeaveContext(ctx context.Context, userID, contextID int64) error {
	const query = `DELETE FROM contexts_users WHERE user_id = $1 AND context_id = $2`
	if _, err := s.db.ExecContext(ctx, query, userID, contextID); err != nil {
		return fmt.Errorf("LeaveContext: %w", err)
	}
	return nil
}

// IsMember reports whether the user belongs to the context.
func (s *Store) IsMember(ctx context.Context, userID, contextID int64) (bool, error) {
	const query = `SELECT EXISTS (
  SELECT 1 FROM contexts_users WHERE user_id = $1 AND context_id = $2
)`
	var ok bool
	if err := s.db.QueryRowContext(ctx, query, userID, contextID).Scan(&ok); err != nil {
		return false, fmt.Errorf("IsMember: %w", err)
	}
	return ok, nil
}
