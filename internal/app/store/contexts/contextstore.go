// internal/app/store/contexts/contextstore.go
package contextstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dalemusser/quotebook/internal/app/system/paging"
	"github.com/dalemusser/quotebook/internal/domain/models"
)

// Every query returns the same columns; quotes_count is computed.
const contextColumns = `contexts.id, contexts.name, contexts.description,
  contexts.created_at AT TIME ZONE 'UTC' AS created_at,
  (SELECT COUNT(*) FROM quotes WHERE quotes.context_id = contexts.id) AS quotes_count`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContext(s scanner) (models.Context, error) {
	var c models.Context
	err := s.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.QuotesCount)
	return c, err
}

// FetchOne loads a context with its quote count. A missing context is
// (nil, nil).
func (s *Store) FetchOne(ctx context.Context, id int64) (*models.Context, error) {
	const query = `SELECT ` + contextColumns + ` FROM contexts WHERE contexts.id = $1`
	c, err := scanContext(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FetchOne: %w", err)
	}
	return &c, nil
}

// FetchTop5 lists the five contexts with the most quotes.
func (s *Store) FetchTop5(ctx context.Context) ([]models.Context, error) {
	const query = `SELECT ` + contextColumns + ` FROM contexts
ORDER BY quotes_count DESC
LIMIT 5`
	return s.list(ctx, "FetchTop5", query)
}

// FetchAll lists every context, newest first.
func (s *Store) FetchAll(ctx context.Context) ([]models.Context, error) {
	const query = `SELECT ` + contextColumns + ` FROM contexts ORDER BY contexts.created_at DESC`
	return s.list(ctx, "FetchAll", query)
}

// Count returns the number of contexts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contexts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return int(n), nil
}

// FetchPage lists one page of contexts, newest first.
func (s *Store) FetchPage(ctx context.Context, page paging.Page) ([]models.Context, error) {
	const query = `SELECT ` + contextColumns + ` FROM contexts
ORDER BY contexts.created_at DESC
LIMIT $1 OFFSET $2`
	return s.list(ctx, "FetchPage", query, page.Limit, page.Start)
}

// FetchForUser lists the contexts the user is a member of, newest first.
func (s *Store) FetchForUser(ctx context.Context, userID int64) ([]models.Context, error) {
	const query = `SELECT ` + contextColumns + ` FROM contexts
  INNER JOIN contexts_users ON contexts_users.context_id = contexts.id
WHERE contexts_users.user_id = $1
ORDER BY contexts.created_at DESC`
	return s.list(ctx, "FetchForUser", query, userID)
}

func (s *Store) list(ctx context.Context, op, query string, args ...any) ([]models.Context, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Context
	for rows.Next() {
		c, err := scanContext(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
