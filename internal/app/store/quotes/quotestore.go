// internal/app/store/quotes/quotestore.go
package quotestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dalemusser/quotebook/internal/app/system/paging"
	"github.com/dalemusser/quotebook/internal/domain/models"
)

const quoteColumns = `quotes.id, quotes.quote_text, quotes.context_id, quotes.quoter_id, quotes.quotee_id,
  quotes.created_at AT TIME ZONE 'UTC' AS created_at,
  quotes.updated_at AT TIME ZONE 'UTC' AS updated_at,
  quotes.hidden`

// withUsersFrom selects a quote joined with quoter, quotee, and context.
// Callers append WHERE, ORDER BY, and LIMIT.
const withUsersFrom = `SELECT ` + quoteColumns + `,
  (SELECT COUNT(*) FROM comments WHERE comments.quote_id = quotes.id) AS comments_count,
  quoter.username AS quoter_username,
  quoter.fullname AS quoter_fullname,
  quoter.email_address AS quoter_email_address,
  quoter.openid AS quoter_openid,
  quotee.username AS quotee_username,
  quotee.fullname AS quotee_fullname,
  quotee.email_address AS quotee_email_address,
  quotee.openid AS quotee_openid,
  contexts.name AS context_name,
  contexts.description AS context_description
FROM quotes
  INNER JOIN users AS quoter ON quoter.id = quotes.quoter_id
  INNER JOIN users AS quotee ON quotee.id = quotes.quotee_id
  INNER JOIN contexts ON contexts.id = quotes.context_id`

const (
	newestFirst = `
ORDER BY quotes.created_at DESC`
	pageClause = `
LIMIT $%d OFFSET $%d`
	inUserContexts = `
  INNER JOIN contexts_users ON contexts_users.context_id = quotes.context_id`
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(s scanner) (models.Quote, error) {
	var q models.Quote
	err := s.Scan(&q.ID, &q.QuoteText, &q.ContextID, &q.QuoterID, &q.QuoteeID,
		&q.CreatedAt, &q.UpdatedAt, &q.Hidden)
	return q, err
}

func scanQuoteWithUsers(s scanner) (models.QuoteWithUsers, error) {
	var r models.QuoteWithUsers
	q := &r.Quote
	err := s.Scan(&q.ID, &q.QuoteText, &q.ContextID, &q.QuoterID, &q.QuoteeID,
		&q.CreatedAt, &q.UpdatedAt, &q.Hidden,
		&r.CommentsCount,
		&r.Quoter.Username, &r.Quoter.Fullname, &r.Quoter.EmailAddress, &r.Quoter.OpenID,
		&r.Quotee.Username, &r.Quotee.Fullname, &r.Quotee.EmailAddress, &r.Quotee.OpenID,
		&r.Context.Name, &r.Context.Description)
	if err != nil {
		return r, err
	}
	r.Quoter.ID = q.QuoterID
	r.Quotee.ID = q.QuoteeID
	r.Context.ID = q.ContextID
	return r, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Single quote                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// FetchOne loads a bare quote, hidden or not. A missing quote is (nil, nil).
func (s *Store) FetchOne(ctx context.Context, id int64) (*models.Quote, error) {
	const query = `SELECT ` + quoteColumns + ` FROM quotes WHERE quotes.id = $1`
	q, err := scanQuote(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FetchOne: %w", err)
	}
	return &q, nil
}

// FetchOneWithUsers loads a quote with its people and context. A missing
// quote is (nil, nil).
func (s *Store) FetchOneWithUsers(ctx context.Context, id int64) (*models.QuoteWithUsers, error) {
	const query = withUsersFrom + `
WHERE quotes.id = $1`
	q, err := scanQuoteWithUsers(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FetchOneWithUsers: %w", err)
	}
	return &q, nil
}

// FetchLatestForContext loads the newest visible quote in the context, or
// (nil, nil) when it has none.
func (s *Store) FetchLatestForContext(ctx context.Context, contextID int64) (*models.QuoteWithUsers, error) {
	const query = withUsersFrom + `
WHERE NOT quotes.hidden AND quotes.context_id = $1` + newestFirst + `
LIMIT 1`
	return s.one(ctx, "FetchLatestForContext", query, contextID)
}

// FetchRandom picks any visible quote. (nil, nil) when there are none.
func (s *Store) FetchRandom(ctx context.Context) (*models.QuoteWithUsers, error) {
	const query = withUsersFrom + `
WHERE NOT quotes.hidden
ORDER BY random()
LIMIT 1`
	return s.one(ctx, "FetchRandom", query)
}

// FetchRandomForUserContexts picks a visible quote from the contexts the
// user belongs to. (nil, nil) when those contexts hold no quotes.
func (s *Store) FetchRandomForUserContexts(ctx context.Context, userID int64) (*models.QuoteWithUsers, error) {
	const query = withUsersFrom + inUserContexts + `
WHERE NOT quotes.hidden AND contexts_users.user_id = $1
ORDER BY random()
LIMIT 1`
	return s.one(ctx, "FetchRandomForUserContexts", query, userID)
}

/*─────────────────────────────────────────────────────────────────────────────*
| All visible quotes                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Store) Count(ctx context.Context) (int, error) {
	return s.count(ctx, "Count", `SELECT COUNT(*) FROM quotes WHERE NOT hidden`)
}

func (s *Store) FetchPage(ctx context.Context, page paging.Page) ([]models.QuoteWithUsers, error) {
	query := withUsersFrom + `
WHERE NOT quotes.hidden` + newestFirst + fmt.Sprintf(pageClause, 1, 2)
	return s.list(ctx, "FetchPage", query, page.Limit, page.Start)
}

func (s *Store) FetchAll(ctx context.Context) ([]models.QuoteWithUsers, error) {
	const query = withUsersFrom + `
WHERE NOT quotes.hidden` + newestFirst
	return s.list(ctx, "FetchAll", query)
}

/*─────────────────────────────────────────────────────────────────────────────*
| By quotee                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Store) CountForQuotee(ctx context.Context, quoteeID int64) (int, error) {
	return s.count(ctx, "CountForQuotee",
		`SELECT COUNT(*) FROM quotes WHERE NOT hidden AND quotes.quotee_id = $1`, quoteeID)
}

func (s *Store) FetchPageForQuotee(ctx context.Context, quoteeID int64, page paging.Page) ([]models.QuoteWithUsers, error) {
	query := withUsersFrom + `
WHERE NOT quotes.hidden AND quotes.quotee_id = $1` + newestFirst + fmt.Sprintf(pageClause, 2, 3)
	return s.list(ctx, "FetchPageForQuotee", query, quoteeID, page.Limit, page.Start)
}

func (s *Store) FetchAllForQuotee(ctx context.Context, quoteeID int64) ([]models.QuoteWithUsers, error) {
	const query = withUsersFrom + `
WHERE NOT quotes.hidden AND quotes.quotee_id = $1` + newestFirst
	return s.list(ctx, "FetchAllForQuotee", query, quoteeID)
}

/*─────────────────────────────────────────────────────────────────────────────*
| By context                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Store) CountForContext(ctx context.Context, contextID int64) (int, error) {
	return s.count(ctx, "CountForContext",
		`SELECT COUNT(*) FROM quotes WHERE NOT hidden AND quotes.context_id = $1`, contextID)
}

func (s *Store) FetchPageForContext(ctx context.Context, contextID int64, page paging.Page) ([]models.QuoteWithUsers, error) {
	query := withUsersFrom + `
WHERE NOT quotes.hidden AND quotes.context_id = $1` + newestFirst + fmt.Sprintf(pageClause, 2, 3)
	return s.list(ctx, "FetchPageForContext", query, contextID, page.Limit, page.Start)
}

func (s *Store) FetchAllForContext(ctx context.Context, contextID int64) ([]models.QuoteWithUsers, error) {
	const query = withUsersFrom + `
WHERE NOT quotes.hidden AND quotes.context_id = $1` + newestFirst
	return s.list(ctx, "FetchAllForContext", query, contextID)
}

/*─────────────────────────────────────────────────────────────────────────────*
| In the contexts a user belongs to                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Store) CountForUserContexts(ctx context.Context, userID int64) (int, error) {
	return s.count(ctx, "CountForUserContexts", `SELECT COUNT(*) FROM quotes`+inUserContexts+`
WHERE NOT hidden AND contexts_users.user_id = $1`, userID)
}

func (s *Store) FetchPageForUserContexts(ctx context.Context, userID int64, page paging.Page) ([]models.QuoteWithUsers, error) {
	query := withUsersFrom + inUserContexts + `
WHERE NOT quotes.hidden AND contexts_users.user_id = $1` + newestFirst + fmt.Sprintf(pageClause, 2, 3)
	return s.list(ctx, "FetchPageForUserContexts", query, userID, page.Limit, page.Start)
}

func (s *Store) FetchAllForUserContexts(ctx context.Context, userID int64) ([]models.QuoteWithUsers, error) {
	const query = withUsersFrom + inUserContexts + `
WHERE NOT quotes.hidden AND contexts_users.user_id = $1` + newestFirst
	return s.list(ctx, "FetchAllForUserContexts", query, userID)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Store) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}

func (s *Store) one(ctx context.Context, op, query string, args ...any) (*models.QuoteWithUsers, error) {
	q, err := scanQuoteWithUsers(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &q, nil
}

func (s *Store) list(ctx context.Context, op, query string, args ...any) ([]models.QuoteWithUsers, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.QuoteWithUsers
	for rows.Next() {
		q, err := scanQuoteWithUsers(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
