// internal/app/store/comments/commentstore.go
package commentstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dalemusser/quotebook/internal/domain/models"
)

const commentColumns = `comments.id, comments.quote_id, comments.user_id, comments.body,
  comments.created_at AT TIME ZONE 'UTC' AS created_at`

// Every query below filters NOT quotes.hidden: comments on a hidden quote
// are as invisible as the quote.

// withQuoteFrom selects a comment with its author, quote text, and the
// quote's context.
const withQuoteFrom = `SELECT ` + commentColumns + `,
  quotes.quote_text,
  quotes.context_id,
  users.email_address AS user_email_address,
  users.username AS user_username,
  users.fullname AS user_fullname,
  users.openid AS user_openid,
  contexts.name AS context_name,
  contexts.description AS context_description
FROM comments
  INNER JOIN quotes ON quotes.id = comments.quote_id
  INNER JOIN users ON users.id = comments.user_id
  INNER JOIN contexts ON contexts.id = quotes.context_id`

// withQuoteeFrom selects a comment with its author, quote text, and the
// quotee.
const withQuoteeFrom = `SELECT ` + commentColumns + `,
  quotes.quote_text,
  quotes.quotee_id,
  users.email_address AS user_email_address,
  users.username AS user_username,
  users.fullname AS user_fullname,
  users.openid AS user_openid,
  quotee.email_address AS quotee_email_address,
  quotee.username AS quotee_username,
  quotee.fullname AS quotee_fullname,
  quotee.openid AS quotee_openid
FROM comments
  INNER JOIN quotes ON quotes.id = comments.quote_id
  INNER JOIN users ON users.id = comments.user_id
  INNER JOIN users AS quotee ON quotee.id = quotes.quotee_id`

const inUserContexts = `
  INNER JOIN contexts_users ON contexts_users.context_id = quotes.context_id`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWithQuote(s scanner) (models.CommentWithQuote, error) {
	var r models.CommentWithQuote
	c := &r.Comment
	err := s.Scan(&c.ID, &c.QuoteID, &c.UserID, &c.Body, &c.CreatedAt,
		&r.QuoteText, &r.Context.ID,
		&r.User.EmailAddress, &r.User.Username, &r.User.Fullname, &r.User.OpenID,
		&r.Context.Name, &r.Context.Description)
	r.User.ID = c.UserID
	return r, err
}

func scanWithQuotee(s scanner) (models.CommentWithQuotee, error) {
	var r models.CommentWithQuotee
	c := &r.Comment
	err := s.Scan(&c.ID, &c.QuoteID, &c.UserID, &c.Body, &c.CreatedAt,
		&r.QuoteText, &r.Quotee.ID,
		&r.User.EmailAddress, &r.User.Username, &r.User.Fullname, &r.User.OpenID,
		&r.Quotee.EmailAddress, &r.Quotee.Username, &r.Quotee.Fullname, &r.Quotee.OpenID)
	r.User.ID = c.UserID
	return r, err
}

// FetchOne loads a comment, which must belong to the given quote. A
// missing comment, or one on a hidden quote, is (nil, nil).
func (s *Store) FetchOne(ctx context.Context, quoteID, commentID int64) (*models.CommentWithQuote, error) {
	const query = withQuoteFrom + `
WHERE NOT quotes.hidden AND comments.quote_id = $1 AND comments.id = $2`
	c, err := scanWithQuote(s.db.QueryRowContext(ctx, query, quoteID, commentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FetchOne: %w", err)
	}
	return &c, nil
}

// FetchAllForQuote lists a quote's comments, oldest first.
func (s *Store) FetchAllForQuote(ctx context.Context, quoteID int64) ([]models.CommentWithQuote, error) {
	const query = withQuoteFrom + `
WHERE NOT quotes.hidden AND comments.quote_id = $1
ORDER BY comments.created_at ASC`
	return s.listWithQuote(ctx, "FetchAllForQuote", query, quoteID)
}

// Fetch5ForUser lists the user's five most recent comments.
func (s *Store) Fetch5ForUser(ctx context.Context, userID int64) ([]models.CommentWithQuote, error) {
	const query = withQuoteFrom + `
WHERE NOT quotes.hidden AND comments.user_id = $1
ORDER BY comments.created_at DESC
LIMIT 5`
	return s.listWithQuote(ctx, "Fetch5ForUser", query, userID)
}

// Fetch5ForContext lists the five most recent comments on quotes in the
// context.
func (s *Store) Fetch5ForContext(ctx context.Context, contextID int64) ([]models.CommentWithQuote, error) {
	const query = withQuoteFrom + `
WHERE NOT quotes.hidden AND quotes.context_id = $1
ORDER BY comments.created_at DESC
LIMIT 5`
	return s.listWithQuote(ctx, "Fetch5ForContext", query, contextID)
}

// Fetch5ForUserContexts lists the five most recent comments on quotes in
// any context the user belongs to.
func (s *Store) Fetch5ForUserContexts(ctx context.Context, userID int64) ([]models.CommentWithQuote, error) {
	const query = withQuoteFrom + inUserContexts + `
WHERE NOT quotes.hidden AND contexts_users.user_id = $1
ORDER BY comments.created_at DESC
LIMIT 5`
	return s.listWithQuote(ctx, "Fetch5ForUserContexts", query, userID)
}

// FetchAllWithQuotee lists every comment, newest first.
func (s *Store) FetchAllWithQuotee(ctx context.Context) ([]models.CommentWithQuotee, error) {
	const query = withQuoteeFrom + `
WHERE NOT quotes.hidden
ORDER BY comments.created_at DESC`
	return s.listWithQuotee(ctx, "FetchAllWithQuotee", query)
}

// FetchAllWithQuoteeForUserContexts lists comments on quotes in any
// context the user belongs to, newest first.
func (s *Store) FetchAllWithQuoteeForUserContexts(ctx context.Context, userID int64) ([]models.CommentWithQuotee, error) {
	const query = withQuoteeFrom + inUserContexts + `
WHERE NOT quotes.hidden AND contexts_users.user_id = $1
ORDER BY comments.created_at DESC`
	return s.listWithQuotee(ctx, "FetchAllWithQuoteeForUserContexts", query, userID)
}

// FetchAllWithQuoteeForQuote lists a quote's comments in the feed shape,
// newest first.
func (s *Store) FetchAllWithQuoteeForQuote(ctx context.Context, quoteID int64) ([]models.CommentWithQuotee, error) {
	const query = withQuoteeFrom + `
WHERE NOT quotes.hidden AND comments.quote_id = $1
ORDER BY comments.created_at DESC`
	return s.listWithQuotee(ctx, "FetchAllWithQuoteeForQuote", query, quoteID)
}

func (s *Store) listWithQuote(ctx context.Context, op, query string, args ...any) ([]models.CommentWithQuote, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.CommentWithQuote
	for rows.Next() {
		c, err := scanWithQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) listWithQuotee(ctx context.Context, op, query string, args ...any) ([]models.CommentWithQuotee, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.CommentWithQuotee
	for rows.Next() {
		c, err := scanWithQuotee(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
