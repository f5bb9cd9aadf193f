// internal/testutil/fixtures.go
package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dalemusser/quotebook/internal/domain/models"
)

// Fixed timestamp used by fixture rows.
var FixtureTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// NewMockDB opens a sqlmock database that is closed when the test ends.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func strptr(s string) *string { return &s }

// Ann is a user with a username and email address.
func Ann() models.User {
	return models.User{ID: 1, EmailAddress: strptr("ann@example.com"), Username: strptr("ann"), Fullname: "Ann Author"}
}

// Bob is a user known only by full name.
func Bob() models.User {
	return models.User{ID: 2, EmailAddress: strptr("bob@example.com"), Fullname: "Bob Speaker"}
}

// Column sets matching the store queries, for building sqlmock rows.
var (
	UserColumns      = []string{"id", "email_address", "username", "fullname", "openid"}
	ContextColumns   = []string{"id", "name", "description", "created_at", "quotes_count"}
	CountColumns     = []string{"count"}
	QuoteWithColumns = []string{
		"id", "quote_text", "context_id", "quoter_id", "quotee_id", "created_at", "updated_at", "hidden",
		"comments_count",
		"quoter_username", "quoter_fullname", "quoter_email_address", "quoter_openid",
		"quotee_username", "quotee_fullname", "quotee_email_address", "quotee_openid",
		"context_name", "context_description",
	}
	CommentWithQuoteColumns = []string{
		"id", "quote_id", "user_id", "body", "created_at",
		"quote_text", "context_id",
		"user_email_address", "user_username", "user_fullname", "user_openid",
		"context_name", "context_description",
	}
	CommentWithQuoteeColumns = []string{
		"id", "quote_id", "user_id", "body", "created_at",
		"quote_text", "quotee_id",
		"user_email_address", "user_username", "user_fullname", "user_openid",
		"quotee_email_address", "quotee_username", "quotee_fullname", "quotee_openid",
	}
)

// UserRow appends u to rows built from UserColumns.
func UserRow(rows *sqlmock.Rows, u models.User) *sqlmock.Rows {
	return rows.AddRow(u.ID, nullable(u.EmailAddress), nullable(u.Username), u.Fullname, nullable(u.OpenID))
}

// QuoteRow appends a visible quote by Ann about Bob in context 4.
func QuoteRow(rows *sqlmock.Rows, id int64, text string) *sqlmock.Rows {
	return rows.AddRow(id, text, int64(4), int64(1), int64(2), FixtureTime, FixtureTime, false,
		int64(0),
		"ann", "Ann Author", "ann@example.com", nil,
		nil, "Bob Speaker", "bob@example.com", nil,
		"Work", "Office life")
}

// CommentWithQuoteeRow appends a comment by Ann on a quote of Bob's.
func CommentWithQuoteeRow(rows *sqlmock.Rows, id, quoteID int64, body string) *sqlmock.Rows {
	return rows.AddRow(id, quoteID, int64(1), body, FixtureTime, "Hello", int64(2),
		"ann@example.com", "ann", "Ann Author", nil,
		"bob@example.com", nil, "Bob Speaker", nil)
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
