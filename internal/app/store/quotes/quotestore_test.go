package quotestore_test

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	quotestore "github.com/dalemusser/quotebook/internal/app/store/quotes"
	"github.com/dalemusser/quotebook/internal/app/system/paging"
	"github.com/dalemusser/quotebook/internal/domain/models"
)

/* ──────────────────────────────── helpers ──────────────────────────────── */

var withUsersCols = []string{
	"id", "quote_text", "context_id", "quoter_id", "quotee_id", "created_at", "updated_at", "hidden",
	"comments_count",
	"quoter_username", "quoter_fullname", "quoter_email_address", "quoter_openid",
	"quotee_username", "quotee_fullname", "quotee_email_address", "quotee_openid",
	"context_name", "context_description",
}

var ts = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func strptr(s string) *string { return &s }

func withUsersRow(rows *sqlmock.Rows, id int64, text string) *sqlmock.Rows {
	return rows.AddRow(id, text, int64(4), int64(1), int64(2), ts, ts, false,
		int64(3),
		"ann", "Ann Author", "ann@example.com", nil,
		nil, "Bob Speaker", nil, nil,
		"Work", "Office life")
}

/* ──────────────────────────────── FetchOneWithUsers ──────────────────────────────── */

func TestFetchOneWithUsers(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE quotes.id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(withUsersRow(sqlmock.NewRows(withUsersCols), 7, "Hello"))

	got, err := quotestore.New(db).FetchOneWithUsers(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchOneWithUsers err=%v", err)
	}
	want := &models.QuoteWithUsers{
		Quote: models.Quote{
			ID: 7, QuoteText: "Hello", ContextID: 4, QuoterID: 1, QuoteeID: 2,
			CreatedAt: ts, UpdatedAt: ts,
		},
		Quoter:        models.User{ID: 1, Username: strptr("ann"), Fullname: "Ann Author", EmailAddress: strptr("ann@example.com")},
		Quotee:        models.User{ID: 2, Fullname: "Bob Speaker"},
		Context:       models.Context{ID: 4, Name: "Work", Description: "Office life"},
		CommentsCount: 3,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchOneWithUsers_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`FROM quotes`).WithArgs(int64(8)).WillReturnRows(sqlmock.NewRows(withUsersCols))

	got, err := quotestore.New(db).FetchOneWithUsers(context.Background(), 8)
	if err != nil || got != nil {
		t.Fatalf("FetchOneWithUsers = %v, %v; want nil, nil", got, err)
	}
}

func TestFetchOne(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	cols := []string{"id", "quote_text", "context_id", "quoter_id", "quotee_id", "created_at", "updated_at", "hidden"}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM quotes WHERE quotes.id = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(7), "Hi", int64(1), int64(1), int64(2), ts, ts, true))

	got, err := quotestore.New(db).FetchOne(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchOne err=%v", err)
	}
	if !got.Hidden {
		t.Error("FetchOne should return hidden quotes")
	}
}

/* ──────────────────────────────── listings ──────────────────────────────── */

func TestListingsExcludeHidden(t *testing.T) {
	page := paging.NewPages(30, paging.QuotesPageSize).WithOffset(1)

	tests := []struct {
		name string
		args []driver.Value
		call func(s *quotestore.Store) error
	}{
		{"FetchPage", []driver.Value{10, 10}, func(s *quotestore.Store) error {
			_, err := s.FetchPage(context.Background(), page)
			return err
		}},
		{"FetchAll", nil, func(s *quotestore.Store) error {
			_, err := s.FetchAll(context.Background())
			return err
		}},
		{"FetchPageForQuotee", []driver.Value{int64(2), 10, 10}, func(s *quotestore.Store) error {
			_, err := s.FetchPageForQuotee(context.Background(), 2, page)
			return err
		}},
		{"FetchAllForContext", []driver.Value{int64(4)}, func(s *quotestore.Store) error {
			_, err := s.FetchAllForContext(context.Background(), 4)
			return err
		}},
		{"FetchPageForUserContexts", []driver.Value{int64(1), 10, 10}, func(s *quotestore.Store) error {
			_, err := s.FetchPageForUserContexts(context.Background(), 1, page)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := sqlmock.New()
			defer func() { _ = db.Close() }()

			exp := mock.ExpectQuery(`WHERE NOT quotes.hidden`)
			if tt.args != nil {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(withUsersRow(sqlmock.NewRows(withUsersCols), 1, "x"))

			if err := tt.call(quotestore.New(db)); err != nil {
				t.Fatalf("%s err=%v", tt.name, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestCountForUserContexts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`INNER JOIN contexts_users`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(17)))

	n, err := quotestore.New(db).CountForUserContexts(context.Background(), 1)
	if err != nil || n != 17 {
		t.Fatalf("CountForUserContexts = %d, %v; want 17", n, err)
	}
}

/* ──────────────────────────────── single picks ──────────────────────────────── */

func TestFetchLatestForContext(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`WHERE NOT quotes.hidden AND quotes.context_id = \$1\s+ORDER BY quotes.created_at DESC\s+LIMIT 1$`).
		WithArgs(int64(4)).
		WillReturnRows(withUsersRow(sqlmock.NewRows(withUsersCols), 9, "Newest"))

	got, err := quotestore.New(db).FetchLatestForContext(context.Background(), 4)
	if err != nil || got == nil {
		t.Fatalf("FetchLatestForContext = %v, %v", got, err)
	}
	if got.Quote.ID != 9 || got.Context.Name != "Work" {
		t.Errorf("got quote %d in %q, want 9 in Work", got.Quote.ID, got.Context.Name)
	}
}

func TestFetchLatestForContext_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`LIMIT 1`).WithArgs(int64(4)).WillReturnRows(sqlmock.NewRows(withUsersCols))

	got, err := quotestore.New(db).FetchLatestForContext(context.Background(), 4)
	if err != nil || got != nil {
		t.Fatalf("FetchLatestForContext = %v, %v; want nil, nil", got, err)
	}
}

func TestFetchRandom(t *testing.T) {
	tests := []struct {
		name  string
		query string
		args  []driver.Value
		call  func(s *quotestore.Store) (*models.QuoteWithUsers, error)
	}{
		{"any", `WHERE NOT quotes.hidden\s+ORDER BY random\(\)\s+LIMIT 1`, nil,
			func(s *quotestore.Store) (*models.QuoteWithUsers, error) {
				return s.FetchRandom(context.Background())
			}},
		{"user contexts", `INNER JOIN contexts_users .*WHERE NOT quotes.hidden AND contexts_users.user_id = \$1\s+ORDER BY random\(\)`, []driver.Value{int64(1)},
			func(s *quotestore.Store) (*models.QuoteWithUsers, error) {
				return s.FetchRandomForUserContexts(context.Background(), 1)
			}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := sqlmock.New()
			defer func() { _ = db.Close() }()

			exp := mock.ExpectQuery(tt.query)
			if tt.args != nil {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(withUsersRow(sqlmock.NewRows(withUsersCols), 3, "Lucky"))

			got, err := tt.call(quotestore.New(db))
			if err != nil || got == nil || got.Quote.QuoteText != "Lucky" {
				t.Fatalf("got %v, %v; want quote Lucky", got, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}
