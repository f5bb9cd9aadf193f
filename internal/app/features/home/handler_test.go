package home_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	uierrors "github.com/dalemusser/quotebook/internal/app/features/errors"
	"github.com/dalemusser/quotebook/internal/app/features/home"
	"github.com/dalemusser/quotebook/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*home.Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := testutil.NewMockDB(t)
	testutil.BootTemplates(t)
	logger := zap.NewNop()
	return home.NewHandler(db, uierrors.NewErrorLogger(logger), "https://quotes.example.com", logger), mock
}

func expectTop5(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`ORDER BY quotes_count DESC`).
		WillReturnRows(sqlmock.NewRows(testutil.ContextColumns).
			AddRow(int64(4), "Work", "Office life", testutil.FixtureTime, int64(12)))
}

func expectRandom(mock sqlmock.Sqlmock, text string) {
	rows := sqlmock.NewRows(testutil.QuoteWithColumns)
	if text != "" {
		rows = testutil.QuoteRow(rows, 11, text)
	}
	mock.ExpectQuery(`WHERE NOT quotes.hidden\s+ORDER BY random\(\)\s+LIMIT 1`).WillReturnRows(rows)
}

func TestServeIndex_Anonymous(t *testing.T) {
	h, mock := newTestHandler(t)

	expectTop5(mock)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM quotes WHERE NOT hidden`).
		WillReturnRows(sqlmock.NewRows(testutil.CountColumns).AddRow(int64(12)))
	mock.ExpectQuery(`WHERE NOT quotes.hidden\s+ORDER BY quotes.created_at DESC\s+LIMIT`).
		WithArgs(5, 5).
		WillReturnRows(testutil.QuoteRow(sqlmock.NewRows(testutil.QuoteWithColumns), 7, "Hello"))
	expectRandom(mock, "Serendipity")

	rec := testutil.Serve(h.ServeIndex, testutil.NewRequest("GET", "/?page=1"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "<title>theQuotebook: Home</title>")
	rec.AssertContains(t, "Latest quotes")
	rec.AssertContains(t, `href="/quotes/7"`)
	rec.AssertContains(t, "Busiest contexts")
	rec.AssertContains(t, "Random quote")
	rec.AssertContains(t, "Serendipity")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestServeIndex_ClampsPastLastPage(t *testing.T) {
	h, mock := newTestHandler(t)

	expectTop5(mock)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM quotes`).
		WillReturnRows(sqlmock.NewRows(testutil.CountColumns).AddRow(int64(12)))
	// 12 quotes at 5 per page: page 99 clamps to offset 2, start 10.
	mock.ExpectQuery(`LIMIT`).
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows(testutil.QuoteWithColumns))
	expectRandom(mock, "")

	rec := testutil.Serve(h.ServeIndex, testutil.NewRequest("GET", "/?page=99"))

	rec.AssertStatus(t, http.StatusOK)
	if strings.Contains(rec.Body.String(), "Random quote") {
		t.Error("random quote box shown with no quotes")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestServeIndex_SignedInUsesMemberContexts(t *testing.T) {
	h, mock := newTestHandler(t)
	ann := testutil.Ann()

	expectTop5(mock)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM quotes\s+INNER JOIN contexts_users`).
		WithArgs(ann.ID).
		WillReturnRows(sqlmock.NewRows(testutil.CountColumns).AddRow(int64(3)))
	mock.ExpectQuery(`contexts_users.user_id = \$1\s+ORDER BY quotes.created_at DESC\s+LIMIT`).
		WithArgs(ann.ID, 5, 0).
		WillReturnRows(testutil.QuoteRow(sqlmock.NewRows(testutil.QuoteWithColumns), 7, "Hello"))
	mock.ExpectQuery(`FROM contexts\s+INNER JOIN contexts_users`).
		WithArgs(ann.ID).
		WillReturnRows(sqlmock.NewRows(testutil.ContextColumns))
	mock.ExpectQuery(`FROM comments`).
		WithArgs(ann.ID).
		WillReturnRows(sqlmock.NewRows(testutil.CommentWithQuoteColumns))
	mock.ExpectQuery(`contexts_users.user_id = \$1\s+ORDER BY random\(\)`).
		WithArgs(ann.ID).
		WillReturnRows(testutil.QuoteRow(sqlmock.NewRows(testutil.QuoteWithColumns), 12, "From your contexts"))

	rec := testutil.Serve(h.ServeIndex, testutil.NewAuthenticatedRequest("GET", "/", ann))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Quotes in your contexts")
	rec.AssertContains(t, "/users/1/relevant_quotes.atom")
	rec.AssertContains(t, "From your contexts")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestServeIndex_RandomQuoteFallsBackToWholeSite(t *testing.T) {
	h, mock := newTestHandler(t)
	ann := testutil.Ann()

	expectTop5(mock)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM quotes\s+INNER JOIN contexts_users`).
		WithArgs(ann.ID).
		WillReturnRows(sqlmock.NewRows(testutil.CountColumns).AddRow(int64(0)))
	mock.ExpectQuery(`contexts_users.user_id = \$1\s+ORDER BY quotes.created_at DESC\s+LIMIT`).
		WithArgs(ann.ID, 5, 0).
		WillReturnRows(sqlmock.NewRows(testutil.QuoteWithColumns))
	mock.ExpectQuery(`FROM contexts\s+INNER JOIN contexts_users`).
		WithArgs(ann.ID).
		WillReturnRows(sqlmock.NewRows(testutil.ContextColumns))
	mock.ExpectQuery(`FROM comments`).
		WithArgs(ann.ID).
		WillReturnRows(sqlmock.NewRows(testutil.CommentWithQuoteColumns))
	mock.ExpectQuery(`contexts_users.user_id = \$1\s+ORDER BY random\(\)`).
		WithArgs(ann.ID).
		WillReturnRows(sqlmock.NewRows(testutil.QuoteWithColumns))
	expectRandom(mock, "Anywhere at all")

	rec := testutil.Serve(h.ServeIndex, testutil.NewAuthenticatedRequest("GET", "/", ann))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Anywhere at all")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestServeIndex_DatabaseError(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`ORDER BY quotes_count DESC`).WillReturnError(errors.New("connection reset"))

	rec := testutil.Serve(h.ServeIndex, testutil.NewRequest("GET", "/"))

	rec.AssertStatus(t, http.StatusInternalServerError)
}

func TestServeCommentsAtom(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`INNER JOIN users AS quotee`).
		WillReturnRows(testutil.CommentWithQuoteeRow(sqlmock.NewRows(testutil.CommentWithQuoteeColumns), 3, 7, "nice"))

	rec := testutil.Serve(h.ServeCommentsAtom, testutil.NewRequest("GET", "/comments.atom"))

	rec.AssertStatus(t, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/atom+xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	rec.AssertContains(t, "theQuotebook: All comments")
	rec.AssertContains(t, "https://quotes.example.com/quotes/7/comments/3")
	rec.AssertContains(t, "ann on Hello (Bob Speaker)")
}

func TestServeComments(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`INNER JOIN users AS quotee`).
		WillReturnRows(testutil.CommentWithQuoteeRow(sqlmock.NewRows(testutil.CommentWithQuoteeColumns), 3, 7, "nice one"))

	rec := testutil.Serve(h.ServeComments, testutil.NewRequest("GET", "/comments"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "All comments")
	rec.AssertContains(t, "nice one")
	rec.AssertContains(t, `href="/quotes/7/comments/3"`)
}

func TestServeComments_DatabaseError(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`FROM comments`).WillReturnError(errors.New("boom"))

	rec := testutil.Serve(h.ServeComments, testutil.NewRequest("GET", "/comments"))

	rec.AssertStatus(t, http.StatusInternalServerError)
}

func TestRegister_RoutesCommentsAtom(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery(`INNER JOIN users AS quotee`).
		WillReturnRows(sqlmock.NewRows(testutil.CommentWithQuoteeColumns))

	r := chi.NewRouter()
	home.Register(r, h)

	rec := testutil.Serve(r.ServeHTTP, testutil.NewRequest("GET", "/comments.atom"))

	rec.AssertStatus(t, http.StatusOK)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}

	rec = testutil.Serve(r.ServeHTTP, testutil.NewRequest("GET", "/comments/extra"))
	rec.AssertStatus(t, http.StatusNotFound)
}
