package userstore_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	userstore "github.com/dalemusser/quotebook/internal/app/store/users"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/paging"
	"github.com/dalemusser/quotebook/internal/domain/models"
)

var _ auth.UserFetcher = (*userstore.Store)(nil)

var userCols = []string{"id", "email_address", "username", "fullname", "openid"}

func strptr(s string) *string { return &s }

/* ──────────────────────────────── FetchOne ──────────────────────────────── */

func TestFetchOne(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := &models.User{ID: 3, EmailAddress: strptr("ann@example.com"), Fullname: "Ann Author"}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE users.id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(3), "ann@example.com", nil, "Ann Author", nil))

	got, err := userstore.New(db).FetchOne(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchOne err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestFetchOne_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`FROM users`).WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(userCols))

	got, err := userstore.New(db).FetchOne(context.Background(), 9)
	if err != nil || got != nil {
		t.Fatalf("FetchOne = %v, %v; want nil, nil", got, err)
	}
}

func TestFetchOne_DBError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	boom := errors.New("connection reset")
	mock.ExpectQuery(`FROM users`).WithArgs(int64(1)).WillReturnError(boom)

	_, err := userstore.New(db).FetchOne(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Fatalf("FetchOne err=%v, want wrapped %v", err, boom)
	}
}

/* ──────────────────────────────── FetchByEmail ──────────────────────────────── */

func TestFetchByEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE users.email_address = $1`)).
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(5), "bob@example.com", "bob", "Bob Speaker", nil))

	got, err := userstore.New(db).FetchByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("FetchByEmail err=%v", err)
	}
	want := &models.User{ID: 5, EmailAddress: strptr("bob@example.com"), Username: strptr("bob"), Fullname: "Bob Speaker"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

/* ──────────────────────────────── Paging ──────────────────────────────── */

func TestCountAndFetchPage(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(45)))
	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $1 OFFSET $2`)).
		WithArgs(20, 40).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(1), nil, nil, "One", nil).
			AddRow(int64(2), nil, nil, "Two", nil))

	s := userstore.New(db)
	n, err := s.Count(context.Background())
	if err != nil || n != 45 {
		t.Fatalf("Count = %d, %v; want 45", n, err)
	}
	page := paging.NewPages(n, paging.ListingPageSize).WithOffset(2)
	got, err := s.FetchPage(context.Background(), page)
	if err != nil || len(got) != 2 {
		t.Fatalf("FetchPage err=%v len=%d", err, len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestFetchForContext(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`INNER JOIN contexts_users`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(1), nil, nil, "One", nil))

	got, err := userstore.New(db).FetchForContext(context.Background(), 4)
	if err != nil || len(got) != 1 {
		t.Fatalf("FetchForContext err=%v len=%d", err, len(got))
	}
}

/* ──────────────────────────────── Membership ──────────────────────────────── */

func TestJoinLeaveContext(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO contexts_users`)).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO contexts_users`)).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM contexts_users`)).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := userstore.New(db)
	ctx := context.Background()
	if err := s.JoinContext(ctx, 1, 2); err != nil {
		t.Fatalf("JoinContext err=%v", err)
	}
	if err := s.JoinContext(ctx, 1, 2); err != nil {
		t.Fatalf("second JoinContext err=%v, want no-op", err)
	}
	if err := s.LeaveContext(ctx, 1, 2); err != nil {
		t.Fatalf("LeaveContext err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestIsMember(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := userstore.New(db).IsMember(context.Background(), 1, 2)
	if err != nil || !ok {
		t.Fatalf("IsMember = %v, %v; want true", ok, err)
	}
}
