package errors

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/quotebook/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// serve runs fn and ignores template failures, so only status and
// logging are checked.
func serve(fn func(w http.ResponseWriter, r *http.Request)) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/quotes/7", nil)
	func() {
		defer func() { _ = recover() }()
		fn(rec, req)
	}()
	return rec
}

func TestErrorLogger(t *testing.T) {
	tests := []struct {
		name      string
		call      func(e *ErrorLogger, w http.ResponseWriter, r *http.Request)
		wantCode  int
		wantLevel zapcore.Level
	}{
		{"server error", func(e *ErrorLogger, w http.ResponseWriter, r *http.Request) {
			e.LogServerError(w, r, "db failed", stderrors.New("boom"), "", "/")
		}, http.StatusInternalServerError, zapcore.ErrorLevel},
		{"not found", func(e *ErrorLogger, w http.ResponseWriter, r *http.Request) {
			e.LogNotFound(w, r, "quote")
		}, http.StatusNotFound, zapcore.DebugLevel},
		{"bad request", func(e *ErrorLogger, w http.ResponseWriter, r *http.Request) {
			e.LogBadRequest(w, r, "bad redirect", stderrors.New("nope"), "", "/")
		}, http.StatusBadRequest, zapcore.InfoLevel},
		{"unauthorized", func(e *ErrorLogger, w http.ResponseWriter, r *http.Request) {
			e.LogUnauthorized(w, r, "csrf mismatch", stderrors.New("nope"), "", "")
		}, http.StatusUnauthorized, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			e := NewErrorLogger(zap.New(core))

			rec := serve(func(w http.ResponseWriter, r *http.Request) { tt.call(e, w, r) })

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("logged %d entries, want 1", len(entries))
			}
			if entries[0].Level != tt.wantLevel {
				t.Errorf("level = %v, want %v", entries[0].Level, tt.wantLevel)
			}
			if got := entries[0].ContextMap()["path"]; got != "/quotes/7" {
				t.Errorf("path field = %v, want /quotes/7", got)
			}
		})
	}
}

func TestRenderForbidden_Status(t *testing.T) {
	rec := serve(func(w http.ResponseWriter, r *http.Request) {
		RenderForbidden(w, r, "", "")
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestNotFound_RendersPage(t *testing.T) {
	testutil.BootTemplates(t)

	rec := serve(NotFound)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	body := rec.Body.String()
	for _, want := range []string{"<title>theQuotebook: Not found</title>", "We couldn&#39;t find that page.", `<a href="/">Go back</a>`} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}
}
