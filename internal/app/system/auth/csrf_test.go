package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/quotebook/internal/app/system/auth"
)

func postForm(form url.Values) *http.Request {
	req := httptest.NewRequest("POST", "/google_auth", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestVerifyDoubleSubmit(t *testing.T) {
	tests := []struct {
		name    string
		cookie  string
		form    string
		wantErr bool
	}{
		{name: "match", cookie: "tok123", form: "tok123"},
		{name: "mismatch", cookie: "tok123", form: "tok124", wantErr: true},
		{name: "missing cookie", form: "tok123", wantErr: true},
		{name: "missing form field", cookie: "tok123", wantErr: true},
		{name: "both empty", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			if tt.form != "" {
				form.Set(auth.GoogleCSRFCookie, tt.form)
			}
			req := postForm(form)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: auth.GoogleCSRFCookie, Value: tt.cookie})
			}

			err := auth.VerifyDoubleSubmit(req)
			if tt.wantErr && !errors.Is(err, auth.ErrInvalidCSRF) {
				t.Errorf("VerifyDoubleSubmit() error = %v, want ErrInvalidCSRF", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("VerifyDoubleSubmit() unexpected error: %v", err)
			}
		})
	}
}

func TestIsRejection(t *testing.T) {
	if !auth.IsRejection(auth.ErrInvalidCSRF) || !auth.IsRejection(auth.ErrOpenRedirectRejected) {
		t.Error("rejection errors not recognized")
	}
	if auth.IsRejection(auth.ErrClock) {
		t.Error("ErrClock must not be a rejection")
	}
}
