package navigation_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/quotebook/internal/app/system/navigation"
)

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to root", target: "", want: "/"},
		{name: "root", target: "/", want: "/"},
		{name: "context path", target: "/contexts/5", want: "/contexts/5"},
		{name: "path with query", target: "/quotes?page=2", want: "/quotes?page=2"},
		{name: "absolute url", target: "http://evil.example/x", wantErr: true},
		{name: "https url", target: "https://evil.example", wantErr: true},
		{name: "protocol relative", target: "//evil.example", wantErr: true},
		{name: "backslash trick", target: "/\\evil.example", wantErr: true},
		{name: "relative without slash", target: "contexts/5", wantErr: true},
		{name: "javascript scheme", target: "javascript:alert(1)", wantErr: true},
		{name: "control character", target: "/a\r\nLocation: x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := navigation.SafeRedirect(tt.target)
			if tt.wantErr {
				if !errors.Is(err, navigation.ErrOpenRedirect) {
					t.Errorf("SafeRedirect(%q) error = %v, want ErrOpenRedirect", tt.target, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SafeRedirect(%q) unexpected error: %v", tt.target, err)
			}
			if got != tt.want {
				t.Errorf("SafeRedirect(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

func TestRedirectTarget(t *testing.T) {
	r := httptest.NewRequest("GET", "/logout?redirect=%2Fusers%2F3", nil)
	got, err := navigation.RedirectTarget(r)
	if err != nil || got != "/users/3" {
		t.Errorf("RedirectTarget() = %q, %v; want /users/3, nil", got, err)
	}

	r = httptest.NewRequest("GET", "/logout?redirect=%2F%2Fevil.example", nil)
	if _, err := navigation.RedirectTarget(r); err == nil {
		t.Error("RedirectTarget() accepted a protocol-relative target")
	}
}

func TestLoginURL(t *testing.T) {
	if got := navigation.LoginURL("/"); got != "/login" {
		t.Errorf("LoginURL(/) = %q, want /login", got)
	}
	if got := navigation.LoginURL("/quotes/new"); got != "/login?redirect=%2Fquotes%2Fnew" {
		t.Errorf("LoginURL(/quotes/new) = %q", got)
	}
}
