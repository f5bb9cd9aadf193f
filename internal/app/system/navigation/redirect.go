// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
)

// ErrOpenRedirect is returned when a redirect target is not a bare
// same-origin path.
var ErrOpenRedirect = errors.New("redirect target must be a relative path")

// RedirectParam is the query parameter carrying the post-login/logout target.
const RedirectParam = "redirect"

// SafeRedirect validates a redirect target. An empty target means "/".
// Accepted targets start with a single "/" and carry no scheme or host,
// so "/contexts/5" passes while "http://evil.example/x", "//evil.example"
// and "/\evil.example" are rejected.
func SafeRedirect(target string) (string, error) {
	if target == "" {
		return "/", nil
	}
	if !strings.HasPrefix(target, "/") {
		return "", ErrOpenRedirect
	}
	if strings.HasPrefix(target, "//") || strings.ContainsRune(target, '\\') {
		return "", ErrOpenRedirect
	}
	for _, c := range target {
		if c < 0x20 || c == 0x7f {
			return "", ErrOpenRedirect
		}
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return "", ErrOpenRedirect
	}
	return target, nil
}

// RedirectTarget reads the redirect query parameter from r and validates it.
func RedirectTarget(r *http.Request) (string, error) {
	return SafeRedirect(query.Get(r, RedirectParam))
}

// LoginURL builds the login path that returns to target after sign-in.
func LoginURL(target string) string {
	if target == "" || target == "/" {
		return "/login"
	}
	return "/login?" + RedirectParam + "=" + url.QueryEscape(target)
}
