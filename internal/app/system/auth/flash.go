// internal/app/system/auth/flash.go
package auth

import (
	"net/http"
	"net/url"
	"time"
)

// Flash cookie names.
const (
	NoticeCookie = "notice"
	ErrorCookie  = "error"
)

// Flash is a one-shot message shown on the next page render.
// Empty fields mean no message.
type Flash struct {
	Notice string
	Error  string
}

// Empty reports whether there is nothing to show.
func (f Flash) Empty() bool { return f.Notice == "" && f.Error == "" }

// ResolveFlash reads the notice and error cookies from an incoming cookie
// set and returns the flash together with the cookies that clear them.
// It touches no response, so callers decide when to apply the clears.
func ResolveFlash(cookies []*http.Cookie) (Flash, []*http.Cookie) {
	var f Flash
	var clears []*http.Cookie
	seen := map[string]bool{}

	for _, c := range cookies {
		switch c.Name {
		case NoticeCookie:
			if f.Notice == "" {
				f.Notice = DecodeFlash(c.Value)
			}
		case ErrorCookie:
			if f.Error == "" {
				f.Error = DecodeFlash(c.Value)
			}
		default:
			continue
		}
		if !seen[c.Name] {
			seen[c.Name] = true
			clears = append(clears, expiredCookie(c.Name))
		}
	}
	return f, clears
}

// SetFlash sets a one-shot message cookie of the given name. The message is
// query-escaped: net/http drops cookie values holding quotes, semicolons,
// or non-ASCII text.
func SetFlash(w http.ResponseWriter, name, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetNotice sets the notice flash.
func SetNotice(w http.ResponseWriter, msg string) { SetFlash(w, NoticeCookie, msg) }

// SetError sets the error flash.
func SetError(w http.ResponseWriter, msg string) { SetFlash(w, ErrorCookie, msg) }

// DecodeFlash reverses the escaping SetFlash applies. A value that does not
// unescape is shown as it arrived.
func DecodeFlash(v string) string {
	msg, err := url.QueryUnescape(v)
	if err != nil {
		return v
	}
	return msg
}

func expiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
