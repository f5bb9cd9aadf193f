// internal/app/system/auth/session.go
package auth

import (
	"context"
	"net/http"

	"github.com/dalemusser/quotebook/internal/domain/models"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Per-request session                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// Session is derived from cookies once per request. It is never stored
// server-side.
type Session struct {
	Flash       Flash
	CurrentUser *models.User // nil when anonymous
	Path        string       // request path and query, for login redirects
}

// LoggedIn reports whether the request carries a valid session for an
// existing user.
func (s Session) LoggedIn() bool { return s.CurrentUser != nil }

// UserID returns the current user's id, or 0 when anonymous.
func (s Session) UserID() int64 {
	if s.CurrentUser == nil {
		return 0
	}
	return s.CurrentUser.ID
}

type ctxKey string

const sessionKey ctxKey = "session"

// FromContext returns the Session stored by the Load middleware, or an
// anonymous Session if none is present.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey).(Session)
	return s
}

// FromRequest is FromContext(r.Context()).
func FromRequest(r *http.Request) Session {
	return FromContext(r.Context())
}

// CurrentUser returns the signed-in user and a "found?" flag.
func CurrentUser(r *http.Request) (*models.User, bool) {
	s := FromRequest(r)
	return s.CurrentUser, s.CurrentUser != nil
}

// WithSession returns r carrying s in its context.
func WithSession(r *http.Request, s Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), sessionKey, s))
}

// WithTestUser injects a signed-in user into the request context,
// bypassing the cookie. For tests only.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	s := FromRequest(r)
	s.CurrentUser = u
	if s.Path == "" {
		s.Path = r.URL.RequestURI()
	}
	return WithSession(r, s)
}
