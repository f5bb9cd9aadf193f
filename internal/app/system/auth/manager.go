// internal/app/system/auth/manager.go
package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/quotebook/internal/app/system/navigation"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	// SessionCookie holds the signed session token.
	SessionCookie = "session"

	// DefaultSessionDuration is 30 days.
	DefaultSessionDuration = 30 * 24 * time.Hour

	noticeLoggedIn  = "Logged in successfully."
	noticeLoggedOut = "Logged out."
)

// UserFetcher loads a user by id. It returns (nil, nil) when no such user
// exists.
type UserFetcher interface {
	FetchOne(ctx context.Context, id int64) (*models.User, error)
}

// SessionManager issues and verifies session tokens and resolves the
// per-request Session. It holds only immutable configuration and is safe
// for concurrent use.
type SessionManager struct {
	secret   []byte
	duration time.Duration
	secure   bool
	now      func() time.Time
	fetcher  UserFetcher
	log      *zap.Logger
}

// NewSessionManager creates a SessionManager. secret signs session tokens
// and must be non-empty; duration <= 0 selects DefaultSessionDuration.
// secure marks cookies Secure (production over HTTPS).
func NewSessionManager(secret []byte, duration time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if len(secret) == 0 {
		return nil, ErrNoSigningKey
	}
	if len(secret) < 32 {
		logger.Warn("session secret is short; 32+ bytes recommended",
			zap.Int("length", len(secret)))
	}
	if duration <= 0 {
		duration = DefaultSessionDuration
	}
	return &SessionManager{
		secret:   secret,
		duration: duration,
		secure:   secure,
		now:      time.Now,
		log:      logger,
	}, nil
}

// SetUserFetcher sets the lookup used to turn a token's subject into a user.
// Call once at startup.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) { sm.fetcher = f }

// SetClock replaces the time source. Call before serving requests.
func (sm *SessionManager) SetClock(now func() time.Time) { sm.now = now }

// Duration returns the configured session lifetime.
func (sm *SessionManager) Duration() time.Duration { return sm.duration }

/*─────────────────────────────────────────────────────────────────────────────*
| Per-request resolution                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// Resolve derives the Session for r and returns the cookies the response
// must carry to clear any flash that was read. It never fails: every
// problem with the session cookie yields an anonymous Session.
func (sm *SessionManager) Resolve(r *http.Request) (Session, []*http.Cookie) {
	flash, clears := ResolveFlash(r.Cookies())
	return Session{
		Flash:       flash,
		CurrentUser: sm.userFromRequest(r),
		Path:        r.URL.RequestURI(),
	}, clears
}

// userFromRequest is the single place where a session cookie becomes a
// user. Any failure downgrades to anonymous.
func (sm *SessionManager) userFromRequest(r *http.Request) *models.User {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		recordResolution(outcomeAnonymous)
		return nil
	}

	claims, err := sm.ParseToken(c.Value)
	if err != nil {
		sm.log.Debug("session token rejected", zap.Error(err))
		recordResolution(outcomeInvalid)
		return nil
	}
	if sm.fetcher == nil {
		recordResolution(outcomeAnonymous)
		return nil
	}

	id, _ := claims.UserID()
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := sm.fetcher.FetchOne(ctx, id)
	if err != nil {
		sm.log.Warn("session user lookup failed", zap.Int64("user_id", id), zap.Error(err))
		recordResolution(outcomeLookupFailed)
		return nil
	}
	if u == nil {
		sm.log.Debug("session refers to missing user", zap.Int64("user_id", id))
		recordResolution(outcomeUnknownUser)
		return nil
	}
	recordResolution(outcomeAuthenticated)
	return u
}

// Load resolves the Session, clears read flash cookies on the response,
// and stores the Session in the request context.
func (sm *SessionManager) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, clears := sm.Resolve(r)
		for _, c := range clears {
			http.SetCookie(w, c)
		}
		next.ServeHTTP(w, WithSession(r, s))
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Login / logout cookies                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// StartSession issues a token for userID and sets the session cookie and
// the "logged in" notice.
func (sm *SessionManager) StartSession(w http.ResponseWriter, userID int64) error {
	token, exp, err := sm.IssueToken(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sm.duration / time.Second),
		Expires:  exp,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	SetNotice(w, noticeLoggedIn)
	return nil
}

// EndSession clears the session cookie and sets the "logged out" notice.
func (sm *SessionManager) EndSession(w http.ResponseWriter) {
	c := expiredCookie(SessionCookie)
	c.Secure = sm.secure
	http.SetCookie(w, c)
	SetNotice(w, noticeLoggedOut)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Access guards                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// RequireSignedIn ensures there is a user in the Session (set by Load).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?redirect=...
//   - HTML: 303 redirect to /login?redirect=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		login := navigation.LoginURL(r.URL.RequestURI())

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", login)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if wantsHTML(r) {
			http.Redirect(w, r, login, http.StatusSeeOther)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// CallbackURL returns the absolute Google sign-in callback for baseURL,
// carrying the redirect target.
func CallbackURL(baseURL, target string) string {
	u := strings.TrimRight(baseURL, "/") + "/google_auth"
	if target == "" {
		return u
	}
	return u + "?" + navigation.RedirectParam + "=" + url.QueryEscape(target)
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html")
}
