// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/quotebook/internal/app/features/errors"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/googleid"
	"github.com/dalemusser/quotebook/internal/app/system/navigation"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/quotebook/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// CredentialField is the form field Google Identity Services posts the
// ID token in.
const CredentialField = "credential"

// UserLookup finds the local account for a verified email address.
type UserLookup interface {
	FetchByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler handles the Google sign-in callback.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Verifier   googleid.Verifier
	Users      UserLookup
}

func NewHandler(sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, verifier googleid.Verifier, users UserLookup, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Verifier:   verifier,
		Users:      users,
	}
}

type noAccountData struct {
	viewdata.BaseVM
	Email string
	Name  string
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /google_auth?redirect=<path>                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleCallback signs in the user named by a Google ID token.
//
// The CSRF double-submit check runs before the token is looked at, and no
// session cookie is written unless every check passes.
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		auth.RecordLogin(auth.LoginInvalidCSRF)
		h.ErrLog.LogBadRequest(w, r, "google_auth: parse form failed", err, "Invalid sign-in request.", "/login")
		return
	}

	if err := auth.VerifyDoubleSubmit(r); err != nil {
		auth.RecordLogin(auth.LoginInvalidCSRF)
		h.ErrLog.LogUnauthorized(w, r, "google_auth: csrf check failed", err, "Sign-in failed. Please try again.", "/login")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Verify(), h.Log, "google id token verify")
	defer cancel()

	claims, err := h.Verifier.Verify(ctx, r.PostFormValue(CredentialField))
	if err != nil {
		auth.RecordLogin(auth.LoginUnverified)
		h.ErrLog.LogUnauthorized(w, r, "google_auth: id token rejected", err, "Sign-in failed. Please try again.", "/login")
		return
	}
	if !claims.EmailVerified {
		auth.RecordLogin(auth.LoginUnverified)
		h.ErrLog.LogUnauthorized(w, r, "google_auth: email not verified", auth.ErrEmailNotVerified,
			"Your Google account's email address is not verified.", "/login")
		return
	}

	lookupCtx, lookupCancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer lookupCancel()

	user, err := h.Users.FetchByEmail(lookupCtx, claims.Email)
	if err != nil {
		auth.RecordLogin(auth.LoginInternalError)
		h.ErrLog.LogServerError(w, r, "google_auth: user lookup failed", err, "", "/login")
		return
	}
	if user == nil {
		auth.RecordLogin(auth.LoginNoAccount)
		h.Log.Info("google_auth: no local account", zap.String("email", claims.Email))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		templates.Render(w, r, "authgoogle_no_account", noAccountData{
			BaseVM: viewdata.NewBaseVM(r, "No account", "/"),
			Email:  claims.Email,
			Name:   claims.Name,
		})
		return
	}

	target, err := navigation.RedirectTarget(r)
	if err != nil {
		auth.RecordLogin(auth.LoginBadRedirect)
		h.ErrLog.LogUnauthorized(w, r, "google_auth: redirect rejected", err, "That sign-in link is not valid.", "/login")
		return
	}

	if err := h.SessionMgr.StartSession(w, user.ID); err != nil {
		auth.RecordLogin(auth.LoginInternalError)
		if errors.Is(err, auth.ErrClock) {
			h.Log.Error("google_auth: system clock is wrong", zap.Error(err))
		}
		h.ErrLog.LogServerError(w, r, "google_auth: start session failed", err, "", "/login")
		return
	}

	auth.RecordLogin(auth.LoginSuccess)
	h.Log.Info("google_auth: signed in", zap.Int64("user_id", user.ID))
	http.Redirect(w, r, target, http.StatusSeeOther)
}
