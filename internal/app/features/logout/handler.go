// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	uierrors "github.com/dalemusser/quotebook/internal/app/features/errors"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/navigation"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
	}
}

// ServeLogout handles GET and POST /logout?redirect=<path>.
//
// The redirect target is checked first; a rejected target leaves the
// session cookie untouched.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	target, err := navigation.RedirectTarget(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "logout: redirect rejected", err, "That sign-out link is not valid.", "/")
		return
	}

	h.SessionMgr.EndSession(w)
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("logout", zap.Int64("user_id", u.ID))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}
