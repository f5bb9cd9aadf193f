// internal/app/features/contexts/membership.go
package contexts

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/quotebook/internal/app/features/errors"
	"github.com/dalemusser/quotebook/internal/app/features/shared"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /contexts/{id}/join, /contexts/{id}/leave                              |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleJoin adds the signed-in user to the context. Joining twice is a
// no-op.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	h.changeMembership(w, r, true)
}

// HandleLeave removes the signed-in user from the context.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	h.changeMembership(w, r, false)
}

func (h *Handler) changeMembership(w http.ResponseWriter, r *http.Request, join bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c := h.loadContext(ctx, w, r)
	if c == nil {
		return
	}

	var err error
	var notice string
	if join {
		err = h.Users.JoinContext(ctx, user.ID, c.ID)
		notice = "You joined " + c.Name + "."
	} else {
		err = h.Users.LeaveContext(ctx, user.ID, c.ID)
		notice = "You left " + c.Name + "."
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "contexts: change membership", err,
			"We couldn't update your membership. Please try again.", shared.ContextURL(c.ID))
		return
	}

	h.Log.Info("context membership changed",
		zap.Int64("user_id", user.ID),
		zap.Int64("context_id", c.ID),
		zap.Bool("joined", join))
	auth.SetNotice(w, notice)

	dest := shared.ContextURL(c.ID)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
