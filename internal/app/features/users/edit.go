// internal/app/features/users/edit.go
package users

import (
	"net/http"

	uierrors "github.com/dalemusser/quotebook/internal/app/features/errors"
	"github.com/dalemusser/quotebook/internal/app/features/shared"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

type editData struct {
	viewdata.BaseVM
	Person   shared.UserItem
	Fullname string
	Username string
	Email    string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /users/{id}/edit                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeEdit shows the profile form. People can only edit themselves, so
// the form is filled from the session user and no lookup is needed.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	me, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "", "")
		return
	}
	id, ok := shared.ParseID(r, "id")
	if !ok {
		h.ErrLog.LogNotFound(w, r, "user")
		return
	}
	if id != me.ID {
		uierrors.RenderForbidden(w, r, "You can only edit your own profile.", shared.UserURL(id))
		return
	}

	data := editData{
		BaseVM:   viewdata.NewBaseVM(r, "Edit profile", shared.UserURL(me.ID)),
		Person:   shared.NewUserItem(*me, shared.LargeAvatar),
		Fullname: me.Fullname,
		Email:    me.Email(),
	}
	if me.Username != nil {
		data.Username = *me.Username
	}
	templates.Render(w, r, "users_edit", data)
}
