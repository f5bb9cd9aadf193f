// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/quotebook/internal/app/features/shared"
	"github.com/dalemusser/quotebook/internal/app/system/paging"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

type listData struct {
	viewdata.BaseVM
	Users []shared.UserItem
	Pager shared.Pager
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /users                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Users.Count(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: count", err, "", "/")
		return
	}
	state := paging.NewState(total, paging.ListingPageSize, paging.ParsePage(r))
	us, err := h.Users.FetchPage(ctx, state.Current)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: fetch page", err, "", "/")
		return
	}

	templates.Render(w, r, "users_index", listData{
		BaseVM: viewdata.NewBaseVM(r, "People", "/"),
		Users:  shared.UserItems(us),
		Pager:  shared.NewPager(state, "/users"),
	})
}
