// internal/app/features/contexts/list.go
package contexts

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
	Contexts []shared.ContextItem
	Pager    shared.Pager
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /contexts                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Contexts.Count(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "contexts: count", err, "", "/")
		return
	}
	state := paging.NewState(total, paging.ListingPageSize, paging.ParsePage(r))
	cs, err := h.Contexts.FetchPage(ctx, state.Current)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "contexts: fetch page", err, "", "/")
		return
	}

	templates.Render(w, r, "contexts_index", listData{
		BaseVM:   viewdata.NewBaseVM(r, "Contexts", "/"),
		Contexts: shared.ContextItems(cs),
		Pager:    shared.NewPager(state, "/contexts"),
	})
}
