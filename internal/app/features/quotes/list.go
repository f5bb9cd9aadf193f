// internal/app/features/quotes/list.go
package quotes

import (
	"context"
	"net/http"

	"github.com/dalemusser/quotebook/internal/app/features/shared"
	"github.com/dalemusser/quotebook/internal/app/system/atomfeed"
	"github.com/dalemusser/quotebook/internal/app/system/paging"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type listData struct {
	viewdata.BaseVM
	Quotes []shared.QuoteItem
	Pager  shared.Pager
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /quotes                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Quotes.Count(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "quotes: count", err, "", "/")
		return
	}
	state := paging.NewState(total, paging.QuotesPageSize, paging.ParsePage(r))
	quotes, err := h.Quotes.FetchPage(ctx, state.Current)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "quotes: fetch page", err, "", "/")
		return
	}

	templates.Render(w, r, "quotes_index", listData{
		BaseVM: viewdata.NewBaseVM(r, "All quotes", "/"),
		Quotes: shared.QuoteItems(quotes),
		Pager:  shared.NewPager(state, "/quotes"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /quotes.atom                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeIndexAtom(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	quotes, err := h.Quotes.FetchAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "quotes: feed", err, "", "/quotes")
		return
	}
	feed := atomfeed.Quotes(h.BaseURL, atomfeed.Title("All quotes"), "/quotes.atom", quotes)
	if err := atomfeed.Write(w, feed); err != nil {
		h.Log.Warn("quotes: write feed", zap.Error(err))
	}
}
