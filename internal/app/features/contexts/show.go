// internal/app/features/contexts/show.go
package contexts

import (
	"context"
	"net/http"

	"github.com/dalemusser/quotebook/internal/app/features/shared"
	"github.com/dalemusser/quotebook/internal/app/system/atomfeed"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/paging"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/quotebook/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type showData struct {
	viewdata.BaseVM
	Context  shared.ContextItem
	Quotes   []shared.QuoteItem
	Pager    shared.Pager
	Members  []shared.UserItem
	Comments []shared.CommentItem
	IsMember bool
	JoinURL  string
	LeaveURL string
	FeedURL  string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /contexts/{id}                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeShow shows a context with a page of its quotes, its members, and its
// latest comments.
func (h *Handler) ServeShow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c := h.loadContext(ctx, w, r)
	if c == nil {
		return
	}
	base := shared.ContextURL(c.ID)

	total, err := h.Quotes.CountForContext(ctx, c.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "contexts: count quotes", err, "", "/contexts")
		return
	}
	state := paging.NewState(total, paging.QuotesPageSize, paging.ParsePage(r))
	quotes, err := h.Quotes.FetchPageForContext(ctx, c.ID, state.Current)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "contexts: quotes", err, "", "/contexts")
		return
	}
	members, err := h.Users.FetchForContext(ctx, c.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "contexts: members", err, "", "/contexts")
		return
	}
	comments, err := h.Comments.Fetch5ForContext(ctx, c.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "contexts: comments", err, "", "/contexts")
		return
	}

	data := showData{
		BaseVM:   viewdata.NewBaseVM(r, c.Name, "/contexts"),
		Context:  shared.ContextItems([]models.Context{*c})[0],
		Quotes:   shared.QuoteItems(quotes),
		Pager:    shared.NewPager(state, base),
		Members:  shared.UserItems(members),
		Comments: shared.CommentItems(comments),
		JoinURL:  base + "/join",
		LeaveURL: base + "/leave",
		FeedURL:  base + "/quotes.atom",
	}
	if u, ok := auth.CurrentUser(r); ok {
		data.IsMember, err = h.Users.IsMember(ctx, u.ID, c.ID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "contexts: membership", err, "", "/contexts")
			return
		}
	}
	templates.Render(w, r, "contexts_show", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /contexts/{id}/quotes, /contexts/{id}/quotes.atom                       |
*─────────────────────────────────────────────────────────────────────────────*/

type quotesData struct {
	viewdata.BaseVM
	Context shared.ContextItem
	Quotes  []shared.QuoteItem
	FeedURL string
}

func (h *Handler) ServeQuotes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	c := h.loadContext(ctx, w, r)
	if c == nil {
		return
	}
	quotes, err := h.Quotes.FetchAllForContext(ctx, c.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "contexts: all quotes", err, "", shared.ContextURL(c.ID))
		return
	}
	templates.Render(w, r, "contexts_quotes", quotesData{
		BaseVM:  viewdata.NewBaseVM(r, "Quotes in "+c.Name, shared.ContextURL(c.ID)),
		Context: shared.ContextItems([]models.Context{*c})[0],
		Quotes:  shared.QuoteItems(quotes),
		FeedURL: shared.ContextURL(c.ID) + "/quotes.atom",
	})
}

func (h *Handler) ServeQuotesAtom(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	c := h.loadContext(ctx, w, r)
	if c == nil {
		return
	}
	quotes, err := h.Quotes.FetchAllForContext(ctx, c.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "contexts: feed", err, "", shared.ContextURL(c.ID))
		return
	}
	feed := atomfeed.Quotes(h.BaseURL, atomfeed.Title("Quotes in "+c.Name),
		shared.ContextURL(c.ID)+"/quotes.atom", quotes)
	if err := atomfeed.Write(w, feed); err != nil {
		h.Log.Warn("contexts: write feed", zap.Error(err))
	}
}
