// internal/app/features/quotes/show.go
package quotes

import (
	"context"
	"net/http"

	"github.com/dalemusser/quotebook/internal/app/features/shared"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/quotebook/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type showData struct {
	viewdata.BaseVM
	Quote    shared.QuoteItem
	Comments []shared.CommentItem
	CanEdit  bool
	EditURL  string
	FeedURL  string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /quotes/{id}                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeShow shows one quote with its comments. Hidden quotes are not found.
func (h *Handler) ServeShow(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.ParseID(r, "id")
	if !ok {
		h.ErrLog.LogNotFound(w, r, "quote")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q, err := h.Quotes.FetchOneWithUsers(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "quotes: fetch one", err, "", "/quotes")
		return
	}
	if q == nil || q.Quote.Hidden {
		h.ErrLog.LogNotFound(w, r, "quote")
		return
	}

	h.renderShow(ctx, w, r, q, "/quotes")
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /contexts/{id}/latest                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeLatest shows the newest visible quote in the context named by {id}
// on the ordinary quote page. A context with no quotes is not found.
func (h *Handler) ServeLatest(w http.ResponseWriter, r *http.Request) {
	contextID, ok := shared.ParseID(r, "id")
	if !ok {
		h.ErrLog.LogNotFound(w, r, "context")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q, err := h.Quotes.FetchLatestForContext(ctx, contextID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "quotes: latest in context", err, "", shared.ContextURL(contextID))
		return
	}
	if q == nil {
		h.ErrLog.LogNotFound(w, r, "quote")
		return
	}
	h.renderShow(ctx, w, r, q, shared.ContextURL(contextID))
}

func (h *Handler) renderShow(ctx context.Context, w http.ResponseWriter, r *http.Request, q *models.QuoteWithUsers, back string) {
	comments, err := h.Comments.FetchAllForQuote(ctx, q.Quote.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "quotes: comments", err, "", back)
		return
	}

	item := shared.NewQuoteItem(*q)
	data := showData{
		BaseVM:   viewdata.NewBaseVM(r, q.Quotee.Fullname, back),
		Quote:    item,
		Comments: shared.CommentItems(comments),
		EditURL:  item.URL + "/edit",
		FeedURL:  item.URL + "/comments.atom",
	}
	if u, ok := auth.CurrentUser(r); ok && u.ID == q.Quoter.ID {
		data.CanEdit = true
	}
	templates.Render(w, r, "quotes_show", data)
}
