// internal/app/features/quotes/form.go
package quotes

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/quotebook/internal/app/features/errors"
	"github.com/dalemusser/quotebook/internal/app/features/shared"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/quotebook/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// quoteForm holds the fields of the new/edit quote form.
type quoteForm struct {
	Quotee      string
	ContextName string
	ContextID   int64
	QuoteText   string
}

func formFromQuote(q models.QuoteWithUsers) quoteForm {
	return quoteForm{
		Quotee:      q.Quotee.Fullname,
		ContextName: q.Context.Name,
		ContextID:   q.Context.ID,
		QuoteText:   q.Quote.QuoteText,
	}
}

type formData struct {
	viewdata.BaseVM
	Form    quoteForm
	QuoteID int64
	Preview shared.QuoteItem
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /quotes/new                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeNew shows an empty quote form. Mounted behind RequireSignedIn.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "quotes_new", formData{
		BaseVM: viewdata.NewBaseVM(r, "New quote", "/quotes"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /quotes/{id}/edit                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeEdit shows the edit form. Only the quoter may edit a quote.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "", "")
		return
	}
	id, ok := shared.ParseID(r, "id")
	if !ok {
		h.ErrLog.LogNotFound(w, r, "quote")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	q, err := h.Quotes.FetchOneWithUsers(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "quotes: fetch for edit", err, "", "/quotes")
		return
	}
	if q == nil {
		h.ErrLog.LogNotFound(w, r, "quote")
		return
	}
	if q.Quoter.ID != user.ID {
		uierrors.RenderForbidden(w, r, "You can only edit quotes you added.", shared.QuoteURL(id))
		return
	}

	templates.Render(w, r, "quotes_edit", formData{
		BaseVM:  viewdata.NewBaseVM(r, "Edit quote", shared.QuoteURL(id)),
		Form:    formFromQuote(*q),
		QuoteID: id,
		Preview: shared.NewQuoteItem(*q),
	})
}
