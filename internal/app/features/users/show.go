// internal/app/features/users/show.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/quotebook/internal/app/features/shared"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/paging"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

type showData struct {
	viewdata.BaseVM
	Person   shared.UserItem
	Quotes   []shared.QuoteItem
	Pager    shared.Pager
	Comments []shared.CommentItem
	Contexts []shared.ContextItem
	IsSelf   bool
	Links    personLinks
}

type personLinks struct {
	Quotes           string
	QuotesFeed       string
	RelevantQuotes   string
	RelevantComments string
	Edit             string
}

func linksFor(id int64) personLinks {
	base := shared.UserURL(id)
	return personLinks{
		Quotes:           base + "/quotes",
		QuotesFeed:       base + "/quotes.atom",
		RelevantQuotes:   base + "/relevant_quotes",
		RelevantComments: base + "/relevant_comments",
		Edit:             base + "/edit",
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /users/{id}                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeShow shows a person with a page of the quotes attributed to them,
// their latest comments, and the contexts they belong to.
func (h *Handler) ServeShow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u := h.loadUser(ctx, w, r)
	if u == nil {
		return
	}

	comments, err := h.Comments.Fetch5ForUser(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: comments", err, "", "/users")
		return
	}
	total, err := h.Quotes.CountForQuotee(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: count quotes", err, "", "/users")
		return
	}
	state := paging.NewState(total, paging.QuotesPageSize, paging.ParsePage(r))
	quotes, err := h.Quotes.FetchPageForQuotee(ctx, u.ID, state.Current)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: quotes", err, "", "/users")
		return
	}
	cs, err := h.Contexts.FetchForUser(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: contexts", err, "", "/users")
		return
	}

	me, signedIn := auth.CurrentUser(r)
	templates.Render(w, r, "users_show", showData{
		BaseVM:   viewdata.NewBaseVM(r, u.Fullname, "/users"),
		Person:   shared.NewUserItem(*u, shared.LargeAvatar),
		Quotes:   shared.QuoteItems(quotes),
		Pager:    shared.NewPager(state, shared.UserURL(u.ID)),
		Comments: shared.CommentItems(comments),
		Contexts: shared.ContextItems(cs),
		IsSelf:   signedIn && me.ID == u.ID,
		Links:    linksFor(u.ID),
	})
}
