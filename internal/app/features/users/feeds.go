// internal/app/features/users/feeds.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/quotebook/internal/app/features/shared"
	"github.com/dalemusser/quotebook/internal/app/system/atomfeed"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/quotebook/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// quoteSource loads the quotes behind one of the per-person lists.
type quoteSource func(ctx context.Context, userID int64) ([]models.QuoteWithUsers, error)

type quotesData struct {
	viewdata.BaseVM
	Person  shared.UserItem
	Heading string
	Quotes  []shared.QuoteItem
	FeedURL string
}

type commentsData struct {
	viewdata.BaseVM
	Person   shared.UserItem
	Heading  string
	Comments []shared.CommentItem
	FeedURL  string
}

func quotesHeading(u models.User) string   { return "Quotes by " + u.Fullname }
func relevantHeading(u models.User) string { return "Quotes of interest to " + u.Fullname }
func commentsHeading(u models.User) string { return "Comments of interest to " + u.Fullname }

/*─────────────────────────────────────────────────────────────────────────────*
| GET /users/{id}/quotes(.atom), /users/{id}/relevant_quotes(.atom)           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeQuotes(w http.ResponseWriter, r *http.Request) {
	h.serveQuoteList(w, r, "quotes", h.Quotes.FetchAllForQuotee, quotesHeading)
}

func (h *Handler) ServeQuotesAtom(w http.ResponseWriter, r *http.Request) {
	h.serveQuoteFeed(w, r, "quotes", h.Quotes.FetchAllForQuotee, quotesHeading)
}

func (h *Handler) ServeRelevantQuotes(w http.ResponseWriter, r *http.Request) {
	h.serveQuoteList(w, r, "relevant_quotes", h.Quotes.FetchAllForUserContexts, relevantHeading)
}

func (h *Handler) ServeRelevantQuotesAtom(w http.ResponseWriter, r *http.Request) {
	h.serveQuoteFeed(w, r, "relevant_quotes", h.Quotes.FetchAllForUserContexts, relevantHeading)
}

func (h *Handler) serveQuoteList(w http.ResponseWriter, r *http.Request, slug string, load quoteSource, heading func(models.User) string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	u := h.loadUser(ctx, w, r)
	if u == nil {
		return
	}
	quotes, err := load(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: "+slug, err, "", shared.UserURL(u.ID))
		return
	}

	templates.Render(w, r, "users_quotes", quotesData{
		BaseVM:  viewdata.NewBaseVM(r, heading(*u), shared.UserURL(u.ID)),
		Person:  shared.NewUserItem(*u, shared.SmallAvatar),
		Heading: heading(*u),
		Quotes:  shared.QuoteItems(quotes),
		FeedURL: shared.UserURL(u.ID) + "/" + slug + ".atom",
	})
}

func (h *Handler) serveQuoteFeed(w http.ResponseWriter, r *http.Request, slug string, load quoteSource, heading func(models.User) string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	u := h.loadUser(ctx, w, r)
	if u == nil {
		return
	}
	quotes, err := load(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: "+slug+" feed", err, "", shared.UserURL(u.ID))
		return
	}

	self := shared.UserURL(u.ID) + "/" + slug + ".atom"
	if err := atomfeed.Write(w, atomfeed.Quotes(h.BaseURL, atomfeed.Title(heading(*u)), self, quotes)); err != nil {
		h.Log.Warn("users: write feed", zap.String("feed", slug), zap.Error(err))
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /users/{id}/relevant_comments(.atom)                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRelevantComments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	u := h.loadUser(ctx, w, r)
	if u == nil {
		return
	}
	comments, err := h.Comments.FetchAllWithQuoteeForUserContexts(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: relevant_comments", err, "", shared.UserURL(u.ID))
		return
	}

	templates.Render(w, r, "users_comments", commentsData{
		BaseVM:   viewdata.NewBaseVM(r, commentsHeading(*u), shared.UserURL(u.ID)),
		Person:   shared.NewUserItem(*u, shared.SmallAvatar),
		Heading:  commentsHeading(*u),
		Comments: shared.CommentItemsWithQuotee(comments),
		FeedURL:  shared.UserURL(u.ID) + "/relevant_comments.atom",
	})
}

func (h *Handler) ServeRelevantCommentsAtom(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	u := h.loadUser(ctx, w, r)
	if u == nil {
		return
	}
	comments, err := h.Comments.FetchAllWithQuoteeForUserContexts(ctx, u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: relevant_comments feed", err, "", shared.UserURL(u.ID))
		return
	}

	self := shared.UserURL(u.ID) + "/relevant_comments.atom"
	if err := atomfeed.Write(w, atomfeed.Comments(h.BaseURL, atomfeed.Title(commentsHeading(*u)), self, comments)); err != nil {
		h.Log.Warn("users: write feed", zap.String("feed", "relevant_comments"), zap.Error(err))
	}
}
