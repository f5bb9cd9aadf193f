// internal/app/features/home/handler.go
package home

import (
	"context"
	"database/sql"
	"net/http"

	uierrors "github.com/dalemusser/quotebook/internal/app/features/errors"
	"github.com/dalemusser/quotebook/internal/app/features/shared"
	commentstore "github.com/dalemusser/quotebook/internal/app/store/comments"
	contextstore "github.com/dalemusser/quotebook/internal/app/store/contexts"
	quotestore "github.com/dalemusser/quotebook/internal/app/store/quotes"
	"github.com/dalemusser/quotebook/internal/app/system/atomfeed"
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/dalemusser/quotebook/internal/app/system/paging"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/quotebook/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page and the
// site-wide comment listings.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	BaseURL  string
	Quotes   *quotestore.Store
	Contexts *contextstore.Store
	Comments *commentstore.Store
}

func NewHandler(db *sql.DB, errLog *uierrors.ErrorLogger, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		BaseURL:  baseURL,
		Quotes:   quotestore.New(db),
		Contexts: contextstore.New(db),
		Comments: commentstore.New(db),
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

type indexData struct {
	viewdata.BaseVM
	Quotes       []shared.QuoteItem
	Pager        shared.Pager
	TopContexts  []shared.ContextItem
	MyContexts   []shared.ContextItem
	Comments     []shared.CommentItem
	RelevantFeed string
	RandomQuote  *shared.QuoteItem
}

// ServeIndex shows the newest quotes. Signed-in users see quotes from the
// contexts they belong to; everyone else sees all quotes.
func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	top, err := h.Contexts.FetchTop5(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "home: top contexts", err, "", "/")
		return
	}

	data := indexData{
		BaseVM:      viewdata.NewBaseVM(r, "Home", "/"),
		TopContexts: shared.ContextItems(top),
	}

	var state paging.State
	var quotes []models.QuoteWithUsers
	if user, ok := auth.CurrentUser(r); ok {
		total, err := h.Quotes.CountForUserContexts(ctx, user.ID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "home: count quotes in user contexts", err, "", "/")
			return
		}
		state = paging.NewState(total, paging.HomePageSize, paging.ParsePage(r))
		quotes, err = h.Quotes.FetchPageForUserContexts(ctx, user.ID, state.Current)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "home: quotes in user contexts", err, "", "/")
			return
		}
		mine, err := h.Contexts.FetchForUser(ctx, user.ID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "home: user contexts", err, "", "/")
			return
		}
		comments, err := h.Comments.Fetch5ForUserContexts(ctx, user.ID)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "home: recent comments", err, "", "/")
			return
		}
		data.MyContexts = shared.ContextItems(mine)
		data.Comments = shared.CommentItems(comments)
		data.RelevantFeed = shared.UserURL(user.ID) + "/relevant_quotes.atom"
	} else {
		total, err := h.Quotes.Count(ctx)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "home: count quotes", err, "", "/")
			return
		}
		state = paging.NewState(total, paging.HomePageSize, paging.ParsePage(r))
		quotes, err = h.Quotes.FetchPage(ctx, state.Current)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "home: quotes", err, "", "/")
			return
		}
	}

	random, err := h.randomQuote(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "home: random quote", err, "", "/")
		return
	}
	if random != nil {
		item := shared.NewQuoteItem(*random)
		data.RandomQuote = &item
	}

	data.Quotes = shared.QuoteItems(quotes)
	data.Pager = shared.NewPager(state, "/")
	templates.Render(w, r, "home_index", data)
}

// randomQuote picks the sidebar quote: one from the signed-in user's
// contexts when they hold any, otherwise one from the whole site.
func (h *Handler) randomQuote(ctx context.Context, r *http.Request) (*models.QuoteWithUsers, error) {
	if user, ok := auth.CurrentUser(r); ok {
		q, err := h.Quotes.FetchRandomForUserContexts(ctx, user.ID)
		if err != nil || q != nil {
			return q, err
		}
	}
	return h.Quotes.FetchRandom(ctx)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /comments, /comments.atom                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type commentsData struct {
	viewdata.BaseVM
	Comments []shared.CommentItem
}

func (h *Handler) ServeComments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	comments, err := h.Comments.FetchAllWithQuotee(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "home: all comments", err, "", "/")
		return
	}
	templates.Render(w, r, "home_comments", commentsData{
		BaseVM:   viewdata.NewBaseVM(r, "All comments", "/"),
		Comments: shared.CommentItemsWithQuotee(comments),
	})
}

func (h *Handler) ServeCommentsAtom(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	comments, err := h.Comments.FetchAllWithQuotee(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "home: all comments feed", err, "", "/")
		return
	}
	feed := atomfeed.Comments(h.BaseURL, atomfeed.Title("All comments"), "/comments.atom", comments)
	if err := atomfeed.Write(w, feed); err != nil {
		h.Log.Warn("home: write comments feed", zap.Error(err))
	}
}
