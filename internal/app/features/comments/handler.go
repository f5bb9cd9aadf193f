// internal/app/features/comments/handler.go
package comments

import (
	"context"
	"database/sql"
	"html/template"
	"net/http"

	uierrors "github.com/dalemusser/quotebook/internal/app/features/errors"
	"github.com/dalemusser/quotebook/internal/app/features/shared"
	commentstore "github.com/dalemusser/quotebook/internal/app/store/comments"
	quotestore "github.com/dalemusser/quotebook/internal/app/store/quotes"
	"github.com/dalemusser/quotebook/internal/app/system/atomfeed"
	"github.com/dalemusser/quotebook/internal/app/system/markup"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/quotebook/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the comments on a single quote.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	BaseURL  string
	Quotes   *quotestore.Store
	Comments *commentstore.Store
}

func NewHandler(db *sql.DB, errLog *uierrors.ErrorLogger, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		BaseURL:  baseURL,
		Quotes:   quotestore.New(db),
		Comments: commentstore.New(db),
	}
}

// visibleQuote loads the quote named by the {id} parameter. It writes the
// 404 or 500 response itself and returns nil when the caller should stop.
func (h *Handler) visibleQuote(ctx context.Context, w http.ResponseWriter, r *http.Request) *models.Quote {
	id, ok := shared.ParseID(r, "id")
	if !ok {
		h.ErrLog.LogNotFound(w, r, "quote")
		return nil
	}
	q, err := h.Quotes.FetchOne(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "comments: fetch quote", err, "", "/quotes")
		return nil
	}
	if q == nil || q.Hidden {
		h.ErrLog.LogNotFound(w, r, "quote")
		return nil
	}
	return q
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /quotes/{id}/comments                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

type indexData struct {
	viewdata.BaseVM
	QuoteHTML template.HTML
	QuoteURL  string
	FeedURL   string
	Comments  []shared.CommentItem
}

func (h *Handler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := h.visibleQuote(ctx, w, r)
	if q == nil {
		return
	}
	comments, err := h.Comments.FetchAllForQuote(ctx, q.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "comments: list", err, "", shared.QuoteURL(q.ID))
		return
	}

	templates.Render(w, r, "comments_index", indexData{
		BaseVM:    viewdata.NewBaseVM(r, "Comments", shared.QuoteURL(q.ID)),
		QuoteHTML: markup.QuoteHTML(q.QuoteText),
		QuoteURL:  shared.QuoteURL(q.ID),
		FeedURL:   shared.QuoteURL(q.ID) + "/comments.atom",
		Comments:  shared.CommentItems(comments),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /quotes/{id}/comments.atom                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeIndexAtom(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	q := h.visibleQuote(ctx, w, r)
	if q == nil {
		return
	}
	comments, err := h.Comments.FetchAllWithQuoteeForQuote(ctx, q.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "comments: feed", err, "", shared.QuoteURL(q.ID))
		return
	}

	title := atomfeed.Title("Comments on " + markup.QuoteMarksIfNeeded(q.QuoteText))
	feed := atomfeed.Comments(h.BaseURL, title, shared.QuoteURL(q.ID)+"/comments.atom", comments)
	if err := atomfeed.Write(w, feed); err != nil {
		h.Log.Warn("comments: write feed", zap.Error(err))
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /quotes/{id}/comments/{cid}                                             |
*─────────────────────────────────────────────────────────────────────────────*/

type showData struct {
	viewdata.BaseVM
	Comment shared.CommentItem
}

func (h *Handler) ServeShow(w http.ResponseWriter, r *http.Request) {
	commentID, ok := shared.ParseID(r, "cid")
	if !ok {
		h.ErrLog.LogNotFound(w, r, "comment")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	q := h.visibleQuote(ctx, w, r)
	if q == nil {
		return
	}
	c, err := h.Comments.FetchOne(ctx, q.ID, commentID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "comments: fetch one", err, "", shared.QuoteURL(q.ID))
		return
	}
	if c == nil {
		h.ErrLog.LogNotFound(w, r, "comment")
		return
	}

	templates.Render(w, r, "comments_show", showData{
		BaseVM:  viewdata.NewBaseVM(r, "Comment", shared.QuoteURL(q.ID)),
		Comment: shared.CommentItems([]models.CommentWithQuote{*c})[0],
	})
}
