// internal/app/features/contexts/handler.go
package contexts

import (
	"context"
	"database/sql"
	"net/http"

	uierrors "github.com/dalemusser/quotebook/internal/app/features/errors"
	"github.com/dalemusser/quotebook/internal/app/features/shared"
	commentstore "github.com/dalemusser/quotebook/internal/app/store/comments"
	contextstore "github.com/dalemusser/quotebook/internal/app/store/contexts"
	quotestore "github.com/dalemusser/quotebook/internal/app/store/quotes"
	userstore "github.com/dalemusser/quotebook/internal/app/store/users"
	"github.com/dalemusser/quotebook/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves contexts and context membership.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	BaseURL  string
	Contexts *contextstore.Store
	Quotes   *quotestore.Store
	Users    *userstore.Store
	Comments *commentstore.Store
}

func NewHandler(db *sql.DB, errLog *uierrors.ErrorLogger, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		BaseURL:  baseURL,
		Contexts: contextstore.New(db),
		Quotes:   quotestore.New(db),
		Users:    userstore.New(db),
		Comments: commentstore.New(db),
	}
}

// loadContext fetches the context named by {id}, writing the 404 or 500
// response itself when it returns nil.
func (h *Handler) loadContext(ctx context.Context, w http.ResponseWriter, r *http.Request) *models.Context {
	id, ok := shared.ParseID(r, "id")
	if !ok {
		h.ErrLog.LogNotFound(w, r, "context")
		return nil
	}
	c, err := h.Contexts.FetchOne(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "contexts: fetch one", err, "", "/contexts")
		return nil
	}
	if c == nil {
		h.ErrLog.LogNotFound(w, r, "context")
		return nil
	}
	return c
}
