// internal/app/features/users/handler.go
package users

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

// Handler serves people: the directory, profiles, and per-person feeds.
type Handler struct {
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	BaseURL  string
	Users    *userstore.Store
	Quotes   *quotestore.Store
	Contexts *contextstore.Store
	Comments *commentstore.Store
}

func NewHandler(db *sql.DB, errLog *uierrors.ErrorLogger, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		ErrLog:   errLog,
		BaseURL:  baseURL,
		Users:    userstore.New(db),
		Quotes:   quotestore.New(db),
		Contexts: contextstore.New(db),
		Comments: commentstore.New(db),
	}
}

// loadUser fetches the user named by {id}, writing the 404 or 500 response
// itself when it returns nil.
func (h *Handler) loadUser(ctx context.Context, w http.ResponseWriter, r *http.Request) *models.User {
	id, ok := shared.ParseID(r, "id")
	if !ok {
		h.ErrLog.LogNotFound(w, r, "user")
		return nil
	}
	u, err := h.Users.FetchOne(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "users: fetch one", err, "", "/users")
		return nil
	}
	if u == nil {
		h.ErrLog.LogNotFound(w, r, "user")
		return nil
	}
	return u
}
