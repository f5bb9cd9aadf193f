// internal/app/features/quotes/handler.go
package quotes

import (
	"database/sql"

	uierrors "github.com/dalemusser/quotebook/internal/app/features/errors"
	commentstore "github.com/dalemusser/quotebook/internal/app/store/comments"
	quotestore "github.com/dalemusser/quotebook/internal/app/store/quotes"
	"go.uber.org/zap"
)

// Handler serves the quote listings, single quotes, and the quote forms.
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
