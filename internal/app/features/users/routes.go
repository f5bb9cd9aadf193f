package users

import (
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeIndex)
	r.Get("/{id}", h.ServeShow)
	r.Get("/{id}/quotes", h.ServeQuotes)
	r.Get("/{id}/quotes.atom", h.ServeQuotesAtom)
	r.Get("/{id}/relevant_quotes", h.ServeRelevantQuotes)
	r.Get("/{id}/relevant_quotes.atom", h.ServeRelevantQuotesAtom)
	r.Get("/{id}/relevant_comments", h.ServeRelevantComments)
	r.Get("/{id}/relevant_comments.atom", h.ServeRelevantCommentsAtom)

	r.With(sm.RequireSignedIn).Get("/{id}/edit", h.ServeEdit)
	return r
}
