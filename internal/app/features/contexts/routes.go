package contexts

import (
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes serves /contexts. The caller adds /{id}/latest, which renders
// the quote page.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeIndex)
	r.Get("/{id}", h.ServeShow)
	r.Get("/{id}/quotes", h.ServeQuotes)
	r.Get("/{id}/quotes.atom", h.ServeQuotesAtom)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/new", h.ServeNew)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/join", h.HandleJoin)
		pr.Post("/{id}/leave", h.HandleLeave)
	})
	return r
}
