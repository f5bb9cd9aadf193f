package quotes

import (
	"github.com/dalemusser/quotebook/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes serves /quotes. The feed at /quotes.atom sits outside this
// subrouter and is mounted by the caller.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeIndex)
	r.Get("/{id}", h.ServeShow)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/new", h.ServeNew)
		pr.Get("/{id}/edit", h.ServeEdit)
	})
	return r
}
