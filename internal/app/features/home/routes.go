package home

import "github.com/go-chi/chi/v5"

// Register adds the landing page and the site-wide comment pages to r.
// The landing page is registered as an exact route rather than a "/"
// mount so unmatched paths still reach the router's NotFound handler.
func Register(r chi.Router, h *Handler) {
	r.Get("/", h.ServeIndex)
	r.Get("/comments", h.ServeComments)
	r.Get("/comments.atom", h.ServeCommentsAtom)
}
