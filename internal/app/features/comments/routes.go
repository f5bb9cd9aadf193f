package comments

import "github.com/go-chi/chi/v5"

// Routes serves /quotes/{id}/comments. The {id} parameter comes from the
// parent router.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeIndex)
	r.Get("/{cid}", h.ServeShow)
	return r
}
