// internal/app/features/authgoogle/routes.go
package authgoogle

import "github.com/go-chi/chi/v5"

// Routes returns the router for the Google sign-in callback.
// It is public and mounted outside the form CSRF middleware; the
// double-submit cookie check stands in for it.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCallback)
	return r
}
