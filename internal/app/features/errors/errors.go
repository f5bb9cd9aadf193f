// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Status  int
	Message string
}

// render writes status and the friendly error page.
func render(w http.ResponseWriter, r *http.Request, status int, title, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", pageData{
		BaseVM:  viewdata.NewBaseVM(r, title, backURL),
		Status:  status,
		Message: msg,
	})
}

// NotFound renders the 404 page. Mounted as the router's NotFound handler.
func NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, "Not found", "We couldn't find that page.", "/")
}

// RenderForbidden shows the "access denied" page with a message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "You don't have permission to view this page."
	}
	render(w, r, http.StatusForbidden, "Access denied", msg, backURL)
}

// RenderUnauthorized shows the "sign in required" page. The back link
// defaults to the login page.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "Please sign in to continue."
	}
	if backURL == "" {
		backURL = "/login"
	}
	render(w, r, http.StatusUnauthorized, "Sign in required", msg, backURL)
}
