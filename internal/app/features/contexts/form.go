// internal/app/features/contexts/form.go
package contexts

import (
	"context"
	"net/http"

	"github.com/dalemusser/quotebook/internal/app/features/shared"
	"github.com/dalemusser/quotebook/internal/app/system/timeouts"
	"github.com/dalemusser/quotebook/internal/app/system/viewdata"
	"github.com/dalemusser/quotebook/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// contextForm holds the fields of the new/edit context form.
type contextForm struct {
	Name        string
	Description string
}

type formData struct {
	viewdata.BaseVM
	Form      contextForm
	ContextID int64
	Preview   shared.ContextItem
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /contexts/new                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeNew shows an empty context form. Mounted behind RequireSignedIn.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "contexts_new", formData{
		BaseVM: viewdata.NewBaseVM(r, "New context", "/contexts"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /contexts/{id}/edit                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeEdit shows the edit form. Contexts have no owner, so any signed-in
// user may edit one. Mounted behind RequireSignedIn.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c := h.loadContext(ctx, w, r)
	if c == nil {
		return
	}

	templates.Render(w, r, "contexts_edit", formData{
		BaseVM:    viewdata.NewBaseVM(r, "Edit "+c.Name, shared.ContextURL(c.ID)),
		Form:      contextForm{Name: c.Name, Description: c.Description},
		ContextID: c.ID,
		Preview:   shared.ContextItems([]models.Context{*c})[0],
	})
}
