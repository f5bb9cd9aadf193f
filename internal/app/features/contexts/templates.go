// internal/app/features/contexts/templates.go
package contexts

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "contexts",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
