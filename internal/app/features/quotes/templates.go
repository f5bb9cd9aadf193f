// internal/app/features/quotes/templates.go
package quotes

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "quotes",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
