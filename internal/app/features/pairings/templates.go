// internal/app/features/pairings/templates.go
package pairings

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "pairings",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
