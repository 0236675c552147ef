// internal/app/features/seekers/templates.go
package seekers

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "seekers",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
