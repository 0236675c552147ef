// internal/app/features/benefits/templates.go
package benefits

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "benefits",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
