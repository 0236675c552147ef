// internal/app/features/partners/routes.go
package partners

import (
	"github.com/go-chi/chi/v5"
	"github.com/opencircle/seekerhub/internal/app/system/auth"
)

// Routes mounts all partners routes under the path where the caller mounts
// it. Typically: r.Mount("/partners", partners.Routes(handler, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
	})

	return r
}
