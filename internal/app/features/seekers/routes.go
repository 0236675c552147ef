// internal/app/features/seekers/routes.go
package seekers

import (
	"github.com/go-chi/chi/v5"
	"github.com/opencircle/seekerhub/internal/app/system/auth"
)

// Routes mounts all seekers routes under the path where the caller mounts it.
// Typically: r.Mount("/seekers", seekers.Routes(handler, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)

		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)

		pr.Get("/{id}/ride", h.ServeRideMatches)

		pr.Post("/bulk", h.HandleBulk)
	})

	return r
}
