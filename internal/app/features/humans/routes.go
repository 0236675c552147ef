// internal/app/features/humans/routes.go
package humans

import (
	"github.com/go-chi/chi/v5"
	"github.com/opencircle/seekerhub/internal/app/system/auth"
)

// Routes mounts all humans routes under the path where the caller mounts it.
// Typically: r.Mount("/humans", humans.Routes(handler, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)

		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)

		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)

		pr.Get("/{id}/enroll", h.ServeEnroll)
		pr.Post("/{id}/enroll", h.HandleEnroll)

		pr.Post("/bulk", h.HandleBulk)
	})

	return r
}
