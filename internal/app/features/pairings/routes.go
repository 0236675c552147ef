// internal/app/features/pairings/routes.go
package pairings

import (
	"github.com/go-chi/chi/v5"
	"github.com/opencircle/seekerhub/internal/app/system/auth"
)

// Routes mounts all pairings routes under the path where the caller mounts
// it. Typically: r.Mount("/pairings", pairings.Routes(handler, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Post("/{id}/unpair", h.HandleUnpair)
	})

	return r
}
