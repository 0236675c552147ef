// internal/app/features/benefits/routes.go
package benefits

import (
	"github.com/go-chi/chi/v5"
	"github.com/opencircle/seekerhub/internal/app/system/auth"
)

// Routes mounts all benefits routes under the path where the caller mounts
// it. Typically: r.Mount("/benefits", benefits.Routes(handler, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeDashboard)
		pr.Get("/export", h.ServeExport)

		pr.Get("/new", h.ServeNewDisbursement)
		pr.Post("/", h.HandleCreateDisbursement)

		pr.Get("/types/new", h.ServeNewType)
		pr.Post("/types", h.HandleCreateType)
		pr.Get("/types/{id}/edit", h.ServeEditType)
		pr.Post("/types/{id}/edit", h.HandleEditType)
	})

	return r
}
