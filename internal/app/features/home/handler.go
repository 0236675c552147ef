// internal/app/features/home/handler.go
package home

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	humanstore "github.com/opencircle/seekerhub/internal/app/store/humans"
	pairingstore "github.com/opencircle/seekerhub/internal/app/store/pairings"
	"github.com/opencircle/seekerhub/internal/app/system/authz"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Humans   *humanstore.Store
	Pairings *pairingstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Humans:   humanstore.New(db),
		Pairings: pairingstore.New(db),
	}
}

type homeData struct {
	Title      string
	IsLoggedIn bool
	Role       string
	UserName   string

	ProspectCount   int64
	SeekerCount     int64
	PartnerCount    int64
	ActivePairCount int64
}

// ServeHome handles GET /. Signed-out visitors get the landing page; staff
// get the dashboard with headline counts.
func (h *Handler) ServeHome(w http.ResponseWriter, r *http.Request) {
	role, name, _, signedIn := authz.UserCtx(r)

	if !signedIn {
		templates.Render(w, r, "home_landing", homeData{Title: "SeekerHub"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data := homeData{
		Title:      "Dashboard",
		IsLoggedIn: true,
		Role:       role,
		UserName:   name,
	}

	// Counts are best-effort; a failed count renders as zero.
	var err error
	if data.ProspectCount, err = h.Humans.Count(ctx, bson.M{"role": models.RoleProspect}); err != nil {
		h.Log.Warn("count prospects", zap.Error(err))
	}
	if data.SeekerCount, err = h.Humans.Count(ctx, bson.M{"role": models.RoleSeeker}); err != nil {
		h.Log.Warn("count seekers", zap.Error(err))
	}
	if data.PartnerCount, err = h.Humans.Count(ctx, bson.M{"role": models.RolePartner}); err != nil {
		h.Log.Warn("count partners", zap.Error(err))
	}
	if data.ActivePairCount, err = h.Pairings.Count(ctx, bson.M{"unpair_date": nil}); err != nil {
		h.Log.Warn("count active pairings", zap.Error(err))
	}

	templates.Render(w, r, "home_dashboard", data)
}
