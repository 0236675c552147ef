// internal/app/features/seekers/ride.go
package seekers

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServeRideMatches renders the ride-match popup: active seekers offering
// ride share in the same city and state, excluding the seeker themselves.
func (h *Handler) ServeRideMatches(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "Bad record id.", httpnav.ResolveBackURL(r, "/seekers"))
		return
	}

	hu, err := h.Humans.GetSeekerByID(ctx, id)
	if err != nil {
		uierrors.RenderForbidden(w, r, "Seeker not found.", httpnav.ResolveBackURL(r, "/seekers"))
		return
	}

	data := rideData{
		SeekerName: hu.FullName(),
		City:       hu.City,
		State:      hu.State,
	}
	formutil.SetBase(&data.Base, r, "Ride Matches", "/seekers/"+hu.ID.Hex()+"/edit")

	matches, err := h.rideMatchesFor(ctx, hu)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error finding ride matches", err, "A database error occurred.", "/seekers")
		return
	}
	data.Matches = matches

	templates.Render(w, r, "seeker_ride", data)
}

// rideMatchesFor finds candidate drivers for a seeker: active, offering
// ride share, same folded city and state. Matching on the folded fields
// keeps "Saint Louis" and "saint louis" together.
func (h *Handler) rideMatchesFor(ctx context.Context, hu *models.Human) ([]rideMatch, error) {
	filter := bson.M{
		"role":                 models.RoleSeeker,
		"_id":                  bson.M{"$ne": hu.ID},
		"seeker.ride_share":    true,
		"seeker.inactive_date": bson.M{"$exists": false},
		"city_ci":              hu.CityCI,
		"state_ci":             hu.StateCI,
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}}).
		SetProjection(bson.M{
			"_id":          1,
			"first_names":  1,
			"last_names":   1,
			"email":        1,
			"phone_number": 1,
		})

	rows, err := h.Humans.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	matches := make([]rideMatch, len(rows))
	for i, m := range rows {
		matches[i] = rideMatch{
			ID:          m.ID.Hex(),
			FullName:    m.FullName(),
			PhoneNumber: m.PhoneNumber,
			Email:       m.Email,
		}
	}
	return matches, nil
}
