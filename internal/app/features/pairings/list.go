// internal/app/features/pairings/list.go
package pairings

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/system/authz"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func userCtx(r *http.Request) (role, name string, uid primitive.ObjectID, ok bool) {
	role, name, uid, ok = authz.UserCtx(r)
	return
}

// ServeList renders the Pairings screen, most recent pairings first. The
// default view shows only active pairings; all=1 includes ended ones.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, uname, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	activeOnly := r.URL.Query().Get("all") != "1"

	filter := bson.M{}
	if activeOnly {
		filter["unpair_date"] = nil
	}

	total, err := h.Pairings.Count(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error counting pairings", err, "A database error occurred.", "/")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "pair_date", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(500)
	rows, err := h.Pairings.Find(ctx, filter, opts)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error finding pairings", err, "A database error occurred.", "/")
		return
	}

	names, err := h.namesFor(ctx, rows)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error resolving pairing names", err, "A database error occurred.", "/")
		return
	}

	tableRows := make([]pairingRow, len(rows))
	for i, p := range rows {
		row := pairingRow{
			ID:        p.ID.Hex(),
			LeftID:    p.LeftID.Hex(),
			LeftName:  names[p.LeftID],
			RightID:   p.RightID.Hex(),
			RightName: names[p.RightID],
			PairDate:  p.PairDate.Format("Jan 2, 2006"),
			Notes:     p.Notes,
			Active:    p.IsActive(),
		}
		if p.UnpairDate != nil {
			row.UnpairDate = p.UnpairDate.Format("Jan 2, 2006")
		}
		tableRows[i] = row
	}

	templates.Render(w, r, "pairing_list", listData{
		Title:       "Pairings",
		IsLoggedIn:  true,
		Role:        role,
		UserName:    uname,
		ActiveOnly:  activeOnly,
		Total:       total,
		Rows:        tableRows,
		Notice:      r.URL.Query().Get("notice"),
		BackURL:     httpnav.ResolveBackURL(r, "/"),
		CurrentPath: httpnav.CurrentPath(r),
	})
}

// namesFor resolves the display names of every seeker referenced by the
// given pairings in one query.
func (h *Handler) namesFor(ctx context.Context, rows []models.SeekerPairing) (map[primitive.ObjectID]string, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(rows)*2)
	ids := make([]primitive.ObjectID, 0, len(rows)*2)
	for _, p := range rows {
		for _, id := range []primitive.ObjectID{p.LeftID, p.RightID} {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[primitive.ObjectID]string{}, nil
	}

	opts := options.Find().SetProjection(bson.M{
		"_id":         1,
		"first_names": 1,
		"last_names":  1,
	})
	humans, err := h.Humans.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}

	names := make(map[primitive.ObjectID]string, len(humans))
	for _, hu := range humans {
		names[hu.ID] = hu.FullName()
	}
	return names, nil
}
