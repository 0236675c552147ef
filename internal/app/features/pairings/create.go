// internal/app/features/pairings/create.go
package pairings

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	pairingstore "github.com/opencircle/seekerhub/internal/app/store/pairings"
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServeNew renders the new-pairing form with two seeker pickers.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, err := h.buildNewData(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading seekers for pairing", err, "A database error occurred.", "/pairings")
		return
	}
	templates.Render(w, r, "pairing_new", data)
}

// HandleCreate handles POST /pairings: two distinct seekers, a pair date
// defaulting to today, and optional notes.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse pairing form failed", err, "Invalid form data.", "/pairings")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	leftRaw := strings.TrimSpace(r.FormValue("left_id"))
	rightRaw := strings.TrimSpace(r.FormValue("right_id"))

	leftID, leftErr := primitive.ObjectIDFromHex(leftRaw)
	rightID, rightErr := primitive.ObjectIDFromHex(rightRaw)
	if leftErr != nil || rightErr != nil {
		h.renderNewWithError(ctx, w, r, "Pick both seekers to pair.")
		return
	}

	// Both sides must be enrolled seekers.
	for _, id := range []primitive.ObjectID{leftID, rightID} {
		if _, err := h.Humans.GetSeekerByID(ctx, id); err != nil {
			h.renderNewWithError(ctx, w, r, "Both records must be enrolled seekers.")
			return
		}
	}

	p := models.SeekerPairing{
		LeftID:  leftID,
		RightID: rightID,
		Notes:   strings.TrimSpace(r.FormValue("notes")),
	}
	if d := strings.TrimSpace(r.FormValue("pair_date")); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			p.PairDate = t
		}
	}

	created, err := h.Pairings.Create(ctx, p)
	if err != nil {
		if err == pairingstore.ErrSelfPair {
			h.renderNewWithError(ctx, w, r, "A seeker cannot be paired with themselves.")
			return
		}
		h.ErrLog.LogServerError(w, r, "database error creating pairing", err, "A database error occurred.", "/pairings")
		return
	}
	h.AuditLog.PairingCreated(ctx, r, uid, created.ID, leftID, rightID)

	http.Redirect(w, r, "/pairings?notice=Pairing+created", http.StatusSeeOther)
}

func (h *Handler) renderNewWithError(ctx context.Context, w http.ResponseWriter, r *http.Request, msg string) {
	data, err := h.buildNewData(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading seekers for pairing", err, "A database error occurred.", "/pairings")
		return
	}
	data.SetError(msg)
	templates.Render(w, r, "pairing_new", data)
}

// buildNewData loads the picker choices: active seekers, alphabetical, with
// the submitted form values echoed back.
func (h *Handler) buildNewData(ctx context.Context, r *http.Request) (newData, error) {
	data := newData{
		LeftID:   strings.TrimSpace(r.FormValue("left_id")),
		RightID:  strings.TrimSpace(r.FormValue("right_id")),
		PairDate: strings.TrimSpace(r.FormValue("pair_date")),
		Notes:    strings.TrimSpace(r.FormValue("notes")),
	}
	formutil.SetBase(&data.Base, r, "New Pairing", "/pairings")

	opts := options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}}).
		SetProjection(bson.M{"_id": 1, "first_names": 1, "last_names": 1})
	seekers, err := h.Humans.Find(ctx, bson.M{
		"role":                 models.RoleSeeker,
		"seeker.inactive_date": bson.M{"$exists": false},
	}, opts)
	if err != nil {
		return newData{}, err
	}

	data.Seekers = make([]seekerChoice, len(seekers))
	for i, hu := range seekers {
		data.Seekers[i] = seekerChoice{ID: hu.ID.Hex(), FullName: hu.FullName()}
	}
	return data, nil
}
