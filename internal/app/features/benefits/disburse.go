// internal/app/features/benefits/disburse.go
package benefits

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	benefitstore "github.com/opencircle/seekerhub/internal/app/store/benefits"
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServeNewDisbursement renders the record-disbursement form. Leaving the
// cost blank records the type's default cost.
func (h *Handler) ServeNewDisbursement(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, err := h.buildDisbursementData(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading disbursement form", err, "A database error occurred.", "/benefits")
		return
	}
	templates.Render(w, r, "benefit_new", data)
}

// HandleCreateDisbursement handles POST /benefits.
func (h *Handler) HandleCreateDisbursement(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse disbursement form failed", err, "Invalid form data.", "/benefits")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	seekerID, seekerErr := primitive.ObjectIDFromHex(strings.TrimSpace(r.FormValue("seeker_id")))
	typeID, typeErr := primitive.ObjectIDFromHex(strings.TrimSpace(r.FormValue("type_id")))
	if seekerErr != nil || typeErr != nil {
		h.renderDisbursementWithError(ctx, w, r, "Pick a seeker and a benefit type.")
		return
	}

	if _, err := h.Humans.GetSeekerByID(ctx, seekerID); err != nil {
		h.renderDisbursementWithError(ctx, w, r, "Benefits can only be recorded for enrolled seekers.")
		return
	}

	b := models.SeekerBenefit{
		SeekerID: seekerID,
		TypeID:   typeID,
	}
	if d := strings.TrimSpace(r.FormValue("date")); d != "" {
		if t, err := time.Parse("2006-01-02", d); err == nil {
			b.Date = t
		}
	}
	if c := strings.TrimSpace(r.FormValue("cost")); c != "" {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			h.renderDisbursementWithError(ctx, w, r, "Cost must be a number.")
			return
		}
		b.Cost = v
	}

	created, err := h.Benefits.Create(ctx, b)
	if err != nil {
		if err == benefitstore.ErrBadCost {
			h.renderDisbursementWithError(ctx, w, r, "Cost cannot be negative.")
			return
		}
		h.ErrLog.LogServerError(w, r, "database error recording disbursement", err, "A database error occurred.", "/benefits")
		return
	}
	h.AuditLog.BenefitRecorded(ctx, r, uid, created.ID, seekerID)

	http.Redirect(w, r, "/benefits?notice=Disbursement+recorded", http.StatusSeeOther)
}

func (h *Handler) renderDisbursementWithError(ctx context.Context, w http.ResponseWriter, r *http.Request, msg string) {
	data, err := h.buildDisbursementData(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading disbursement form", err, "A database error occurred.", "/benefits")
		return
	}
	data.SetError(msg)
	templates.Render(w, r, "benefit_new", data)
}

func (h *Handler) buildDisbursementData(ctx context.Context, r *http.Request) (disbursementData, error) {
	data := disbursementData{
		SeekerID: strings.TrimSpace(r.FormValue("seeker_id")),
		TypeID:   strings.TrimSpace(r.FormValue("type_id")),
		Date:     strings.TrimSpace(r.FormValue("date")),
		Cost:     strings.TrimSpace(r.FormValue("cost")),
	}
	formutil.SetBase(&data.Base, r, "Record Disbursement", "/benefits")

	opts := options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}}).
		SetProjection(bson.M{"_id": 1, "first_names": 1, "last_names": 1})
	seekers, err := h.Humans.Find(ctx, bson.M{"role": models.RoleSeeker}, opts)
	if err != nil {
		return disbursementData{}, err
	}
	data.Seekers = make([]seekerChoice, len(seekers))
	for i, hu := range seekers {
		data.Seekers[i] = seekerChoice{ID: hu.ID.Hex(), FullName: hu.FullName()}
	}

	types, err := h.Benefits.ListTypes(ctx)
	if err != nil {
		return disbursementData{}, err
	}
	data.Types = make([]typeChoice, len(types))
	for i, t := range types {
		data.Types[i] = typeChoice{ID: t.ID.Hex(), Name: t.Name, DefaultCost: t.DefaultCost}
	}

	return data, nil
}
