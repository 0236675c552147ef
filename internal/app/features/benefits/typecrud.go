// internal/app/features/benefits/typecrud.go
package benefits

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	benefitstore "github.com/opencircle/seekerhub/internal/app/store/benefits"
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeNewType renders the new benefit type form.
func (h *Handler) ServeNewType(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	data := typeFormData{}
	formutil.SetBase(&data.Base, r, "New Benefit Type", "/benefits")
	templates.Render(w, r, "benefit_type_form", data)
}

// HandleCreateType handles POST /benefits/types.
func (h *Handler) HandleCreateType(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse benefit type form failed", err, "Invalid form data.", "/benefits")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	in := typeFormData{
		Name:        strings.TrimSpace(r.FormValue("name")),
		DefaultCost: strings.TrimSpace(r.FormValue("default_cost")),
	}
	if in.Name == "" {
		h.renderTypeFormWithError(w, r, in, "New Benefit Type", "A name is required.")
		return
	}
	cost, err := parseCost(in.DefaultCost)
	if err != nil {
		h.renderTypeFormWithError(w, r, in, "New Benefit Type", "Default cost must be a non-negative number.")
		return
	}

	created, err := h.Benefits.CreateType(ctx, models.SeekerBenefitType{
		Name:        in.Name,
		DefaultCost: cost,
	})
	if err != nil {
		if err == benefitstore.ErrDuplicateName {
			h.renderTypeFormWithError(w, r, in, "New Benefit Type", "A benefit type with this name already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "database error creating benefit type", err, "A database error occurred.", "/benefits")
		return
	}
	h.AuditLog.BenefitTypeCreated(ctx, r, uid, created.ID, created.Name)

	http.Redirect(w, r, "/benefits?notice=Benefit+type+created", http.StatusSeeOther)
}

// ServeEditType renders the benefit type edit form.
func (h *Handler) ServeEditType(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "Bad benefit type id.", httpnav.ResolveBackURL(r, "/benefits"))
		return
	}

	bt, err := h.Benefits.GetTypeByID(ctx, id)
	if err != nil {
		uierrors.RenderForbidden(w, r, "Benefit type not found.", httpnav.ResolveBackURL(r, "/benefits"))
		return
	}

	data := typeFormData{
		ID:          bt.ID.Hex(),
		Name:        bt.Name,
		DefaultCost: strconv.FormatFloat(bt.DefaultCost, 'f', 2, 64),
	}
	formutil.SetBase(&data.Base, r, "Edit Benefit Type", "/benefits")
	templates.Render(w, r, "benefit_type_form", data)
}

// HandleEditType handles POST /benefits/types/{id}/edit.
func (h *Handler) HandleEditType(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse benefit type form failed", err, "Invalid form data.", "/benefits")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "Bad benefit type id.", httpnav.ResolveBackURL(r, "/benefits"))
		return
	}

	in := typeFormData{
		ID:          id.Hex(),
		Name:        strings.TrimSpace(r.FormValue("name")),
		DefaultCost: strings.TrimSpace(r.FormValue("default_cost")),
	}
	if in.Name == "" {
		h.renderTypeFormWithError(w, r, in, "Edit Benefit Type", "A name is required.")
		return
	}
	cost, err := parseCost(in.DefaultCost)
	if err != nil {
		h.renderTypeFormWithError(w, r, in, "Edit Benefit Type", "Default cost must be a non-negative number.")
		return
	}

	if err := h.Benefits.UpdateType(ctx, id, benefitstore.TypeUpdate{
		Name:        in.Name,
		DefaultCost: cost,
	}); err != nil {
		if err == benefitstore.ErrDuplicateName {
			h.renderTypeFormWithError(w, r, in, "Edit Benefit Type", "A benefit type with this name already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "database error updating benefit type", err, "A database error occurred.", "/benefits")
		return
	}
	h.AuditLog.BenefitTypeUpdated(ctx, r, uid, id)

	http.Redirect(w, r, "/benefits?notice=Benefit+type+saved", http.StatusSeeOther)
}

func (h *Handler) renderTypeFormWithError(w http.ResponseWriter, r *http.Request, in typeFormData, title, msg string) {
	formutil.SetBase(&in.Base, r, title, "/benefits")
	in.SetError(msg)
	templates.Render(w, r, "benefit_type_form", in)
}

// parseCost parses a form cost value; empty means zero.
func parseCost(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, benefitstore.ErrBadCost
	}
	return v, nil
}
