// internal/app/features/humans/enroll.go
package humans

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	humanstore "github.com/opencircle/seekerhub/internal/app/store/humans"
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeEnroll renders the enrollment form: the initial seeker profile for a
// prospect about to join the program.
func (h *Handler) ServeEnroll(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "Bad record id.", httpnav.ResolveBackURL(r, "/humans"))
		return
	}

	hu, err := h.Humans.GetProspectByID(ctx, id)
	if err != nil {
		uierrors.RenderForbidden(w, r, "Only prospects can be enrolled.", httpnav.ResolveBackURL(r, "/humans"))
		return
	}

	data := enrollData{
		ID:       hu.ID.Hex(),
		FullName: hu.FullName(),
	}
	formutil.SetBase(&data.Base, r, "Enroll "+hu.FullName(), backToHumansURL(r))
	templates.Render(w, r, "human_enroll", data)
}

// HandleEnroll handles POST /humans/{id}/enroll: the prospect becomes a
// seeker with the submitted initial profile, keeping its id and linked
// records.
func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse enroll form failed", err, "Invalid form data.", "/humans")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "Bad record id.", httpnav.ResolveBackURL(r, "/humans"))
		return
	}

	profile := seekerProfileFromForm(r)

	if err := h.Humans.UpgradeToSeeker(ctx, id, profile); err != nil {
		if err == humanstore.ErrNotProspect {
			uierrors.RenderForbidden(w, r, "Only prospects can be enrolled.", httpnav.ResolveBackURL(r, "/humans"))
			return
		}
		h.ErrLog.LogServerError(w, r, "database error enrolling seeker", err, "A database error occurred.", "/humans")
		return
	}
	h.AuditLog.SeekerEnrolled(ctx, r, uid, id)

	// Move the member onto the seeker mailing tags. Best effort: a vendor
	// failure here should not obscure a completed enrollment.
	if hu, err := h.Humans.GetSeekerByID(ctx, id); err == nil && hu.Email != "" {
		mailCtx, mailCancel := context.WithTimeout(r.Context(), timeouts.Mail())
		defer mailCancel()
		if subscribed, _ := h.memberState(mailCtx, hu.Email); subscribed {
			if err := h.overwriteTags(mailCtx, hu.Email, h.DefaultTags[models.RoleSeeker]); err != nil {
				h.Log.Warn("mailing tag update after enrollment failed",
					zap.Error(err),
					zap.String("human_id", id.Hex()),
				)
			}
		}
	}

	http.Redirect(w, r, "/seekers/"+id.Hex()+"/edit?notice=Enrolled", http.StatusSeeOther)
}

// seekerProfileFromForm reads the seeker profile fields shared by the enroll
// and seeker edit forms.
func seekerProfileFromForm(r *http.Request) models.SeekerProfile {
	p := models.SeekerProfile{
		ListenerTrained:   r.FormValue("listener_trained") == "on",
		ExtraCare:         r.FormValue("extra_care") == "on",
		ExtraCareGraduate: r.FormValue("extra_care_graduate") == "on",
		RideShare:         r.FormValue("ride_share") == "on",
		SpaceHolder:       r.FormValue("space_holder") == "on",
		ActivityBuddy:     r.FormValue("activity_buddy") == "on",
		Outreach:          r.FormValue("outreach") == "on",
		ReadyToPair:       r.FormValue("ready_to_pair") == "on",

		FacebookUsername: strings.TrimSpace(r.FormValue("facebook_username")),
		FacebookAlias:    strings.TrimSpace(r.FormValue("facebook_alias")),

		Transportation:              strings.TrimSpace(r.FormValue("transportation")),
		ConnectionAgentOrganization: strings.TrimSpace(r.FormValue("connection_agent_organization")),
	}
	if d := parseFormDate(r.FormValue("birthdate")); d != nil {
		p.Birthdate = d
	}
	if d := parseFormDate(r.FormValue("sober_anniversary")); d != nil {
		p.SoberAnniversary = d
	}
	return p
}

// parseFormDate parses the yyyy-mm-dd value an <input type="date"> submits.
func parseFormDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
