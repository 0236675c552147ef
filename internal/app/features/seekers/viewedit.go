// internal/app/features/seekers/viewedit.go
package seekers

import (
	"context"
	"net/http"
	"strings"

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

// ServeEdit renders the seeker edit form: contact and profile fields, the
// current pairings, milestones, and the note trail.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
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

	data := h.buildEditData(ctx, r, hu)
	templates.Render(w, r, "seeker_edit", data)
}

// HandleEdit handles POST /seekers/{id}/edit: contact and profile updates,
// an optional note, an optional milestone, and the mailing tag overwrite.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	_, uname, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse seeker edit form failed", err, "Invalid form data.", "/seekers")
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

	upd := humanstore.ContactUpdate{
		FirstNames:        strings.TrimSpace(r.FormValue("first_names")),
		LastNames:         strings.TrimSpace(r.FormValue("last_names")),
		Email:             strings.TrimSpace(r.FormValue("email")),
		PhoneNumber:       strings.TrimSpace(r.FormValue("phone_number")),
		ContactPreference: strings.TrimSpace(r.FormValue("contact_preference")),
		City:              strings.TrimSpace(r.FormValue("city")),
		State:             strings.TrimSpace(r.FormValue("state")),
	}
	if upd.FirstNames == "" || upd.LastNames == "" {
		data := h.buildEditData(ctx, r, hu)
		data.SetError("First and last names are required.")
		templates.Render(w, r, "seeker_edit", data)
		return
	}

	if err := h.Humans.UpdateContact(ctx, id, upd); err != nil {
		if err == humanstore.ErrDuplicateEmail {
			data := h.buildEditData(ctx, r, hu)
			data.SetError("A record with this email already exists.")
			templates.Render(w, r, "seeker_edit", data)
			return
		}
		h.ErrLog.LogServerError(w, r, "database error updating seeker contact", err, "A database error occurred.", "/seekers")
		return
	}

	profile := profileFromForm(r, hu.Seeker)
	if err := h.Humans.UpdateSeekerProfile(ctx, id, profile); err != nil {
		h.ErrLog.LogServerError(w, r, "database error updating seeker profile", err, "A database error occurred.", "/seekers")
		return
	}
	h.AuditLog.SeekerUpdated(ctx, r, uid, id)

	if note := strings.TrimSpace(r.FormValue("new_note")); note != "" {
		if _, err := h.Notes.Append(ctx, models.HumanNote{
			HumanID: id,
			Note:    note,
			AddedBy: uname,
		}); err != nil {
			h.ErrLog.LogServerError(w, r, "database error appending note", err, "A database error occurred.", "/seekers")
			return
		}
		h.AuditLog.NoteAdded(ctx, r, uid, id)
	}

	if title := strings.TrimSpace(r.FormValue("milestone_title")); title != "" {
		m := models.SeekerMilestone{SeekerID: id, Title: title}
		if d := parseFormDate(r.FormValue("milestone_date")); d != nil {
			m.Date = *d
		}
		if _, err := h.Milestones.Append(ctx, m); err != nil {
			h.ErrLog.LogServerError(w, r, "database error appending milestone", err, "A database error occurred.", "/seekers")
			return
		}
		h.AuditLog.MilestoneAdded(ctx, r, uid, id, title)
	}

	if email := upd.Email; email != "" {
		mailCtx, mailCancel := context.WithTimeout(r.Context(), timeouts.Mail())
		defer mailCancel()
		if subscribed, _ := h.memberState(mailCtx, email); subscribed {
			if err := h.overwriteTags(mailCtx, email, r.Form["mail_tags"]); err != nil {
				h.Log.Error("mailing tag update failed",
					zap.Error(err),
					zap.String("human_id", id.Hex()),
				)
				uierrors.RenderForbidden(w, r,
					"The record was saved, but updating its mailing tags failed: "+err.Error(),
					"/seekers/"+id.Hex()+"/edit")
				return
			}
		}
	}

	http.Redirect(w, r, "/seekers/"+id.Hex()+"/edit?notice=Saved", http.StatusSeeOther)
}

// profileFromForm rebuilds the full seeker profile from the form, keeping
// the fields the form does not carry (enrollment stamp).
func profileFromForm(r *http.Request, prev *models.SeekerProfile) models.SeekerProfile {
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

		Birthdate:        parseFormDate(r.FormValue("birthdate")),
		SoberAnniversary: parseFormDate(r.FormValue("sober_anniversary")),
		InactiveDate:     parseFormDate(r.FormValue("inactive_date")),
	}
	if prev != nil {
		p.EnrolledAt = prev.EnrolledAt
	}
	return p
}

func (h *Handler) buildEditData(ctx context.Context, r *http.Request, hu *models.Human) editData {
	data := editData{
		ID:                hu.ID.Hex(),
		FirstNames:        hu.FirstNames,
		LastNames:         hu.LastNames,
		Email:             hu.Email,
		PhoneNumber:       hu.PhoneNumber,
		ContactPreference: hu.ContactPreference,
		City:              hu.City,
		State:             hu.State,
	}
	formutil.SetBase(&data.Base, r, "Edit Seeker", backToSeekersURL(r))

	if p := hu.Seeker; p != nil {
		data.ListenerTrained = p.ListenerTrained
		data.ExtraCare = p.ExtraCare
		data.ExtraCareGraduate = p.ExtraCareGraduate
		data.RideShare = p.RideShare
		data.SpaceHolder = p.SpaceHolder
		data.ActivityBuddy = p.ActivityBuddy
		data.Outreach = p.Outreach
		data.ReadyToPair = p.ReadyToPair
		data.FacebookUsername = p.FacebookUsername
		data.FacebookAlias = p.FacebookAlias
		data.Birthdate = formatDate(p.Birthdate)
		data.SoberAnniversary = formatDate(p.SoberAnniversary)
		data.Transportation = p.Transportation
		data.ConnectionAgentOrganization = p.ConnectionAgentOrganization
		data.Active = p.IsActive()
		data.InactiveDate = formatDate(p.InactiveDate)
		data.EnrolledAt = p.EnrolledAt.Format("Jan 2, 2006")
	}

	pairs, err := h.Pairings.ActivePairsFor(ctx, hu.ID)
	if err != nil {
		h.Log.Warn("load active pairings", zap.Error(err), zap.String("human_id", hu.ID.Hex()))
	}
	for _, p := range pairs {
		otherID, _ := p.Other(hu.ID)
		row := pairRow{
			PairingID: p.ID.Hex(),
			PartnerID: otherID.Hex(),
			PairDate:  p.PairDate.Format("Jan 2, 2006"),
		}
		if other, err := h.Humans.GetByID(ctx, otherID); err == nil {
			row.PartnerName = other.FullName()
		}
		data.ActivePairs = append(data.ActivePairs, row)
	}

	milestones, err := h.Milestones.ListForSeeker(ctx, hu.ID)
	if err != nil {
		h.Log.Warn("load milestones", zap.Error(err), zap.String("human_id", hu.ID.Hex()))
	}
	for _, m := range milestones {
		data.Milestones = append(data.Milestones, milestoneRow{
			Title: m.Title,
			Date:  m.Date.Format("Jan 2, 2006"),
		})
	}

	benefits, err := h.Benefits.ListForSeeker(ctx, hu.ID)
	if err != nil {
		h.Log.Warn("load benefits", zap.Error(err), zap.String("human_id", hu.ID.Hex()))
	}
	if len(benefits) > 0 {
		typeNames := map[primitive.ObjectID]string{}
		if types, err := h.Benefits.ListTypes(ctx); err != nil {
			h.Log.Warn("load benefit types", zap.Error(err))
		} else {
			for _, bt := range types {
				typeNames[bt.ID] = bt.Name
			}
		}
		for _, b := range benefits {
			data.Benefits = append(data.Benefits, benefitRow{
				Date:     b.Date.Format("Jan 2, 2006"),
				TypeName: typeNames[b.TypeID],
				Cost:     b.Cost,
			})
		}
	}

	notes, err := h.Notes.ListForHuman(ctx, hu.ID)
	if err != nil {
		h.Log.Warn("load notes", zap.Error(err), zap.String("human_id", hu.ID.Hex()))
	}
	for _, n := range notes {
		data.Notes = append(data.Notes, noteRow{
			Note:    n.Note,
			AddedBy: n.AddedBy,
			AddedAt: n.CreatedAt.Format("Jan 2, 2006 3:04 PM"),
		})
	}

	subscribed, current := h.memberState(ctx, hu.Email)
	data.Subscribed = subscribed
	if subscribed {
		for _, tag := range h.Tags.All() {
			data.TagOptions = append(data.TagOptions, tagOption{
				Name:    tag,
				Checked: current[tag],
			})
		}
	}

	return data
}
