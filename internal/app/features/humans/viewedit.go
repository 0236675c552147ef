// internal/app/features/humans/viewedit.go
package humans

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

// ServeEdit renders the Human edit form with the note trail inline.
//
// Records that have moved on from prospect status redirect to their current
// screen, so stale bookmarks and cross-links keep working after enrollment.
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
		uierrors.RenderForbidden(w, r, "Bad record id.", httpnav.ResolveBackURL(r, "/humans"))
		return
	}

	hu, err := h.Humans.GetByID(ctx, id)
	if err != nil {
		uierrors.RenderForbidden(w, r, "Record not found.", httpnav.ResolveBackURL(r, "/humans"))
		return
	}

	switch hu.Role {
	case models.RoleSeeker:
		http.Redirect(w, r, "/seekers/"+hu.ID.Hex()+"/edit", http.StatusSeeOther)
		return
	case models.RolePartner:
		http.Redirect(w, r, "/partners/"+hu.ID.Hex()+"/edit", http.StatusSeeOther)
		return
	}

	data := h.buildEditData(ctx, r, hu)
	templates.Render(w, r, "human_edit", data)
}

// HandleEdit handles POST /humans/{id}/edit: contact updates, an optional
// appended note, and the mailing-list tag overwrite.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	_, uname, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse human edit form failed", err, "Invalid form data.", "/humans")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "Bad record id.", httpnav.ResolveBackURL(r, "/humans"))
		return
	}

	hu, err := h.Humans.GetProspectByID(ctx, id)
	if err != nil {
		uierrors.RenderForbidden(w, r, "Record not found.", httpnav.ResolveBackURL(r, "/humans"))
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
		templates.Render(w, r, "human_edit", data)
		return
	}

	if err := h.Humans.UpdateContact(ctx, id, upd); err != nil {
		if err == humanstore.ErrDuplicateEmail {
			data := h.buildEditData(ctx, r, hu)
			data.SetError("A record with this email already exists.")
			templates.Render(w, r, "human_edit", data)
			return
		}
		h.ErrLog.LogServerError(w, r, "database error updating human", err, "A database error occurred.", "/humans")
		return
	}
	h.AuditLog.HumanUpdated(ctx, r, uid, id)

	// Append-only note trail: a filled note box adds one entry, stamped with
	// the signed-in user. Notes are never edited after the fact.
	if note := strings.TrimSpace(r.FormValue("new_note")); note != "" {
		if _, err := h.Notes.Append(ctx, models.HumanNote{
			HumanID: id,
			Note:    note,
			AddedBy: uname,
		}); err != nil {
			h.ErrLog.LogServerError(w, r, "database error appending note", err, "A database error occurred.", "/humans")
			return
		}
		h.AuditLog.NoteAdded(ctx, r, uid, id)
	}

	// Tag overwrite runs after the save with the possibly-updated email.
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
					"/humans/"+id.Hex()+"/edit")
				return
			}
		}
	}

	dest := "/humans/" + id.Hex() + "/edit?notice=Saved"
	if isPopup(r) {
		dest += "&popup=1"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// buildEditData assembles the edit form VM: record fields, the note trail,
// and mailing tag checkboxes reflecting the member's current tags.
func (h *Handler) buildEditData(ctx context.Context, r *http.Request, hu *models.Human) editData {
	data := editData{
		Popup:             isPopup(r),
		ID:                hu.ID.Hex(),
		FirstNames:        hu.FirstNames,
		LastNames:         hu.LastNames,
		Email:             hu.Email,
		PhoneNumber:       hu.PhoneNumber,
		ContactPreference: hu.ContactPreference,
		City:              hu.City,
		State:             hu.State,
	}
	formutil.SetBase(&data.Base, r, "Edit Human", backToHumansURL(r))

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
