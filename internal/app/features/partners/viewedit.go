// internal/app/features/partners/viewedit.go
package partners

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/mailchimp"
	humanstore "github.com/opencircle/seekerhub/internal/app/store/humans"
	"github.com/opencircle/seekerhub/internal/app/system/authz"
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// searchWindows builds prefix windows over the indexed name field plus the
// raw email and phone fields, so one search box covers all three.
func searchWindows(query string) []bson.M {
	folded := text.Fold(query)
	lower := strings.ToLower(query)
	return []bson.M{
		{"full_name_ci": bson.M{"$gte": folded, "$lt": folded + "\uffff"}},
		{"email": bson.M{"$gte": lower, "$lt": lower + "\uffff"}},
		{"phone_number": bson.M{"$gte": query, "$lt": query + "\uffff"}},
	}
}

func userCtx(r *http.Request) (role, name string, uid primitive.ObjectID, ok bool) {
	role, name, uid, ok = authz.UserCtx(r)
	return
}

// ServeEdit renders the partner edit form.
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
		uierrors.RenderForbidden(w, r, "Bad record id.", httpnav.ResolveBackURL(r, "/partners"))
		return
	}

	hu, err := h.Humans.GetPartnerByID(ctx, id)
	if err != nil {
		uierrors.RenderForbidden(w, r, "Partner not found.", httpnav.ResolveBackURL(r, "/partners"))
		return
	}

	data := h.buildEditData(ctx, r, hu)
	templates.Render(w, r, "partner_edit", data)
}

// HandleEdit handles POST /partners/{id}/edit: contact and organization
// updates, an optional note, and the mailing tag overwrite.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	_, uname, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse partner edit form failed", err, "Invalid form data.", "/partners")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "Bad record id.", httpnav.ResolveBackURL(r, "/partners"))
		return
	}

	hu, err := h.Humans.GetPartnerByID(ctx, id)
	if err != nil {
		uierrors.RenderForbidden(w, r, "Partner not found.", httpnav.ResolveBackURL(r, "/partners"))
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
		templates.Render(w, r, "partner_edit", data)
		return
	}

	if err := h.Humans.UpdateContact(ctx, id, upd); err != nil {
		if err == humanstore.ErrDuplicateEmail {
			data := h.buildEditData(ctx, r, hu)
			data.SetError("A record with this email already exists.")
			templates.Render(w, r, "partner_edit", data)
			return
		}
		h.ErrLog.LogServerError(w, r, "database error updating partner contact", err, "A database error occurred.", "/partners")
		return
	}

	profile := models.PartnerProfile{
		Organization: strings.TrimSpace(r.FormValue("organization")),
	}
	if hu.Partner != nil {
		profile.MarkedAt = hu.Partner.MarkedAt
	}
	if err := h.Humans.UpdatePartnerProfile(ctx, id, profile); err != nil {
		h.ErrLog.LogServerError(w, r, "database error updating partner profile", err, "A database error occurred.", "/partners")
		return
	}
	h.AuditLog.PartnerUpdated(ctx, r, uid, id)

	if note := strings.TrimSpace(r.FormValue("new_note")); note != "" {
		if _, err := h.Notes.Append(ctx, models.HumanNote{
			HumanID: id,
			Note:    note,
			AddedBy: uname,
		}); err != nil {
			h.ErrLog.LogServerError(w, r, "database error appending note", err, "A database error occurred.", "/partners")
			return
		}
		h.AuditLog.NoteAdded(ctx, r, uid, id)
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
					"/partners/"+id.Hex()+"/edit")
				return
			}
		}
	}

	http.Redirect(w, r, "/partners/"+id.Hex()+"/edit?notice=Saved", http.StatusSeeOther)
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
	formutil.SetBase(&data.Base, r, "Edit Community Partner", backToPartnersURL(r))

	if hu.Partner != nil {
		data.Organization = hu.Partner.Organization
		data.MarkedAt = hu.Partner.MarkedAt.Format("Jan 2, 2006")
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

func backToPartnersURL(r *http.Request) string {
	ret := strings.TrimSpace(r.URL.Query().Get("return"))
	if ret == "" {
		ret = strings.TrimSpace(r.FormValue("return"))
	}
	if strings.HasPrefix(ret, "/partners") {
		return ret
	}
	return "/partners"
}

// overwriteTags and memberState mirror the Humans screen's mailing helpers.
func (h *Handler) overwriteTags(ctx context.Context, email string, submitted []string) error {
	if h.Mail == nil || email == "" {
		return nil
	}

	active, inactive, unknown := h.Tags.Overwrite(submitted)
	for _, tag := range unknown {
		h.Log.Warn("ignoring unconfigured mailing tag",
			zap.String("tag", tag),
			zap.String("email", email),
		)
	}

	tags := make([]mailchimp.Tag, 0, len(active)+len(inactive))
	for _, t := range active {
		tags = append(tags, mailchimp.Tag{Name: t, Status: "active"})
	}
	for _, t := range inactive {
		tags = append(tags, mailchimp.Tag{Name: t, Status: "inactive"})
	}
	if len(tags) == 0 {
		return nil
	}

	err := h.Mail.UpdateTags(ctx, email, tags)
	if errors.Is(err, mailchimp.ErrNotSubscribed) {
		h.Log.Warn("tag update skipped; member no longer subscribed",
			zap.String("email", email))
		return nil
	}
	return err
}

func (h *Handler) memberState(ctx context.Context, email string) (bool, map[string]bool) {
	if h.Mail == nil || email == "" {
		return false, nil
	}
	m, err := h.Mail.SubscriptionStatus(ctx, email)
	if err != nil {
		if !errors.Is(err, mailchimp.ErrNotSubscribed) {
			h.Log.Warn("mailing member lookup failed", zap.Error(err), zap.String("email", email))
		}
		return false, nil
	}
	if m.Status != "subscribed" {
		return false, nil
	}
	current := make(map[string]bool, len(m.Tags))
	for _, t := range m.Tags {
		current[t] = true
	}
	return true, current
}
