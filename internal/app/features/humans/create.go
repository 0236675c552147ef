// internal/app/features/humans/create.go
package humans

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	humanstore "github.com/opencircle/seekerhub/internal/app/store/humans"
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeNew renders the Add Human form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	data := newData{Popup: isPopup(r)}
	formutil.SetBase(&data.Base, r, "Add Human", backToHumansURL(r))
	templates.Render(w, r, "human_new", data)
}

// HandleCreate handles POST /humans. On success the new prospect is
// subscribed to the mailing list (when an email was given and the list does
// not already have it), then the browser is sent to the edit screen.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse human form failed", err, "Invalid form data.", "/humans")
		return
	}

	in := newData{
		Popup:             isPopup(r),
		FirstNames:        strings.TrimSpace(r.FormValue("first_names")),
		LastNames:         strings.TrimSpace(r.FormValue("last_names")),
		Email:             strings.TrimSpace(r.FormValue("email")),
		PhoneNumber:       strings.TrimSpace(r.FormValue("phone_number")),
		ContactPreference: strings.TrimSpace(r.FormValue("contact_preference")),
		City:              strings.TrimSpace(r.FormValue("city")),
		State:             strings.TrimSpace(r.FormValue("state")),
	}

	if in.FirstNames == "" || in.LastNames == "" {
		h.renderNewWithError(w, r, in, "First and last names are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Humans.Create(ctx, models.Human{
		FirstNames:        in.FirstNames,
		LastNames:         in.LastNames,
		Email:             in.Email,
		PhoneNumber:       in.PhoneNumber,
		ContactPreference: in.ContactPreference,
		City:              in.City,
		State:             in.State,
	})
	if err != nil {
		if err == humanstore.ErrDuplicateEmail {
			h.renderNewWithError(w, r, in, "A record with this email already exists.")
			return
		}
		h.ErrLog.LogServerError(w, r, "database error creating human", err, "A database error occurred.", "/humans")
		return
	}

	h.AuditLog.HumanCreated(ctx, r, uid, created.ID, created.FullName())

	// Mailing side effect runs after the save; a vendor failure surfaces to
	// the operator but the record is already stored.
	mailCtx, mailCancel := context.WithTimeout(r.Context(), timeouts.Mail())
	defer mailCancel()
	if err := h.subscribeOnCreate(mailCtx, created); err != nil {
		h.Log.Error("mailing subscribe failed for new human",
			zap.Error(err),
			zap.String("human_id", created.ID.Hex()),
		)
		uierrors.RenderForbidden(w, r,
			"The record was saved, but subscribing it to the mailing list failed: "+err.Error(),
			"/humans/"+created.ID.Hex()+"/edit")
		return
	}

	dest := "/humans/" + created.ID.Hex() + "/edit?notice=Record+created"
	if in.Popup {
		dest += "&popup=1"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderNewWithError(w http.ResponseWriter, r *http.Request, in newData, msg string) {
	formutil.SetBase(&in.Base, r, "Add Human", backToHumansURL(r))
	in.SetError(msg)
	templates.Render(w, r, "human_new", in)
}
