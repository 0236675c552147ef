// internal/app/features/humans/bulk.go
package humans

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleBulk handles POST /humans/bulk: the checkbox actions on the
// prospects list. Records that are no longer prospects are skipped rather
// than failing the batch; the notice reports how many actually changed.
func (h *Handler) HandleBulk(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse bulk form failed", err, "Invalid form data.", "/humans")
		return
	}

	action := r.FormValue("action")
	ids := r.Form["ids"]
	if len(ids) == 0 {
		http.Redirect(w, r, "/humans?notice="+url.QueryEscape("No records selected."), http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var changed int
	for _, raw := range ids {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			continue
		}

		switch action {
		case "enroll":
			err = h.Humans.UpgradeToSeeker(ctx, id, models.SeekerProfile{})
			if err == nil {
				h.AuditLog.SeekerEnrolled(ctx, r, uid, id)
			}
		case "mark_partner":
			err = h.Humans.MarkAsCommunityPartner(ctx, id, "")
			if err == nil {
				h.AuditLog.PartnerMarked(ctx, r, uid, id, "")
			}
		default:
			uierrors.RenderForbidden(w, r, "Unknown bulk action.", httpnav.ResolveBackURL(r, "/humans"))
			return
		}

		if err != nil {
			h.Log.Warn("bulk action skipped record",
				zap.String("action", action),
				zap.String("human_id", id.Hex()),
				zap.Error(err),
			)
			continue
		}
		changed++
	}

	var notice string
	switch action {
	case "enroll":
		notice = fmt.Sprintf("Enrolled %d of %d selected.", changed, len(ids))
	case "mark_partner":
		notice = fmt.Sprintf("Marked %d of %d selected as community partners.", changed, len(ids))
	}
	http.Redirect(w, r, "/humans?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}
