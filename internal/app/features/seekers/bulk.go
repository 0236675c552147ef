// internal/app/features/seekers/bulk.go
package seekers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleBulk handles POST /seekers/bulk. The only action is "downgrade":
// each selected seeker goes back to prospect, keeping its id and linked
// records. Non-seekers are skipped; the notice reports how many changed.
func (h *Handler) HandleBulk(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse bulk form failed", err, "Invalid form data.", "/seekers")
		return
	}

	if action := r.FormValue("action"); action != "downgrade" {
		uierrors.RenderForbidden(w, r, "Unknown bulk action.", httpnav.ResolveBackURL(r, "/seekers"))
		return
	}

	ids := r.Form["ids"]
	if len(ids) == 0 {
		http.Redirect(w, r, "/seekers?notice="+url.QueryEscape("No records selected."), http.StatusSeeOther)
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
		if err := h.Humans.DowngradeToProspect(ctx, id); err != nil {
			h.Log.Warn("bulk downgrade skipped record",
				zap.String("human_id", id.Hex()),
				zap.Error(err),
			)
			continue
		}
		h.AuditLog.SeekerDowngraded(ctx, r, uid, id)
		changed++
	}

	notice := fmt.Sprintf("Downgraded %d of %d selected to prospects.", changed, len(ids))
	http.Redirect(w, r, "/seekers?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}
