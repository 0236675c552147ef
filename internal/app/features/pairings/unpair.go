// internal/app/features/pairings/unpair.go
package pairings

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/httpnav"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	pairingstore "github.com/opencircle/seekerhub/internal/app/store/pairings"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleUnpair handles POST /pairings/{id}/unpair: stamps the unpair date
// (defaulting to today) and optional closing notes. The pairing row stays as
// history.
func (h *Handler) HandleUnpair(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse unpair form failed", err, "Invalid form data.", "/pairings")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderForbidden(w, r, "Bad pairing id.", httpnav.ResolveBackURL(r, "/pairings"))
		return
	}

	date := todayUTC()
	if d := strings.TrimSpace(r.FormValue("unpair_date")); d != "" {
		if t, perr := time.Parse("2006-01-02", d); perr == nil {
			date = t
		}
	}

	err = h.Pairings.Unpair(ctx, id, date, strings.TrimSpace(r.FormValue("notes")))
	if err != nil {
		if err == pairingstore.ErrAlreadyEnded {
			uierrors.RenderForbidden(w, r, "This pairing has already been ended.", httpnav.ResolveBackURL(r, "/pairings"))
			return
		}
		h.ErrLog.LogServerError(w, r, "database error ending pairing", err, "A database error occurred.", "/pairings")
		return
	}
	h.AuditLog.PairingEnded(ctx, r, uid, id)

	http.Redirect(w, r, "/pairings?notice=Pairing+ended", http.StatusSeeOther)
}

func todayUTC() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
