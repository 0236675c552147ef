// internal/app/features/benefits/dashboard.go
package benefits

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/store/queries/benefitreport"
	"github.com/opencircle/seekerhub/internal/app/system/authz"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func userCtx(r *http.Request) (role, name string, uid primitive.ObjectID, ok bool) {
	role, name, uid, ok = authz.UserCtx(r)
	return
}

// ServeDashboard renders the benefits report: per-type usage for the month,
// year, and all-time windows, the month summary, and the top seekers.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, uname, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	now := time.Now().UTC()

	types, err := h.Benefits.ListTypes(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing benefit types", err, "A database error occurred.", "/")
		return
	}

	usage, err := benefitreport.UsageByType(ctx, h.DB, now)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error aggregating benefit usage", err, "A database error occurred.", "/")
		return
	}

	rows := make([]typeReportRow, len(types))
	for i, t := range types {
		u := usage[t.ID]
		rows[i] = typeReportRow{
			ID:           t.ID.Hex(),
			Name:         t.Name,
			DefaultCost:  t.DefaultCost,
			MonthUses:    u.MonthUses,
			MonthTotal:   u.MonthTotal,
			MonthAverage: u.MonthAverage(),
			YearUses:     u.YearUses,
			YearTotal:    u.YearTotal,
			AllUses:      u.AllUses,
			AllTotal:     u.AllTotal,
		}
	}

	summary, err := benefitreport.SummarizeMonth(ctx, h.DB, now)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error summarizing month", err, "A database error occurred.", "/")
		return
	}

	served, err := benefitreport.SeekersServedThisMonth(ctx, h.DB, now)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error counting served seekers", err, "A database error occurred.", "/")
		return
	}
	var perSeeker float64
	if served > 0 {
		perSeeker = summary.Total / float64(served)
	}

	top, err := benefitreport.TopSeekersThisMonth(ctx, h.DB, now, 10)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error ranking seekers", err, "A database error occurred.", "/")
		return
	}
	topRows := make([]topSeekerRow, len(top))
	for i, u := range top {
		topRows[i] = topSeekerRow{
			ID:    u.SeekerID.Hex(),
			Uses:  u.Uses,
			Total: u.Total,
		}
		if hu, err := h.Humans.GetByID(ctx, u.SeekerID); err == nil {
			topRows[i].FullName = hu.FullName()
		} else {
			h.Log.Warn("resolve top seeker name",
				zap.Error(err), zap.String("seeker_id", u.SeekerID.Hex()))
		}
	}

	templates.Render(w, r, "benefit_dashboard", dashboardData{
		Title:            "Benefits",
		IsLoggedIn:       true,
		Role:             role,
		UserName:         uname,
		Month:            now.Format("January 2006"),
		Types:            rows,
		SeekersServed:    served,
		MonthTotal:       summary.Total,
		PerSeekerAverage: perSeeker,
		TopSeekers:       topRows,
		Notice:           r.URL.Query().Get("notice"),
		BackURL:          httpnav.ResolveBackURL(r, "/"),
		CurrentPath:      httpnav.CurrentPath(r),
	})
}
