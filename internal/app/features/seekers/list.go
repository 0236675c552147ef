// internal/app/features/seekers/list.go
package seekers

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/system/paging"
	"github.com/opencircle/seekerhub/internal/app/system/timeouts"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServeList renders the Seekers screen: enrolled participants with the
// program attribute filters.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, uname, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	searchQuery := strings.TrimSpace(q.Get("search"))
	after := strings.TrimSpace(q.Get("after"))
	before := strings.TrimSpace(q.Get("before"))
	start := paging.ParseStart(r)

	base := bson.M{"role": models.RoleSeeker}
	if searchQuery != "" {
		base["$or"] = searchWindows(searchQuery)
	}
	applyFilters(q, base)

	total, err := h.Humans.Count(ctx, base)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error counting seekers", err, "A database error occurred.", "/")
		return
	}

	filter := bson.M{}
	for k, v := range base {
		filter[k] = v
	}

	findOpts := options.Find().SetProjection(bson.M{
		"_id":          1,
		"first_names":  1,
		"last_names":   1,
		"full_name_ci": 1,
		"email":        1,
		"phone_number": 1,
		"seeker":       1,
	})

	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(findOpts, "full_name_ci")
	cfg.MergeWindow(filter, "full_name_ci")

	rows, err := h.Humans.Find(ctx, filter, findOpts)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error finding seekers", err, "A database error occurred.", "/")
		return
	}

	page := paging.TrimPage(&rows, before, after)
	if before != "" {
		paging.Reverse(rows)
	}

	tableRows := make([]seekerRow, len(rows))
	for i, hu := range rows {
		row := seekerRow{
			ID:          hu.ID,
			FullName:    hu.FullName(),
			Email:       hu.Email,
			PhoneNumber: hu.PhoneNumber,
		}
		if hu.Seeker != nil {
			row.ListenerTrained = hu.Seeker.ListenerTrained
			row.ExtraCare = hu.Seeker.ExtraCare
			row.ExtraCareGraduate = hu.Seeker.ExtraCareGraduate
			row.Active = hu.Seeker.IsActive()
		}
		tableRows[i] = row
	}

	prevCursor, nextCursor := paging.BuildCursors(rows,
		func(hu models.Human) string { return hu.FullNameCI },
		func(hu models.Human) primitive.ObjectID { return hu.ID },
	)

	rng := paging.ComputeRange(start, len(rows))

	templates.Render(w, r, "seeker_list", listData{
		Title:       "Seekers",
		IsLoggedIn:  true,
		Role:        role,
		UserName:    uname,
		SearchQuery: searchQuery,
		Filters:     filterUI(q),
		Shown:       len(rows),
		Total:       total,
		HasPrev:     page.HasPrev,
		HasNext:     page.HasNext,
		PrevCursor:  prevCursor,
		NextCursor:  nextCursor,
		RangeStart:  rng.Start,
		RangeEnd:    rng.End,
		PrevStart:   rng.PrevStart,
		NextStart:   rng.NextStart,
		Rows:        tableRows,
		FilterQuery: filterQuery(q),
		Notice:      q.Get("notice"),
		BackURL:     httpnav.ResolveBackURL(r, "/"),
		CurrentPath: httpnav.CurrentPath(r),
	})
}
