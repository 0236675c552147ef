// internal/app/features/humans/list.go
package humans

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

// ServeList renders the Humans screen: prospects only. Enrolled seekers and
// marked partners live on their own screens.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, uname, _, ok := userCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	searchQuery := strings.TrimSpace(r.URL.Query().Get("search"))
	after := strings.TrimSpace(r.URL.Query().Get("after"))
	before := strings.TrimSpace(r.URL.Query().Get("before"))
	start := paging.ParseStart(r)

	base := bson.M{"role": models.RoleProspect}
	if searchQuery != "" {
		base["$or"] = searchWindows(searchQuery)
	}

	total, err := h.Humans.Count(ctx, base)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error counting prospects", err, "A database error occurred.", "/")
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
		"city":         1,
		"state":        1,
		"created_at":   1,
	})

	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(findOpts, "full_name_ci")
	cfg.MergeWindow(filter, "full_name_ci")

	rows, err := h.Humans.Find(ctx, filter, findOpts)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error finding prospects", err, "A database error occurred.", "/")
		return
	}

	page := paging.TrimPage(&rows, before, after)
	if before != "" {
		paging.Reverse(rows)
	}

	tableRows := make([]humanRow, len(rows))
	for i, hu := range rows {
		tableRows[i] = humanRow{
			ID:          hu.ID,
			FullName:    hu.FullName(),
			Email:       hu.Email,
			PhoneNumber: hu.PhoneNumber,
			City:        hu.City,
			State:       hu.State,
			CreatedAt:   hu.CreatedAt.Format("Jan 2, 2006"),
		}
	}

	prevCursor, nextCursor := paging.BuildCursors(rows,
		func(hu models.Human) string { return hu.FullNameCI },
		func(hu models.Human) primitive.ObjectID { return hu.ID },
	)

	rng := paging.ComputeRange(start, len(rows))

	templates.Render(w, r, "human_list", listData{
		Title:       "Humans",
		IsLoggedIn:  true,
		Role:        role,
		UserName:    uname,
		SearchQuery: searchQuery,
		Popup:       isPopup(r),
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
		Notice:      r.URL.Query().Get("notice"),
		BackURL:     httpnav.ResolveBackURL(r, "/"),
		CurrentPath: httpnav.CurrentPath(r),
	})
}
