// internal/app/features/seekers/util.go
package seekers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/opencircle/seekerhub/internal/app/mailchimp"
	"github.com/opencircle/seekerhub/internal/app/system/authz"
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

// backToSeekersURL resolves the Back destination, only trusting returns that
// stay on the seekers screens.
func backToSeekersURL(r *http.Request) string {
	ret := strings.TrimSpace(r.URL.Query().Get("return"))
	if ret == "" {
		ret = strings.TrimSpace(r.FormValue("return"))
	}
	if strings.HasPrefix(ret, "/seekers") {
		return ret
	}
	return "/seekers"
}

// formatDate renders an optional date for display; empty when unset.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// parseFormDate parses the yyyy-mm-dd value an <input type="date"> submits.
func parseFormDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// overwriteTags pushes a tag overwrite for a subscribed member, mirroring the
// Humans screen: submitted tags active, other configured tags inactive,
// unknown tags logged and dropped.
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

// memberState loads the current subscription state for the edit form.
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
