// internal/app/features/humans/util.go
package humans

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/opencircle/seekerhub/internal/app/mailchimp"
	"github.com/opencircle/seekerhub/internal/app/system/authz"
	"github.com/opencircle/seekerhub/internal/domain/models"
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

// userCtx is a thin wrapper around authz.UserCtx.
func userCtx(r *http.Request) (role, name string, uid primitive.ObjectID, ok bool) {
	role, name, uid, ok = authz.UserCtx(r)
	return
}

// Stable list URL for Back. Preserves popup mode so popup windows stay
// abbreviated across navigation.
func backToHumansURL(r *http.Request) string {
	ret := strings.TrimSpace(r.URL.Query().Get("return"))
	if ret == "" {
		ret = strings.TrimSpace(r.FormValue("return"))
	}
	if strings.HasPrefix(ret, "/humans") {
		return ret
	}
	if isPopup(r) {
		return "/humans?popup=1"
	}
	return "/humans"
}

// isPopup reports whether the request carries popup mode, via query or form.
func isPopup(r *http.Request) bool {
	return r.URL.Query().Get("popup") == "1" || r.FormValue("popup") == "1"
}

// subscribeOnCreate runs the mailing-list side effect for a newly created
// record: look up the member, and subscribe with the role's default tags when
// the list has no member for the email. Returns nil when no vendor is
// configured or the record has no email.
func (h *Handler) subscribeOnCreate(ctx context.Context, hu models.Human) error {
	if h.Mail == nil || hu.Email == "" {
		return nil
	}

	_, err := h.Mail.SubscriptionStatus(ctx, hu.Email)
	if err == nil {
		return nil // already on the list; leave their tags alone
	}
	if !errors.Is(err, mailchimp.ErrNotSubscribed) {
		return err
	}

	return h.Mail.Subscribe(ctx, hu.FirstNames, hu.LastNames, hu.Email, h.DefaultTags[hu.Role])
}

// overwriteTags pushes a tag overwrite for a subscribed member: submitted
// tags go active, every other configured tag goes inactive. Unknown
// submitted tags are logged and dropped rather than failing the save.
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
		// Member vanished between lookup and update; not a save failure.
		h.Log.Warn("tag update skipped; member no longer subscribed",
			zap.String("email", email))
		return nil
	}
	return err
}

// memberState loads the current subscription state for the edit form.
// Returns (subscribed, activeTags).
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
