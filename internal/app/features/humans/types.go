// internal/app/features/humans/types.go
package humans

import (
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Table row for the prospects list.
type humanRow struct {
	ID          primitive.ObjectID
	FullName    string
	Email       string
	PhoneNumber string
	City        string
	State       string
	CreatedAt   string
}

// List page VM.
type listData struct {
	Title, Role, UserName string
	IsLoggedIn            bool

	SearchQuery string
	Popup       bool

	Shown      int
	Total      int64
	HasPrev    bool
	HasNext    bool
	PrevCursor string
	NextCursor string
	RangeStart int
	RangeEnd   int
	PrevStart  int
	NextStart  int
	Rows       []humanRow

	Notice      string
	BackURL     string
	CurrentPath string
}

// tagOption is one mailing-list tag checkbox on the edit form.
type tagOption struct {
	Name    string
	Checked bool
}

type newData struct {
	formutil.Base
	Popup bool

	// form echo-on-error
	FirstNames        string
	LastNames         string
	Email             string
	PhoneNumber       string
	ContactPreference string
	City              string
	State             string
}

type editData struct {
	formutil.Base
	Popup bool

	ID                string
	FirstNames        string
	LastNames         string
	Email             string
	PhoneNumber       string
	ContactPreference string
	City              string
	State             string

	// Mailing-list state. Subscribed is false when the record has no email,
	// the vendor has no member for it, or no vendor is configured.
	Subscribed bool
	TagOptions []tagOption

	Notes []noteRow
}

type noteRow struct {
	Note    string
	AddedBy string
	AddedAt string
}

type enrollData struct {
	formutil.Base
	ID       string
	FullName string

	Profile models.SeekerProfile
}
