// internal/app/features/partners/types.go
package partners

import (
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type partnerRow struct {
	ID           primitive.ObjectID
	FullName     string
	Email        string
	Organization string
}

type listData struct {
	Title, Role, UserName string
	IsLoggedIn            bool

	SearchQuery string

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
	Rows       []partnerRow

	Notice      string
	BackURL     string
	CurrentPath string
}

type tagOption struct {
	Name    string
	Checked bool
}

type noteRow struct {
	Note    string
	AddedBy string
	AddedAt string
}

type editData struct {
	formutil.Base

	ID                string
	FirstNames        string
	LastNames         string
	Email             string
	PhoneNumber       string
	ContactPreference string
	City              string
	State             string

	Organization string
	MarkedAt     string

	Subscribed bool
	TagOptions []tagOption

	Notes []noteRow
}
