// internal/app/features/seekers/types.go
package seekers

import (
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Table row for the seekers list.
type seekerRow struct {
	ID          primitive.ObjectID
	FullName    string
	Email       string
	PhoneNumber string

	ListenerTrained   bool
	ExtraCare         bool
	ExtraCareGraduate bool
	Active            bool
}

// filterOption is one choice on a tri-state filter select.
type filterOption struct {
	Value    string
	Label    string
	Selected bool
}

// listFilter is one rendered filter select: its query parameter name, its
// label, and its options with the current selection echoed back.
type listFilter struct {
	Param   string
	Label   string
	Options []filterOption
}

type listData struct {
	Title, Role, UserName string
	IsLoggedIn            bool

	SearchQuery string
	Filters     []listFilter

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
	Rows       []seekerRow

	// FilterQuery is the non-paging query-string fragment carried across
	// pager links so the active filters survive pagination.
	FilterQuery string

	Notice      string
	BackURL     string
	CurrentPath string
}

type tagOption struct {
	Name    string
	Checked bool
}

type pairRow struct {
	PairingID   string
	PartnerID   string
	PartnerName string
	PairDate    string
}

type milestoneRow struct {
	Title string
	Date  string
}

type benefitRow struct {
	Date     string
	TypeName string
	Cost     float64
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

	ListenerTrained   bool
	ExtraCare         bool
	ExtraCareGraduate bool
	RideShare         bool
	SpaceHolder       bool
	ActivityBuddy     bool
	Outreach          bool
	ReadyToPair       bool

	FacebookUsername string
	FacebookAlias    string
	Birthdate        string
	SoberAnniversary string

	Transportation              string
	ConnectionAgentOrganization string

	Active       bool
	InactiveDate string
	EnrolledAt   string

	ActivePairs []pairRow
	Milestones  []milestoneRow
	Benefits    []benefitRow
	Notes       []noteRow

	Subscribed bool
	TagOptions []tagOption
}

// rideData is the ride-match popup VM.
type rideData struct {
	formutil.Base

	SeekerName string
	City       string
	State      string
	Matches    []rideMatch
}

type rideMatch struct {
	ID          string
	FullName    string
	PhoneNumber string
	Email       string
}
