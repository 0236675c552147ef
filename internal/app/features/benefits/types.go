// internal/app/features/benefits/types.go
package benefits

import (
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
)

// typeReportRow is one benefit type with its usage numbers across the three
// reporting windows.
type typeReportRow struct {
	ID          string
	Name        string
	DefaultCost float64

	MonthUses    int64
	MonthTotal   float64
	MonthAverage float64

	YearUses  int64
	YearTotal float64

	AllUses  int64
	AllTotal float64
}

type topSeekerRow struct {
	ID       string
	FullName string
	Uses     int64
	Total    float64
}

type dashboardData struct {
	Title, Role, UserName string
	IsLoggedIn            bool

	Month string // e.g. "August 2026"

	Types []typeReportRow

	SeekersServed    int64
	MonthTotal       float64
	PerSeekerAverage float64

	TopSeekers []topSeekerRow

	Notice      string
	BackURL     string
	CurrentPath string
}

// seekerChoice and typeChoice feed the disbursement form selects.
type seekerChoice struct {
	ID       string
	FullName string
}

type typeChoice struct {
	ID          string
	Name        string
	DefaultCost float64
}

type disbursementData struct {
	formutil.Base

	Seekers []seekerChoice
	Types   []typeChoice

	// form echo-on-error
	SeekerID string
	TypeID   string
	Date     string
	Cost     string
}

type typeFormData struct {
	formutil.Base

	ID          string
	Name        string
	DefaultCost string
}
