// internal/app/features/pairings/types.go
package pairings

import (
	"github.com/opencircle/seekerhub/internal/app/system/formutil"
)

type pairingRow struct {
	ID         string
	LeftID     string
	LeftName   string
	RightID    string
	RightName  string
	PairDate   string
	UnpairDate string
	Notes      string
	Active     bool
}

type listData struct {
	Title, Role, UserName string
	IsLoggedIn            bool

	ActiveOnly bool
	Total      int64
	Rows       []pairingRow

	Notice      string
	BackURL     string
	CurrentPath string
}

// seekerChoice is one option in the seeker pickers on the new-pairing form.
type seekerChoice struct {
	ID       string
	FullName string
}

type newData struct {
	formutil.Base

	Seekers []seekerChoice

	// form echo-on-error
	LeftID   string
	RightID  string
	PairDate string
	Notes    string
}
