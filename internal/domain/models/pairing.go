// internal/domain/models/pairing.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeekerPairing links two seekers. A pairing is active while UnpairDate is
// unset.
type SeekerPairing struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LeftID     primitive.ObjectID `bson:"left_id" json:"left_id"`
	RightID    primitive.ObjectID `bson:"right_id" json:"right_id"`
	PairDate   time.Time          `bson:"pair_date" json:"pair_date"`
	UnpairDate *time.Time         `bson:"unpair_date,omitempty" json:"unpair_date,omitempty"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// IsActive reports whether the pairing has not been ended.
func (p SeekerPairing) IsActive() bool { return p.UnpairDate == nil }

// Other returns the partner id for the given seeker, and whether the seeker
// participates in this pairing at all.
func (p SeekerPairing) Other(seekerID primitive.ObjectID) (primitive.ObjectID, bool) {
	switch seekerID {
	case p.LeftID:
		return p.RightID, true
	case p.RightID:
		return p.LeftID, true
	}
	return primitive.NilObjectID, false
}
