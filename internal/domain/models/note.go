// internal/domain/models/note.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HumanNote is a free-text annotation on a Human. Notes are append-only:
// AddedBy is stamped when the note is created and never changes, and there
// is no update path through the stores or the admin screens.
type HumanNote struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HumanID primitive.ObjectID `bson:"human_id" json:"human_id"`
	Note    string             `bson:"note" json:"note"` // sanitized HTML
	AddedBy string             `bson:"added_by" json:"added_by"` // display name of the staff user

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
