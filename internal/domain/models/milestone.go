// internal/domain/models/milestone.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeekerMilestone is a dated achievement attached to a seeker.
type SeekerMilestone struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SeekerID primitive.ObjectID `bson:"seeker_id" json:"seeker_id"`
	Title    string             `bson:"title" json:"title"`
	Date     time.Time          `bson:"date" json:"date"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
