// internal/domain/models/benefit.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeekerBenefitType is a category of benefit with a suggested cost.
type SeekerBenefitType struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"name_ci"`
	DefaultCost float64            `bson:"default_cost" json:"default_cost"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// SeekerBenefit is a single dated, costed disbursement to a seeker.
type SeekerBenefit struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SeekerID primitive.ObjectID `bson:"seeker_id" json:"seeker_id"`
	TypeID   primitive.ObjectID `bson:"type_id" json:"type_id"`
	Date     time.Time          `bson:"date" json:"date"`
	Cost     float64            `bson:"cost" json:"cost"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
