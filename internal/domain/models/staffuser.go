// internal/domain/models/staffuser.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff roles and statuses.
const (
	StaffRoleAdmin = "admin"
	StaffRoleStaff = "staff"

	StaffStatusActive   = "active"
	StaffStatusDisabled = "disabled"
)

// StaffUser is a back-office operator who signs in to the admin screens.
// Staff are not Humans; they never appear in the case-management data.
type StaffUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"full_name_ci"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	Role         string             `bson:"role" json:"role"` // admin | staff
	Status       string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
