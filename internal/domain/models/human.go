// internal/domain/models/human.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Human roles. A Human starts life as a prospect and can be promoted to
// exactly one specialization; seekers can be downgraded back to prospect.
const (
	RoleProspect = "prospect"
	RoleSeeker   = "seeker"
	RolePartner  = "partner"
)

// Human is the base participant record shared by prospects, seekers, and
// community partners. The specialization is a tagged variant: Role selects
// which embedded profile (if any) is present.
type Human struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstNames string             `bson:"first_names" json:"first_names"`
	LastNames  string             `bson:"last_names" json:"last_names"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped

	Email             string `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber       string `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	ContactPreference string `bson:"contact_preference,omitempty" json:"contact_preference,omitempty"`

	City    string `bson:"city,omitempty" json:"city,omitempty"`
	CityCI  string `bson:"city_ci,omitempty" json:"city_ci,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	StateCI string `bson:"state_ci,omitempty" json:"state_ci,omitempty"`

	Role    string          `bson:"role" json:"role"` // prospect | seeker | partner
	Seeker  *SeekerProfile  `bson:"seeker,omitempty" json:"seeker,omitempty"`
	Partner *PartnerProfile `bson:"partner,omitempty" json:"partner,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FullName renders "First Last" for display.
func (h Human) FullName() string {
	return strings.TrimSpace(h.FirstNames + " " + h.LastNames)
}

// IsProspect reports whether the Human has no specialization.
func (h Human) IsProspect() bool { return h.Role == RoleProspect }

// SeekerProfile carries the program attributes of an enrolled seeker.
type SeekerProfile struct {
	ListenerTrained   bool `bson:"listener_trained" json:"listener_trained"`
	ExtraCare         bool `bson:"extra_care" json:"extra_care"`
	ExtraCareGraduate bool `bson:"extra_care_graduate" json:"extra_care_graduate"`

	RideShare     bool `bson:"ride_share" json:"ride_share"`
	SpaceHolder   bool `bson:"space_holder" json:"space_holder"`
	ActivityBuddy bool `bson:"activity_buddy" json:"activity_buddy"`
	Outreach      bool `bson:"outreach" json:"outreach"`
	ReadyToPair   bool `bson:"ready_to_pair" json:"ready_to_pair"`

	FacebookUsername string `bson:"facebook_username,omitempty" json:"facebook_username,omitempty"`
	FacebookAlias    string `bson:"facebook_alias,omitempty" json:"facebook_alias,omitempty"`

	Birthdate        *time.Time `bson:"birthdate,omitempty" json:"birthdate,omitempty"`
	SoberAnniversary *time.Time `bson:"sober_anniversary,omitempty" json:"sober_anniversary,omitempty"`

	Transportation              string `bson:"transportation,omitempty" json:"transportation,omitempty"`
	ConnectionAgentOrganization string `bson:"connection_agent_organization,omitempty" json:"connection_agent_organization,omitempty"`

	// InactiveDate unset means the seeker is active.
	InactiveDate *time.Time `bson:"inactive_date,omitempty" json:"inactive_date,omitempty"`
	EnrolledAt   time.Time  `bson:"enrolled_at" json:"enrolled_at"`
}

// IsActive reports whether the seeker has not been marked inactive.
func (p SeekerProfile) IsActive() bool { return p.InactiveDate == nil }

// PartnerProfile carries the attributes of a community partner.
type PartnerProfile struct {
	Organization string    `bson:"organization" json:"organization"`
	MarkedAt     time.Time `bson:"marked_at" json:"marked_at"`
}
