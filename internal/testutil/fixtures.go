package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert %s fixture: %v", coll, err)
	}
}

// CreateProspect creates a prospect human record.
func (f *Fixtures) CreateProspect(ctx context.Context, first, last, email string) models.Human {
	f.t.Helper()

	h := f.prospectBase(first, last, email)
	f.insert(ctx, "humans", h)
	return h
}

// CreateSeeker creates an enrolled seeker with a default profile.
func (f *Fixtures) CreateSeeker(ctx context.Context, first, last, email string) models.Human {
	f.t.Helper()

	h := f.prospectBase(first, last, email)
	h.Role = models.RoleSeeker
	h.Seeker = &models.SeekerProfile{
		ReadyToPair: true,
		EnrolledAt:  time.Now().UTC(),
	}
	f.insert(ctx, "humans", h)
	return h
}

// CreateInactiveSeeker creates a seeker with an inactive date in the past.
func (f *Fixtures) CreateInactiveSeeker(ctx context.Context, first, last, email string) models.Human {
	f.t.Helper()

	h := f.prospectBase(first, last, email)
	h.Role = models.RoleSeeker
	inactive := time.Now().UTC().AddDate(0, -1, 0)
	h.Seeker = &models.SeekerProfile{
		EnrolledAt:   time.Now().UTC().AddDate(0, -6, 0),
		InactiveDate: &inactive,
	}
	f.insert(ctx, "humans", h)
	return h
}

// CreatePartner creates a community partner record.
func (f *Fixtures) CreatePartner(ctx context.Context, first, last, email, org string) models.Human {
	f.t.Helper()

	h := f.prospectBase(first, last, email)
	h.Role = models.RolePartner
	h.Partner = &models.PartnerProfile{
		Organization: org,
		MarkedAt:     time.Now().UTC(),
	}
	f.insert(ctx, "humans", h)
	return h
}

func (f *Fixtures) prospectBase(first, last, email string) models.Human {
	now := time.Now().UTC()
	return models.Human{
		ID:         primitive.NewObjectID(),
		FirstNames: first,
		LastNames:  last,
		FullNameCI: text.Fold(first + " " + last),
		Email:      email,
		City:       "Test City",
		CityCI:     text.Fold("Test City"),
		State:      "TS",
		StateCI:    text.Fold("TS"),
		Role:       models.RoleProspect,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CreatePairing creates an active pairing between two seekers.
func (f *Fixtures) CreatePairing(ctx context.Context, left, right primitive.ObjectID) models.SeekerPairing {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.SeekerPairing{
		ID:        primitive.NewObjectID(),
		LeftID:    left,
		RightID:   right,
		PairDate:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		CreatedAt: now,
	}
	f.insert(ctx, "pairings", p)
	return p
}

// CreateNote appends a note to a human record.
func (f *Fixtures) CreateNote(ctx context.Context, humanID primitive.ObjectID, body, addedBy string) models.HumanNote {
	f.t.Helper()

	n := models.HumanNote{
		ID:        primitive.NewObjectID(),
		HumanID:   humanID,
		Note:      body,
		AddedBy:   addedBy,
		CreatedAt: time.Now().UTC(),
	}
	f.insert(ctx, "human_notes", n)
	return n
}

// CreateBenefitType creates a benefit type.
func (f *Fixtures) CreateBenefitType(ctx context.Context, name string, defaultCost float64) models.SeekerBenefitType {
	f.t.Helper()

	now := time.Now().UTC()
	bt := models.SeekerBenefitType{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		DefaultCost: defaultCost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "benefit_types", bt)
	return bt
}

// CreateBenefit records a disbursement on a given date.
func (f *Fixtures) CreateBenefit(ctx context.Context, seekerID, typeID primitive.ObjectID, date time.Time, cost float64) models.SeekerBenefit {
	f.t.Helper()

	b := models.SeekerBenefit{
		ID:        primitive.NewObjectID(),
		SeekerID:  seekerID,
		TypeID:    typeID,
		Date:      date,
		Cost:      cost,
		CreatedAt: time.Now().UTC(),
	}
	f.insert(ctx, "benefits", b)
	return b
}

// CreateStaff creates an active staff user with the given role and password.
func (f *Fixtures) CreateStaff(ctx context.Context, name, email, role, password string) models.StaffUser {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	u := models.StaffUser{
		ID:           primitive.NewObjectID(),
		FullName:     name,
		FullNameCI:   text.Fold(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       models.StaffStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "staff_users", u)
	return u
}
