package humanstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/opencircle/seekerhub/internal/app/system/normalize"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail is returned when attempting to create a human with an email that already exists.
	ErrDuplicateEmail = errors.New("a record with this email already exists")
	// ErrNotProspect is returned when a role transition requires a prospect and the record is not one.
	ErrNotProspect = errors.New("record is not a prospect")
	// ErrNotSeeker is returned when a role transition requires a seeker and the record is not one.
	ErrNotSeeker = errors.New("record is not a seeker")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("humans")}
}

// EnsureIndexes creates the humans collection indexes. Email is unique but
// sparse so records without an email can coexist.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{
				{Key: "role", Value: 1},
				{Key: "full_name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "full_name_ci", Value: 1}},
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// GetByID loads a human by ObjectID regardless of role.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Human, error) {
	var h models.Human
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

// GetProspectByID loads a human by ObjectID, returning mongo.ErrNoDocuments
// if the record does not exist or has already been enrolled or marked.
func (s *Store) GetProspectByID(ctx context.Context, id primitive.ObjectID) (*models.Human, error) {
	var h models.Human
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "role": models.RoleProspect}).Decode(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

// GetSeekerByID loads a human by ObjectID, returning mongo.ErrNoDocuments
// if the record does not exist or is not a seeker.
func (s *Store) GetSeekerByID(ctx context.Context, id primitive.ObjectID) (*models.Human, error) {
	var h models.Human
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "role": models.RoleSeeker}).Decode(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

// GetPartnerByID loads a human by ObjectID, returning mongo.ErrNoDocuments
// if the record does not exist or is not a community partner.
func (s *Store) GetPartnerByID(ctx context.Context, id primitive.ObjectID) (*models.Human, error) {
	var h models.Human
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "role": models.RolePartner}).Decode(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Create inserts a new human record after normalizing fields. New records
// always start as prospects; enrollment and partner marking are separate
// transitions.
func (s *Store) Create(ctx context.Context, h models.Human) (models.Human, error) {
	h.ID = primitive.NewObjectID()
	h.FirstNames = normalize.Name(h.FirstNames)
	h.LastNames = normalize.Name(h.LastNames)
	h.FullNameCI = text.Fold(h.FullName())
	h.Email = normalize.Email(h.Email)
	h.PhoneNumber = normalize.Phone(h.PhoneNumber)
	h.City = normalize.Name(h.City)
	h.CityCI = text.Fold(h.City)
	h.State = normalize.Name(h.State)
	h.StateCI = text.Fold(h.State)
	h.Role = models.RoleProspect
	h.Seeker = nil
	h.Partner = nil

	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, h); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Human{}, ErrDuplicateEmail
		}
		return models.Human{}, err
	}
	return h, nil
}

// Find runs a raw query against the humans collection. List handlers use
// this with keyset pagination options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Human, error) {
	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var humans []models.Human
	if err := cursor.All(ctx, &humans); err != nil {
		return nil, err
	}
	return humans, nil
}

// Count counts humans matching a raw query.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// ContactUpdate holds the identity and contact fields shared by every role.
type ContactUpdate struct {
	FirstNames        string
	LastNames         string
	Email             string
	PhoneNumber       string
	ContactPreference string
	City              string
	State             string
}

func (upd ContactUpdate) update() bson.M {
	first := normalize.Name(upd.FirstNames)
	last := normalize.Name(upd.LastNames)
	city := normalize.Name(upd.City)
	state := normalize.Name(upd.State)
	set := bson.M{
		"first_names":        first,
		"last_names":         last,
		"full_name_ci":       text.Fold(first + " " + last),
		"phone_number":       normalize.Phone(upd.PhoneNumber),
		"contact_preference": upd.ContactPreference,
		"city":               city,
		"city_ci":            text.Fold(city),
		"state":              state,
		"state_ci":           text.Fold(state),
		"updated_at":         time.Now(),
	}

	// Email is optional and its unique index is sparse: sparse skips missing
	// fields, not empty strings, so a blank email must be removed rather
	// than written as "" (two "" values would collide).
	update := bson.M{"$set": set}
	if email := normalize.Email(upd.Email); email != "" {
		set["email"] = email
	} else {
		update["$unset"] = bson.M{"email": ""}
	}
	return update
}

// UpdateContact updates the shared identity and contact fields of any human.
// Returns ErrDuplicateEmail if the email already belongs to another record.
func (s *Store) UpdateContact(ctx context.Context, id primitive.ObjectID, upd ContactUpdate) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, upd.update())
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdateSeekerProfile replaces the embedded seeker profile of a seeker.
func (s *Store) UpdateSeekerProfile(ctx context.Context, id primitive.ObjectID, p models.SeekerProfile) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": models.RoleSeeker},
		bson.M{"$set": bson.M{"seeker": p, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotSeeker
	}
	return nil
}

// UpdatePartnerProfile replaces the embedded partner profile of a community partner.
func (s *Store) UpdatePartnerProfile(ctx context.Context, id primitive.ObjectID, p models.PartnerProfile) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": models.RolePartner},
		bson.M{"$set": bson.M{"partner": p, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpgradeToSeeker promotes a prospect to seeker, attaching a fresh seeker
// profile. Notes, pairings, and other linked records stay attached because
// the record keeps its _id. Returns ErrNotProspect if the record is missing
// or already enrolled.
func (s *Store) UpgradeToSeeker(ctx context.Context, id primitive.ObjectID, p models.SeekerProfile) error {
	if p.EnrolledAt.IsZero() {
		p.EnrolledAt = time.Now()
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": models.RoleProspect},
		bson.M{"$set": bson.M{
			"role":       models.RoleSeeker,
			"seeker":     p,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotProspect
	}
	return nil
}

// MarkAsCommunityPartner converts a prospect into a community partner.
// Returns ErrNotProspect if the record is missing or not a prospect.
func (s *Store) MarkAsCommunityPartner(ctx context.Context, id primitive.ObjectID, organization string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": models.RoleProspect},
		bson.M{"$set": bson.M{
			"role": models.RolePartner,
			"partner": models.PartnerProfile{
				Organization: normalize.Name(organization),
				MarkedAt:     time.Now(),
			},
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotProspect
	}
	return nil
}

// DowngradeToProspect returns a seeker to prospect status, removing the
// seeker profile. Linked notes, pairings, milestones, and benefits keep
// pointing at the record. Returns ErrNotSeeker if the record is not a seeker.
func (s *Store) DowngradeToProspect(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "role": models.RoleSeeker},
		bson.M{
			"$set":   bson.M{"role": models.RoleProspect, "updated_at": time.Now()},
			"$unset": bson.M{"seeker": ""},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotSeeker
	}
	return nil
}
