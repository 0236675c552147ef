// Package benefitstore persists the catalog of benefit types and the
// individual disbursement records written against them.
package benefitstore

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
	// ErrDuplicateName is returned when a benefit type with the same name already exists.
	ErrDuplicateName = errors.New("a benefit type with this name already exists")
	// ErrBadCost is returned when a cost is negative.
	ErrBadCost = errors.New("cost cannot be negative")
)

type Store struct {
	types    *mongo.Collection
	benefits *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		types:    db.Collection("benefit_types"),
		benefits: db.Collection("benefits"),
	}
}

// EnsureIndexes creates the indexes both collections depend on. The unique
// index on name_ci is what backs ErrDuplicateName.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.types.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name_ci", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.benefits.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "seeker_id", Value: 1},
				{Key: "date", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "type_id", Value: 1}},
		},
	})
	return err
}

// --- benefit types ---

// CreateType inserts a new benefit type.
func (s *Store) CreateType(ctx context.Context, t models.SeekerBenefitType) (models.SeekerBenefitType, error) {
	if t.DefaultCost < 0 {
		return models.SeekerBenefitType{}, ErrBadCost
	}

	t.ID = primitive.NewObjectID()
	t.Name = normalize.Name(t.Name)
	t.NameCI = text.Fold(t.Name)

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.types.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.SeekerBenefitType{}, ErrDuplicateName
		}
		return models.SeekerBenefitType{}, err
	}
	return t, nil
}

// TypeUpdate holds the editable fields of a benefit type.
type TypeUpdate struct {
	Name        string
	DefaultCost float64
}

// UpdateType updates a benefit type's name and default cost.
func (s *Store) UpdateType(ctx context.Context, id primitive.ObjectID, upd TypeUpdate) error {
	if upd.DefaultCost < 0 {
		return ErrBadCost
	}
	name := normalize.Name(upd.Name)
	_, err := s.types.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":         name,
		"name_ci":      text.Fold(name),
		"default_cost": upd.DefaultCost,
		"updated_at":   time.Now(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}

// GetTypeByID loads a benefit type by ObjectID.
func (s *Store) GetTypeByID(ctx context.Context, id primitive.ObjectID) (*models.SeekerBenefitType, error) {
	var t models.SeekerBenefitType
	if err := s.types.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTypes returns every benefit type sorted by name.
func (s *Store) ListTypes(ctx context.Context) ([]models.SeekerBenefitType, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cursor, err := s.types.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var types []models.SeekerBenefitType
	if err := cursor.All(ctx, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// --- disbursements ---

// Create records a benefit disbursement. Date defaults to today when unset;
// Cost defaults to the type's default cost when zero.
func (s *Store) Create(ctx context.Context, b models.SeekerBenefit) (models.SeekerBenefit, error) {
	if b.Cost < 0 {
		return models.SeekerBenefit{}, ErrBadCost
	}

	// The type is loaded even when an explicit cost is given, so a
	// disbursement can never reference a type that does not exist.
	var t models.SeekerBenefitType
	if err := s.types.FindOne(ctx, bson.M{"_id": b.TypeID}).Decode(&t); err != nil {
		return models.SeekerBenefit{}, err
	}
	if b.Cost == 0 {
		b.Cost = t.DefaultCost
	}

	b.ID = primitive.NewObjectID()
	if b.Date.IsZero() {
		now := time.Now()
		b.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	b.CreatedAt = time.Now()

	if _, err := s.benefits.InsertOne(ctx, b); err != nil {
		return models.SeekerBenefit{}, err
	}
	return b, nil
}

// ListForSeeker returns a seeker's disbursements, most recent first.
func (s *Store) ListForSeeker(ctx context.Context, seekerID primitive.ObjectID) ([]models.SeekerBenefit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.benefits.Find(ctx, bson.M{"seeker_id": seekerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var benefits []models.SeekerBenefit
	if err := cursor.All(ctx, &benefits); err != nil {
		return nil, err
	}
	return benefits, nil
}

// Find runs a raw query against the benefits collection.
func (s *Store) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.SeekerBenefit, error) {
	cursor, err := s.benefits.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var benefits []models.SeekerBenefit
	if err := cursor.All(ctx, &benefits); err != nil {
		return nil, err
	}
	return benefits, nil
}

// Count counts disbursements matching a raw query.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.benefits.CountDocuments(ctx, filter)
}
