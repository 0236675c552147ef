package pairingstore

import (
	"context"
	"errors"
	"time"

	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrSelfPair is returned when both sides of a pairing are the same seeker.
	ErrSelfPair = errors.New("a seeker cannot be paired with themselves")
	// ErrAlreadyEnded is returned when unpairing a pairing that already has an unpair date.
	ErrAlreadyEnded = errors.New("pairing already has an unpair date")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("pairings")}
}

// Create inserts a new pairing. PairDate defaults to today when unset.
func (s *Store) Create(ctx context.Context, p models.SeekerPairing) (models.SeekerPairing, error) {
	if p.LeftID == p.RightID {
		return models.SeekerPairing{}, ErrSelfPair
	}

	p.ID = primitive.NewObjectID()
	if p.PairDate.IsZero() {
		now := time.Now()
		p.PairDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	p.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.SeekerPairing{}, err
	}
	return p, nil
}

// GetByID loads a pairing by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SeekerPairing, error) {
	var p models.SeekerPairing
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Unpair sets the unpair date on an active pairing. Returns ErrAlreadyEnded
// if the pairing already has one.
func (s *Store) Unpair(ctx context.Context, id primitive.ObjectID, date time.Time, notes string) error {
	set := bson.M{"unpair_date": date}
	if notes != "" {
		set["notes"] = notes
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "unpair_date": nil},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the pairing is gone or it is already ended.
		var p models.SeekerPairing
		if ferr := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); ferr != nil {
			return ferr
		}
		return ErrAlreadyEnded
	}
	return nil
}

// ActivePairsFor returns the pairings a seeker currently belongs to, on
// either side, that have no unpair date.
func (s *Store) ActivePairsFor(ctx context.Context, seekerID primitive.ObjectID) ([]models.SeekerPairing, error) {
	filter := bson.M{
		"unpair_date": nil,
		"$or": []bson.M{
			{"left_id": seekerID},
			{"right_id": seekerID},
		},
	}
	return s.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "pair_date", Value: -1}}))
}

// HistoryFor returns every pairing a seeker has ever been part of, most
// recent pair date first.
func (s *Store) HistoryFor(ctx context.Context, seekerID primitive.ObjectID) ([]models.SeekerPairing, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"left_id": seekerID},
			{"right_id": seekerID},
		},
	}
	return s.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "pair_date", Value: -1}}))
}

// Find runs a raw query against the pairings collection.
func (s *Store) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.SeekerPairing, error) {
	return s.find(ctx, filter, opts)
}

// Count counts pairings matching a raw query.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.SeekerPairing, error) {
	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pairings []models.SeekerPairing
	if err := cursor.All(ctx, &pairings); err != nil {
		return nil, err
	}
	return pairings, nil
}
