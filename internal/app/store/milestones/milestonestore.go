package milestonestore

import (
	"context"
	"time"

	"github.com/opencircle/seekerhub/internal/app/system/normalize"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("milestones")}
}

// Append records a milestone for a seeker. Date defaults to today when unset.
func (s *Store) Append(ctx context.Context, m models.SeekerMilestone) (models.SeekerMilestone, error) {
	m.ID = primitive.NewObjectID()
	m.Title = normalize.Name(m.Title)
	if m.Date.IsZero() {
		now := time.Now()
		m.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	m.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.SeekerMilestone{}, err
	}
	return m, nil
}

// ListForSeeker returns a seeker's milestones, most recent first.
func (s *Store) ListForSeeker(ctx context.Context, seekerID primitive.ObjectID) ([]models.SeekerMilestone, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.c.Find(ctx, bson.M{"seeker_id": seekerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var milestones []models.SeekerMilestone
	if err := cursor.All(ctx, &milestones); err != nil {
		return nil, err
	}
	return milestones, nil
}
