// Package notestore persists the append-only note trail attached to human
// records. Notes are never edited or deleted once written.
package notestore

import (
	"context"
	"time"

	"github.com/opencircle/seekerhub/internal/app/system/htmlsanitize"
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
	return &Store{c: db.Collection("human_notes")}
}

// Append adds a note to a human's trail. The body is sanitized before
// storage; AddedBy is stamped by the handler from the signed-in user and is
// never taken from the form.
func (s *Store) Append(ctx context.Context, n models.HumanNote) (models.HumanNote, error) {
	n.ID = primitive.NewObjectID()
	n.Note = htmlsanitize.Sanitize(n.Note)
	n.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.HumanNote{}, err
	}
	return n, nil
}

// ListForHuman returns a human's notes, oldest first.
func (s *Store) ListForHuman(ctx context.Context, humanID primitive.ObjectID) ([]models.HumanNote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.c.Find(ctx, bson.M{"human_id": humanID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notes []models.HumanNote
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
