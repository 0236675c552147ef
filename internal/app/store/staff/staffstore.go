package staffstore

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
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateEmail is returned when attempting to create a staff user with an email that already exists.
	ErrDuplicateEmail = errors.New("a staff user with this email already exists")
	errBadRole        = errors.New(`role must be "admin"|"staff"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("staff_users")}
}

// EnsureIndexes creates the unique email index that backs ErrDuplicateEmail.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// GetByID loads a staff user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.StaffUser, error) {
	var u models.StaffUser
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a staff user by case-insensitive email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	var u models.StaffUser
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new staff user, hashing the supplied password.
func (s *Store) Create(ctx context.Context, u models.StaffUser, password string) (models.StaffUser, error) {
	switch u.Role {
	case models.StaffRoleAdmin, models.StaffRoleStaff:
	default:
		return models.StaffUser{}, errBadRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.StaffUser{}, err
	}

	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.PasswordHash = string(hash)
	if u.Status == "" {
		u.Status = models.StaffStatusActive
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.StaffUser{}, ErrDuplicateEmail
		}
		return models.StaffUser{}, err
	}
	return u, nil
}

// VerifyPassword checks a candidate password against the stored hash.
func VerifyPassword(u *models.StaffUser, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// EnsureAdmin creates an active admin user with the given credentials if no
// staff user exists for the email. Used at startup to seed the first login.
func (s *Store) EnsureAdmin(ctx context.Context, fullName, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}
	_, err = s.Create(ctx, models.StaffUser{
		FullName: fullName,
		Email:    email,
		Role:     models.StaffRoleAdmin,
	}, password)
	if err == ErrDuplicateEmail {
		return nil
	}
	return err
}
