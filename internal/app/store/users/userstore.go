package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/tourhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateUsername is returned when creating a user whose username
	// (case-folded) already exists.
	ErrDuplicateUsername = errors.New("a user with this username already exists")
	errBadRole           = errors.New(`role must be "guide"|"coordinator"|"advisor"|"admin"`)
)

// Create inserts a new user. Password must already be hashed by the caller.
// The case-folded username_ci field backs the unique index, so concurrent
// registrations of the same username collapse to one ErrDuplicateUsername.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.UsernameCI = text.Fold(u.Username)

	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}

	u.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByUsername looks up a user by case-insensitive username.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"username_ci": text.Fold(username)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by exact email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete deletes a user by ID. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByRole returns all users with the given role, sorted by username.
func (s *Store) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"role": role},
		options.Find().SetSort(bson.D{{Key: "username_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetResetToken stores a password-reset token (and its expiry) on the user
// with the given email. Returns the number of users matched (0 or 1).
func (s *Store) SetResetToken(ctx context.Context, email, token string, expires time.Time) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"reset_token":         token,
			"reset_token_expires": expires,
		}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// ResetPassword finds the user holding the given reset token, replaces their
// password hash, and clears the token. Returns the number matched (0 or 1).
func (s *Store) ResetPassword(ctx context.Context, token, hashedPassword string) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"reset_token": token},
		bson.M{
			"$set":   bson.M{"password": hashedPassword},
			"$unset": bson.M{"reset_token": "", "reset_token_expires": ""},
		})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
