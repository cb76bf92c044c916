// Package individualappstore persists individual (non-school) tour
// applications. These carry no workflow beyond submission; they land in
// status Pending and are handled out of band.
package individualappstore

import (
	"context"
	"time"

	"github.com/dalemusser/tourhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("individual_applications")}
}

// Insert stores a new individual application with status Pending.
func (s *Store) Insert(ctx context.Context, app models.IndividualApplication) (models.IndividualApplication, error) {
	app.ID = primitive.NewObjectID()
	app.Status = models.StatusPending
	app.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, app); err != nil {
		return models.IndividualApplication{}, err
	}
	return app, nil
}
