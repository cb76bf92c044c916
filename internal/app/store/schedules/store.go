// Package schedulestore persists guide weekly availability. One record per
// guide username; the unique index plus an atomic upsert means concurrent
// saves can never produce two records for the same guide.
package schedulestore

import (
	"context"
	"time"

	"github.com/dalemusser/tourhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("schedules")}
}

// Upsert saves the guide's weekly availability in a single atomic write.
// Returns created=true when a new record was inserted, false when an
// existing one was updated.
func (s *Store) Upsert(ctx context.Context, username string, week models.WeekSchedule) (created bool, err error) {
	now := time.Now()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{
			"$set":         bson.M{"schedule": week, "updated_at": now},
			"$setOnInsert": bson.M{"username": username, "created_at": now},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// GetByUsername loads a guide's schedule. Returns mongo.ErrNoDocuments when
// the guide has never saved one.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.Schedule, error) {
	var sched models.Schedule
	if err := s.c.FindOne(ctx, bson.M{"username": username}).Decode(&sched); err != nil {
		return nil, err
	}
	return &sched, nil
}

// ListByUsernames returns the schedules of the given guides.
func (s *Store) ListByUsernames(ctx context.Context, usernames []string) ([]models.Schedule, error) {
	cur, err := s.c.Find(ctx, bson.M{"username": bson.M{"$in": usernames}})
	if err != nil {
		return nil, err
	}
	var out []models.Schedule
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
