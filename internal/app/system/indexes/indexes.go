// Package indexes creates the indexes the stores rely on. Uniqueness of
// usernames (accounts and schedules) is enforced here rather than by
// check-then-insert code paths.
package indexes

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll creates every index the application expects. CreateMany is
// idempotent for identical definitions, so this is safe on each startup.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_username_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_users_email"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_users_role"),
		},
		{
			Keys:    bson.D{{Key: "reset_token", Value: 1}},
			Options: options.Index().SetName("idx_users_reset_token").SetSparse(true),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return err
	}

	applications := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_applications_status"),
		},
		{
			Keys:    bson.D{{Key: "guide.id", Value: 1}},
			Options: options.Index().SetName("idx_applications_guide_id").SetSparse(true),
		},
	}
	if _, err := db.Collection("applications").Indexes().CreateMany(ctx, applications); err != nil {
		return err
	}

	schedules := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("idx_schedules_username").SetUnique(true),
		},
	}
	if _, err := db.Collection("schedules").Indexes().CreateMany(ctx, schedules); err != nil {
		return err
	}

	return nil
}
