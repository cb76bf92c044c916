// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/tourhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("applications", applicationsSchema())
	ensure("individual_applications", individualApplicationsSchema())
	ensure("users", usersSchema())
	ensure("schedules", schedulesSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func applicationsSchema() bson.M {
	statusEnum := bson.A{}
	for _, s := range models.ApplicationStatuses {
		statusEnum = append(statusEnum, s)
	}

	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"city", "district", "school_name", "status", "created_at"},
			"properties": bson.M{
				"city":               bson.M{"bsonType": "string", "minLength": 1},
				"district":           bson.M{"bsonType": "string", "minLength": 1},
				"school_name":        bson.M{"bsonType": "string", "minLength": 1},
				"website":            bson.M{"bsonType": "string"},
				"organization_email": bson.M{"bsonType": "string"},
				"teacher_name":       bson.M{"bsonType": "string"},
				"teacher_surname":    bson.M{"bsonType": "string"},
				"teacher_email":      bson.M{"bsonType": "string"},
				"teacher_phone":      bson.M{"bsonType": "string"},
				"group_size":         bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1, "maximum": 50},
				"class_info":         bson.M{"bsonType": "string"},
				"tour_date":          bson.M{"bsonType": "string"},
				"tour_time":          bson.M{"bsonType": "string"},
				"status":             bson.M{"enum": statusEnum},
				"created_at":         bson.M{"bsonType": "date"},
			},
		},
	}
}

func individualApplicationsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_name", "user_email", "user_phone", "tour_date", "major", "status"},
			"properties": bson.M{
				"user_name":  bson.M{"bsonType": "string", "minLength": 1},
				"user_email": bson.M{"bsonType": "string", "minLength": 1},
				"user_phone": bson.M{"bsonType": "string", "minLength": 1},
				"tour_date":  bson.M{"bsonType": "string", "minLength": 1},
				"major":      bson.M{"bsonType": "string", "minLength": 1},
				"status":     bson.M{"enum": bson.A{"Pending"}},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func usersSchema() bson.M {
	roleEnum := bson.A{}
	for _, r := range models.UserRoles {
		roleEnum = append(roleEnum, r)
	}

	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"username", "username_ci", "password", "name", "surname", "role", "email"},
			"properties": bson.M{
				"username":    bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"username_ci": bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"},
				"password":    bson.M{"bsonType": "string", "minLength": 1},
				"name":        bson.M{"bsonType": "string", "minLength": 1},
				"surname":     bson.M{"bsonType": "string", "minLength": 1},
				"role":        bson.M{"enum": roleEnum},
				"email":       bson.M{"bsonType": "string", "minLength": 1},
				"reset_token": bson.M{"bsonType": "string"},
				"created_at":  bson.M{"bsonType": "date"},
			},
		},
	}
}

func schedulesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"username", "schedule"},
			"properties": bson.M{
				"username":   bson.M{"bsonType": "string", "minLength": 1},
				"schedule":   bson.M{"bsonType": "object"},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}
