// Package applicationstore persists school tour applications and drives the
// status workflow: Waiting → Approved → Guide Approved → Completed, with a
// guide denial sending an application back to Approved.
package applicationstore

import (
	"context"
	"time"

	"github.com/dalemusser/tourhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("applications")}
}

// Insert stores a new application with status Waiting.
func (s *Store) Insert(ctx context.Context, app models.Application) (models.Application, error) {
	app.ID = primitive.NewObjectID()
	app.Status = models.StatusWaiting
	app.CreatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, app); err != nil {
		return models.Application{}, err
	}
	return app, nil
}

// GetByID loads one application.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var app models.Application
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByStatus returns all applications whose status is one of the given
// values, newest first.
func (s *Store) ListByStatus(ctx context.Context, statuses ...string) ([]models.Application, error) {
	cur, err := s.c.Find(ctx, bson.M{"status": bson.M{"$in": statuses}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Application
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveMany sets status Approved on every application in ids. Returns the
// number of applications matched.
func (s *Store) ApproveMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"status": models.StatusApproved}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Delete removes an application. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AssignGuide embeds the guide on the application and moves it to
// Guide Approved. Matches on id alone (coordinator override, any status).
// Returns the number matched (0 or 1).
func (s *Store) AssignGuide(ctx context.Context, tourID primitive.ObjectID, guide models.GuideRef) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": tourID},
		bson.M{"$set": bson.M{
			"guide":  guide,
			"status": models.StatusGuideApproved,
		}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// ListProposals returns the raw documents with status Assigned whose guide
// field holds the bare username. Legacy records store the username string
// where newer ones embed a guide object, so this returns untyped documents.
func (s *Store) ListProposals(ctx context.Context, username string) ([]bson.M, error) {
	cur, err := s.c.Find(ctx, bson.M{"guide": username, "status": models.StatusAssigned})
	if err != nil {
		return nil, err
	}
	var out []bson.M
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveProposal moves an assigned application to Guide Approved. Matches
// on both the application id and the embedded guide id, so a guide can only
// act on their own proposals.
func (s *Store) ApproveProposal(ctx context.Context, proposalID, guideID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": proposalID, "guide.id": guideID},
		bson.M{"$set": bson.M{"status": models.StatusGuideApproved}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DenyProposal sends an application back to Approved and removes the
// embedded guide. Matches on application id and embedded guide id.
func (s *Store) DenyProposal(ctx context.Context, proposalID, guideID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": proposalID, "guide.id": guideID},
		bson.M{
			"$set":   bson.M{"status": models.StatusApproved},
			"$unset": bson.M{"guide": ""},
		})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// ClaimTour lets a guide take an Approved application: embeds the guide and
// moves it to Guide Approved. The status filter makes the claim atomic — two
// guides racing for the same tour can't both match.
func (s *Store) ClaimTour(ctx context.Context, tourID primitive.ObjectID, guide models.GuideRef) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": tourID, "status": models.StatusApproved},
		bson.M{"$set": bson.M{
			"guide":  guide,
			"status": models.StatusGuideApproved,
		}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// ListByGuideID returns every application carrying the given embedded guide
// id, regardless of status.
func (s *Store) ListByGuideID(ctx context.Context, guideID primitive.ObjectID) ([]models.Application, error) {
	return s.findApplications(ctx, bson.M{"guide.id": guideID})
}

// ListGuideApprovedByGuideID returns the given guide's applications in
// status Guide Approved.
func (s *Store) ListGuideApprovedByGuideID(ctx context.Context, guideID primitive.ObjectID) ([]models.Application, error) {
	return s.findApplications(ctx, bson.M{
		"status":   models.StatusGuideApproved,
		"guide.id": guideID,
	})
}

// MarkComplete moves a guide's application to Completed. Matches on
// application id and embedded guide id.
func (s *Store) MarkComplete(ctx context.Context, tourID, guideID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": tourID, "guide.id": guideID},
		bson.M{"$set": bson.M{"status": models.StatusCompleted}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *Store) findApplications(ctx context.Context, filter bson.M) ([]models.Application, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var out []models.Application
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
