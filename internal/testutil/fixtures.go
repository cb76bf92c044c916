package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/tourhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given identity. The stored
// password is a fixed bcrypt hash of "test-password" so login flows can
// exercise real comparison without hashing in every fixture call.
func (f *Fixtures) CreateUser(ctx context.Context, username, name, surname, role, email string) models.User {
	f.t.Helper()

	user := models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		UsernameCI: text.Fold(username),
		// bcrypt("test-password"), cost 10
		Password:  "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Name:      name,
		Surname:   surname,
		Role:      role,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateGuide creates a test user with the guide role.
func (f *Fixtures) CreateGuide(ctx context.Context, username, name, surname string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, username, name, surname, models.RoleGuide, username+"@test.com")
}

// CreateCoordinator creates a test user with the coordinator role.
func (f *Fixtures) CreateCoordinator(ctx context.Context, username, name, surname string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, username, name, surname, models.RoleCoordinator, username+"@test.com")
}

// CreateApplication creates a test tour application with the given status.
func (f *Fixtures) CreateApplication(ctx context.Context, schoolName, status string) models.Application {
	f.t.Helper()

	app := models.Application{
		ID:                primitive.NewObjectID(),
		City:              "Ankara",
		District:          "Çankaya",
		SchoolName:        schoolName,
		Website:           "https://school.example.edu",
		OrganizationEmail: "office@school.example.edu",
		TeacherName:       "Test",
		TeacherSurname:    "Teacher",
		TeacherEmail:      "teacher@school.example.edu",
		TeacherPhone:      "5551234567",
		GroupSize:         20,
		ClassInfo:         "11th grade",
		TourDate:          "2026-10-05",
		TourTime:          "10:00",
		Status:            status,
		CreatedAt:         time.Now().UTC(),
	}

	_, err := f.db.Collection("applications").InsertOne(ctx, app)
	if err != nil {
		f.t.Fatalf("failed to create test application: %v", err)
	}

	return app
}

// CreateApplicationWithGuide creates a test application carrying an embedded
// guide reference.
func (f *Fixtures) CreateApplicationWithGuide(ctx context.Context, schoolName, status string, guide models.GuideRef) models.Application {
	f.t.Helper()

	app := f.CreateApplication(ctx, schoolName, status)
	app.Guide = &guide

	_, err := f.db.Collection("applications").UpdateOne(ctx,
		bson.M{"_id": app.ID},
		bson.M{"$set": bson.M{"guide": guide, "status": status}})
	if err != nil {
		f.t.Fatalf("failed to attach guide to test application: %v", err)
	}

	return app
}

// CreateSchedule creates a weekly availability record for a guide username.
func (f *Fixtures) CreateSchedule(ctx context.Context, username string, week models.WeekSchedule) models.Schedule {
	f.t.Helper()

	sched := models.Schedule{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Schedule:  week,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("schedules").InsertOne(ctx, sched)
	if err != nil {
		f.t.Fatalf("failed to create test schedule: %v", err)
	}

	return sched
}
