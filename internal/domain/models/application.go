// internal/domain/models/application.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses. An application moves
// Waiting → Approved → Guide Approved → Completed; a guide denying an
// assigned proposal sends it back to Approved.
const (
	StatusWaiting       = "Waiting"
	StatusApproved      = "Approved"
	StatusAssigned      = "Assigned"
	StatusGuideApproved = "Guide Approved"
	StatusCompleted     = "Completed"
)

// ApplicationStatuses is the canonical set accepted by the collection
// validator.
var ApplicationStatuses = []string{
	StatusWaiting,
	StatusApproved,
	StatusAssigned,
	StatusGuideApproved,
	StatusCompleted,
}

// GuideRef is the guide snapshot embedded on an application when a guide
// is assigned. It is a copy taken at assignment time, not a live join.
type GuideRef struct {
	ID      primitive.ObjectID `bson:"id" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Surname string             `bson:"surname" json:"surname"`
}

// Application is a school's tour request and its approval/assignment state.
//
// JSON field names keep the camelCase wire format existing clients expect;
// bson names follow the usual snake_case collection layout.
type Application struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	City              string             `bson:"city" json:"city"`
	District          string             `bson:"district" json:"district"`
	SchoolName        string             `bson:"school_name" json:"schoolName"`
	Website           string             `bson:"website" json:"website"`
	OrganizationEmail string             `bson:"organization_email" json:"organizationEmail"`
	TeacherName       string             `bson:"teacher_name" json:"teacherName"`
	TeacherSurname    string             `bson:"teacher_surname" json:"teacherSurname"`
	TeacherEmail      string             `bson:"teacher_email" json:"teacherEmail"`
	TeacherPhone      string             `bson:"teacher_phone" json:"teacherPhone"`
	GroupSize         int                `bson:"group_size" json:"groupSize"`
	ClassInfo         string             `bson:"class_info" json:"classInfo"`
	TourDate          string             `bson:"tour_date" json:"tourDate"`
	TourTime          string             `bson:"tour_time" json:"tourTime"`
	Guide             *GuideRef          `bson:"guide,omitempty" json:"guide,omitempty"`
	Status            string             `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"created_at" json:"createdAt"`
}
