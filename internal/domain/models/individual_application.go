// internal/domain/models/individual_application.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IndividualApplication is a single visitor's tour request. It has its own
// lifecycle: records are created with status "Pending" and no transition
// endpoints exist.
type IndividualApplication struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserName  string             `bson:"user_name" json:"userName"`
	UserEmail string             `bson:"user_email" json:"userEmail"`
	UserPhone string             `bson:"user_phone" json:"userPhone"`
	TourDate  string             `bson:"tour_date" json:"tourDate"`
	Major     string             `bson:"major" json:"major"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// StatusPending is the initial (and only) individual-application status.
const StatusPending = "Pending"
