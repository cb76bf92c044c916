// internal/domain/models/schedule.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeekSchedule maps a weekday name ("Monday" … "Sunday") to the ordered
// time slots a guide is available, e.g. {"Monday": ["09:00", "11:00"]}.
type WeekSchedule map[string][]string

// Schedule is a guide's weekly availability. There is at most one record
// per guide username (unique index); saves are atomic upserts.
type Schedule struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username  string             `bson:"username" json:"username"`
	Schedule  WeekSchedule       `bson:"schedule" json:"schedule"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// HasSlot reports whether the schedule lists the given time slot under the
// given weekday name.
func (s Schedule) HasSlot(weekday, slot string) bool {
	for _, t := range s.Schedule[weekday] {
		if t == slot {
			return true
		}
	}
	return false
}
