// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleGuide       = "guide"
	RoleCoordinator = "coordinator"
	RoleAdvisor     = "advisor"
	RoleAdmin       = "admin"
)

// UserRoles is the canonical role set accepted at registration and by the
// collection validator.
var UserRoles = []string{RoleGuide, RoleCoordinator, RoleAdvisor, RoleAdmin}

// IsValidRole reports whether role is one of the canonical roles.
func IsValidRole(role string) bool {
	for _, r := range UserRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents guides, coordinators, advisors, and admins.
//
// Accounts are created only through registration: the password is
// system-generated, bcrypt-hashed before storage, and emailed to the user
// exactly once. The hash never leaves the server (json:"-").
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"-"` // lowercase, diacritics-stripped
	Password   string             `bson:"password" json:"-"`
	Name       string             `bson:"name" json:"name"`
	Surname    string             `bson:"surname" json:"surname"`
	Role       string             `bson:"role" json:"role"`
	Email      string             `bson:"email" json:"email"`

	ResetToken        string     `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpires *time.Time `bson:"reset_token_expires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
