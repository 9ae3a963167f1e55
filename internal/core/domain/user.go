package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleUser || role == RolePublisher || role == RoleAdmin
}

// User models an authenticated account. The password hash is stored but
// never serialised outward.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Role      string             `json:"role" bson:"role"`
	Password  string             `json:"-" bson:"password"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// IsAdmin reports whether the account holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Owns reports whether the account may mutate a resource owned by ownerID:
// either it is the owner or it is an administrator.
func (u *User) Owns(ownerID primitive.ObjectID) bool {
	return u.ID == ownerID || u.IsAdmin()
}
