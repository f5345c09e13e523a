package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles known to the platform.
const (
	RoleManager  = "manager"
	RoleDriver   = "driver"
	RoleCustomer = "customer"
)

// User matches the document in MongoDB.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Password  string             `bson:"password" json:"-"`
	Company   string             `bson:"company" json:"company"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status" json:"status"` // active, disabled
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidRole reports whether role is one of the three platform roles.
func ValidRole(role string) bool {
	switch role {
	case RoleManager, RoleDriver, RoleCustomer:
		return true
	}
	return false
}
