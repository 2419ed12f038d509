package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer holds the onboarding profile a customer fills in after registering.
// The ID matches the owning User's ID (one profile per account).
// Measurements are kept as the free-form strings the forms collect.
type Customer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Weight     string             `bson:"weight,omitempty" json:"weight,omitempty"`
	Height     string             `bson:"height,omitempty" json:"height,omitempty"`
	Birthdate  string             `bson:"birthdate,omitempty" json:"birthdate,omitempty"`
	GoalWeight string             `bson:"goalWeight,omitempty" json:"goalWeight,omitempty"`
	AvatarKey  string             `bson:"avatarKey,omitempty" json:"-"` // Object key in S3, never the raw bytes
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RequestState tracks a coaching request through its lifecycle.
type RequestState string

const (
	RequestPending  RequestState = "pending"
	RequestAccepted RequestState = "accepted"
	RequestRejected RequestState = "rejected"
)

// Request is a customer's coaching request, built from their training
// preferences (exercise type, experience, days per week).
type Request struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID  primitive.ObjectID `bson:"customerId" json:"customerId"`
	Description string             `bson:"description" json:"description"`
	State       RequestState       `bson:"state" json:"state"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
