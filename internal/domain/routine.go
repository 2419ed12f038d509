package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoutineState tracks whether a routine is currently assigned/active.
type RoutineState string

const (
	RoutineActive   RoutineState = "active"
	RoutineArchived RoutineState = "archived"
)

// Routine is a coach-assigned training program for one customer.
// Its sessions are embedded; the per-session exercise parameters live in
// the sessionExercises collection keyed by session ID.
type Routine struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	CoachID    primitive.ObjectID `bson:"coachId" json:"coachId"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	State      RoutineState       `bson:"state" json:"state"`
	Sessions   []Session          `bson:"sessions,omitempty" json:"sessions,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Resolved for display, never persisted with the routine.
	CoachName string `bson:"-" json:"coachName,omitempty"`
}

// Session is one instance of a routine's exercise list. It owns zero or
// more SessionExercise records in the sessionExercises collection.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"` // e.g. "Day 1: Upper Body"
	Sequence  int                `bson:"sequence" json:"sequence"`             // Order within the routine
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
