package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompletedSession is the terminal record written when a customer finishes
// a session. It is created once and never mutated or deleted.
type CompletedSession struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID    primitive.ObjectID `bson:"customerId" json:"customerId"`
	RoutineID     primitive.ObjectID `bson:"routineId" json:"routineId"`
	SessionID     primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	DateFinished  string             `bson:"dateFinished" json:"dateFinished"` // RFC 3339
	ExercisesDone []SessionExercise  `bson:"exercisesDone" json:"exercisesDone"`
}

// Progress is the per-customer pointer to the session they last trained.
// It is advanced best-effort after a completed session is written.
type Progress struct {
	CustomerID         primitive.ObjectID `bson:"_id" json:"customerId"`
	LastSessionTrained primitive.ObjectID `bson:"lastSessionTrained" json:"lastSessionTrained"`
}
