package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionExercise is one exercise's parameters within a session: the values
// the coach assigned, or, once the customer starts training, the values
// they actually performed. Identity is ExerciseID within a session's list.
type SessionExercise struct {
	SessionID    primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	ExerciseID   primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	ExerciseName string             `bson:"exerciseName,omitempty" json:"exerciseName,omitempty"` // Resolved by join on load
	Sets         int                `bson:"sets" json:"sets"`
	Reps         int                `bson:"reps" json:"reps"`
	Weight       int                `bson:"weight" json:"weight"`
	Speed        int                `bson:"speed" json:"speed"`
	Duration     int                `bson:"duration" json:"duration"`
	Completed    bool               `bson:"completed" json:"completed"`
}

// SameParameters reports whether the five numeric fields match. The
// completion flag is not part of the comparison.
func (e SessionExercise) SameParameters(other SessionExercise) bool {
	return e.Sets == other.Sets &&
		e.Reps == other.Reps &&
		e.Weight == other.Weight &&
		e.Speed == other.Speed &&
		e.Duration == other.Duration
}
