package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateExercise is one exercise inside a self-authored template, with
// the parameter values the customer planned for it.
type TemplateExercise struct {
	ExerciseID   primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	ExerciseName string             `bson:"exerciseName,omitempty" json:"exerciseName,omitempty"`
	Sets         int                `bson:"sets" json:"sets"`
	Reps         int                `bson:"reps" json:"reps"`
	Weight       int                `bson:"weight" json:"weight"`
	Speed        int                `bson:"speed" json:"speed"`
	Duration     int                `bson:"duration" json:"duration"`
}

// Template is a training routine a customer authored for themselves, as
// opposed to one assigned by a coach. Templates are private to their owner.
type Template struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name      string             `bson:"name" json:"name"`
	Exercises []TemplateExercise `bson:"exercises" json:"exercises"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
