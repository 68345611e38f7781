// internal/domain/exercise.go
package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Exercise is a single movement performed inside a Workout.
// It is embedded in its workout document and has no life of its own.
type Exercise struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	WorkoutID primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	Name      string             `bson:"name" json:"name"`
	Sets      int                `bson:"sets" json:"sets"`
	Reps      int                `bson:"reps" json:"reps"`
	Weight    float64            `bson:"weight" json:"weight"` // pounds
}

// Volume is sets × reps × weight.
func (e Exercise) Volume() float64 {
	return float64(e.Sets) * float64(e.Reps) * e.Weight
}
