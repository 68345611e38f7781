package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a logged training session owned by a single user.
// Exercises are stored inside the workout document, so a workout and its
// exercises are always written (and read) together.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Date      time.Time          `bson:"date" json:"date"`
	Exercises []Exercise         `bson:"exercises" json:"exercises"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Volume sums the volume of every exercise; a workout without exercises has volume 0.
func (w *Workout) Volume() float64 {
	var total float64
	for _, ex := range w.Exercises {
		total += ex.Volume()
	}
	return total
}
