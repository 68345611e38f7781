package service

import "go.mongodb.org/mongo-driver/bson/primitive"

// ParseUserID converts the hex user id used on the wire into an ObjectID.
func ParseUserID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil || oid.IsZero() {
		return primitive.NilObjectID, ErrInvalidUserID
	}
	return oid, nil
}
