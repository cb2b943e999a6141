package repositories

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidID     = errors.New("malformatted id")
	ErrPostNotFound  = errors.New("post not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("expected `username` to be unique")
)

// ParseID converts a hex string into an ObjectID, wrapping ErrInvalidID on failure
func ParseID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return objID, nil
}
