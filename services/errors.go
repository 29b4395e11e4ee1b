package services

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ValidationError reports a rejected input. It is raised before any durable write,
// or after staged files have been discarded.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError reports an operation blocked by existing references.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

var (
	errAdNotFound       = &NotFoundError{Message: "Ad not found"}
	errCategoryNotFound = &NotFoundError{Message: "Category not found"}
	errInvalidCategory  = &ValidationError{Message: "Invalid category"}
	errCategoryExists   = &ValidationError{Message: "Category already exists"}
)

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// parseID treats a malformed hex id like an unknown one.
func parseID(raw string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return bson.NilObjectID, false
	}
	return id, true
}
