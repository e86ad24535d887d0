package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("not found")

type notFoundError struct {
	id uint
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("Application with ID %d not found", e.id)
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(id uint) error {
	return &notFoundError{id: id}
}

// ValidationError reports a request field the registry refuses to store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
