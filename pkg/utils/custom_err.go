package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPage            = errors.New("invalid page parameter")
	ErrInvalidPageSize        = errors.New("invalid page size parameter")
	ErrDatabaseError          = errors.New("database error")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrAccountNotFound        = errors.New("account not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrDestinationNotFound    = errors.New("destination not found")
	ErrItineraryNotFound      = errors.New("itinerary not found")
	ErrNoSuitableDestinations = errors.New("no suitable destinations found for your preferences")
	ErrAlreadyVisited         = errors.New("destination already marked as visited")
	ErrChatSessionNotFound    = errors.New("chat session not found")
	ErrRateLimited            = errors.New("too many requests")
	ErrSlugTaken              = errors.New("a destination with this name already exists")
)

// FieldError is a request validation failure on a single field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

func NewFieldError(field, format string, args ...interface{}) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}
