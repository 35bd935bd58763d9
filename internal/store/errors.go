package store

import "errors"

// Sentinel errors classifying every failure the services report. Handlers
// translate them to HTTP statuses with errors.Is.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned on duplicate registration or double-booking.
	ErrConflict = errors.New("conflict")

	// ErrValidation is returned for malformed or out-of-range input,
	// before any mutation takes place.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState is returned when a record is not in the state the
	// operation requires.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotOwner is returned when a caller acts on another user's record.
	ErrNotOwner = errors.New("not owner")

	// ErrPersistence is returned when the storage backend fails.
	ErrPersistence = errors.New("persistence failure")
)
