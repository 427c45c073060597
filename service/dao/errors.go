package dao

import "errors"

var (
	// ErrNotFound is returned when no record exists for the key.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID is returned for a negative or otherwise unusable key.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when saving a nil record.
	ErrNilEntity = errors.New("dao: nil entity")
)
