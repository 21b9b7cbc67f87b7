package dao

import "errors"

var (
	// ErrNotFound is returned when no entity is stored under a key.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID is returned for an empty key.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when saving a nil entity.
	ErrNilEntity = errors.New("dao: nil entity")
)
