package storage

import "errors"

var (
	// ErrNotFound is returned when a referenced user, film, review or
	// director id does not resolve to an existing record.
	ErrNotFound = errors.New("not found")

	// ErrDuplicated is returned on uniqueness violations (login, email).
	ErrDuplicated = errors.New("duplicated data")

	// ErrCorruptedData is returned when an entity fails domain validation.
	ErrCorruptedData = errors.New("corrupted data")
)
