package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches, including an owner
	// scoped filter that fails because the caller is not the owner.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("duplicate document")
)
