package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrDuplicateSlug is returned when a service slug is already in use.
var ErrDuplicateSlug = errors.New("duplicate service slug")
