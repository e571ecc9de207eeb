// Package repository defines the persistence interfaces the rest of the
// application depends on. Each backing engine provides one conforming
// implementation; the engines are the sole serialization point for
// concurrent requests.
package repository

import "errors"

var (
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a uniqueness-constraint violation on insert.
	ErrDuplicate = errors.New("record already exists")
)
