package types

import "errors"

// Domain errors shared across packages
var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrLoading is returned when the catalog has not finished building yet
	ErrLoading = errors.New("catalog is still loading")
	// ErrNoDatabase is returned when the browser database was not found on disk
	ErrNoDatabase = errors.New("browser database not found")
)
