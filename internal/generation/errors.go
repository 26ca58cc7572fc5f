package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when the run configuration cannot drive a run
	ErrInvalidConfig = errors.New("invalid generation configuration")

	// ErrUnknownTier is returned when a school tier has no adjustment in the tables
	ErrUnknownTier = errors.New("school tier missing from tables")

	// ErrNoTables is returned when no statistics describe a subject or grade
	ErrNoTables = errors.New("no statistics tables for subject")
)
