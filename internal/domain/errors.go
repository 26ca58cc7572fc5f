package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidGrade is returned when a grade is outside the simulated range.
	ErrInvalidGrade = errors.New("invalid grade")

	// ErrNoSchool is returned when a student is not enrolled anywhere.
	ErrNoSchool = errors.New("student has no school")

	// ErrInvalidAssessment is returned when an assessment definition is unusable.
	ErrInvalidAssessment = errors.New("invalid assessment")
)

// Grade bounds used by the simulation.
const (
	MinGrade = 0
	MaxGrade = 12
)
