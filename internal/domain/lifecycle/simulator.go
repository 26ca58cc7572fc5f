// Package lifecycle drives the year-over-year state machine of a simulated
// student: advance, hold back, transfer or drop out.
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"
)

// Common errors
var (
	ErrNilStudent    = errors.New("student cannot be nil")
	ErrInvalidParams = errors.New("invalid lifecycle parameters")
)

// Transition is the outcome of one simulated year for one student.
type Transition string

// Possible transitions. Dropped is terminal.
const (
	TransitionAdvanced    Transition = "advanced"
	TransitionHeldBack    Transition = "held_back"
	TransitionTransferred Transition = "transferred"
	TransitionDropped     Transition = "dropped"
)

// Hierarchy answers which schools teach a grade.
type Hierarchy interface {
	SchoolsOffering(grade int) []*domain.School
}

// Simulator applies the yearly lifecycle transition to students.
type Simulator struct {
	hierarchy Hierarchy
	params    *Params
}

// NewSimulator creates a simulator over hierarchy. A nil params uses the
// defaults.
func NewSimulator(hierarchy Hierarchy, params *Params) (*Simulator, error) {
	if params == nil {
		params = NewDefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{hierarchy: hierarchy, params: params}, nil
}

// Advance runs one year for student and reports whether the student is still
// enrolled. Dropped students must be removed by the caller and never passed
// back in.
func (s *Simulator) Advance(student *domain.Student, rng stats.Rand) (bool, error) {
	transition, err := s.Step(student, rng)
	if err != nil {
		return false, err
	}
	return transition != TransitionDropped, nil
}

// Step runs one year for student and returns the transition taken:
//
//  1. With HoldBackRate the student repeats the grade. A held back student
//     then drops out with DropOutRate, or when no school offers the grade.
//  2. Otherwise the grade goes up by one; if no school offers it the student
//     drops out.
//  3. If the current school lacks the new grade, or with TransferRate, the
//     student moves to a uniformly chosen school offering it, swapping the
//     old school's capability adjustment for the new one.
//  4. Every advancing student receives YearlyImprovement.
//
// An error leaves the student in an unspecified state; treat it as dropped.
func (s *Simulator) Step(student *domain.Student, rng stats.Rand) (Transition, error) {
	if student == nil {
		return "", ErrNilStudent
	}
	student.BeginYear()

	if rng.Float64() < s.params.HoldBackRate {
		student.HoldBack()
		if rng.Float64() < s.params.DropOutRate {
			return TransitionDropped, nil
		}
		if len(s.hierarchy.SchoolsOffering(student.Grade())) == 0 {
			return TransitionDropped, nil
		}
		return TransitionHeldBack, nil
	}

	next := student.Grade() + 1
	candidates := s.hierarchy.SchoolsOffering(next)
	if len(candidates) == 0 {
		return TransitionDropped, nil
	}
	if err := student.Promote(); err != nil {
		return "", err
	}

	transition := TransitionAdvanced
	current := student.School()
	if current == nil || !current.Offers(next) || rng.Float64() < s.params.TransferRate {
		target := candidates[rng.Intn(len(candidates))]
		if err := student.TransferTo(target); err != nil {
			return "", err
		}
		transition = TransitionTransferred
	}

	if err := student.Improve(s.params.YearlyImprovement); err != nil {
		return "", fmt.Errorf("applying yearly improvement: %w", err)
	}
	return transition, nil
}
