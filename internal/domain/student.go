package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"
)

// Student validation errors
var (
	ErrEmptyStudentID   = errors.New("student ID cannot be empty")
	ErrEmptyStudentSSID = errors.New("student SSID cannot be empty")
	ErrNoCapability     = errors.New("student has no capability")
)

// Capabilities holds a student's capability in each assessed subject.
type Capabilities map[Subject]stats.Capability

// Subjects returns the subjects in sorted order.
func (c Capabilities) Subjects() []Subject {
	subjects := make([]Subject, 0, len(c))
	for subject := range c {
		subjects = append(subjects, subject)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i] < subjects[j] })
	return subjects
}

// LifecycleState is the part of a student that changes from year to year.
type LifecycleState struct {
	Grade       int     `json:"grade"`
	HeldBack    bool    `json:"held_back"`
	Transferred bool    `json:"transferred"`
	School      *School `json:"-"`
}

// Student is a simulated student. Lifecycle state and capabilities are only
// changed through methods so every subject's capability reflects the school
// the student attends.
type Student struct {
	ID      int64         `json:"id"`
	SSID    string        `json:"ssid"`
	Profile stats.Profile `json:"-"`

	state        LifecycleState
	capabilities Capabilities
}

// NewStudent enrolls a new student. capabilities are the values drawn for the
// student before any school effect, one per subject; the school's tier
// adjustment is applied here.
func NewStudent(id int64, ssid string, profile stats.Profile, school *School, grade int, capabilities Capabilities) (*Student, error) {
	if id == 0 {
		return nil, ErrEmptyStudentID
	}
	if ssid == "" {
		return nil, ErrEmptyStudentSSID
	}
	if school == nil {
		return nil, ErrNoSchool
	}
	if grade < MinGrade || grade > MaxGrade {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, grade)
	}

	if len(capabilities) == 0 {
		return nil, ErrNoCapability
	}

	adjusted, err := capabilities.apply(func(c stats.Capability) (stats.Capability, error) {
		return c.Adjust(school.Adjustment)
	})
	if err != nil {
		return nil, fmt.Errorf("applying school %s adjustment: %w", school.ID, err)
	}

	return &Student{
		ID:           id,
		SSID:         ssid,
		Profile:      profile,
		state:        LifecycleState{Grade: grade, School: school},
		capabilities: adjusted,
	}, nil
}

// State returns a copy of the student's lifecycle state.
func (s *Student) State() LifecycleState {
	return s.state
}

// Grade returns the student's current grade.
func (s *Student) Grade() int {
	return s.state.Grade
}

// School returns the school the student attends.
func (s *Student) School() *School {
	return s.state.School
}

// Capability returns the student's current capability in subject.
func (s *Student) Capability(subject Subject) (stats.Capability, bool) {
	c, ok := s.capabilities[subject]
	return c, ok
}

// Capabilities returns a copy of the student's capability in every subject.
func (s *Student) Capabilities() Capabilities {
	out := make(Capabilities, len(s.capabilities))
	for subject, c := range s.capabilities {
		out[subject] = c
	}
	return out
}

// BeginYear clears the flags describing last year's transition.
func (s *Student) BeginYear() {
	s.state.HeldBack = false
	s.state.Transferred = false
}

// HoldBack keeps the student in the current grade for another year.
func (s *Student) HoldBack() {
	s.state.HeldBack = true
}

// Promote moves the student up one grade.
func (s *Student) Promote() error {
	if s.state.Grade >= MaxGrade {
		return fmt.Errorf("%w: cannot promote past grade %d", ErrInvalidGrade, MaxGrade)
	}
	s.state.Grade++
	return nil
}

// TransferTo moves the student to school, replacing the old school's
// capability adjustment with the new one.
func (s *Student) TransferTo(school *School) error {
	if school == nil {
		return ErrNoSchool
	}

	var from float64
	if s.state.School != nil {
		from = s.state.School.Adjustment
	}
	moved, err := s.capabilities.apply(func(c stats.Capability) (stats.Capability, error) {
		return c.Transfer(from, school.Adjustment)
	})
	if err != nil {
		return fmt.Errorf("transferring student %d to school %s: %w", s.ID, school.ID, err)
	}

	s.capabilities = moved
	s.state.School = school
	s.state.Transferred = true
	return nil
}

// Improve applies a growth adjustment to the student's capability in every
// subject.
func (s *Student) Improve(adjustment float64) error {
	improved, err := s.capabilities.apply(func(c stats.Capability) (stats.Capability, error) {
		return c.Adjust(adjustment)
	})
	if err != nil {
		return fmt.Errorf("improving student %d: %w", s.ID, err)
	}
	s.capabilities = improved
	return nil
}

// apply maps fn over every subject into a new set. Nothing is returned unless
// every subject succeeds.
func (c Capabilities) apply(fn func(stats.Capability) (stats.Capability, error)) (Capabilities, error) {
	out := make(Capabilities, len(c))
	for _, subject := range c.Subjects() {
		next, err := fn(c[subject])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", subject, err)
		}
		out[subject] = next
	}
	return out, nil
}
