package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"
)

// SchoolType determines which grades a school offers.
type SchoolType string

// Supported school types
const (
	SchoolTypeElementary SchoolType = "elementary"
	SchoolTypeMiddle     SchoolType = "middle"
	SchoolTypeHigh       SchoolType = "high"
	SchoolTypeK12        SchoolType = "k12"
)

var schoolTypeGrades = map[SchoolType][]int{
	SchoolTypeElementary: {3, 4, 5},
	SchoolTypeMiddle:     {6, 7, 8},
	SchoolTypeHigh:       {9, 10, 11, 12},
	SchoolTypeK12:        {3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
}

// Grades returns the grades offered by schools of this type.
func (t SchoolType) Grades() []int {
	grades := schoolTypeGrades[t]
	out := make([]int, len(grades))
	copy(out, grades)
	return out
}

// Valid reports whether t is a known school type.
func (t SchoolType) Valid() bool {
	_, ok := schoolTypeGrades[t]
	return ok
}

// Tier is the quality band of a school. Each tier carries a capability
// adjustment applied to the students it enrolls.
type Tier string

// Supported school tiers
const (
	TierPoor      Tier = "poor"
	TierAverage   Tier = "average"
	TierGood      Tier = "good"
	TierExcellent Tier = "excellent"
)

// MaxTierAdjustment bounds tier adjustments from above so that the inverse
// adjustment applied on transfer stays inside (-10, 1).
const MaxTierAdjustment = 10.0 / 11.0

// School validation errors
var (
	ErrSchoolIDEmpty         = errors.New("school ID cannot be empty")
	ErrSchoolDistrictEmpty   = errors.New("school district ID cannot be empty")
	ErrInvalidSchoolType     = errors.New("invalid school type")
	ErrInvalidTierAdjustment = errors.New("tier adjustment out of range")
)

// School is a single school in the hierarchy.
type School struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	DistrictID string     `json:"district_id"`
	Type       SchoolType `json:"type"`
	Tier       Tier       `json:"tier"`
	Adjustment float64    `json:"adjustment"`
}

// NewSchool creates a validated school.
func NewSchool(id, districtID, name string, schoolType SchoolType, tier Tier, adjustment float64) (*School, error) {
	school := &School{
		ID:         id,
		Name:       name,
		DistrictID: districtID,
		Type:       schoolType,
		Tier:       tier,
		Adjustment: adjustment,
	}
	if err := school.Validate(); err != nil {
		return nil, err
	}
	return school, nil
}

// Validate checks if the School has valid data.
func (s *School) Validate() error {
	if s.ID == "" {
		return ErrSchoolIDEmpty
	}
	if s.DistrictID == "" {
		return ErrSchoolDistrictEmpty
	}
	if !s.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSchoolType, s.Type)
	}
	if s.Adjustment <= stats.MinAdjustment || s.Adjustment >= MaxTierAdjustment {
		return fmt.Errorf("%w: %g not in (%g, %g)", ErrInvalidTierAdjustment,
			s.Adjustment, stats.MinAdjustment, MaxTierAdjustment)
	}
	return nil
}

// Offers reports whether the school teaches grade.
func (s *School) Offers(grade int) bool {
	for _, g := range schoolTypeGrades[s.Type] {
		if g == grade {
			return true
		}
	}
	return false
}

// Grades returns the grades taught at the school.
func (s *School) Grades() []int {
	return s.Type.Grades()
}

// LowestGrade returns the entry grade of the school.
func (s *School) LowestGrade() int {
	return schoolTypeGrades[s.Type][0]
}

// District groups the schools of one administrative district.
type District struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StateCode string    `json:"state_code"`
	Schools   []*School `json:"schools"`
}

// State is the root of the hierarchy.
type State struct {
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Districts []*District `json:"districts"`
}

// Schools returns every school in the state in district order.
func (st *State) Schools() []*School {
	var schools []*School
	for _, d := range st.Districts {
		schools = append(schools, d.Schools...)
	}
	return schools
}

// SchoolsOffering returns the schools that teach grade, in district order.
func (st *State) SchoolsOffering(grade int) []*School {
	var schools []*School
	for _, s := range st.Schools() {
		if s.Offers(grade) {
			schools = append(schools, s)
		}
	}
	return schools
}

// Grades returns every grade offered somewhere in the state, ascending.
func (st *State) Grades() []int {
	seen := map[int]bool{}
	for _, s := range st.Schools() {
		for _, g := range s.Grades() {
			seen[g] = true
		}
	}
	grades := make([]int, 0, len(seen))
	for g := range seen {
		grades = append(grades, g)
	}
	sort.Ints(grades)
	return grades
}
