package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewSchool(t *testing.T) {
	school, err := NewSchool("CA0000100001", "CA00001", "Elementary 1", SchoolTypeElementary, TierGood, 0.15)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !school.Offers(4) {
		t.Error("Expected elementary school to offer grade 4")
	}
	if school.Offers(6) {
		t.Error("Expected elementary school not to offer grade 6")
	}
	if school.LowestGrade() != 3 {
		t.Errorf("Expected lowest grade 3, got %d", school.LowestGrade())
	}

	testCases := []struct {
		name       string
		id         string
		districtID string
		schoolType SchoolType
		adjustment float64
		expected   error
	}{
		{"empty id", "", "CA00001", SchoolTypeHigh, 0, ErrSchoolIDEmpty},
		{"empty district", "S1", "", SchoolTypeHigh, 0, ErrSchoolDistrictEmpty},
		{"unknown type", "S1", "CA00001", SchoolType("charter"), 0, ErrInvalidSchoolType},
		{"adjustment too high", "S1", "CA00001", SchoolTypeHigh, 0.95, ErrInvalidTierAdjustment},
		{"adjustment too low", "S1", "CA00001", SchoolTypeHigh, -10, ErrInvalidTierAdjustment},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSchool(tc.id, tc.districtID, "x", tc.schoolType, TierAverage, tc.adjustment)
			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected error %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestSchoolTypeGradesAreCopies(t *testing.T) {
	grades := SchoolTypeMiddle.Grades()
	grades[0] = 99

	if got := SchoolTypeMiddle.Grades(); got[0] != 6 {
		t.Errorf("Expected grade list to be unaffected by caller mutation, got %v", got)
	}
}

func TestStateSchoolsOffering(t *testing.T) {
	elem := &School{ID: "E", DistrictID: "D1", Type: SchoolTypeElementary}
	mid := &School{ID: "M", DistrictID: "D1", Type: SchoolTypeMiddle}
	high := &School{ID: "H", DistrictID: "D2", Type: SchoolTypeHigh}
	state := &State{
		Code: "CA",
		Districts: []*District{
			{ID: "D1", Schools: []*School{elem, mid}},
			{ID: "D2", Schools: []*School{high}},
		},
	}

	if got := state.SchoolsOffering(7); !reflect.DeepEqual(got, []*School{mid}) {
		t.Errorf("Expected only the middle school for grade 7, got %v", got)
	}
	if got := state.SchoolsOffering(2); len(got) != 0 {
		t.Errorf("Expected no school for grade 2, got %v", got)
	}
	if got := state.Grades(); !reflect.DeepEqual(got, []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12}) {
		t.Errorf("Unexpected grades %v", got)
	}
	if got := len(state.Schools()); got != 3 {
		t.Errorf("Expected 3 schools, got %d", got)
	}
}
