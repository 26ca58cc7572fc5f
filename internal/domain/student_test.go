package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"
)

func mustCapability(t *testing.T, v float64) stats.Capability {
	t.Helper()
	c, err := stats.NewCapability(v)
	if err != nil {
		t.Fatalf("NewCapability(%g): %v", v, err)
	}
	return c
}

func single(t *testing.T, v float64) Capabilities {
	t.Helper()
	return Capabilities{SubjectELA: mustCapability(t, v)}
}

func capabilityIn(t *testing.T, student *Student, subject Subject) float64 {
	t.Helper()
	c, ok := student.Capability(subject)
	if !ok {
		t.Fatalf("Expected a %s capability", subject)
	}
	return c.Value()
}

func testSchool(id string, schoolType SchoolType, adjustment float64) *School {
	return &School{ID: id, DistrictID: "CA00001", Type: schoolType, Tier: TierAverage, Adjustment: adjustment}
}

func TestNewStudent(t *testing.T) {
	school := testSchool("S1", SchoolTypeElementary, 0.5)
	profile := stats.NewProfile(map[stats.Dimension]string{stats.DimensionGender: "female"})

	student, err := NewStudent(1000000000, "abc", profile, school, 3, single(t, 1))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// 4 * (1/4)^(1-0.5) = 2
	if got := capabilityIn(t, student, SubjectELA); math.Abs(got-2) > 1e-9 {
		t.Errorf("Expected school adjustment to be applied, got capability %g", got)
	}
	if student.Grade() != 3 || student.School() != school {
		t.Errorf("Unexpected lifecycle state %+v", student.State())
	}

	_, err = NewStudent(0, "abc", profile, school, 3, single(t, 1))
	if err != ErrEmptyStudentID {
		t.Errorf("Expected error %v, got %v", ErrEmptyStudentID, err)
	}
	_, err = NewStudent(1, "", profile, school, 3, single(t, 1))
	if err != ErrEmptyStudentSSID {
		t.Errorf("Expected error %v, got %v", ErrEmptyStudentSSID, err)
	}
	_, err = NewStudent(1, "abc", profile, nil, 3, single(t, 1))
	if err != ErrNoSchool {
		t.Errorf("Expected error %v, got %v", ErrNoSchool, err)
	}
	_, err = NewStudent(1, "abc", profile, school, 13, single(t, 1))
	if !errors.Is(err, ErrInvalidGrade) {
		t.Errorf("Expected error %v, got %v", ErrInvalidGrade, err)
	}
	_, err = NewStudent(1, "abc", profile, school, 3, Capabilities{})
	if err != ErrNoCapability {
		t.Errorf("Expected error %v, got %v", ErrNoCapability, err)
	}
}

func TestStudentCapabilitiesPerSubject(t *testing.T) {
	poor := testSchool("P", SchoolTypeMiddle, -0.25)
	good := testSchool("G", SchoolTypeMiddle, 0.25)

	student, err := NewStudent(1, "abc", stats.Profile{}, poor, 6, Capabilities{
		SubjectELA:  mustCapability(t, 1),
		SubjectMath: mustCapability(t, 3),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for subject, raw := range map[Subject]float64{SubjectELA: 1, SubjectMath: 3} {
		want, _ := stats.Adjust(raw, -0.25)
		if got := capabilityIn(t, student, subject); math.Abs(got-want) > 1e-9 {
			t.Errorf("Expected %s capability %g, got %g", subject, want, got)
		}
	}

	if err := student.TransferTo(good); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := student.Improve(stats.YearlyImprovement); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for subject, raw := range map[Subject]float64{SubjectELA: 1, SubjectMath: 3} {
		moved, _ := stats.Adjust(raw, 0.25)
		want, _ := stats.Adjust(moved, stats.YearlyImprovement)
		if got := capabilityIn(t, student, subject); math.Abs(got-want) > 1e-6 {
			t.Errorf("Expected %s capability %g, got %g", subject, want, got)
		}
	}

	if _, ok := student.Capability(Subject("Science")); ok {
		t.Error("Expected no capability for an unassessed subject")
	}

	copied := student.Capabilities()
	delete(copied, SubjectMath)
	if _, ok := student.Capability(SubjectMath); !ok {
		t.Error("Expected Capabilities to return a copy")
	}
	if got := copied.Subjects(); len(got) != 1 || got[0] != SubjectELA {
		t.Errorf("Expected [ELA], got %v", got)
	}
}

func TestStudentImproveIsAllOrNothing(t *testing.T) {
	student, err := NewStudent(1, "abc", stats.Profile{}, testSchool("S", SchoolTypeMiddle, 0), 6, Capabilities{
		SubjectELA:  mustCapability(t, 1),
		SubjectMath: mustCapability(t, 2),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	before := student.Capabilities()

	if err := student.Improve(1); !errors.Is(err, stats.ErrInvalidAdjustment) {
		t.Fatalf("Expected error %v, got %v", stats.ErrInvalidAdjustment, err)
	}
	for subject, c := range before {
		if got := capabilityIn(t, student, subject); got != c.Value() {
			t.Errorf("Expected %s capability to stay %g, got %g", subject, c.Value(), got)
		}
	}
}

func TestStudentTransferTo(t *testing.T) {
	poor := testSchool("P", SchoolTypeMiddle, -0.25)
	good := testSchool("G", SchoolTypeMiddle, 0.25)

	student, err := NewStudent(1, "abc", stats.Profile{}, poor, 6, single(t, 2))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := student.TransferTo(good); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	direct, _ := stats.Adjust(2, 0.25)
	if got := capabilityIn(t, student, SubjectELA); math.Abs(got-direct) > 1e-9 {
		t.Errorf("Expected capability %g after transfer, got %g", direct, got)
	}
	if !student.State().Transferred || student.School() != good {
		t.Errorf("Unexpected lifecycle state %+v", student.State())
	}

	student.BeginYear()
	if student.State().Transferred || student.State().HeldBack {
		t.Errorf("Expected flags to be cleared, got %+v", student.State())
	}

	if err := student.TransferTo(nil); err != ErrNoSchool {
		t.Errorf("Expected error %v, got %v", ErrNoSchool, err)
	}
}

func TestStudentPromoteAndImprove(t *testing.T) {
	student, err := NewStudent(1, "abc", stats.Profile{}, testSchool("H", SchoolTypeHigh, 0), 11, single(t, 2))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := student.Promote(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := student.Promote(); !errors.Is(err, ErrInvalidGrade) {
		t.Errorf("Expected error %v promoting past grade 12, got %v", ErrInvalidGrade, err)
	}
	if student.Grade() != 12 {
		t.Errorf("Expected grade 12, got %d", student.Grade())
	}

	before := capabilityIn(t, student, SubjectELA)
	if err := student.Improve(stats.YearlyImprovement); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if capabilityIn(t, student, SubjectELA) <= before {
		t.Errorf("Expected capability to grow from %g, got %g", before, capabilityIn(t, student, SubjectELA))
	}
	if err := student.Improve(2); !errors.Is(err, stats.ErrInvalidAdjustment) {
		t.Errorf("Expected error %v, got %v", stats.ErrInvalidAdjustment, err)
	}
}
