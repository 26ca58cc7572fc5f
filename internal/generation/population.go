package generation

import (
	"fmt"
	"sort"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/config"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/idgen"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"
)

// studentNamespace is the id namespace of generated students.
const studentNamespace = "student"

// Seeder creates new students: a demographic profile drawn from the
// population weights and one initial capability per subject, each drawn from
// that subject's level breakdown for the student's grade. Grades without
// tables use the nearest configured grade of the subject.
//
// A student's subjects share one percentile draw, so a student strong in one
// subject tends to be strong in the others while each subject still follows
// its own level distribution.
type Seeder struct {
	tables   *config.Tables
	ids      *idgen.Generator
	weights  stats.DemographicWeights
	subjects []domain.Subject
	grades   map[domain.Subject][]int
	samplers map[domain.Subject]map[int]*stats.DemographicLevelSampler
}

// NewSeeder prepares one sampler per configured subject and grade. The
// Seeder is read-only afterwards.
func NewSeeder(tables *config.Tables, ids *idgen.Generator) (*Seeder, error) {
	subjects := tables.SubjectNames()
	if len(subjects) == 0 {
		return nil, fmt.Errorf("%w: none configured", ErrNoTables)
	}

	s := &Seeder{
		tables:   tables,
		ids:      ids,
		weights:  tables.DemographicWeights(),
		subjects: subjects,
		grades:   make(map[domain.Subject][]int, len(subjects)),
		samplers: make(map[domain.Subject]map[int]*stats.DemographicLevelSampler, len(subjects)),
	}
	for _, subject := range subjects {
		st, _ := tables.Subject(subject)
		if len(st.Grades) == 0 {
			return nil, fmt.Errorf("%w: %s has no grades", ErrNoTables, subject)
		}
		samplers := make(map[int]*stats.DemographicLevelSampler, len(st.Grades))
		grades := make([]int, 0, len(st.Grades))
		for grade := range st.Grades {
			table, err := tables.BreakdownTable(subject, grade)
			if err != nil {
				return nil, err
			}
			sampler, err := stats.NewDemographicLevelSampler(s.weights, table)
			if err != nil {
				return nil, fmt.Errorf("%s grade %d: %w", subject, grade, err)
			}
			samplers[grade] = sampler
			grades = append(grades, grade)
		}
		sort.Ints(grades)
		s.samplers[subject] = samplers
		s.grades[subject] = grades
	}
	return s, nil
}

// RandomProfile draws one value per configured dimension.
func (s *Seeder) RandomProfile(rng stats.Rand) stats.Profile {
	dims := make([]string, 0, len(s.weights))
	for dim := range s.weights {
		dims = append(dims, string(dim))
	}
	sort.Strings(dims)

	values := make(map[stats.Dimension]string, len(dims))
	for _, dim := range dims {
		keys, weights := weightedKeys(s.weights[stats.Dimension(dim)])
		values[stats.Dimension(dim)] = keys[stats.WeightedChoice(weights, rng)]
	}
	return stats.NewProfile(values)
}

// NewStudent enrolls one new student in school at grade.
func (s *Seeder) NewStudent(school *domain.School, grade int, rng stats.Rand) (*domain.Student, error) {
	profile := s.RandomProfile(rng)
	capabilities, err := s.Capabilities(profile, grade, rng)
	if err != nil {
		return nil, err
	}
	id := s.ids.Next(studentNamespace)
	return domain.NewStudent(id, idgen.ShortUUID(), profile, school, grade, capabilities)
}

// Capabilities draws the unadjusted capability of profile in every subject
// at grade. One percentile is shared by all subjects; the position inside
// each subject's level bucket is drawn separately.
func (s *Seeder) Capabilities(profile stats.Profile, grade int, rng stats.Rand) (domain.Capabilities, error) {
	percentile := rng.Float64()
	capabilities := make(domain.Capabilities, len(s.subjects))
	for _, subject := range s.subjects {
		c, err := s.sampler(subject, grade).CapabilityAt(profile, percentile, rng.Float64())
		if err != nil {
			return nil, fmt.Errorf("drawing %s capability: %w", subject, err)
		}
		capabilities[subject] = c
	}
	return capabilities, nil
}

// SeedPopulation fills every grade of every school with perGrade students.
// Students are returned in school order, then grade order.
func (s *Seeder) SeedPopulation(state *domain.State, perGrade int, rng stats.Rand) ([]*domain.Student, error) {
	var students []*domain.Student
	for _, school := range state.Schools() {
		for _, grade := range school.Grades() {
			cohort, err := s.Cohort(school, grade, perGrade, rng)
			if err != nil {
				return nil, err
			}
			students = append(students, cohort...)
		}
	}
	return students, nil
}

// Cohort creates n new students in school at grade.
func (s *Seeder) Cohort(school *domain.School, grade, n int, rng stats.Rand) ([]*domain.Student, error) {
	students := make([]*domain.Student, 0, n)
	for i := 0; i < n; i++ {
		student, err := s.NewStudent(school, grade, rng)
		if err != nil {
			return nil, fmt.Errorf("seeding school %s grade %d: %w", school.ID, grade, err)
		}
		students = append(students, student)
	}
	return students, nil
}

// sampler returns the subject's sampler for the configured grade nearest to
// grade, preferring the lower grade on a tie.
func (s *Seeder) sampler(subject domain.Subject, grade int) *stats.DemographicLevelSampler {
	grades := s.grades[subject]
	best := grades[0]
	for _, g := range grades[1:] {
		if abs(g-grade) < abs(best-grade) {
			best = g
		}
	}
	return s.samplers[subject][best]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
