package generation

import (
	"fmt"
	"sort"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/config"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
)

// AssessmentSet holds the assessments administered in one year, by grade.
type AssessmentSet map[int][]*domain.Assessment

// ForGrade returns the assessments a student in grade takes.
func (s AssessmentSet) ForGrade(grade int) []*domain.Assessment {
	return s[grade]
}

// Len returns the number of assessments in the set.
func (s AssessmentSet) Len() int {
	n := 0
	for _, list := range s {
		n += len(list)
	}
	return n
}

// BuildAssessments creates the year's assessments: one summative per
// configured subject and grade and, when interim is set, one interim
// comprehensive assessment plus one block assessment per configured block.
func BuildAssessments(tables *config.Tables, year int, interim bool) (AssessmentSet, error) {
	set := make(AssessmentSet)
	for _, subject := range tables.SubjectNames() {
		st, _ := tables.Subject(subject)

		grades := make([]int, 0, len(st.Grades))
		for g := range st.Grades {
			grades = append(grades, g)
		}
		sort.Ints(grades)

		for _, grade := range grades {
			cuts, err := tables.CutPoints(subject, grade)
			if err != nil {
				return nil, err
			}

			variants := []domain.Variant{domain.Summative{Claims: st.Claims, AltScores: st.AltScores}}
			if interim {
				variants = append(variants, domain.Interim{Claims: st.Claims})
				for _, name := range st.Blocks {
					variants = append(variants, domain.Block{Name: name})
				}
			}

			for i, variant := range variants {
				id := assessmentID(variant.Kind(), subject, grade, year, i)
				a, err := domain.NewAssessment(id, subject, grade, year, cuts, variant)
				if err != nil {
					return nil, err
				}
				set[grade] = append(set[grade], a)
			}
		}
	}
	return set, nil
}

func assessmentID(kind domain.AssessmentKind, subject domain.Subject, grade, year, index int) string {
	if kind == domain.KindBlock {
		return fmt.Sprintf("(SBAC)SBAC-%s-%s-%d-%d-%d", kind, subject, grade, year, index)
	}
	return fmt.Sprintf("(SBAC)SBAC-%s-%s-%d-%d", kind, subject, grade, year)
}
