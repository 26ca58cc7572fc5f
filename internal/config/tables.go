package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"
)

//go:embed default_tables.yaml
var defaultTables []byte

// ErrInvalidTables is returned when a statistics table document is
// malformed or internally inconsistent.
var ErrInvalidTables = errors.New("invalid statistics tables")

// Tables is the statistical configuration of outcome synthesis: population
// demographics, per-subject level breakdowns, cut points and claim weights.
type Tables struct {
	Demographics map[stats.Dimension]map[string]float64 `yaml:"demographics" validate:"required,min=1,dive,required,min=1,dive,gte=0"`
	Tiers        map[domain.Tier]float64                `yaml:"tiers" validate:"required,min=1,dive,gt=-10,lt=0.9"`
	Subjects     map[domain.Subject]SubjectTables       `yaml:"subjects" validate:"required,min=1,dive"`
}

// SubjectTables holds the tables of one subject.
type SubjectTables struct {
	Claims     []domain.Claim                           `yaml:"claims" validate:"required,min=1,dive"`
	AltScores  []domain.Claim                           `yaml:"alt_scores" validate:"dive"`
	Blocks     []string                                 `yaml:"blocks" validate:"dive,required"`
	Breakdowns map[stats.Dimension]map[string][]float64 `yaml:"breakdowns"`
	Grades     map[int]GradeTables                      `yaml:"grades" validate:"required,min=1,dive"`
}

// GradeTables holds the cut points and overall level distribution of one
// subject in one grade. Breakdowns, when present, replace the subject's
// breakdown of the same dimension for this grade only.
type GradeTables struct {
	Cuts       []int                                    `yaml:"cuts" validate:"required,min=3"`
	Totals     []float64                                `yaml:"totals" validate:"required,min=2"`
	Breakdowns map[stats.Dimension]map[string][]float64 `yaml:"breakdowns,omitempty"`
}

// LoadTables reads a statistics table document from path. An empty path
// selects the built-in tables.
func LoadTables(path string) (*Tables, error) {
	data := defaultTables
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read tables: %w", err)
		}
		data = raw
	}
	return ParseTables(data)
}

// ParseTables decodes and validates a statistics table document.
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTables, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks the structure of the tables and their consistency: every
// grade's totals must have one entry per level, demographic shares must sum
// to one, and every breakdown must match the totals it refines.
func (t *Tables) Validate() error {
	if err := validator.New().Struct(t); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTables, err)
	}

	for dim, values := range t.Demographics {
		var sum float64
		for _, w := range values {
			sum += w
		}
		if math.Abs(sum-1) > stats.WeightTolerance {
			return fmt.Errorf("%w: demographic %s sums to %g", ErrInvalidTables, dim, sum)
		}
	}

	for subject, st := range t.Subjects {
		if err := domain.ClaimWeights(st.Claims).Validate(); err != nil {
			return fmt.Errorf("%w: %s claims: %w", ErrInvalidTables, subject, err)
		}
		if len(st.AltScores) > 0 {
			if err := domain.ClaimWeights(st.AltScores).Validate(); err != nil {
				return fmt.Errorf("%w: %s alt scores: %w", ErrInvalidTables, subject, err)
			}
		}
		for grade, gt := range st.Grades {
			if grade < domain.MinGrade || grade > domain.MaxGrade {
				return fmt.Errorf("%w: %s: %w: %d", ErrInvalidTables, subject, domain.ErrInvalidGrade, grade)
			}
			cuts := stats.CutPoints(gt.Cuts)
			if err := cuts.Validate(); err != nil {
				return fmt.Errorf("%w: %s grade %d: %w", ErrInvalidTables, subject, grade, err)
			}
			if len(gt.Totals) != cuts.Levels() {
				return fmt.Errorf("%w: %s grade %d has %d totals for %d levels",
					ErrInvalidTables, subject, grade, len(gt.Totals), cuts.Levels())
			}
			if _, err := st.breakdownTable(gt); err != nil {
				return fmt.Errorf("%w: %s grade %d: %w", ErrInvalidTables, subject, grade, err)
			}
		}
	}
	return nil
}

// DemographicWeights returns the population shares as sampler weights.
func (t *Tables) DemographicWeights() stats.DemographicWeights {
	weights := make(stats.DemographicWeights, len(t.Demographics))
	for dim, values := range t.Demographics {
		copied := make(map[string]float64, len(values))
		for v, w := range values {
			copied[v] = w
		}
		weights[dim] = copied
	}
	return weights
}

// TierAdjustment returns the capability adjustment of a school tier.
func (t *Tables) TierAdjustment(tier domain.Tier) (float64, bool) {
	adj, ok := t.Tiers[tier]
	return adj, ok
}

// Subject returns the tables of one subject.
func (t *Tables) Subject(subject domain.Subject) (SubjectTables, bool) {
	st, ok := t.Subjects[subject]
	return st, ok
}

// SubjectNames lists the configured subjects in sorted order.
func (t *Tables) SubjectNames() []domain.Subject {
	names := make([]domain.Subject, 0, len(t.Subjects))
	for s := range t.Subjects {
		names = append(names, s)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Grade returns the tables of one subject and grade.
func (t *Tables) Grade(subject domain.Subject, grade int) (GradeTables, bool) {
	st, ok := t.Subjects[subject]
	if !ok {
		return GradeTables{}, false
	}
	gt, ok := st.Grades[grade]
	return gt, ok
}

// CutPoints returns the cut points of one subject and grade.
func (t *Tables) CutPoints(subject domain.Subject, grade int) (stats.CutPoints, error) {
	gt, ok := t.Grade(subject, grade)
	if !ok {
		return nil, fmt.Errorf("%w: no %s tables for grade %d", ErrInvalidTables, subject, grade)
	}
	return stats.CutPoints(gt.Cuts), nil
}

// BreakdownTable builds the level breakdown table of one subject and grade.
// The subject's demographic breakdowns apply to every grade unless the grade
// overrides a dimension.
func (t *Tables) BreakdownTable(subject domain.Subject, grade int) (stats.LevelBreakdownTable, error) {
	st, ok := t.Subjects[subject]
	if !ok {
		return stats.LevelBreakdownTable{}, fmt.Errorf("%w: unknown subject %s", ErrInvalidTables, subject)
	}
	gt, ok := st.Grades[grade]
	if !ok {
		return stats.LevelBreakdownTable{}, fmt.Errorf("%w: no %s tables for grade %d", ErrInvalidTables, subject, grade)
	}
	return st.breakdownTable(gt)
}

func (st SubjectTables) breakdownTable(gt GradeTables) (stats.LevelBreakdownTable, error) {
	table := stats.LevelBreakdownTable{
		Totals:     stats.ProbabilityVector(gt.Totals),
		Breakdowns: make(map[stats.Dimension]map[string]stats.ProbabilityVector, len(st.Breakdowns)),
	}
	for dim, values := range st.Breakdowns {
		if _, overridden := gt.Breakdowns[dim]; overridden {
			continue
		}
		table.Breakdowns[dim] = groups(values)
	}
	for dim, values := range gt.Breakdowns {
		table.Breakdowns[dim] = groups(values)
	}
	if err := table.Validate(); err != nil {
		return stats.LevelBreakdownTable{}, err
	}
	return table, nil
}

func groups(values map[string][]float64) map[string]stats.ProbabilityVector {
	out := make(map[string]stats.ProbabilityVector, len(values))
	for v, vec := range values {
		out[v] = stats.ProbabilityVector(vec)
	}
	return out
}
