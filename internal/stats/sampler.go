package stats

import (
	"errors"
	"fmt"
	"sort"
)

// DemographicWeights holds the population share of every value of every
// dimension, e.g. weights["gender"]["female"] = 0.51.
type DemographicWeights map[Dimension]map[string]float64

// LevelBreakdownTable describes, for one subject and grade, the performance
// level distribution of each demographic group plus the overall distribution.
type LevelBreakdownTable struct {
	// Totals is the level distribution for the whole population.
	Totals ProbabilityVector

	// Breakdowns maps dimension -> value -> level distribution of that group.
	// Every vector has the same length as Totals.
	Breakdowns map[Dimension]map[string]ProbabilityVector
}

// Levels returns the number of performance levels described by the table.
func (t LevelBreakdownTable) Levels() int {
	return len(t.Totals)
}

// Validate checks that every breakdown vector matches the length of Totals.
func (t LevelBreakdownTable) Validate() error {
	if len(t.Totals) == 0 {
		return fmt.Errorf("%w: empty totals", ErrDegenerateDistribution)
	}
	for dim, values := range t.Breakdowns {
		for value, vec := range values {
			if len(vec) != len(t.Totals) {
				return fmt.Errorf("breakdown %s=%s has %d levels, totals has %d",
					dim, value, len(vec), len(t.Totals))
			}
		}
	}
	return nil
}

// DemographicLevelSampler approximates P(level | all demographics) from the
// per-dimension marginals of a LevelBreakdownTable, assuming the dimensions
// are conditionally independent given the level.
type DemographicLevelSampler struct {
	weights DemographicWeights
	table   LevelBreakdownTable
}

// NewDemographicLevelSampler creates a sampler over one breakdown table.
func NewDemographicLevelSampler(weights DemographicWeights, table LevelBreakdownTable) (*DemographicLevelSampler, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &DemographicLevelSampler{weights: weights, table: table}, nil
}

// Distribution computes the normalized level distribution for profile:
//
//	P(L) * Π_dim P(dim=v | L)
//
// where P(dim=v | L) is recovered with Bayes' rule from the group level
// vectors and the population weight of each group:
//
//	P(dim=v | L) = table[dim][v][L]*w[dim][v] / Σ_v' table[dim][v'][L]*w[dim][v']
//
// Dimensions missing from the profile, the table or the weights are ignored.
// A contradictory profile yields ErrDegenerateDistribution.
func (s *DemographicLevelSampler) Distribution(profile Profile) (ProbabilityVector, error) {
	levels := s.table.Levels()
	joint := make([]float64, levels)
	copy(joint, s.table.Totals)

	for _, dim := range profile.Dimensions() {
		value, _ := profile.Value(dim)
		groups, ok := s.table.Breakdowns[dim]
		if !ok {
			continue
		}
		groupVec, ok := groups[value]
		if !ok {
			continue
		}
		dimWeights, ok := s.weights[dim]
		if !ok {
			continue
		}

		for level := 0; level < levels; level++ {
			var denom float64
			for _, v := range sortedValues(groups) {
				denom += groups[v][level] * dimWeights[v]
			}
			if denom <= 0 {
				joint[level] = 0
				continue
			}
			joint[level] *= groupVec[level] * dimWeights[value] / denom
		}
	}

	return Normalize(joint)
}

// RandomLevel draws a zero-based level index for profile. A contradictory
// profile whose distribution is all zeros falls back to a uniform draw.
func (s *DemographicLevelSampler) RandomLevel(profile Profile, rng Rand) (int, error) {
	dist, err := s.Distribution(profile)
	if errors.Is(err, ErrDegenerateDistribution) {
		return rng.Intn(s.table.Levels()), nil
	}
	if err != nil {
		return 0, err
	}
	return dist.choose(rng.Float64()), nil
}

// RandomCapability draws a continuous capability for profile by picking a
// level bucket and a uniform offset inside it.
func (s *DemographicLevelSampler) RandomCapability(profile Profile, rng Rand) (Capability, error) {
	percentile := rng.Float64()
	offset := rng.Float64()
	return s.CapabilityAt(profile, percentile, offset)
}

// CapabilityAt places profile's capability at a given percentile of its
// level distribution, with offset locating it inside the chosen bucket. A
// contradictory profile uses a uniform distribution.
func (s *DemographicLevelSampler) CapabilityAt(profile Profile, percentile, offset float64) (Capability, error) {
	dist, err := s.levelDistribution(profile)
	if err != nil {
		return Capability{}, err
	}
	return CapabilityAtPercentile(dist, percentile, offset, 0)
}

func (s *DemographicLevelSampler) levelDistribution(profile Profile) (ProbabilityVector, error) {
	dist, err := s.Distribution(profile)
	if errors.Is(err, ErrDegenerateDistribution) {
		return uniform(s.table.Levels()), nil
	}
	return dist, err
}

func uniform(n int) ProbabilityVector {
	out := make(ProbabilityVector, n)
	for i := range out {
		out[i] = 1 / float64(n)
	}
	return out
}

// sortedValues fixes the summation order so results do not depend on map
// iteration.
func sortedValues(groups map[string]ProbabilityVector) []string {
	values := make([]string, 0, len(groups))
	for v := range groups {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
