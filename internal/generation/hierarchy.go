package generation

import (
	"fmt"
	"sort"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/config"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/idgen"
	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"
)

// BuildHierarchy creates the state with cfg.Districts districts of
// cfg.SchoolsPerDistrict schools each. School types and tiers are drawn from
// the configured weights; each tier's capability adjustment comes from tables.
func BuildHierarchy(cfg config.HierarchyConfig, tables *config.Tables, ids *idgen.Generator, rng stats.Rand) (*domain.State, error) {
	types, typeWeights := weightedKeys(cfg.SchoolTypes)
	tiers, tierWeights := weightedKeys(cfg.Tiers)
	if len(types) == 0 || len(tiers) == 0 {
		return nil, fmt.Errorf("%w: school types and tiers need at least one entry", ErrInvalidConfig)
	}

	state := &domain.State{Code: cfg.StateCode, Name: cfg.StateName}
	for d := 1; d <= cfg.Districts; d++ {
		districtID, err := ids.DistrictID(cfg.StateCode)
		if err != nil {
			return nil, err
		}
		district := &domain.District{
			ID:        districtID,
			Name:      fmt.Sprintf("%s District %d", cfg.StateName, d),
			StateCode: cfg.StateCode,
		}

		for s := 1; s <= cfg.SchoolsPerDistrict; s++ {
			schoolID, err := ids.SchoolID(districtID)
			if err != nil {
				return nil, err
			}
			schoolType := domain.SchoolType(types[stats.WeightedChoice(typeWeights, rng)])
			tier := domain.Tier(tiers[stats.WeightedChoice(tierWeights, rng)])
			adjustment, ok := tables.TierAdjustment(tier)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownTier, tier)
			}

			name := fmt.Sprintf("%s %s School %d", district.Name, schoolType, s)
			school, err := domain.NewSchool(schoolID, districtID, name, schoolType, tier, adjustment)
			if err != nil {
				return nil, fmt.Errorf("building school %s: %w", schoolID, err)
			}
			district.Schools = append(district.Schools, school)
		}
		state.Districts = append(state.Districts, district)
	}
	return state, nil
}

// weightedKeys returns the keys of m in sorted order with their weights, so
// draws do not depend on map iteration order.
func weightedKeys(m map[string]float64) ([]string, []float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	weights := make([]float64, len(keys))
	for i, k := range keys {
		weights[i] = m[k]
	}
	return keys, weights
}
