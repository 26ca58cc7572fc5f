package lifecycle

import (
	"fmt"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/stats"
)

// Params defines the yearly transition probabilities of the lifecycle
// simulation.
type Params struct {
	// HoldBackRate is the probability a student repeats their grade.
	HoldBackRate float64

	// DropOutRate is the probability a held back student leaves the system.
	DropOutRate float64

	// TransferRate is the probability an advancing student changes school
	// even though their school offers the next grade.
	TransferRate float64

	// YearlyImprovement is the capability adjustment applied on every
	// successful advancement.
	YearlyImprovement float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		HoldBackRate:      0.01,
		DropOutRate:       0.25,
		TransferRate:      0.05,
		YearlyImprovement: stats.YearlyImprovement,
	}
}

// Validate checks that every rate is a probability and that the yearly
// improvement is a usable capability adjustment.
func (p *Params) Validate() error {
	rates := map[string]float64{
		"hold back rate": p.HoldBackRate,
		"drop out rate":  p.DropOutRate,
		"transfer rate":  p.TransferRate,
	}
	for name, rate := range rates {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%w: %s %g not in [0, 1]", ErrInvalidParams, name, rate)
		}
	}
	if p.YearlyImprovement <= stats.MinAdjustment || p.YearlyImprovement >= stats.MaxAdjustment {
		return fmt.Errorf("%w: yearly improvement: %w", ErrInvalidParams, stats.ErrInvalidAdjustment)
	}
	return nil
}
