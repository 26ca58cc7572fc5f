package stats

import (
	"fmt"
	"math"
)

// MaxCapability is the exclusive upper bound of the capability scale.
const MaxCapability = 4.0

// Adjustment bounds. An adjustment must lie strictly inside (MinAdjustment,
// MaxAdjustment).
const (
	MinAdjustment = -10.0
	MaxAdjustment = 1.0
)

// YearlyImprovement is the adjustment applied each time a student advances a
// grade, modelling expected year-over-year growth.
const YearlyImprovement = 0.1

// Capability is a student's latent proficiency in [0, 4). Values are only
// produced by the functions in this package, so a Capability held by a
// student is always in range.
type Capability struct {
	value float64
}

// NewCapability wraps v after checking it lies in [0, 4).
func NewCapability(v float64) (Capability, error) {
	if math.IsNaN(v) || v < 0 || v >= MaxCapability {
		return Capability{}, fmt.Errorf("%w: %g not in [0, %g)", ErrInvalidCapability, v, MaxCapability)
	}
	return Capability{value: v}, nil
}

// Value returns the raw capability.
func (c Capability) Value() float64 {
	return c.value
}

// Adjust applies the gamma transform 4*(c/4)^(1-adjustment). Negative
// adjustments pull capability down, positive ones push it up.
func (c Capability) Adjust(adjustment float64) (Capability, error) {
	v, err := Adjust(c.value, adjustment)
	if err != nil {
		return c, err
	}
	return Capability{value: v}, nil
}

// Transfer removes the effect of the old school's adjustment and applies the
// new school's.
func (c Capability) Transfer(from, to float64) (Capability, error) {
	undone, err := c.Adjust(InverseAdjustment(from))
	if err != nil {
		return c, fmt.Errorf("undoing adjustment %g: %w", from, err)
	}
	moved, err := undone.Adjust(to)
	if err != nil {
		return c, err
	}
	return moved, nil
}

// Adjust applies the gamma transform 4*(capability/4)^(1-adjustment).
// adjustment must be in (-10, 1).
func Adjust(capability, adjustment float64) (float64, error) {
	if math.IsNaN(adjustment) || adjustment <= MinAdjustment || adjustment >= MaxAdjustment {
		return 0, fmt.Errorf("%w: %g not in (%g, %g)", ErrInvalidAdjustment, adjustment, MinAdjustment, MaxAdjustment)
	}
	if capability < 0 || capability >= MaxCapability {
		return 0, fmt.Errorf("%w: %g not in [0, %g)", ErrInvalidCapability, capability, MaxCapability)
	}

	adjusted := MaxCapability * math.Pow(capability/MaxCapability, 1-adjustment)
	if adjusted >= MaxCapability {
		adjusted = math.Nextafter(MaxCapability, 0)
	}
	return adjusted, nil
}

// InverseAdjustment returns the adjustment that undoes adjustment:
// Adjust(Adjust(c, a), InverseAdjustment(a)) == c.
func InverseAdjustment(adjustment float64) float64 {
	return -adjustment / (1 - adjustment)
}

// InitialCapability draws a capability from a level distribution: a bucket is
// chosen by weight and the value is interpolated uniformly inside it, then
// adjustment is applied. Buckets split [0, 4) evenly.
func InitialCapability(dist ProbabilityVector, adjustment float64, rng Rand) (Capability, error) {
	percentile := rng.Float64()
	offset := rng.Float64()
	return CapabilityAtPercentile(dist, percentile, offset, adjustment)
}

// CapabilityAtPercentile places a capability without drawing: percentile
// picks the bucket through the cumulative distribution and offset the
// position inside it, both in [0, 1). The same percentile placed against two
// distributions lands at the same rank in each.
func CapabilityAtPercentile(dist ProbabilityVector, percentile, offset, adjustment float64) (Capability, error) {
	if math.IsNaN(percentile) || percentile < 0 || percentile >= 1 {
		return Capability{}, fmt.Errorf("%w: percentile %g not in [0, 1)", ErrOutOfRange, percentile)
	}
	if math.IsNaN(offset) || offset < 0 || offset >= 1 {
		return Capability{}, fmt.Errorf("%w: offset %g not in [0, 1)", ErrOutOfRange, offset)
	}
	normalized, err := Normalize(dist)
	if err != nil {
		return Capability{}, err
	}

	bucketWidth := MaxCapability / float64(len(normalized))
	bucket := normalized.choose(percentile)
	raw := (float64(bucket) + offset) * bucketWidth
	if raw >= MaxCapability {
		raw = math.Nextafter(MaxCapability, 0)
	}

	return Capability{value: raw}.Adjust(adjustment)
}
