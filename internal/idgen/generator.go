// Package idgen produces natural-key identifiers for generated records:
// namespaced monotonic counters, hierarchical district and school ids, and
// opaque UUIDs.
package idgen

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultInit is the first value handed out by a namespace created by Next.
const DefaultInit int64 = 1_000_000_000

// Common errors
var (
	ErrInvalidStateID    = errors.New("state ID must be 2 characters")
	ErrInvalidDistrictID = errors.New("district ID cannot be empty")
)

// legacyDistrictSuffix marks district ids from older hierarchies whose schools
// use a seven digit sequence.
const legacyDistrictSuffix = "0000000"

// Generator hands out identifiers. It is safe for concurrent use; every
// counter update happens under a single lock. Counters live as long as the
// Generator, so a new Generator starts every namespace over.
type Generator struct {
	mu       sync.Mutex
	counters map[string]int64
}

// New creates a Generator with no namespaces.
func New() *Generator {
	return &Generator{counters: make(map[string]int64)}
}

// Next returns the next value of namespace, starting at DefaultInit and
// incrementing by one.
func (g *Generator) Next(namespace string) int64 {
	return g.NextFrom(namespace, DefaultInit, 1)
}

// NextFrom returns the next value of namespace. The first call for a
// namespace returns init; later calls add increment to the previous value.
// init and increment only matter on the first call.
func (g *Generator) NextFrom(namespace string, init, increment int64) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, ok := g.counters[namespace]
	if !ok {
		g.counters[namespace] = init
		return init
	}
	next := current + increment
	g.counters[namespace] = next
	return next
}

// DistrictID returns stateID followed by a five digit sequence unique within
// the state, e.g. "CA00001".
func (g *Generator) DistrictID(stateID string) (string, error) {
	if len(stateID) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidStateID, stateID)
	}
	seq := g.NextFrom("district:"+stateID, 1, 1)
	return fmt.Sprintf("%s%05d", stateID, seq), nil
}

// SchoolID returns districtID followed by a sequence unique within the
// district: five digits, or seven for legacy district ids ending in seven
// zeros.
func (g *Generator) SchoolID(districtID string) (string, error) {
	if districtID == "" {
		return "", ErrInvalidDistrictID
	}
	seq := g.NextFrom("school:"+districtID, 1, 1)
	if strings.HasSuffix(districtID, legacyDistrictSuffix) {
		return fmt.Sprintf("%s%07d", districtID, seq), nil
	}
	return fmt.Sprintf("%s%05d", districtID, seq), nil
}

// UUID returns a random UUID string.
func UUID() string {
	return uuid.NewString()
}

// ShortUUID returns 30 random hex characters.
func ShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:30]
}
