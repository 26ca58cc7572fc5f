package generation

import (
	"context"
	"sync"

	"github.com/SmarterApp/RDW-DataGenerator-sub000/internal/domain"
)

// OutcomeSink receives finished outcomes. Write is called concurrently from
// the worker pool; implementations must be safe for concurrent use.
type OutcomeSink interface {
	Write(ctx context.Context, outcome *domain.Outcome) error
}

// MemorySink keeps every outcome in memory.
type MemorySink struct {
	mu       sync.Mutex
	outcomes []*domain.Outcome
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write implements OutcomeSink.
func (s *MemorySink) Write(ctx context.Context, outcome *domain.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, outcome)
	return nil
}

// Outcomes returns a copy of the outcomes written so far.
func (s *MemorySink) Outcomes() []*domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// Len returns the number of outcomes written so far.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.outcomes)
}
