package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types, one per lifecycle transition
const (
	TypeEnrolled    = "enrolled"
	TypeAdvanced    = "advanced"
	TypeHeldBack    = "held_back"
	TypeTransferred = "transferred"
	TypeDropped     = "dropped"
)

// Event records what happened to one student at the end of a school year.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	StudentID int64  `json:"student_id"`
	Year      int    `json:"year"`
	Grade     int    `json:"grade"`
	SchoolID  string `json:"school_id,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent creates an Event with a fresh ID. Grade and SchoolID describe the
// student after the transition; for a dropped student they are the last
// known values.
func NewEvent(eventType string, studentID int64, year, grade int, schoolID string) *Event {
	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		StudentID: studentID,
		Year:      year,
		Grade:     grade,
		SchoolID:  schoolID,
		CreatedAt: time.Now(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts an ordinary function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Counter is an EventHandler that tallies events by type.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// HandleEvent implements EventHandler.
func (c *Counter) HandleEvent(_ context.Context, event *Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[event.Type]++
	return nil
}

// Count returns how many events of eventType were handled.
func (c *Counter) Count(eventType string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[eventType]
}

// Counts returns a snapshot of all tallies.
func (c *Counter) Counts() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
