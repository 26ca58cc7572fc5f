package logger

import (
	"context"
	"log/slog"
	"sync"
)

// Entry is one captured log record, flattened to its message, level and
// top-level attributes.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Recorder is a memory-backed slog.Handler. Tests use it to assert on what a
// run logged.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	attrs   []slog.Attr
	root    *Recorder
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Enabled reports true for every level.
func (r *Recorder) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle stores the record.
func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	entry := Entry{
		Level:   rec.Level,
		Message: rec.Message,
		Attrs:   make(map[string]any, rec.NumAttrs()+len(r.attrs)),
	}
	for _, attr := range r.attrs {
		entry.Attrs[attr.Key] = attr.Value.Resolve().Any()
	}
	rec.Attrs(func(attr slog.Attr) bool {
		entry.Attrs[attr.Key] = attr.Value.Resolve().Any()
		return true
	})

	target := r.target()
	target.mu.Lock()
	defer target.mu.Unlock()
	target.entries = append(target.entries, entry)
	return nil
}

// WithAttrs returns a handler that records into the same Recorder with attrs
// attached to every entry.
func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(r.attrs)+len(attrs))
	merged = append(merged, r.attrs...)
	merged = append(merged, attrs...)
	return &Recorder{attrs: merged, root: r.target()}
}

// WithGroup ignores groups; attributes stay flat.
func (r *Recorder) WithGroup(string) slog.Handler {
	return r
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	target := r.target()
	target.mu.Lock()
	defer target.mu.Unlock()

	result := make([]Entry, len(target.entries))
	copy(result, target.entries)
	return result
}

// Find returns the first entry with the given message.
func (r *Recorder) Find(message string) (Entry, bool) {
	for _, entry := range r.Entries() {
		if entry.Message == message {
			return entry, true
		}
	}
	return Entry{}, false
}

func (r *Recorder) target() *Recorder {
	if r.root != nil {
		return r.root
	}
	return r
}
