// Package testutil provides shared test helpers, chiefly an slog handler
// that captures records in memory so tests can assert on log output.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// LogRecord is a captured slog record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogBuffer is an slog.Handler that records everything it handles.
type LogBuffer struct {
	mu      sync.Mutex
	attrs   []slog.Attr
	records []LogRecord
}

// NewLogBuffer creates an empty log buffer.
func NewLogBuffer() *LogBuffer {
	return &LogBuffer{}
}

// CaptureLogger returns a logger whose output is captured in the returned
// buffer.
func CaptureLogger() (*slog.Logger, *LogBuffer) {
	buf := NewLogBuffer()
	return slog.New(buf), buf
}

// Enabled implements slog.Handler. Tests capture every level.
func (b *LogBuffer) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler.
func (b *LogBuffer) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, r.NumAttrs()+len(b.attrs))
	for _, a := range b.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = append(b.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// WithAttrs implements slog.Handler. Derived handlers share the record
// buffer so tests see output from component loggers built with With.
func (b *LogBuffer) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &derivedHandler{parent: b, attrs: append(append([]slog.Attr{}, b.attrs...), attrs...)}
}

// WithGroup implements slog.Handler. Groups are flattened for assertions.
func (b *LogBuffer) WithGroup(string) slog.Handler {
	return b
}

// Records returns a copy of the captured records.
func (b *LogBuffer) Records() []LogRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]LogRecord, len(b.records))
	copy(out, b.records)
	return out
}

// Find returns the first record whose message contains the given substring.
func (b *LogBuffer) Find(message string) (LogRecord, bool) {
	for _, r := range b.Records() {
		if strings.Contains(r.Message, message) {
			return r, true
		}
	}
	return LogRecord{}, false
}

// Contains reports whether any record's message contains the substring.
func (b *LogBuffer) Contains(message string) bool {
	_, ok := b.Find(message)
	return ok
}

// ErrorCount returns the number of error-level records.
func (b *LogBuffer) ErrorCount() int {
	n := 0
	for _, r := range b.Records() {
		if r.Level >= slog.LevelError {
			n++
		}
	}
	return n
}

type derivedHandler struct {
	parent *LogBuffer
	attrs  []slog.Attr
}

func (d *derivedHandler) Enabled(context.Context, slog.Level) bool { return true }

func (d *derivedHandler) Handle(ctx context.Context, r slog.Record) error {
	clone := r.Clone()
	// Prepend the pre-bound attrs so they survive into the record.
	merged := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	merged.AddAttrs(d.attrs...)
	clone.Attrs(func(a slog.Attr) bool {
		merged.AddAttrs(a)
		return true
	})
	return d.parent.Handle(ctx, merged)
}

func (d *derivedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &derivedHandler{parent: d.parent, attrs: append(append([]slog.Attr{}, d.attrs...), attrs...)}
}

func (d *derivedHandler) WithGroup(string) slog.Handler { return d }
