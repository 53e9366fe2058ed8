package metrics

import "time"

// GenerationResult describes one completed schedule generation for
// observability purposes.
type GenerationResult struct {
	RequestID string
	UserID    string
	Strategy  string // "generator" or "fallback"
	Items     int
	Duration  time.Duration
	Time      time.Time
}

// MetricsSink records schedule generation results.
type MetricsSink interface {
	RecordGeneration(res GenerationResult) error
}

// NopSink discards all events.
type NopSink struct{}

// RecordGeneration implements MetricsSink.
func (NopSink) RecordGeneration(GenerationResult) error { return nil }
