package metrics

import coremetrics "github.com/akif5298/flowstate/core/metrics"

// MultiSink fans generation results out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordGeneration forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordGeneration(res coremetrics.GenerationResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordGeneration(res); err != nil {
			return err
		}
	}
	return nil
}
