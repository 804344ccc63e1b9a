package metrics

import coremetrics "github.com/sajals2410/elyx-assignment/core/metrics"

// MultiSink fans allocation records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlacement forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordPlacement(rec coremetrics.PlacementRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlacement(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordConflict forwards the record to all sinks.
func (m *MultiSink) RecordConflict(rec coremetrics.ConflictRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordConflict(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun forwards the summary to sinks implementing RunRecorder.
func (m *MultiSink) RecordRun(sum coremetrics.RunSummary) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.RunRecorder); ok {
			if err := rec.RecordRun(sum); err != nil {
				return err
			}
		}
	}
	return nil
}
