package metrics

import (
	"time"

	"github.com/sajals2410/elyx-assignment/core/model"
)

// PlacementRecord represents one committed placement to be recorded.
type PlacementRecord struct {
	Date       time.Time
	ActivityID string
	Type       model.ActivityType
	Priority   model.Priority
	Start      model.MinuteOfDay
	End        model.MinuteOfDay
	IsBackup   bool
}

// ConflictRecord represents one scheduling conflict.
type ConflictRecord struct {
	Date       time.Time
	ActivityID string
	Reason     string
}

// RunSummary captures counters for a whole scheduling run.
type RunSummary struct {
	Start     time.Time
	End       time.Time
	Placed    int
	Backups   int
	Conflicts int
	Elapsed   time.Duration
}

// MetricsSink records allocation outcomes for observability purposes.
type MetricsSink interface {
	RecordPlacement(rec PlacementRecord) error
	RecordConflict(rec ConflictRecord) error
}

// RunRecorder records whole-run summaries. Sinks may optionally implement it.
type RunRecorder interface {
	RecordRun(sum RunSummary) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlacement(PlacementRecord) error { return nil }
func (NopSink) RecordConflict(ConflictRecord) error   { return nil }
func (NopSink) RecordRun(RunSummary) error            { return nil }
