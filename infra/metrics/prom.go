package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/sajals2410/elyx-assignment/core/metrics"
)

// PromSink records allocation events in Prometheus metrics.
type PromSink struct {
	placements *prometheus.CounterVec
	conflicts  *prometheus.CounterVec
	runTime    prometheus.Histogram
}

// NewPromSink registers allocation metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	placements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_placements_total",
		Help: "Total number of scheduled activity placements",
	}, []string{"activity_type", "priority", "is_backup"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_conflicts_total",
		Help: "Total number of scheduling conflicts",
	}, []string{"reason"})
	runTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_run_duration_seconds",
		Help:    "Wall time of a full scheduling run",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(placements); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			placements = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(conflicts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			conflicts = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(runTime); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runTime = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{placements: placements, conflicts: conflicts, runTime: runTime}, nil
}

// RecordPlacement increments the placement counter.
func (s *PromSink) RecordPlacement(rec coremetrics.PlacementRecord) error {
	s.placements.WithLabelValues(rec.Type.String(), rec.Priority.String(), strconv.FormatBool(rec.IsBackup)).Inc()
	return nil
}

// RecordConflict increments the conflict counter.
func (s *PromSink) RecordConflict(rec coremetrics.ConflictRecord) error {
	s.conflicts.WithLabelValues(rec.Reason).Inc()
	return nil
}

// RecordRun observes the run duration histogram.
func (s *PromSink) RecordRun(sum coremetrics.RunSummary) error {
	s.runTime.Observe(sum.Elapsed.Seconds())
	return nil
}
