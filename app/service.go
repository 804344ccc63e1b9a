// Package app wires the configuration, the input loader, the allocation
// engine and its observers into a runnable service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sajals2410/elyx-assignment/api"
	"github.com/sajals2410/elyx-assignment/config"
	coremetrics "github.com/sajals2410/elyx-assignment/core/metrics"
	"github.com/sajals2410/elyx-assignment/core/schedule"
	"github.com/sajals2410/elyx-assignment/infra/logger"
	"github.com/sajals2410/elyx-assignment/infra/metrics"
	"github.com/sajals2410/elyx-assignment/infra/store"
	"github.com/sajals2410/elyx-assignment/input"
	"github.com/sajals2410/elyx-assignment/internal/eventbus"
	"github.com/sajals2410/elyx-assignment/render"
)

// Service orchestrates one scheduling run and its consumers.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	bus   eventbus.EventBus
	sink  coremetrics.MetricsSink
	plans store.PlanStore
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.MetricsSink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	var plans store.PlanStore
	var err error
	switch cfg.Store.Backend {
	case "jsonl":
		plans, err = store.NewJSONLStore(cfg.Store.Path)
	case "sqlite":
		plans, err = store.NewSQLiteStore(cfg.Store.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("plan store: %w", err)
	}

	return &Service{
		cfg:   cfg,
		log:   logg,
		bus:   eventbus.New(),
		sink:  sink,
		plans: plans,
	}, nil
}

// Plan loads the inputs, runs the engine over the configured range and
// persists the result. Fatal load errors abort before any day is processed.
func (s *Service) Plan(ctx context.Context) (*schedule.Result, error) {
	rng, err := s.cfg.Range.Resolve()
	if err != nil {
		return nil, err
	}
	in, err := input.Load(s.cfg.Inputs.Dir)
	if err != nil {
		return nil, fmt.Errorf("load inputs: %w", err)
	}

	alloc, err := schedule.NewAllocator(
		in.Activities, in.Resources, in.Travel, in.Client,
		logger.New("allocator"),
		schedule.WithEventBus(s.bus),
		schedule.WithStep(s.cfg.Engine.StepMinutes),
	)
	if err != nil {
		return nil, err
	}

	metrics.StartEventCollector(ctx, s.bus, s.sink)

	started := time.Now()
	res, err := alloc.Run(rng)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(started)

	stats := res.Stats()
	if rec, ok := s.sink.(coremetrics.RunRecorder); ok {
		_ = rec.RecordRun(coremetrics.RunSummary{
			Start:     rng.Start,
			End:       rng.End,
			Placed:    stats.TotalScheduled,
			Backups:   stats.BackupsUsed,
			Conflicts: stats.Conflicts,
			Elapsed:   elapsed,
		})
	}

	if s.plans != nil {
		rec := store.PlanRecord{
			RunID:     uuid.NewString(),
			CreatedAt: time.Now().UTC(),
			Stats:     stats,
			Days:      res.Days,
			Conflicts: res.Conflicts,
		}
		if err := s.plans.Append(ctx, rec); err != nil {
			s.log.Errorf("persist run: %v", err)
		}
	}

	return res, nil
}

// WriteOutputs renders the schedule into the configured output directory:
// schedule.txt, schedule.ics and schedule_summary.json.
func (s *Service) WriteOutputs(res *schedule.Result) error {
	dir := s.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	outputs := []struct {
		name  string
		write func(f *os.File) error
	}{
		{"schedule.txt", func(f *os.File) error { return render.WriteText(f, res) }},
		{"schedule.ics", func(f *os.File) error { return render.WriteICal(f, res) }},
		{"schedule_summary.json", func(f *os.File) error { return render.WriteJSON(f, res) }},
	}
	for _, out := range outputs {
		f, err := os.Create(filepath.Join(dir, out.name))
		if err != nil {
			return err
		}
		if err := out.write(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		s.log.Infof("wrote %s", filepath.Join(dir, out.name))
	}
	return nil
}

// Serve plans once and exposes the result over HTTP until the context is
// canceled.
func (s *Service) Serve(ctx context.Context) error {
	res, err := s.Plan(ctx)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/api/health", api.NewHealthHandler())
	mux.Handle("/api/schedule", api.NewScheduleHandler(res))
	mux.Handle("/api/statistics", api.NewStatisticsHandler(res))
	mux.Handle("/api/conflicts", api.NewConflictsHandler(res))
	if s.cfg.Metrics.PrometheusEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}

	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Infof("serving schedule on %s", s.cfg.API.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.plans != nil {
		return s.plans.Close()
	}
	return nil
}
