package metrics

import (
	"context"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/sajals2410/elyx-assignment/core/metrics"
	"github.com/sajals2410/elyx-assignment/core/model"
	"github.com/sajals2410/elyx-assignment/infra/logger"
)

// InfluxSink writes allocation events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlacement writes the placement as a line-protocol point.
func (s *InfluxSink) RecordPlacement(rec coremetrics.PlacementRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("placement").
		AddTag("activity_id", rec.ActivityID).
		AddTag("activity_type", rec.Type.String()).
		AddTag("priority", rec.Priority.String()).
		AddField("start_minute", int(rec.Start)).
		AddField("duration_minutes", int(rec.End-rec.Start)).
		AddField("is_backup", rec.IsBackup).
		SetTime(rec.Date)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordConflict writes the conflict as a line-protocol point.
func (s *InfluxSink) RecordConflict(rec coremetrics.ConflictRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("conflict").
		AddTag("activity_id", rec.ActivityID).
		AddTag("reason", rec.Reason).
		AddField("count", 1).
		SetTime(rec.Date)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRun writes the run summary.
func (s *InfluxSink) RecordRun(sum coremetrics.RunSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_run").
		AddTag("start_date", model.DateKey(sum.Start)).
		AddTag("end_date", model.DateKey(sum.End)).
		AddField("placed", sum.Placed).
		AddField("backups", sum.Backups).
		AddField("conflicts", sum.Conflicts).
		AddField("elapsed_seconds", sum.Elapsed.Seconds()).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
