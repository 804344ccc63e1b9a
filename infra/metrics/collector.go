package metrics

import (
	"context"

	"github.com/sajals2410/elyx-assignment/core/events"
	coremetrics "github.com/sajals2410/elyx-assignment/core/metrics"
	"github.com/sajals2410/elyx-assignment/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// allocation events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.PlacementEvent:
					_ = sink.RecordPlacement(coremetrics.PlacementRecord{
						Date:       e.Date,
						ActivityID: e.ActivityID,
						Type:       e.Type,
						Priority:   e.Priority,
						Start:      e.Start,
						End:        e.End,
						IsBackup:   e.IsBackup,
					})
				case events.ConflictEvent:
					_ = sink.RecordConflict(coremetrics.ConflictRecord{
						Date:       e.Date,
						ActivityID: e.ActivityID,
						Reason:     e.Reason,
					})
				}
			}
		}
	}()
}
