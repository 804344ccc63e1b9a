package store

import (
	"context"
	"time"

	"github.com/sajals2410/elyx-assignment/core/model"
	"github.com/sajals2410/elyx-assignment/core/schedule"
)

// PlanRecord captures one completed scheduling run: the full plan, the
// conflict log and summary statistics.
type PlanRecord struct {
	RunID     string           `json:"run_id"`
	CreatedAt time.Time        `json:"created_at"`
	Stats     schedule.Stats   `json:"stats"`
	Days      []schedule.Day   `json:"days"`
	Conflicts []model.Conflict `json:"conflicts"`
}

// PlanQuery defines filters for retrieving records.
type PlanQuery struct {
	RunID string
	Since time.Time
	Limit int
}

// PlanStore persists completed runs and supports querying. It is a consumer
// of the engine output only: engine state itself never survives a run.
type PlanStore interface {
	Append(ctx context.Context, rec PlanRecord) error
	Query(ctx context.Context, q PlanQuery) ([]PlanRecord, error)
	Close() error
}
