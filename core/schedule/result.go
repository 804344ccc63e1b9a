package schedule

import (
	"github.com/sajals2410/elyx-assignment/core/model"
)

// Day holds every placement committed for one calendar date, in placement
// order (which is also chronological within the day for a greedy earliest
// slot search per priority tier).
type Day struct {
	Key        string                    `json:"date"`
	Placements []model.ScheduledActivity `json:"activities"`
}

// Result is the completed schedule: the date-ordered assignment plus the
// conflict log. Records are never mutated after the run.
type Result struct {
	Range     model.DateRange
	Days      []Day
	Conflicts []model.Conflict
}

// ByDate returns the date-keyed mapping consumed by renderers and the API.
func (r *Result) ByDate() map[string][]model.ScheduledActivity {
	m := make(map[string][]model.ScheduledActivity, len(r.Days))
	for _, d := range r.Days {
		m[d.Key] = d.Placements
	}
	return m
}

// All returns every placement in date order.
func (r *Result) All() []model.ScheduledActivity {
	var out []model.ScheduledActivity
	for _, d := range r.Days {
		out = append(out, d.Placements...)
	}
	return out
}

// Stats summarises a completed run.
type Stats struct {
	TotalScheduled int            `json:"total_scheduled"`
	ByType         map[string]int `json:"by_type"`
	ByPriority     map[string]int `json:"by_priority"`
	BackupsUsed    int            `json:"backups_used"`
	Conflicts      int            `json:"conflicts"`
	StartDate      string         `json:"start_date"`
	EndDate        string         `json:"end_date"`
}

// Stats computes summary counters over the result.
func (r *Result) Stats() Stats {
	st := Stats{
		ByType:     make(map[string]int),
		ByPriority: make(map[string]int),
		Conflicts:  len(r.Conflicts),
		StartDate:  model.DateKey(r.Range.Start),
		EndDate:    model.DateKey(r.Range.End),
	}
	for _, d := range r.Days {
		for _, p := range d.Placements {
			st.TotalScheduled++
			st.ByType[p.Type.String()]++
			st.ByPriority[p.Priority.String()]++
			if p.IsBackup {
				st.BackupsUsed++
			}
		}
	}
	return st
}
