// Package api exposes a completed schedule over HTTP. It serves the engine's
// output mapping as-is; no endpoint mutates engine state.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/sajals2410/elyx-assignment/core/schedule"
)

// NewScheduleHandler returns an HTTP handler serving the date-keyed schedule
// via GET /api/schedule. An optional ?date=YYYY-MM-DD query narrows the
// response to a single day.
func NewScheduleHandler(res *schedule.Result) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		byDate := res.ByDate()
		w.Header().Set("Content-Type", "application/json")
		if date := r.URL.Query().Get("date"); date != "" {
			day, ok := byDate[date]
			if !ok {
				http.Error(w, "date outside schedule range", http.StatusNotFound)
				return
			}
			writeJSON(w, map[string]any{"date": date, "activities": day})
			return
		}
		writeJSON(w, byDate)
	})
}

// NewStatisticsHandler returns an HTTP handler serving run statistics via
// GET /api/statistics.
func NewStatisticsHandler(res *schedule.Result) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, res.Stats())
	})
}

// NewConflictsHandler returns an HTTP handler serving the conflict log via
// GET /api/conflicts.
func NewConflictsHandler(res *schedule.Result) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, res.Conflicts)
	})
}

// NewHealthHandler returns a liveness endpoint.
func NewHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, map[string]string{"status": "ok"})
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
