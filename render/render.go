// Package render turns a completed schedule into its output formats: a
// plain-text calendar, an iCalendar file and a JSON summary. It consumes the
// engine result only and never feeds anything back into it.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sajals2410/elyx-assignment/core/model"
	"github.com/sajals2410/elyx-assignment/core/schedule"
)

// WriteText writes a day-by-day text calendar to w. Days without placements
// are skipped.
func WriteText(w io.Writer, res *schedule.Result) error {
	bw := &errWriter{w: w}
	bw.printf("SCHEDULE %s to %s\n", model.DateKey(res.Range.Start), model.DateKey(res.Range.End))
	bw.printf("%s\n", strings.Repeat("=", 40))
	for _, day := range res.Days {
		if len(day.Placements) == 0 {
			continue
		}
		date, _ := model.ParseDate(day.Key)
		bw.printf("\n%s (%s)\n", day.Key, date.Weekday())
		for _, p := range day.Placements {
			marker := " "
			if p.IsBackup {
				marker = "*"
			}
			bw.printf("  %s-%s %s %s [%s/%s]\n", p.Start, p.End, marker, p.Name, p.Type, p.Priority)
		}
	}
	if len(res.Conflicts) > 0 {
		bw.printf("\nCONFLICTS\n")
		for _, c := range res.Conflicts {
			bw.printf("  %s %s: %s\n", c.DateKey, c.ActivityID, c.Reason)
		}
	}
	return bw.err
}

// Summary is the JSON document produced by WriteJSON.
type Summary struct {
	Stats     schedule.Stats                       `json:"statistics"`
	Schedule  map[string][]model.ScheduledActivity `json:"schedule"`
	Conflicts []model.Conflict                     `json:"conflicts"`
}

// WriteJSON writes the schedule summary to w in JSON format.
func WriteJSON(w io.Writer, res *schedule.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Summary{
		Stats:     res.Stats(),
		Schedule:  res.ByDate(),
		Conflicts: res.Conflicts,
	})
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
