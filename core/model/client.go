package model

import (
	"fmt"
	"time"
)

// TravelPlan is a date range during which the client is away. When RemoteOnly
// is set, only remote-capable activities may be placed on those days.
type TravelPlan struct {
	ID          string
	Destination string
	Start       time.Time // inclusive
	End         time.Time // inclusive
	RemoteOnly  bool
}

// Contains reports whether the date falls inside the travel range.
func (t TravelPlan) Contains(date time.Time) bool {
	d := Midnight(date)
	return !d.Before(Midnight(t.Start)) && !d.After(Midnight(t.End))
}

// Validate checks the travel plan dates.
func (t TravelPlan) Validate() error {
	if t.Start.IsZero() || t.End.IsZero() {
		return fmt.Errorf("travel plan %s: start and end are required", t.ID)
	}
	if t.End.Before(t.Start) {
		return fmt.Errorf("travel plan %s: end precedes start", t.ID)
	}
	return nil
}

// ClientSchedule captures the client's personal constraints: the waking span,
// recurring work windows per weekday and ad-hoc blackout windows on specific
// dates.
type ClientSchedule struct {
	Wake      MinuteOfDay
	Sleep     MinuteOfDay
	Work      map[time.Weekday][]TimeWindow
	Blackouts map[string][]TimeWindow // keyed by DateKey
}

// Validate checks the schedule constraints.
func (c ClientSchedule) Validate() error {
	if c.Wake >= c.Sleep {
		return fmt.Errorf("client schedule: wake %s must precede sleep %s", c.Wake, c.Sleep)
	}
	for day, windows := range c.Work {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("client schedule: invalid weekday %d", day)
		}
		for _, w := range windows {
			if err := w.Validate(); err != nil {
				return fmt.Errorf("client schedule: %w", err)
			}
		}
	}
	for key, windows := range c.Blackouts {
		if _, err := time.Parse(dateLayout, key); err != nil {
			return fmt.Errorf("client schedule: invalid blackout date %q", key)
		}
		for _, w := range windows {
			if err := w.Validate(); err != nil {
				return fmt.Errorf("client schedule: %w", err)
			}
		}
	}
	return nil
}

const dateLayout = "2006-01-02"

// DateKey formats a date as YYYY-MM-DD for map keys and wire output.
func DateKey(t time.Time) string { return t.Format(dateLayout) }

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// Midnight truncates a time to the start of its day in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds an inclusive range from start and end dates.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Midnight(start), End: Midnight(end)}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// RangeForWeeks builds a range of the given number of whole weeks.
func RangeForWeeks(start time.Time, weeks int) (DateRange, error) {
	if weeks <= 0 {
		return DateRange{}, &InvalidDateRangeError{Reason: fmt.Sprintf("week count must be positive, got %d", weeks)}
	}
	s := Midnight(start)
	return DateRange{Start: s, End: s.AddDate(0, 0, weeks*7-1)}, nil
}

// Validate checks the range ordering.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return &InvalidDateRangeError{Reason: "start and end are required"}
	}
	if r.End.Before(r.Start) {
		return &InvalidDateRangeError{Reason: fmt.Sprintf("end %s precedes start %s", DateKey(r.End), DateKey(r.Start))}
	}
	return nil
}

// Days returns every date in the range in chronological order.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
