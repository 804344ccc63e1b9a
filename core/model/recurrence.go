package model

import (
	"fmt"
	"time"
)

// RecurrenceKind enumerates supported recurrence patterns.
type RecurrenceKind int

const (
	RecurDaily RecurrenceKind = iota
	RecurWeekly
	RecurNPerWeek
	RecurMonthly
	RecurOnce
)

// String returns a human-readable representation of the recurrence kind.
func (k RecurrenceKind) String() string {
	switch k {
	case RecurDaily:
		return "daily"
	case RecurWeekly:
		return "weekly"
	case RecurNPerWeek:
		return "n_per_week"
	case RecurMonthly:
		return "monthly"
	case RecurOnce:
		return "once"
	default:
		return "unknown"
	}
}

// ParseRecurrenceKind converts a string into a RecurrenceKind.
func ParseRecurrenceKind(s string) (RecurrenceKind, error) {
	switch s {
	case "daily":
		return RecurDaily, nil
	case "weekly":
		return RecurWeekly, nil
	case "n_per_week":
		return RecurNPerWeek, nil
	case "monthly":
		return RecurMonthly, nil
	case "once":
		return RecurOnce, nil
	default:
		return 0, fmt.Errorf("unknown recurrence kind %q", s)
	}
}

// Recurrence describes how often an activity must occur.
//
// Weekly rules may pin a fixed weekday (FixedDay=true) or accept any day once
// per week. NPerWeek rules spread Times occurrences across the week with no
// fixed day. Once rules fire on Date only.
type Recurrence struct {
	Kind     RecurrenceKind
	Weekday  time.Weekday // only meaningful when FixedDay is set
	FixedDay bool
	Times    int       // occurrences per week for NPerWeek
	Date     time.Time // single occurrence date for Once
}

// Validate checks that the rule is internally consistent.
func (r Recurrence) Validate() error {
	switch r.Kind {
	case RecurDaily, RecurMonthly:
		return nil
	case RecurWeekly:
		if r.FixedDay && (r.Weekday < time.Sunday || r.Weekday > time.Saturday) {
			return fmt.Errorf("weekly rule: invalid weekday %d", r.Weekday)
		}
		return nil
	case RecurNPerWeek:
		if r.Times <= 0 {
			return fmt.Errorf("n_per_week rule: times must be positive, got %d", r.Times)
		}
		if r.Times > 7 {
			return fmt.Errorf("n_per_week rule: times must be at most 7, got %d", r.Times)
		}
		return nil
	case RecurOnce:
		if r.Date.IsZero() {
			return fmt.Errorf("once rule: date is required")
		}
		return nil
	default:
		return fmt.Errorf("unknown recurrence kind %d", r.Kind)
	}
}

// TargetPerWeek returns how many occurrences the rule expects in one week.
// Monthly and once rules return 0 because their period is not a week.
func (r Recurrence) TargetPerWeek() int {
	switch r.Kind {
	case RecurDaily:
		return 7
	case RecurWeekly:
		return 1
	case RecurNPerWeek:
		return r.Times
	default:
		return 0
	}
}
