package schedule

import (
	"time"

	"github.com/sajals2410/elyx-assignment/core/model"
)

// FrequencyState tracks how often an activity has been placed in the current
// recurrence period. It is pure data: the resolver never mutates it, and the
// allocator commits an updated value only after a successful placement.
type FrequencyState struct {
	Count  int       // occurrences placed in the current period
	Last   time.Time // date of the most recent placement
	Anchor time.Time // start of the current period (week or month)
}

// weekStart returns the Monday of the date's ISO week.
func weekStart(date time.Time) time.Time {
	d := model.Midnight(date)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// monthStart returns the first day of the date's month.
func monthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// periodStart returns the anchor for the rule's period containing date.
func periodStart(r model.Recurrence, date time.Time) time.Time {
	switch r.Kind {
	case model.RecurMonthly:
		return monthStart(date)
	case model.RecurOnce:
		return model.Midnight(r.Date)
	default:
		return weekStart(date)
	}
}

// Roll advances the state's anchor into the period containing date, resetting
// the count when a new period begins. It returns the adjusted copy and leaves
// the input untouched.
func Roll(r model.Recurrence, date time.Time, st FrequencyState) FrequencyState {
	anchor := periodStart(r, date)
	if st.Anchor.Equal(anchor) {
		return st
	}
	return FrequencyState{Anchor: anchor, Last: st.Last}
}

// Advance records one placement on date, rolling the period first.
func Advance(r model.Recurrence, date time.Time, st FrequencyState) FrequencyState {
	next := Roll(r, date, st)
	next.Count++
	next.Last = model.Midnight(date)
	return next
}

// nPerWeekDays returns the preferred weekdays for n occurrences spread across
// a Monday-start week. Index 0 is Monday.
func nPerWeekDays(n int) [7]bool {
	var days [7]bool
	switch n {
	case 1:
		days[0] = true
	case 2:
		days[0], days[3] = true, true
	case 3:
		days[0], days[2], days[4] = true, true, true
	case 4:
		days[0], days[1], days[3], days[4] = true, true, true, true
	default:
		for i := 0; i < n && i < 7; i++ {
			days[i] = true
		}
	}
	return days
}

// IsDue decides whether the activity must occur on date given its recurrence
// rule and frequency state. The decision is pure: committing the updated
// state is the allocator's job, and only after a successful placement.
func IsDue(a model.Activity, date time.Time, st FrequencyState) bool {
	r := a.Recurrence
	st = Roll(r, date, st)
	d := model.Midnight(date)

	switch r.Kind {
	case model.RecurDaily:
		// Once per calendar day.
		return !st.Last.Equal(d)
	case model.RecurWeekly:
		if st.Count >= 1 {
			return false
		}
		if r.FixedDay {
			return d.Weekday() == r.Weekday
		}
		return true
	case model.RecurNPerWeek:
		if st.Count >= r.Times {
			return false
		}
		idx := (int(d.Weekday()) + 6) % 7
		if nPerWeekDays(r.Times)[idx] {
			return true
		}
		// Make-up rule: once the remaining days of the week are needed to
		// reach the target, every day becomes eligible.
		remaining := 7 - idx
		return remaining <= r.Times-st.Count
	case model.RecurMonthly:
		return st.Count == 0
	case model.RecurOnce:
		return st.Count == 0 && d.Equal(model.Midnight(r.Date))
	default:
		return false
	}
}
