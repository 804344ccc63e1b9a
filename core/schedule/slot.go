package schedule

import (
	"sort"
	"time"

	"github.com/sajals2410/elyx-assignment/core/model"
)

// DefaultStep is the scan granularity in minutes when searching for a slot.
const DefaultStep = 30

// SlotFinder searches a day for the earliest legal interval of a given
// duration. The candidate region is the waking span minus client work
// windows, client blackouts, already-booked intervals and any time a
// required resource is unavailable.
type SlotFinder struct {
	Availability *AvailabilityIndex
	Client       model.ClientSchedule
	Step         int // scan granularity in minutes, DefaultStep when zero
}

// SlotRequest describes one placement attempt.
type SlotRequest struct {
	Date      time.Time
	Duration  int // minutes
	Preferred []model.TimeWindow
	Booked    []model.TimeWindow
	Resources []string
}

// Find returns the earliest free interval satisfying all constraints, trying
// each preferred window in declared order before falling back to the whole
// waking span. The boolean is false when no slot of the required duration
// exists anywhere on that date.
func (f *SlotFinder) Find(req SlotRequest) (model.TimeWindow, bool) {
	day := model.TimeWindow{Start: f.Client.Wake, End: f.Client.Sleep}
	for _, pref := range req.Preferred {
		w := clamp(pref, day)
		if slot, ok := f.findInRange(req, w); ok {
			return slot, true
		}
	}
	return f.findInRange(req, day)
}

// clamp intersects a preferred window with the waking span.
func clamp(w, bounds model.TimeWindow) model.TimeWindow {
	if w.Start < bounds.Start {
		w.Start = bounds.Start
	}
	if w.End > bounds.End {
		w.End = bounds.End
	}
	return w
}

func (f *SlotFinder) findInRange(req SlotRequest, rng model.TimeWindow) (model.TimeWindow, bool) {
	step := f.Step
	if step <= 0 {
		step = DefaultStep
	}
	if rng.Start >= rng.End {
		return model.TimeWindow{}, false
	}

	booked := append([]model.TimeWindow(nil), req.Booked...)
	sort.Slice(booked, func(i, j int) bool { return booked[i].Start < booked[j].Start })

	dur := model.MinuteOfDay(req.Duration)
	for cur := rng.Start; cur+dur <= rng.End; {
		slot := model.TimeWindow{Start: cur, End: cur + dur}

		if next, collides := firstCollision(slot, booked); collides {
			cur = next
			continue
		}
		if f.blocked(req.Date, slot) {
			cur += model.MinuteOfDay(step)
			continue
		}
		if !f.Availability.AllAvailable(req.Resources, req.Date, slot.Start, req.Duration) {
			cur += model.MinuteOfDay(step)
			continue
		}
		return slot, true
	}
	return model.TimeWindow{}, false
}

// firstCollision returns the end of the first booked interval overlapping the
// slot, so the scan can jump past it.
func firstCollision(slot model.TimeWindow, booked []model.TimeWindow) (model.MinuteOfDay, bool) {
	for _, b := range booked {
		if slot.Overlaps(b) {
			return b.End, true
		}
	}
	return 0, false
}

// blocked reports whether the slot hits a client work window or a blackout.
// Work windows block every activity: remote capability forgives the travel
// restriction, not the client's working hours.
func (f *SlotFinder) blocked(date time.Time, slot model.TimeWindow) bool {
	for _, w := range f.Client.Work[date.Weekday()] {
		if slot.Overlaps(w) {
			return true
		}
	}
	for _, w := range f.Client.Blackouts[model.DateKey(date)] {
		if slot.Overlaps(w) {
			return true
		}
	}
	return false
}
