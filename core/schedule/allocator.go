package schedule

import (
	"sort"
	"time"

	"github.com/sajals2410/elyx-assignment/core/events"
	"github.com/sajals2410/elyx-assignment/core/logger"
	"github.com/sajals2410/elyx-assignment/core/model"
	"github.com/sajals2410/elyx-assignment/internal/eventbus"
)

// ConflictNoSlot is the reason recorded when neither the primary activity nor
// any of its backups could be placed on a date.
const ConflictNoSlot = "no-slot"

// Allocator drives a full scheduling run. It processes dates in chronological
// order because frequency state carries memory across days, and within each
// day iterates activities by ascending priority rank, declaration order
// breaking ties.
type Allocator struct {
	activities []model.Activity // priority order, stable
	byID       map[string]model.Activity
	travel     []model.TravelPlan
	client     model.ClientSchedule
	slots      *SlotFinder
	log        logger.Logger
	bus        eventbus.EventBus
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithEventBus attaches a bus on which placement and conflict events are
// published during the run.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(a *Allocator) { a.bus = bus }
}

// WithStep overrides the slot scan granularity in minutes.
func WithStep(step int) Option {
	return func(a *Allocator) { a.slots.Step = step }
}

// NewAllocator validates the inputs and builds an allocator. Activity
// definitions, resource references and backup references are checked here;
// a dangling reference is fatal before any day is processed.
func NewAllocator(
	activities []model.Activity,
	resources []model.Resource,
	travel []model.TravelPlan,
	client model.ClientSchedule,
	log logger.Logger,
	opts ...Option,
) (*Allocator, error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	if err := client.Validate(); err != nil {
		return nil, err
	}
	for _, t := range travel {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	for _, r := range resources {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}

	idx := NewAvailabilityIndex(resources)
	byID := make(map[string]model.Activity, len(activities))
	for _, a := range activities {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		byID[a.ID] = a
	}
	for _, a := range activities {
		for _, id := range a.Resources {
			if !idx.Has(id) {
				return nil, &model.MissingResourceError{ActivityID: a.ID, RefID: id, Kind: "resource"}
			}
		}
		for _, id := range a.Backups {
			if _, ok := byID[id]; !ok {
				return nil, &model.MissingResourceError{ActivityID: a.ID, RefID: id, Kind: "backup"}
			}
		}
	}

	ordered := append([]model.Activity(nil), activities...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority.Rank() < ordered[j].Priority.Rank()
	})

	a := &Allocator{
		activities: ordered,
		byID:       byID,
		travel:     travel,
		client:     client,
		slots:      &SlotFinder{Availability: idx, Client: client},
		log:        log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Run schedules every date in the range and returns the completed result.
// The run is an explicit fold: each day receives the frequency states left by
// the previous day and yields the states for the next one.
func (a *Allocator) Run(rng model.DateRange) (*Result, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	res := &Result{Range: rng}
	states := make(map[string]FrequencyState, len(a.activities))

	a.log.Infof("scheduling %d activities from %s to %s",
		len(a.activities), model.DateKey(rng.Start), model.DateKey(rng.End))

	for _, date := range rng.Days() {
		day, conflicts, next := a.scheduleDay(date, states)
		states = next
		res.Days = append(res.Days, day)
		res.Conflicts = append(res.Conflicts, conflicts...)
		if a.bus != nil {
			a.bus.Publish(events.DayEvent{Date: date, Placed: len(day.Placements), Conflicts: len(conflicts)})
		}
	}

	a.log.Infof("run complete: %d placed, %d conflicts", len(res.All()), len(res.Conflicts))
	return res, nil
}

// travelRestriction returns whether date is a remote-only travel day.
func (a *Allocator) travelRestriction(date time.Time) (model.TravelPlan, bool) {
	for _, t := range a.travel {
		if t.RemoteOnly && t.Contains(date) {
			return t, true
		}
	}
	return model.TravelPlan{}, false
}

// scheduleDay runs the per-date state machine: travel check, priority
// iteration, commit. It returns the committed day, the day's conflicts and
// the frequency states for the next day.
func (a *Allocator) scheduleDay(date time.Time, states map[string]FrequencyState) (Day, []model.Conflict, map[string]FrequencyState) {
	next := make(map[string]FrequencyState, len(states))
	for id, st := range states {
		next[id] = st
	}

	day := Day{Key: model.DateKey(date)}
	var conflicts []model.Conflict
	var booked []model.TimeWindow

	travel, restricted := a.travelRestriction(date)
	if restricted {
		a.log.Debugf("%s: travel day (%s), remote-only", day.Key, travel.Destination)
	}

	for _, act := range a.activities {
		if restricted && !act.Remote {
			// The primary is ineligible today, but a remote-capable backup
			// may still stand in for it.
			if !IsDue(act, date, next[act.ID]) {
				continue
			}
			placed, ok := a.tryBackups(act, date, booked, restricted)
			if ok {
				booked = append(booked, placed.Window())
				day.Placements = append(day.Placements, placed)
				next[act.ID] = Advance(act.Recurrence, date, next[act.ID])
				a.emitPlacement(date, placed)
				continue
			}
			conflicts = append(conflicts, a.conflict(date, act.ID))
			continue
		}

		if !IsDue(act, date, next[act.ID]) {
			continue
		}

		slot, ok := a.slots.Find(SlotRequest{
			Date:      date,
			Duration:  act.Duration,
			Preferred: act.Preferred,
			Booked:    booked,
			Resources: act.Resources,
		})
		if ok {
			placed := a.placement(act, date, slot, false, "")
			booked = append(booked, slot)
			day.Placements = append(day.Placements, placed)
			next[act.ID] = Advance(act.Recurrence, date, next[act.ID])
			a.emitPlacement(date, placed)
			continue
		}

		placed, ok := a.tryBackups(act, date, booked, restricted)
		if ok {
			booked = append(booked, placed.Window())
			day.Placements = append(day.Placements, placed)
			next[act.ID] = Advance(act.Recurrence, date, next[act.ID])
			a.emitPlacement(date, placed)
			continue
		}

		conflicts = append(conflicts, a.conflict(date, act.ID))
	}

	return day, conflicts, next
}

// tryBackups iterates the activity's declared backups in order and places the
// first one that fits. Backups are resolved one level deep only: a backup's
// own backup list is ignored.
func (a *Allocator) tryBackups(act model.Activity, date time.Time, booked []model.TimeWindow, remoteOnly bool) (model.ScheduledActivity, bool) {
	for _, id := range act.Backups {
		backup := a.byID[id]
		if remoteOnly && !backup.Remote {
			continue
		}
		slot, ok := a.slots.Find(SlotRequest{
			Date:      date,
			Duration:  backup.Duration,
			Preferred: backup.Preferred,
			Booked:    booked,
			Resources: backup.Resources,
		})
		if !ok {
			continue
		}
		a.log.Debugf("%s: backup %s stands in for %s at %s", model.DateKey(date), backup.ID, act.ID, slot.Start)
		return a.placement(backup, date, slot, true, act.ID), true
	}
	return model.ScheduledActivity{}, false
}

func (a *Allocator) placement(act model.Activity, date time.Time, slot model.TimeWindow, isBackup bool, originalID string) model.ScheduledActivity {
	return model.ScheduledActivity{
		ActivityID: act.ID,
		Name:       act.Name,
		Type:       act.Type,
		Priority:   act.Priority,
		Date:       date,
		DateKey:    model.DateKey(date),
		Start:      slot.Start,
		End:        slot.End,
		IsBackup:   isBackup,
		OriginalID: originalID,
		Remote:     act.Remote,
		Location:   act.Location,
	}
}

func (a *Allocator) conflict(date time.Time, activityID string) model.Conflict {
	a.log.Warnf("%s: no slot for %s", model.DateKey(date), activityID)
	if a.bus != nil {
		a.bus.Publish(events.ConflictEvent{Date: date, ActivityID: activityID, Reason: ConflictNoSlot})
	}
	return model.Conflict{
		Date:       date,
		DateKey:    model.DateKey(date),
		ActivityID: activityID,
		Reason:     ConflictNoSlot,
	}
}

func (a *Allocator) emitPlacement(date time.Time, p model.ScheduledActivity) {
	a.log.Debugf("%s: placed %s at %s-%s", p.DateKey, p.ActivityID, p.Start, p.End)
	if a.bus != nil {
		a.bus.Publish(events.PlacementEvent{
			Date:       date,
			ActivityID: p.ActivityID,
			Type:       p.Type,
			Priority:   p.Priority,
			Start:      p.Start,
			End:        p.End,
			IsBackup:   p.IsBackup,
			OriginalID: p.OriginalID,
		})
	}
}
