package schedule

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sajals2410/elyx-assignment/core/events"
	"github.com/sajals2410/elyx-assignment/core/logger"
	"github.com/sajals2410/elyx-assignment/core/model"
	"github.com/sajals2410/elyx-assignment/internal/eventbus"
)

func week(t *testing.T) model.DateRange {
	t.Helper()
	rng, err := model.RangeForWeeks(monday, 1)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	return rng
}

func mustAllocator(t *testing.T, acts []model.Activity, res []model.Resource, travel []model.TravelPlan, client model.ClientSchedule, opts ...Option) *Allocator {
	t.Helper()
	a, err := NewAllocator(acts, res, travel, client, logger.NopLogger{}, opts...)
	if err != nil {
		t.Fatalf("allocator: %v", err)
	}
	return a
}

func TestAllocator_DailyActivityEveryDay(t *testing.T) {
	acts := []model.Activity{{
		ID:         "med-am",
		Name:       "Morning medication",
		Type:       model.TypeMedication,
		Priority:   model.PriorityCritical,
		Recurrence: model.Recurrence{Kind: model.RecurDaily},
		Duration:   30,
		Preferred:  []model.TimeWindow{{Start: mm(7, 0), End: mm(8, 0)}},
		Remote:     true,
	}}
	a := mustAllocator(t, acts, nil, nil, testClient())
	res, err := a.Run(week(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %v", res.Conflicts)
	}
	if len(res.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(res.Days))
	}
	for _, d := range res.Days {
		if len(d.Placements) != 1 {
			t.Fatalf("%s: expected 1 placement, got %d", d.Key, len(d.Placements))
		}
		p := d.Placements[0]
		if p.Start != mm(7, 0) || p.End != mm(7, 30) {
			t.Fatalf("%s: expected 07:00-07:30, got %s-%s", d.Key, p.Start, p.End)
		}
	}
}

func TestAllocator_PriorityWinsPreferredWindow(t *testing.T) {
	window := []model.TimeWindow{{Start: mm(7, 0), End: mm(8, 0)}}
	acts := []model.Activity{
		{
			ID: "walk", Type: model.TypeFitness, Priority: model.PriorityLow,
			Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 60, Preferred: window,
		},
		{
			ID: "med", Type: model.TypeMedication, Priority: model.PriorityCritical,
			Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 60, Preferred: window,
		},
	}
	a := mustAllocator(t, acts, nil, nil, testClient())
	res, err := a.Run(week(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, d := range res.Days {
		if len(d.Placements) != 2 {
			t.Fatalf("%s: expected both placements, got %d", d.Key, len(d.Placements))
		}
		// Critical is processed first and owns the preferred window.
		if d.Placements[0].ActivityID != "med" || d.Placements[0].Start != mm(7, 0) {
			t.Fatalf("%s: critical activity must own 07:00, got %s at %s", d.Key, d.Placements[0].ActivityID, d.Placements[0].Start)
		}
		if d.Placements[1].ActivityID != "walk" || d.Placements[1].Start == mm(7, 0) {
			t.Fatalf("%s: low priority must be pushed out of 07:00", d.Key)
		}
	}
}

func TestAllocator_NoOverlapsWithinDay(t *testing.T) {
	acts := []model.Activity{
		{ID: "a", Priority: model.PriorityHigh, Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 45},
		{ID: "b", Priority: model.PriorityMedium, Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 60},
		{ID: "c", Priority: model.PriorityLow, Recurrence: model.Recurrence{Kind: model.RecurNPerWeek, Times: 3}, Duration: 90},
	}
	client := testClient()
	client.Work = map[time.Weekday][]model.TimeWindow{
		time.Monday:    {{Start: mm(9, 0), End: mm(17, 0)}},
		time.Tuesday:   {{Start: mm(9, 0), End: mm(17, 0)}},
		time.Wednesday: {{Start: mm(9, 0), End: mm(17, 0)}},
		time.Thursday:  {{Start: mm(9, 0), End: mm(17, 0)}},
		time.Friday:    {{Start: mm(9, 0), End: mm(17, 0)}},
	}
	a := mustAllocator(t, acts, nil, nil, client)
	res, err := a.Run(week(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, d := range res.Days {
		for i, p := range d.Placements {
			if p.Start < client.Wake || p.End > client.Sleep {
				t.Fatalf("%s: %s outside waking span: %s-%s", d.Key, p.ActivityID, p.Start, p.End)
			}
			for j := i + 1; j < len(d.Placements); j++ {
				if p.Window().Overlaps(d.Placements[j].Window()) {
					t.Fatalf("%s: %s overlaps %s", d.Key, p.ActivityID, d.Placements[j].ActivityID)
				}
			}
		}
	}
}

func TestAllocator_TravelDayBackupSubstitution(t *testing.T) {
	acts := []model.Activity{
		{
			ID: "gym-session", Name: "Strength training",
			Type: model.TypeFitness, Priority: model.PriorityHigh,
			Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 60,
			Remote: false, Backups: []string{"hotel-workout"},
		},
		{
			ID: "hotel-workout", Name: "Bodyweight routine",
			Type: model.TypeFitness, Priority: model.PriorityMedium,
			Recurrence: model.Recurrence{Kind: model.RecurOnce, Date: day(30)}, Duration: 30,
			Remote: true,
		},
	}
	travel := []model.TravelPlan{{
		ID: "trip", Destination: "Singapore",
		Start: day(2), End: day(4), RemoteOnly: true,
	}}
	a := mustAllocator(t, acts, nil, travel, testClient())
	res, err := a.Run(week(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %v", res.Conflicts)
	}
	byDate := res.ByDate()
	for offset := 0; offset < 7; offset++ {
		key := model.DateKey(day(offset))
		placements := byDate[key]
		if len(placements) != 1 {
			t.Fatalf("%s: expected 1 placement, got %d", key, len(placements))
		}
		p := placements[0]
		onTrip := offset >= 2 && offset <= 4
		if onTrip {
			if !p.IsBackup || p.ActivityID != "hotel-workout" || p.OriginalID != "gym-session" {
				t.Fatalf("%s: expected the remote backup standing in, got %+v", key, p)
			}
		} else if p.IsBackup || p.ActivityID != "gym-session" {
			t.Fatalf("%s: expected the primary at home, got %+v", key, p)
		}
	}
}

func TestAllocator_TravelDayWithoutRemoteBackupConflicts(t *testing.T) {
	acts := []model.Activity{{
		ID: "gym-session", Type: model.TypeFitness, Priority: model.PriorityHigh,
		Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 60,
	}}
	travel := []model.TravelPlan{{ID: "trip", Start: day(3), End: day(3), RemoteOnly: true}}
	a := mustAllocator(t, acts, nil, travel, testClient())
	res, err := a.Run(week(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Conflicts) != 1 {
		t.Fatalf("expected exactly one conflict, got %d", len(res.Conflicts))
	}
	c := res.Conflicts[0]
	if c.DateKey != model.DateKey(day(3)) || c.ActivityID != "gym-session" || c.Reason != ConflictNoSlot {
		t.Fatalf("unexpected conflict %+v", c)
	}
	if got := len(res.All()); got != 6 {
		t.Fatalf("the other six days must still be placed, got %d", got)
	}
}

func TestAllocator_ResourceBlackoutSingleConflict(t *testing.T) {
	physio := model.Resource{
		ID: "physio", Kind: model.KindAlliedHealth,
		Weekly: map[time.Weekday][]model.TimeWindow{
			time.Monday:    {{Start: mm(9, 0), End: mm(17, 0)}},
			time.Tuesday:   {{Start: mm(9, 0), End: mm(17, 0)}},
			time.Wednesday: {{Start: mm(9, 0), End: mm(17, 0)}},
			time.Thursday:  {{Start: mm(9, 0), End: mm(17, 0)}},
			time.Friday:    {{Start: mm(9, 0), End: mm(17, 0)}},
			time.Saturday:  {{Start: mm(9, 0), End: mm(17, 0)}},
			time.Sunday:    {{Start: mm(9, 0), End: mm(17, 0)}},
		},
		Blackouts: []time.Time{day(2)},
	}
	acts := []model.Activity{{
		ID: "rehab", Type: model.TypeTherapy, Priority: model.PriorityHigh,
		Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 45,
		Resources: []string{"physio"},
	}}
	a := mustAllocator(t, acts, []model.Resource{physio}, nil, testClient())
	res, err := a.Run(week(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Conflicts) != 1 {
		t.Fatalf("expected one conflict on the blackout day, got %d", len(res.Conflicts))
	}
	if res.Conflicts[0].DateKey != model.DateKey(day(2)) {
		t.Fatalf("conflict on wrong day: %s", res.Conflicts[0].DateKey)
	}
	if got := len(res.All()); got != 6 {
		t.Fatalf("run must continue past the conflict, got %d placements", got)
	}
}

func TestAllocator_BackupWhenResourceBlocked(t *testing.T) {
	pool := model.Resource{
		ID: "pool", Kind: model.KindEquipment,
		Weekly: map[time.Weekday][]model.TimeWindow{
			time.Monday: {{Start: mm(6, 0), End: mm(22, 0)}},
		},
	}
	acts := []model.Activity{
		{
			ID: "swim", Type: model.TypeFitness, Priority: model.PriorityMedium,
			Recurrence: model.Recurrence{Kind: model.RecurNPerWeek, Times: 2}, Duration: 45,
			Resources: []string{"pool"}, Backups: []string{"jog"},
		},
		{
			ID: "jog", Type: model.TypeFitness, Priority: model.PriorityLow,
			Recurrence: model.Recurrence{Kind: model.RecurOnce, Date: day(30)}, Duration: 30,
			Remote: true,
		},
	}
	a := mustAllocator(t, acts, []model.Resource{pool}, nil, testClient())
	res, err := a.Run(week(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	byDate := res.ByDate()
	mon := byDate[model.DateKey(monday)]
	if len(mon) != 1 || mon[0].ActivityID != "swim" || mon[0].IsBackup {
		t.Fatalf("monday: pool open, expected the primary, got %+v", mon)
	}
	// 2/week prefers Monday and Thursday; the pool is closed on Thursday so
	// the backup stands in and the weekly count still advances.
	thu := byDate[model.DateKey(day(3))]
	if len(thu) != 1 || thu[0].ActivityID != "jog" || !thu[0].IsBackup || thu[0].OriginalID != "swim" {
		t.Fatalf("thursday: expected the backup standing in, got %+v", thu)
	}
	if len(res.Conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %v", res.Conflicts)
	}
	if got := len(res.All()); got != 2 {
		t.Fatalf("the weekly target is 2, got %d placements", got)
	}
}

func TestAllocator_BackupsResolveOneLevelOnly(t *testing.T) {
	closed := model.Resource{ID: "closed", Kind: model.KindEquipment}
	acts := []model.Activity{
		{
			ID: "primary", Priority: model.PriorityHigh,
			Recurrence: model.Recurrence{Kind: model.RecurOnce, Date: monday}, Duration: 30,
			Resources: []string{"closed"}, Backups: []string{"first"},
		},
		{
			ID: "first", Priority: model.PriorityMedium,
			Recurrence: model.Recurrence{Kind: model.RecurOnce, Date: day(30)}, Duration: 30,
			Resources: []string{"closed"}, Backups: []string{"second"},
		},
		{
			ID: "second", Priority: model.PriorityLow,
			Recurrence: model.Recurrence{Kind: model.RecurOnce, Date: day(30)}, Duration: 30,
		},
	}
	a := mustAllocator(t, acts, []model.Resource{closed}, nil, testClient())
	rng, _ := model.NewDateRange(monday, monday)
	res, err := a.Run(rng)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// first cannot be placed and second is its backup, not the primary's:
	// the chain stops one level deep.
	if len(res.Conflicts) != 1 || res.Conflicts[0].ActivityID != "primary" {
		t.Fatalf("expected one conflict for the primary, got %v", res.Conflicts)
	}
	if got := len(res.All()); got != 0 {
		t.Fatalf("nothing should be placed, got %d", got)
	}
}

func TestAllocator_Deterministic(t *testing.T) {
	acts := []model.Activity{
		{ID: "a", Priority: model.PriorityMedium, Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 30},
		{ID: "b", Priority: model.PriorityMedium, Recurrence: model.Recurrence{Kind: model.RecurNPerWeek, Times: 3}, Duration: 45},
		{ID: "c", Priority: model.PriorityHigh, Recurrence: model.Recurrence{Kind: model.RecurWeekly}, Duration: 60},
	}
	run := func() []byte {
		a := mustAllocator(t, acts, nil, nil, testClient())
		res, err := a.Run(week(t))
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		b, err := json.Marshal(struct {
			Days      []Day
			Conflicts []model.Conflict
		}{res.Days, res.Conflicts})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return b
	}
	first := run()
	for i := 0; i < 3; i++ {
		if string(run()) != string(first) {
			t.Fatalf("identical inputs must produce byte-identical output")
		}
	}
}

func TestAllocator_TieBreakByDeclarationOrder(t *testing.T) {
	acts := []model.Activity{
		{ID: "first", Priority: model.PriorityMedium, Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 30},
		{ID: "second", Priority: model.PriorityMedium, Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 30},
	}
	a := mustAllocator(t, acts, nil, nil, testClient())
	rng, _ := model.NewDateRange(monday, monday)
	res, err := a.Run(rng)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	ps := res.Days[0].Placements
	if len(ps) != 2 || ps[0].ActivityID != "first" || ps[1].ActivityID != "second" {
		t.Fatalf("equal priorities keep declaration order, got %+v", ps)
	}
}

func TestNewAllocator_MissingResourceRef(t *testing.T) {
	acts := []model.Activity{{
		ID: "rehab", Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 30,
		Resources: []string{"ghost"},
	}}
	_, err := NewAllocator(acts, nil, nil, testClient(), logger.NopLogger{})
	var missing *model.MissingResourceError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingResourceError, got %v", err)
	}
	if missing.Kind != "resource" || missing.RefID != "ghost" || missing.ActivityID != "rehab" {
		t.Fatalf("unexpected error detail %+v", missing)
	}
}

func TestNewAllocator_MissingBackupRef(t *testing.T) {
	acts := []model.Activity{{
		ID: "swim", Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 30,
		Backups: []string{"nope"},
	}}
	_, err := NewAllocator(acts, nil, nil, testClient(), logger.NopLogger{})
	var missing *model.MissingResourceError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingResourceError, got %v", err)
	}
	if missing.Kind != "backup" || missing.RefID != "nope" {
		t.Fatalf("unexpected error detail %+v", missing)
	}
}

func TestNewAllocator_InvalidFrequencyRule(t *testing.T) {
	acts := []model.Activity{{
		ID: "bad", Duration: 30,
		Recurrence: model.Recurrence{Kind: model.RecurNPerWeek, Times: 0},
	}}
	_, err := NewAllocator(acts, nil, nil, testClient(), logger.NopLogger{})
	var freq *model.InvalidFrequencyRuleError
	if !errors.As(err, &freq) {
		t.Fatalf("expected InvalidFrequencyRuleError, got %v", err)
	}
	if freq.ActivityID != "bad" {
		t.Fatalf("unexpected error detail %+v", freq)
	}
}

func TestAllocator_Run_InvalidRange(t *testing.T) {
	a := mustAllocator(t, nil, nil, nil, testClient())
	_, err := a.Run(model.DateRange{Start: day(3), End: monday})
	var rangeErr *model.InvalidDateRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected InvalidDateRangeError, got %v", err)
	}
}

func TestAllocator_PublishesEvents(t *testing.T) {
	bus := eventbus.New()
	sub := bus.Subscribe()
	acts := []model.Activity{
		{ID: "ok", Priority: model.PriorityHigh, Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 30},
		{ID: "doomed", Priority: model.PriorityLow, Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 17 * 60},
	}
	a := mustAllocator(t, acts, nil, nil, testClient(), WithEventBus(bus))
	rng, _ := model.NewDateRange(monday, monday)
	if _, err := a.Run(rng); err != nil {
		t.Fatalf("run: %v", err)
	}
	bus.Close()

	var placements, conflicts, days int
	for e := range sub {
		switch e.(type) {
		case events.PlacementEvent:
			placements++
		case events.ConflictEvent:
			conflicts++
		case events.DayEvent:
			days++
		}
	}
	if placements != 1 || conflicts != 1 || days != 1 {
		t.Fatalf("expected 1 placement, 1 conflict, 1 day event; got %d/%d/%d", placements, conflicts, days)
	}
}

func TestResult_Stats(t *testing.T) {
	acts := []model.Activity{
		{ID: "med", Type: model.TypeMedication, Priority: model.PriorityCritical, Recurrence: model.Recurrence{Kind: model.RecurDaily}, Duration: 15},
		{ID: "run", Type: model.TypeFitness, Priority: model.PriorityMedium, Recurrence: model.Recurrence{Kind: model.RecurNPerWeek, Times: 3}, Duration: 45},
	}
	a := mustAllocator(t, acts, nil, nil, testClient())
	res, err := a.Run(week(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	st := res.Stats()
	if st.TotalScheduled != 10 {
		t.Fatalf("expected 7 daily + 3 weekly = 10, got %d", st.TotalScheduled)
	}
	if st.ByType["medication"] != 7 || st.ByType["fitness"] != 3 {
		t.Fatalf("by-type counters wrong: %v", st.ByType)
	}
	if st.ByPriority["critical"] != 7 || st.ByPriority["medium"] != 3 {
		t.Fatalf("by-priority counters wrong: %v", st.ByPriority)
	}
	if st.BackupsUsed != 0 || st.Conflicts != 0 {
		t.Fatalf("unexpected backup/conflict counters: %+v", st)
	}
	if st.StartDate != model.DateKey(monday) || st.EndDate != model.DateKey(day(6)) {
		t.Fatalf("range dates wrong: %s..%s", st.StartDate, st.EndDate)
	}
}
