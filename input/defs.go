package input

import (
	"fmt"
	"time"

	"github.com/sajals2410/elyx-assignment/core/model"
)

// WindowDef is a wire-format time window using "HH:MM" clock times.
type WindowDef struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// ToModel converts the window definition.
func (w WindowDef) ToModel() (model.TimeWindow, error) {
	start, err := model.ParseMinuteOfDay(w.Start)
	if err != nil {
		return model.TimeWindow{}, err
	}
	end, err := model.ParseMinuteOfDay(w.End)
	if err != nil {
		return model.TimeWindow{}, err
	}
	return model.TimeWindow{Start: start, End: end}, nil
}

// FrequencyDef is a wire-format recurrence rule.
type FrequencyDef struct {
	Kind         string `json:"kind" yaml:"kind"`
	Weekday      string `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	TimesPerWeek int    `json:"times_per_week,omitempty" yaml:"times_per_week,omitempty"`
	Date         string `json:"date,omitempty" yaml:"date,omitempty"`
}

// ToModel converts the frequency definition.
func (f FrequencyDef) ToModel() (model.Recurrence, error) {
	kind, err := model.ParseRecurrenceKind(f.Kind)
	if err != nil {
		return model.Recurrence{}, err
	}
	r := model.Recurrence{Kind: kind, Times: f.TimesPerWeek}
	if f.Weekday != "" {
		day, err := parseWeekday(f.Weekday)
		if err != nil {
			return model.Recurrence{}, err
		}
		r.Weekday = day
		r.FixedDay = true
	}
	if f.Date != "" {
		d, err := model.ParseDate(f.Date)
		if err != nil {
			return model.Recurrence{}, err
		}
		r.Date = d
	}
	return r, nil
}

// ActivityDef is a wire-format activity from the action plan files.
type ActivityDef struct {
	ID              string       `json:"id" yaml:"id"`
	Name            string       `json:"name" yaml:"name"`
	Type            string       `json:"activity_type" yaml:"activity_type"`
	Priority        string       `json:"priority" yaml:"priority"`
	Frequency       FrequencyDef `json:"frequency" yaml:"frequency"`
	DurationMinutes int          `json:"duration_minutes" yaml:"duration_minutes"`
	Preferred       []WindowDef  `json:"preferred_windows,omitempty" yaml:"preferred_windows,omitempty"`
	Remote          bool         `json:"can_be_remote" yaml:"can_be_remote"`
	Backups         []string     `json:"backup_activities,omitempty" yaml:"backup_activities,omitempty"`
	Equipment       []string     `json:"equipment_needed,omitempty" yaml:"equipment_needed,omitempty"`
	Specialist      string       `json:"specialist_needed,omitempty" yaml:"specialist_needed,omitempty"`
	AlliedHealth    string       `json:"allied_health_needed,omitempty" yaml:"allied_health_needed,omitempty"`
	Facilitator     string       `json:"facilitator,omitempty" yaml:"facilitator,omitempty"`
	Location        string       `json:"location,omitempty" yaml:"location,omitempty"`
	Details         string       `json:"details,omitempty" yaml:"details,omitempty"`
}

// ToModel converts the activity definition.
func (a ActivityDef) ToModel() (model.Activity, error) {
	typ, err := model.ParseActivityType(a.Type)
	if err != nil {
		return model.Activity{}, fmt.Errorf("activity %s: %w", a.ID, err)
	}
	prio, err := model.ParsePriority(a.Priority)
	if err != nil {
		return model.Activity{}, fmt.Errorf("activity %s: %w", a.ID, err)
	}
	rec, err := a.Frequency.ToModel()
	if err != nil {
		return model.Activity{}, fmt.Errorf("activity %s: %w", a.ID, err)
	}
	var preferred []model.TimeWindow
	for _, w := range a.Preferred {
		tw, err := w.ToModel()
		if err != nil {
			return model.Activity{}, fmt.Errorf("activity %s: %w", a.ID, err)
		}
		preferred = append(preferred, tw)
	}

	resources := append([]string(nil), a.Equipment...)
	if a.Specialist != "" {
		resources = append(resources, a.Specialist)
	}
	if a.AlliedHealth != "" {
		resources = append(resources, a.AlliedHealth)
	}

	return model.Activity{
		ID:          a.ID,
		Name:        a.Name,
		Type:        typ,
		Priority:    prio,
		Recurrence:  rec,
		Duration:    a.DurationMinutes,
		Preferred:   preferred,
		Remote:      a.Remote,
		Backups:     append([]string(nil), a.Backups...),
		Resources:   resources,
		Facilitator: a.Facilitator,
		Location:    a.Location,
		Details:     a.Details,
	}, nil
}

// ResourceDef is a wire-format resource directory entry.
type ResourceDef struct {
	ID        string                 `json:"id" yaml:"id"`
	Name      string                 `json:"name" yaml:"name"`
	Kind      string                 `json:"kind" yaml:"kind"`
	Remote    bool                   `json:"can_do_remote,omitempty" yaml:"can_do_remote,omitempty"`
	Location  string                 `json:"location,omitempty" yaml:"location,omitempty"`
	Weekly    map[string][]WindowDef `json:"weekly_availability" yaml:"weekly_availability"`
	Blackouts []string               `json:"blackout_dates,omitempty" yaml:"blackout_dates,omitempty"`
}

// ToModel converts the resource definition.
func (r ResourceDef) ToModel() (model.Resource, error) {
	kind, err := model.ParseResourceKind(r.Kind)
	if err != nil {
		return model.Resource{}, fmt.Errorf("resource %s: %w", r.ID, err)
	}
	weekly := make(map[time.Weekday][]model.TimeWindow, len(r.Weekly))
	for dayName, windows := range r.Weekly {
		day, err := parseWeekday(dayName)
		if err != nil {
			return model.Resource{}, fmt.Errorf("resource %s: %w", r.ID, err)
		}
		for _, w := range windows {
			tw, err := w.ToModel()
			if err != nil {
				return model.Resource{}, fmt.Errorf("resource %s: %w", r.ID, err)
			}
			weekly[day] = append(weekly[day], tw)
		}
	}
	var blackouts []time.Time
	for _, s := range r.Blackouts {
		d, err := model.ParseDate(s)
		if err != nil {
			return model.Resource{}, fmt.Errorf("resource %s: %w", r.ID, err)
		}
		blackouts = append(blackouts, d)
	}
	return model.Resource{
		ID:        r.ID,
		Name:      r.Name,
		Kind:      kind,
		Remote:    r.Remote,
		Location:  r.Location,
		Weekly:    weekly,
		Blackouts: blackouts,
	}, nil
}

// TravelDef is a wire-format travel plan.
type TravelDef struct {
	ID          string `json:"id" yaml:"id"`
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty"`
	StartDate   string `json:"start_date" yaml:"start_date"`
	EndDate     string `json:"end_date" yaml:"end_date"`
	RemoteOnly  bool   `json:"remote_only" yaml:"remote_only"`
}

// ToModel converts the travel definition.
func (t TravelDef) ToModel() (model.TravelPlan, error) {
	start, err := model.ParseDate(t.StartDate)
	if err != nil {
		return model.TravelPlan{}, fmt.Errorf("travel plan %s: %w", t.ID, err)
	}
	end, err := model.ParseDate(t.EndDate)
	if err != nil {
		return model.TravelPlan{}, fmt.Errorf("travel plan %s: %w", t.ID, err)
	}
	return model.TravelPlan{
		ID:          t.ID,
		Destination: t.Destination,
		Start:       start,
		End:         end,
		RemoteOnly:  t.RemoteOnly,
	}, nil
}

// ClientDef is the wire-format client schedule.
type ClientDef struct {
	WakeTime  string                 `json:"wake_time" yaml:"wake_time"`
	SleepTime string                 `json:"sleep_time" yaml:"sleep_time"`
	Work      map[string][]WindowDef `json:"work_hours,omitempty" yaml:"work_hours,omitempty"`
	Blackouts map[string][]WindowDef `json:"blocked_times,omitempty" yaml:"blocked_times,omitempty"`
}

// ToModel converts the client schedule definition.
func (c ClientDef) ToModel() (model.ClientSchedule, error) {
	wake, err := model.ParseMinuteOfDay(c.WakeTime)
	if err != nil {
		return model.ClientSchedule{}, fmt.Errorf("client schedule: %w", err)
	}
	sleep, err := model.ParseMinuteOfDay(c.SleepTime)
	if err != nil {
		return model.ClientSchedule{}, fmt.Errorf("client schedule: %w", err)
	}
	work := make(map[time.Weekday][]model.TimeWindow, len(c.Work))
	for dayName, windows := range c.Work {
		day, err := parseWeekday(dayName)
		if err != nil {
			return model.ClientSchedule{}, fmt.Errorf("client schedule: %w", err)
		}
		for _, w := range windows {
			tw, err := w.ToModel()
			if err != nil {
				return model.ClientSchedule{}, fmt.Errorf("client schedule: %w", err)
			}
			work[day] = append(work[day], tw)
		}
	}
	blackouts := make(map[string][]model.TimeWindow, len(c.Blackouts))
	for dateKey, windows := range c.Blackouts {
		if _, err := model.ParseDate(dateKey); err != nil {
			return model.ClientSchedule{}, fmt.Errorf("client schedule: %w", err)
		}
		for _, w := range windows {
			tw, err := w.ToModel()
			if err != nil {
				return model.ClientSchedule{}, fmt.Errorf("client schedule: %w", err)
			}
			blackouts[dateKey] = append(blackouts[dateKey], tw)
		}
	}
	return model.ClientSchedule{Wake: wake, Sleep: sleep, Work: work, Blackouts: blackouts}, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	switch s {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
}
