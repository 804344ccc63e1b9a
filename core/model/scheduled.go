package model

import "time"

// ScheduledActivity is one placed occurrence in the final plan.
type ScheduledActivity struct {
	ActivityID string       `json:"activity_id"`
	Name       string       `json:"activity_name"`
	Type       ActivityType `json:"activity_type"`
	Priority   Priority     `json:"priority"`
	Date       time.Time    `json:"-"`
	DateKey    string       `json:"scheduled_date"`
	Start      MinuteOfDay  `json:"start_time"`
	End        MinuteOfDay  `json:"end_time"`
	IsBackup   bool         `json:"is_backup"`
	OriginalID string       `json:"original_activity_id,omitempty"`
	Remote     bool         `json:"is_remote"`
	Location   string       `json:"location,omitempty"`
	Notes      string       `json:"notes,omitempty"`
}

// Window returns the occupied time window.
func (s ScheduledActivity) Window() TimeWindow {
	return TimeWindow{Start: s.Start, End: s.End}
}

// Conflict records a day/activity pair for which no slot, primary or backup,
// could be found. Conflicts never abort a run.
type Conflict struct {
	Date       time.Time `json:"-"`
	DateKey    string    `json:"date"`
	ActivityID string    `json:"activity_id"`
	Reason     string    `json:"reason"`
}
