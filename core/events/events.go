// Package events defines the allocation events emitted on the event bus.
//
// Available event types:
//   - PlacementEvent: an activity was placed on the calendar
//   - ConflictEvent: no slot was found for an activity, primary or backup
//   - DayEvent: one calendar day was committed
package events

import (
	"time"

	"github.com/sajals2410/elyx-assignment/core/model"
)

// PlacementEvent is emitted for every committed placement.
type PlacementEvent struct {
	Date       time.Time
	ActivityID string
	Type       model.ActivityType
	Priority   model.Priority
	Start      model.MinuteOfDay
	End        model.MinuteOfDay
	IsBackup   bool
	OriginalID string
}

// ConflictEvent is emitted when an activity and all its backups failed to
// find a slot on a date.
type ConflictEvent struct {
	Date       time.Time
	ActivityID string
	Reason     string
}

// DayEvent is emitted after a day has been committed to the result.
type DayEvent struct {
	Date      time.Time
	Placed    int
	Conflicts int
}
