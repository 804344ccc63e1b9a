package model

import (
	"fmt"
	"time"
)

// MinuteOfDay is a clock time expressed as minutes since midnight.
// It marshals as "HH:MM".
type MinuteOfDay int

// ParseMinuteOfDay parses an "HH:MM" clock time.
func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	return MinuteOfDay(t.Hour()*60 + t.Minute()), nil
}

// String formats the time as "HH:MM".
func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// MarshalText implements encoding.TextMarshaler.
func (m MinuteOfDay) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MinuteOfDay) UnmarshalText(b []byte) error {
	v, err := ParseMinuteOfDay(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// TimeWindow is a half-open interval [Start, End) within a single day.
type TimeWindow struct {
	Start MinuteOfDay `json:"start" yaml:"start"`
	End   MinuteOfDay `json:"end" yaml:"end"`
}

// Validate checks that the window is non-empty and within the day.
func (w TimeWindow) Validate() error {
	if w.Start < 0 || w.End > 24*60 {
		return fmt.Errorf("window %s-%s outside the day", w.Start, w.End)
	}
	if w.Start >= w.End {
		return fmt.Errorf("window %s-%s is empty", w.Start, w.End)
	}
	return nil
}

// Duration returns the window length in minutes.
func (w TimeWindow) Duration() int { return int(w.End - w.Start) }

// Contains reports whether [start, start+duration) fits entirely in the window.
func (w TimeWindow) Contains(start MinuteOfDay, duration int) bool {
	return start >= w.Start && start+MinuteOfDay(duration) <= w.End
}

// Overlaps reports whether the two windows share any time.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.Start < o.End && o.Start < w.End
}
