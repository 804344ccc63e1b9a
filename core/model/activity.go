package model

import "fmt"

// ActivityType categorises an activity in the action plan.
type ActivityType int

const (
	TypeFitness ActivityType = iota
	TypeNutrition
	TypeMedication
	TypeTherapy
	TypeConsultation
)

// String returns a human-readable representation of the activity type.
func (t ActivityType) String() string {
	switch t {
	case TypeFitness:
		return "fitness"
	case TypeNutrition:
		return "nutrition"
	case TypeMedication:
		return "medication"
	case TypeTherapy:
		return "therapy"
	case TypeConsultation:
		return "consultation"
	default:
		return "unknown"
	}
}

// ParseActivityType converts a string into an ActivityType.
func ParseActivityType(s string) (ActivityType, error) {
	switch s {
	case "fitness":
		return TypeFitness, nil
	case "nutrition", "food":
		return TypeNutrition, nil
	case "medication":
		return TypeMedication, nil
	case "therapy":
		return TypeTherapy, nil
	case "consultation":
		return TypeConsultation, nil
	default:
		return 0, fmt.Errorf("unknown activity type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ActivityType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ActivityType) UnmarshalText(b []byte) error {
	v, err := ParseActivityType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Priority orders activities by health importance. Lower rank wins.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

// String returns a human-readable representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// ParsePriority converts a string into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "critical":
		return PriorityCritical, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return 0, fmt.Errorf("unknown priority %q", s)
	}
}

// Rank returns the numeric priority rank. Lower is more important.
func (p Priority) Rank() int { return int(p) }

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Activity is one recurring entry of the action plan to be placed on the
// calendar. Backups lists alternative activity IDs tried in order when the
// primary cannot be placed.
type Activity struct {
	ID          string
	Name        string
	Type        ActivityType
	Priority    Priority
	Recurrence  Recurrence
	Duration    int // minutes
	Preferred   []TimeWindow
	Remote      bool // can be done via video call or without facilities
	Backups     []string
	Resources   []string // required resource IDs (equipment, specialist, allied health)
	Facilitator string
	Location    string
	Details     string
}

// Validate checks that the activity definition is sound.
func (a Activity) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("activity id is required")
	}
	if a.Duration <= 0 {
		return fmt.Errorf("activity %s: duration must be positive", a.ID)
	}
	if err := a.Recurrence.Validate(); err != nil {
		return &InvalidFrequencyRuleError{ActivityID: a.ID, Reason: err.Error()}
	}
	for _, w := range a.Preferred {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("activity %s: %w", a.ID, err)
		}
	}
	return nil
}
