package model

import (
	"fmt"
	"time"
)

// ResourceKind distinguishes the categories of bookable resources.
type ResourceKind int

const (
	KindEquipment ResourceKind = iota
	KindSpecialist
	KindAlliedHealth
)

// String returns a human-readable representation of the resource kind.
func (k ResourceKind) String() string {
	switch k {
	case KindEquipment:
		return "equipment"
	case KindSpecialist:
		return "specialist"
	case KindAlliedHealth:
		return "allied_health"
	default:
		return "unknown"
	}
}

// ParseResourceKind converts a string into a ResourceKind.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch s {
	case "equipment":
		return KindEquipment, nil
	case "specialist":
		return KindSpecialist, nil
	case "allied_health":
		return KindAlliedHealth, nil
	default:
		return 0, fmt.Errorf("unknown resource kind %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ResourceKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ResourceKind) UnmarshalText(b []byte) error {
	v, err := ParseResourceKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Resource is a bookable constraint: gym equipment, a specialist or an allied
// health provider. Weekly holds recurring availability windows per weekday;
// Blackouts lists whole dates on which the resource is unavailable regardless
// of the weekly pattern.
type Resource struct {
	ID        string
	Name      string
	Kind      ResourceKind
	Remote    bool // provider offers remote sessions
	Location  string
	Weekly    map[time.Weekday][]TimeWindow
	Blackouts []time.Time
}

// Validate checks the resource definition.
func (r Resource) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("resource id is required")
	}
	for day, windows := range r.Weekly {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("resource %s: invalid weekday %d", r.ID, day)
		}
		for _, w := range windows {
			if err := w.Validate(); err != nil {
				return fmt.Errorf("resource %s: %w", r.ID, err)
			}
		}
	}
	return nil
}
