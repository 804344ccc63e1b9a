package config

import (
	"fmt"

	"github.com/sajals2410/elyx-assignment/core/model"
	"github.com/sajals2410/elyx-assignment/core/schedule"
)

// EngineConfig tunes the allocation engine.
type EngineConfig struct {
	// StepMinutes is the slot scan granularity.
	StepMinutes int `json:"step_minutes"`
}

// SetDefaults applies sane defaults.
func (c *EngineConfig) SetDefaults() {
	if c.StepMinutes == 0 {
		c.StepMinutes = schedule.DefaultStep
	}
}

// Validate checks the engine settings.
func (c EngineConfig) Validate() error {
	if c.StepMinutes < 0 {
		return fmt.Errorf("step_minutes must be positive, got %d", c.StepMinutes)
	}
	return nil
}

// InputsConfig points at the data directory holding the action plan and the
// resource directories.
type InputsConfig struct {
	Dir string `json:"dir"`
}

// OutputConfig points at the directory receiving rendered calendars.
type OutputConfig struct {
	Dir string `json:"dir"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "output"
	}
}

// RangeConfig defines the scheduling date range: start plus either an
// explicit end date or a week count.
type RangeConfig struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Weeks     int    `json:"weeks"`
}

// Validate checks the range settings without resolving them.
func (c RangeConfig) Validate() error {
	if c.StartDate == "" {
		return fmt.Errorf("range: start_date is required")
	}
	if c.EndDate == "" && c.Weeks == 0 {
		return fmt.Errorf("range: either end_date or weeks is required")
	}
	return nil
}

// Resolve builds the model date range.
func (c RangeConfig) Resolve() (model.DateRange, error) {
	start, err := model.ParseDate(c.StartDate)
	if err != nil {
		return model.DateRange{}, err
	}
	if c.EndDate != "" {
		end, err := model.ParseDate(c.EndDate)
		if err != nil {
			return model.DateRange{}, err
		}
		return model.NewDateRange(start, end)
	}
	return model.RangeForWeeks(start, c.Weeks)
}

// StoreConfig defines settings for plan run persistence.
type StoreConfig struct {
	// Backend selects the store type: "jsonl" or "sqlite". Empty disables
	// persistence entirely.
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *StoreConfig) SetDefaults() {
	if c.Backend != "" && c.Path == "" {
		c.Path = "plans." + c.Backend
	}
}

// Validate checks the backend selection.
func (c StoreConfig) Validate() error {
	switch c.Backend {
	case "", "jsonl", "sqlite":
		return nil
	default:
		return fmt.Errorf("unknown store backend %s", c.Backend)
	}
}

// APIConfig defines the HTTP listener settings.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
