package model

import "fmt"

// MissingResourceError reports a reference to an undefined resource or
// backup activity. It is fatal and detected during input validation, before
// any day is scheduled.
type MissingResourceError struct {
	ActivityID string
	RefID      string
	Kind       string // "resource" or "backup"
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("activity %s references unknown %s %q", e.ActivityID, e.Kind, e.RefID)
}

// InvalidFrequencyRuleError reports a malformed recurrence rule. Fatal at
// load time.
type InvalidFrequencyRuleError struct {
	ActivityID string
	Reason     string
}

func (e *InvalidFrequencyRuleError) Error() string {
	return fmt.Sprintf("activity %s: invalid frequency rule: %s", e.ActivityID, e.Reason)
}

// InvalidDateRangeError reports an unusable scheduling range. Fatal before
// any day is processed.
type InvalidDateRangeError struct {
	Reason string
}

func (e *InvalidDateRangeError) Error() string {
	return "invalid date range: " + e.Reason
}
