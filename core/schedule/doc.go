// Package schedule implements the allocation engine. It places a
// priority-ordered action plan onto a calendar range, respecting resource
// availability, the client's personal constraints and per-activity
// recurrence rules, substituting declared backup activities when the
// primary cannot be placed. The engine is a pure function of its inputs:
// identical inputs always yield an identical plan and conflict log.
package schedule
