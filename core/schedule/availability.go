package schedule

import (
	"sort"
	"time"

	"github.com/sajals2410/elyx-assignment/core/model"
)

// AvailabilityIndex answers whether a resource is free for a given weekday,
// start time and duration. It is built once from the resource directory and
// is read-only afterwards.
type AvailabilityIndex struct {
	resources map[string]model.Resource
	blackouts map[string]map[string]struct{} // resource id -> date key
}

// NewAvailabilityIndex builds the index from the resource directory.
func NewAvailabilityIndex(resources []model.Resource) *AvailabilityIndex {
	idx := &AvailabilityIndex{
		resources: make(map[string]model.Resource, len(resources)),
		blackouts: make(map[string]map[string]struct{}),
	}
	for _, r := range resources {
		idx.resources[r.ID] = r
		if len(r.Blackouts) > 0 {
			days := make(map[string]struct{}, len(r.Blackouts))
			for _, d := range r.Blackouts {
				days[model.DateKey(d)] = struct{}{}
			}
			idx.blackouts[r.ID] = days
		}
	}
	return idx
}

// Has reports whether the resource id is known to the index.
func (idx *AvailabilityIndex) Has(id string) bool {
	_, ok := idx.resources[id]
	return ok
}

// IDs returns all known resource identifiers, sorted.
func (idx *AvailabilityIndex) IDs() []string {
	ids := make([]string, 0, len(idx.resources))
	for id := range idx.resources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsAvailable reports whether [start, start+duration) is fully contained in
// one of the resource's windows for the date's weekday and the resource has
// no blackout on that date. Unknown identifiers report unavailable; reference
// validation happens at load time, not here.
func (idx *AvailabilityIndex) IsAvailable(id string, date time.Time, start model.MinuteOfDay, duration int) bool {
	r, ok := idx.resources[id]
	if !ok {
		return false
	}
	if days, ok := idx.blackouts[id]; ok {
		if _, out := days[model.DateKey(date)]; out {
			return false
		}
	}
	for _, w := range r.Weekly[date.Weekday()] {
		if w.Contains(start, duration) {
			return true
		}
	}
	return false
}

// AllAvailable reports whether every listed resource admits the interval.
// An empty list always passes.
func (idx *AvailabilityIndex) AllAvailable(ids []string, date time.Time, start model.MinuteOfDay, duration int) bool {
	for _, id := range ids {
		if !idx.IsAvailable(id, date, start, duration) {
			return false
		}
	}
	return true
}
