package event

import (
	"sort"
	"time"
)

// Catalog represents the persisted set of events at a point in time
type Catalog struct {
	Events    []*Event `json:"events"`
	UpdatedAt string   `json:"updated_at"` // RFC3339 timestamp
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		Events: make([]*Event, 0),
	}
}

// CreateCatalog creates a catalog from a list of events
func CreateCatalog(events []*Event, updatedAt string) *Catalog {
	cat := NewCatalog()
	cat.UpdatedAt = updatedAt
	cat.Events = append(cat.Events, events...)
	return cat
}

// IDs returns the set of event IDs in the catalog
func (c *Catalog) IDs() map[string]bool {
	ids := make(map[string]bool, len(c.Events))
	for _, evt := range c.Events {
		ids[evt.ID] = true
	}
	return ids
}

// DiffResult contains the results of comparing a catalog to a desired set of events
type DiffResult struct {
	Added   []*Event
	Removed []*Event
	Moved   []*Event // kept events whose position changed, at their new position
}

// Changed reports whether anything was added, removed or moved
func (d *DiffResult) Changed() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Moved) > 0
}

// Diff compares desired events against a previous catalog
func Diff(previous *Catalog, desired []*Event) *DiffResult {
	result := &DiffResult{
		Added:   make([]*Event, 0),
		Removed: make([]*Event, 0),
		Moved:   make([]*Event, 0),
	}

	if previous == nil {
		previous = NewCatalog()
	}

	before := make(map[string]int, len(previous.Events))
	for _, evt := range previous.Events {
		before[evt.ID] = evt.Position
	}
	after := make(map[string]bool, len(desired))
	for _, evt := range desired {
		after[evt.ID] = true
		pos, ok := before[evt.ID]
		switch {
		case !ok:
			result.Added = append(result.Added, evt)
		case pos != evt.Position:
			result.Moved = append(result.Moved, evt)
		}
	}
	for _, evt := range previous.Events {
		if !after[evt.ID] {
			result.Removed = append(result.Removed, evt)
		}
	}

	sort.Slice(result.Added, func(i, j int) bool {
		return result.Added[i].Position < result.Added[j].Position
	})
	sort.Slice(result.Removed, func(i, j int) bool {
		return result.Removed[i].Position < result.Removed[j].Position
	})
	sort.Slice(result.Moved, func(i, j int) bool {
		return result.Moved[i].Position < result.Moved[j].Position
	})

	return result
}

// Stamp returns t formatted for Catalog.UpdatedAt
func Stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
