package event

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Listing is what the index view renders
type Listing struct {
	Events     []string   `json:"events" yaml:"events"`
	RenderedAt *time.Time `json:"rendered_at,omitempty" yaml:"rendered_at,omitempty"`
}

// BuildListing reads the catalogue from src and projects it for the view.
// RenderedAt is only set when withTime is true.
func BuildListing(ctx context.Context, src Source, now func() time.Time, withTime bool) (*Listing, error) {
	events, err := src.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	// Sources may return rows in any order; position is authoritative
	sorted := make([]*Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	listing := &Listing{
		Events: make([]string, 0, len(sorted)),
	}
	for _, evt := range sorted {
		listing.Events = append(listing.Events, evt.Name)
	}

	if withTime {
		if now == nil {
			now = time.Now
		}
		ts := now().UTC()
		listing.RenderedAt = &ts
	}

	return listing, nil
}
