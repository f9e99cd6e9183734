package event

import (
	"testing"
	"time"
)

func TestDiff(t *testing.T) {
	defaults := FromNames(DefaultNames)

	tests := []struct {
		name        string
		previous    *Catalog
		desired     []*Event
		wantAdded   []string
		wantRemoved []string
		wantMoved   []string
	}{
		{
			name:      "nil previous catalog adds everything",
			previous:  nil,
			desired:   defaults,
			wantAdded: DefaultNames,
		},
		{
			name:     "identical catalog has no changes",
			previous: CreateCatalog(defaults, Stamp(time.Now())),
			desired:  FromNames(DefaultNames),
		},
		{
			name:        "renamed event is removed and added",
			previous:    CreateCatalog(FromNames([]string{"BugSmash", "Hack Night"}), ""),
			desired:     FromNames([]string{"BugSmash", "Hackathon"}),
			wantAdded:   []string{"Hackathon"},
			wantRemoved: []string{"Hack Night"},
		},
		{
			name:      "same names in a new order are moved",
			previous:  CreateCatalog(defaults, ""),
			desired:   FromNames([]string{"Hackathon", "BugSmash", "Kata Camp", "Rails User Group"}),
			wantMoved: []string{"Hackathon", "BugSmash"},
		},
		{
			name:        "removing the first event shifts the rest",
			previous:    CreateCatalog(FromNames([]string{"BugSmash", "Hackathon"}), ""),
			desired:     FromNames([]string{"Hackathon"}),
			wantRemoved: []string{"BugSmash"},
			wantMoved:   []string{"Hackathon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Diff(tt.previous, tt.desired)

			if got := names(result.Added); !equalNames(got, tt.wantAdded) {
				t.Errorf("Added = %v, want %v", got, tt.wantAdded)
			}
			if got := names(result.Removed); !equalNames(got, tt.wantRemoved) {
				t.Errorf("Removed = %v, want %v", got, tt.wantRemoved)
			}
			if got := names(result.Moved); !equalNames(got, tt.wantMoved) {
				t.Errorf("Moved = %v, want %v", got, tt.wantMoved)
			}
			if result.Changed() != (len(tt.wantAdded)+len(tt.wantRemoved)+len(tt.wantMoved) > 0) {
				t.Errorf("Changed() = %v", result.Changed())
			}
		})
	}
}

func names(events []*Event) []string {
	out := make([]string, 0, len(events))
	for _, evt := range events {
		out = append(out, evt.Name)
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
