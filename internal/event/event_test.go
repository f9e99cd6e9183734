package event

import (
	"context"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{
			name: "same input produces same ID",
			a:    "Kata Camp",
			b:    "Kata Camp",
			same: true,
		},
		{
			name: "case and surrounding spaces are ignored",
			a:    "Kata Camp",
			b:    "  kata camp ",
			same: true,
		},
		{
			name: "different names differ",
			a:    "BugSmash",
			b:    "Hackathon",
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := GenerateID(tt.a)
			id2 := GenerateID(tt.b)

			if (id1 == id2) != tt.same {
				t.Errorf("GenerateID(%q) = %s, GenerateID(%q) = %s, want same=%v", tt.a, id1, tt.b, id2, tt.same)
			}

			if len(id1) != 40 { // SHA1 produces 40 hex characters
				t.Errorf("expected ID length of 40, got %d", len(id1))
			}
		})
	}
}

func TestNewEvent(t *testing.T) {
	evt := NewEvent(" Hackathon ", 1)

	if evt.ID != GenerateID("Hackathon") {
		t.Errorf("expected ID to be generated from name, got '%s'", evt.ID)
	}

	if evt.Name != "Hackathon" {
		t.Errorf("expected name to be 'Hackathon', got '%s'", evt.Name)
	}

	if evt.Position != 1 {
		t.Errorf("expected position 1, got %d", evt.Position)
	}

	if evt.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStaticSource_All(t *testing.T) {
	events, err := StaticSource{}.All(context.Background())
	if err != nil {
		t.Fatalf("All() unexpected error: %v", err)
	}

	want := []string{"BugSmash", "Hackathon", "Kata Camp", "Rails User Group"}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, evt := range events {
		if evt.Name != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, evt.Name, want[i])
		}
		if evt.Position != i {
			t.Errorf("events[%d].Position = %d, want %d", i, evt.Position, i)
		}
	}
}

func TestStaticSource_FreshEachCall(t *testing.T) {
	src := StaticSource{}
	first, _ := src.All(context.Background())
	first[0].Name = "Mutated"

	second, err := src.All(context.Background())
	if err != nil {
		t.Fatalf("All() unexpected error: %v", err)
	}
	if second[0].Name != "BugSmash" {
		t.Errorf("mutating a previous result leaked into the next call: got %q", second[0].Name)
	}
	if DefaultNames[0] != "BugSmash" {
		t.Errorf("DefaultNames was modified: %v", DefaultNames)
	}
}

func TestStaticSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (StaticSource{}).All(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}
