package event

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBuildListing(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	tests := []struct {
		name     string
		withTime bool
	}{
		{name: "with timestamp", withTime: true},
		{name: "without timestamp", withTime: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := BuildListing(context.Background(), StaticSource{}, now, tt.withTime)
			if err != nil {
				t.Fatalf("BuildListing() unexpected error: %v", err)
			}

			want := []string{"BugSmash", "Hackathon", "Kata Camp", "Rails User Group"}
			if len(listing.Events) != len(want) {
				t.Fatalf("expected %d events, got %v", len(want), listing.Events)
			}
			for i := range want {
				if listing.Events[i] != want[i] {
					t.Errorf("Events[%d] = %q, want %q", i, listing.Events[i], want[i])
				}
			}

			if tt.withTime {
				if listing.RenderedAt == nil {
					t.Fatal("expected RenderedAt to be set")
				}
				if !listing.RenderedAt.Equal(fixed) {
					t.Errorf("RenderedAt = %v, want %v", listing.RenderedAt, fixed)
				}
			} else if listing.RenderedAt != nil {
				t.Errorf("expected RenderedAt to be nil, got %v", listing.RenderedAt)
			}
		})
	}
}

func TestBuildListing_DefaultClock(t *testing.T) {
	before := time.Now().UTC()
	listing, err := BuildListing(context.Background(), StaticSource{}, nil, true)
	after := time.Now().UTC()
	if err != nil {
		t.Fatalf("BuildListing() unexpected error: %v", err)
	}

	if listing.RenderedAt == nil {
		t.Fatal("expected RenderedAt to be set")
	}
	if listing.RenderedAt.Before(before) || listing.RenderedAt.After(after) {
		t.Errorf("RenderedAt %v not within [%v, %v]", listing.RenderedAt, before, after)
	}
}

func TestBuildListing_OrdersByPosition(t *testing.T) {
	src := SourceFunc(func(ctx context.Context) ([]*Event, error) {
		return []*Event{
			NewEvent("Rails User Group", 3),
			NewEvent("BugSmash", 0),
			NewEvent("Kata Camp", 2),
			NewEvent("Hackathon", 1),
		}, nil
	})

	listing, err := BuildListing(context.Background(), src, nil, false)
	if err != nil {
		t.Fatalf("BuildListing() unexpected error: %v", err)
	}

	want := []string{"BugSmash", "Hackathon", "Kata Camp", "Rails User Group"}
	for i := range want {
		if listing.Events[i] != want[i] {
			t.Errorf("Events[%d] = %q, want %q", i, listing.Events[i], want[i])
		}
	}
}

func TestBuildListing_SourceError(t *testing.T) {
	boom := errors.New("database unavailable")
	src := SourceFunc(func(ctx context.Context) ([]*Event, error) {
		return nil, boom
	})

	_, err := BuildListing(context.Background(), src, nil, true)
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}

func TestBuildListing_EmptySource(t *testing.T) {
	src := SourceFunc(func(ctx context.Context) ([]*Event, error) {
		return nil, nil
	})

	listing, err := BuildListing(context.Background(), src, nil, false)
	if err != nil {
		t.Fatalf("BuildListing() unexpected error: %v", err)
	}
	if listing.Events == nil || len(listing.Events) != 0 {
		t.Errorf("expected empty non-nil Events, got %#v", listing.Events)
	}
}
