package event

import (
	"context"
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
)

// DefaultNames is the ordered catalogue shown on the events index.
var DefaultNames = []string{"BugSmash", "Hackathon", "Kata Camp", "Rails User Group"}

// Event represents a single entry on the events board
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// Source lists every event in the catalogue
type Source interface {
	All(ctx context.Context) ([]*Event, error)
}

// SourceFunc adapts a function to Source
type SourceFunc func(ctx context.Context) ([]*Event, error)

// All calls f(ctx)
func (f SourceFunc) All(ctx context.Context) ([]*Event, error) {
	return f(ctx)
}

// GenerateID creates a deterministic ID for an event based on its name
func GenerateID(name string) string {
	// Normalize: lowercase, trim spaces
	normalized := strings.ToLower(strings.TrimSpace(name))

	h := sha1.New()
	h.Write([]byte(normalized))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NewEvent creates a new Event with ID and CreatedAt populated
func NewEvent(name string, position int) *Event {
	return &Event{
		ID:        GenerateID(name),
		Name:      strings.TrimSpace(name),
		Position:  position,
		CreatedAt: time.Now().UTC(),
	}
}

// FromNames builds events from names, keeping their order as positions
func FromNames(names []string) []*Event {
	events := make([]*Event, 0, len(names))
	for i, name := range names {
		events = append(events, NewEvent(name, i))
	}
	return events
}

// StaticSource serves the fixed default catalogue
type StaticSource struct{}

// All returns a fresh copy of the default catalogue on every call
func (StaticSource) All(ctx context.Context) ([]*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return FromNames(DefaultNames), nil
}
