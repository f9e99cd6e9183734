package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/events-board/internal/event"
)

const catalogFile = "catalog.json"

// Storage handles persistence of the event catalog as JSON
type Storage struct {
	dataDir string
}

// ExpandHome expands a leading ~/ to the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	dataDir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Path returns the path to the catalog file
func (s *Storage) Path() string {
	return filepath.Join(s.dataDir, catalogFile)
}

// LoadCatalog loads the catalog from disk
func (s *Storage) LoadCatalog() (*event.Catalog, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing saved yet, return empty catalog
			return event.NewCatalog(), nil
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var catalog event.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	if catalog.Events == nil {
		catalog.Events = make([]*event.Event, 0)
	}

	return &catalog, nil
}

// SaveCatalog saves the catalog to disk
func (s *Storage) SaveCatalog(catalog *event.Catalog) error {
	catalog.UpdatedAt = event.Stamp(time.Now())

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	// Write through a unique temp file so readers never see a partial
	// catalog and concurrent writers never share one
	tmp, err := os.CreateTemp(s.dataDir, "catalog-*.json")
	if err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	defer os.Remove(tmp.Name()) // nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}

	return nil
}

// Seed replaces the stored catalog with names when they differ and
// reports what changed. Events that survive keep their original IDs and
// creation time.
func (s *Storage) Seed(ctx context.Context, names []string) (*event.DiffResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	previous, err := s.LoadCatalog()
	if err != nil {
		return nil, err
	}

	desired := event.FromNames(names)
	diff := event.Diff(previous, desired)
	if !diff.Changed() {
		return diff, nil
	}

	existing := make(map[string]*event.Event, len(previous.Events))
	for _, evt := range previous.Events {
		existing[evt.ID] = evt
	}
	for _, evt := range desired {
		if old, ok := existing[evt.ID]; ok {
			evt.CreatedAt = old.CreatedAt
		}
	}

	if err := s.SaveCatalog(event.CreateCatalog(desired, "")); err != nil {
		return nil, fmt.Errorf("saving catalog: %w", err)
	}
	return diff, nil
}

// All implements event.Source
func (s *Storage) All(ctx context.Context) ([]*event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	catalog, err := s.LoadCatalog()
	if err != nil {
		return nil, err
	}
	return catalog.Events, nil
}
