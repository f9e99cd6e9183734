package cli

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/events-board/internal/config"
	"github.com/pfrederiksen/events-board/internal/event"
	"github.com/pfrederiksen/events-board/internal/storage"
)

// seedableSource is a model-backed source that can load a catalogue
type seedableSource interface {
	event.Source
	Seed(ctx context.Context, names []string) (*event.DiffResult, error)
}

// openSource returns the event source named by cfg and a func releasing it
func openSource(cfg *config.Config) (event.Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Source {
	case config.SourceStatic:
		return event.StaticSource{}, noop, nil
	case config.SourceJSON:
		store, err := storage.New(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing storage: %w", err)
		}
		return store, noop, nil
	case config.SourceSQLite:
		store, err := storage.OpenSQL(cfg.SQLiteDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing storage: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownSource, cfg.Source)
	}
}
