package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pfrederiksen/events-board/internal/event"
)

// EventRecord is the events table row
type EventRecord struct {
	gorm.Model

	// Deterministic event ID, see event.GenerateID.
	EventID  string `gorm:"uniqueIndex;size:40"`
	Name     string `gorm:"not null"`
	Position int    `gorm:"index"`
}

// TableName pins the table name
func (EventRecord) TableName() string {
	return "events"
}

func (r *EventRecord) toEvent() *event.Event {
	return &event.Event{
		ID:        r.EventID,
		Name:      r.Name,
		Position:  r.Position,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// SQLStore keeps the catalog in a SQLite database
type SQLStore struct {
	db *gorm.DB
}

// OpenSQL opens (creating if needed) the SQLite database at dsn and
// migrates the events table.
func OpenSQL(dsn string) (*SQLStore, error) {
	dsn, err := ExpandHome(dsn)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&EventRecord{}); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// Seed makes the events table match names and reports what changed
func (s *SQLStore) Seed(ctx context.Context, names []string) (*event.DiffResult, error) {
	var diff *event.DiffResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []EventRecord
		if err := tx.Order("position").Find(&rows).Error; err != nil {
			return fmt.Errorf("loading events: %w", err)
		}

		current := make([]*event.Event, 0, len(rows))
		for i := range rows {
			current = append(current, rows[i].toEvent())
		}

		desired := event.FromNames(names)
		diff = event.Diff(event.CreateCatalog(current, ""), desired)

		for _, evt := range diff.Removed {
			if err := tx.Unscoped().Where("event_id = ?", evt.ID).Delete(&EventRecord{}).Error; err != nil {
				return fmt.Errorf("removing event %q: %w", evt.Name, err)
			}
		}

		for _, evt := range desired {
			rec := EventRecord{EventID: evt.ID}
			err := tx.Where(EventRecord{EventID: evt.ID}).
				Assign(map[string]interface{}{"name": evt.Name, "position": evt.Position}).
				FirstOrCreate(&rec).Error
			if err != nil {
				return fmt.Errorf("saving event %q: %w", evt.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return diff, nil
}

// All implements event.Source
func (s *SQLStore) All(ctx context.Context) ([]*event.Event, error) {
	var rows []EventRecord
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	events := make([]*event.Event, 0, len(rows))
	for i := range rows {
		events = append(events, rows[i].toEvent())
	}
	return events, nil
}

// Close releases the underlying database handle
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
