// Package storage provides model-backed event sources.
//
// Storage persists the catalogue as a JSON file (catalog.json) under a data
// directory, defaulting to ~/.local/share/events-board/. SQLStore keeps the
// same catalogue in a SQLite table through gorm. Both implement event.Source
// and can be seeded with the default event names.
package storage
