// Package event provides the event catalogue served by the events board.
//
// The event package defines the Event model, the Source abstraction the index
// action reads from, and the Listing handed to the view layer. The default
// catalogue is a fixed, ordered literal; model-backed sources in the storage
// package return the same shape. Each event carries a deterministic SHA1-based
// ID derived from its name so stored catalogues stay comparable across runs.
package event
