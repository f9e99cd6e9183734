// Package cli implements the command-line interface for events-board.
//
// The cli package provides the Cobra-based commands: serve runs the HTTP
// board (optionally as an OS service), list prints the current listing in
// text, JSON or YAML, and seed writes the default catalogue into a
// model-backed store. Settings come from the config package.
package cli
