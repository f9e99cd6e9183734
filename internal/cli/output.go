package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/events-board/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", s)
	}
}

// WriteOutput writes the listing in the specified format
func WriteOutput(w io.Writer, listing *event.Listing, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, listing)
	case FormatYAML:
		return writeYAML(w, listing)
	case FormatText:
		return writeText(w, listing)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the listing as JSON
func writeJSON(w io.Writer, listing *event.Listing) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(listing)
}

// writeYAML outputs the listing as YAML
func writeYAML(w io.Writer, listing *event.Listing) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(listing); err != nil {
		return err
	}
	return encoder.Close()
}

// writeText outputs the listing as human-readable text
func writeText(w io.Writer, listing *event.Listing) error {
	if len(listing.Events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	fmt.Fprintln(w, "Events:")
	for _, name := range listing.Events {
		fmt.Fprintf(w, "  %s\n", name)
	}

	if listing.RenderedAt != nil {
		fmt.Fprintf(w, "\nRendered at: %s\n", listing.RenderedAt.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(w, "\nTotal: %d events\n", len(listing.Events))

	return nil
}

// writeSeedResult reports what a seed run changed
func writeSeedResult(w io.Writer, diff *event.DiffResult) {
	if !diff.Changed() {
		fmt.Fprintln(w, "Catalog already up to date.")
		return
	}
	for _, evt := range diff.Added {
		fmt.Fprintf(w, "ADDED: %s\n", evt.Name)
	}
	for _, evt := range diff.Removed {
		fmt.Fprintf(w, "REMOVED: %s\n", evt.Name)
	}
	for _, evt := range diff.Moved {
		fmt.Fprintf(w, "MOVED: %s (now #%d)\n", evt.Name, evt.Position+1)
	}
	fmt.Fprintf(w, "\nTotal: %d added, %d removed, %d moved\n", len(diff.Added), len(diff.Removed), len(diff.Moved))
}
