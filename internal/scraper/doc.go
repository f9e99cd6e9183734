// Package scraper reads the events listing back from a running events board.
//
// The scraper package fetches the rendered /events page over HTTP and extracts
// the event names and the rendered-at timestamp from the HTML, so the CLI can
// show what a remote board is serving without a JSON API.
package scraper
