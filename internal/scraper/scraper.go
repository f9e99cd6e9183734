package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/pfrederiksen/events-board/internal/event"
)

const (
	UserAgent = "events-board-cli/1.0 (github.com/pfrederiksen/events-board)"
	Timeout   = 30 * time.Second
)

// Scraper handles fetching and parsing a remote events listing
type Scraper struct {
	client  *resty.Client
	baseURL string
}

// New creates a new Scraper for the board at baseURL
func New(baseURL string) *Scraper {
	client := resty.New().
		SetTimeout(Timeout).
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "text/html")

	return &Scraper{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FetchListing fetches and parses the remote /events page
func (s *Scraper) FetchListing(ctx context.Context) (*event.Listing, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(s.baseURL + "/events")
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	return ParseListing(body)
}

// ParseListing extracts a listing from a rendered events page
func ParseListing(r io.Reader) (*event.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	listing := &event.Listing{
		Events: make([]string, 0),
	}

	doc.Find("ul.events li.event").Each(func(i int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if name != "" {
			listing.Events = append(listing.Events, name)
		}
	})

	if datetime, ok := doc.Find("time.rendered-at").First().Attr("datetime"); ok {
		ts, err := time.Parse(time.RFC3339, datetime)
		if err != nil {
			return nil, fmt.Errorf("parsing rendered-at %q: %w", datetime, err)
		}
		ts = ts.UTC()
		listing.RenderedAt = &ts
	}

	return listing, nil
}
