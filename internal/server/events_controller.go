package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/pfrederiksen/events-board/internal/event"
	"github.com/pfrederiksen/events-board/internal/logger"
	"github.com/pfrederiksen/events-board/internal/metrics"
)

// EventsController serves the events listing
type EventsController struct {
	Source   event.Source
	Now      func() time.Time
	ShowTime bool

	metrics *metrics.Metrics
	log     *logger.Logger
}

// indexView is what the events/index template receives
type indexView struct {
	Title      string
	Events     []string
	RenderedAt *time.Time
}

// Index renders the listing as HTML, or as JSON when the client asks for it
func (ec *EventsController) Index(c *gin.Context) {
	switch c.NegotiateFormat(binding.MIMEHTML, binding.MIMEJSON) {
	case binding.MIMEJSON:
		ec.IndexJSON(c)
	default:
		ec.IndexHTML(c)
	}
}

// IndexHTML renders the events/index view
func (ec *EventsController) IndexHTML(c *gin.Context) {
	listing, ok := ec.listing(c)
	if !ok {
		renderError(c, http.StatusInternalServerError, "The events could not be loaded.")
		return
	}

	c.HTML(http.StatusOK, "events/index", indexView{
		Title:      "Events",
		Events:     listing.Events,
		RenderedAt: listing.RenderedAt,
	})
}

// IndexJSON renders the listing as JSON
func (ec *EventsController) IndexJSON(c *gin.Context) {
	listing, ok := ec.listing(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "events could not be loaded"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (ec *EventsController) listing(c *gin.Context) (*event.Listing, bool) {
	ctx := c.Request.Context()

	listing, err := event.BuildListing(ctx, ec.Source, ec.Now, ec.ShowTime)
	if err != nil {
		ec.logger(c).Error("Listing events failed", logger.Fields{
			"route": c.FullPath(),
		}, err)
		_ = c.Error(err)
		return nil, false
	}

	if ec.metrics != nil {
		ec.metrics.SetListedEvents(len(listing.Events))
	}
	return listing, true
}

func (ec *EventsController) logger(c *gin.Context) *logger.Logger {
	if l, ok := c.Get(loggerKey); ok {
		return l.(*logger.Logger)
	}
	if ec.log != nil {
		return ec.log
	}
	return logger.Default()
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "errors/show", gin.H{
		"Title":   http.StatusText(status),
		"Status":  http.StatusText(status),
		"Message": message,
	})
}
