// Package metrics exposes Prometheus collectors for the events board.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "events_board"

// Metrics holds the board's collectors and the registry they live in
type Metrics struct {
	Registry *prometheus.Registry

	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	listedEvents prometheus.Gauge
}

// New creates a registry with the board's collectors plus Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
	}

	m.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests handled, by route and status code",
	}, []string{"route", "code"})
	m.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Time spent handling HTTP requests",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	m.listedEvents = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "listed_events",
		Help:      "Number of events in the most recent listing",
	})

	m.Registry.MustRegister(
		m.requests,
		m.duration,
		m.listedEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one handled request
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// SetListedEvents records the size of the latest listing
func (m *Metrics) SetListedEvents(n int) {
	m.listedEvents.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
