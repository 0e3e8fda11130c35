package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// Upstream metrics
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram

	// Tour metrics
	TourShows prometheus.Gauge
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "setlists_cache_lookups_total",
				Help: "Total number of payload cache lookups by key and result",
			},
			[]string{"key", "result"},
		),
		UpstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "setlists_upstream_requests_total",
				Help: "Total number of requests sent to the setlist.fm API by status code",
			},
			[]string{"code"},
		),
		UpstreamDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "setlists_upstream_request_duration_seconds",
				Help:    "Duration of setlist.fm API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		TourShows: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "setlists_tour_shows",
				Help: "Number of shows in the last assembled tour",
			},
		),
	}
}

// CacheLookup records a cache lookup result ("hit", "miss", "stale", "error").
func (m *Metrics) CacheLookup(key, result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(key, result).Inc()
}

// Upstream records one upstream request.
func (m *Metrics) Upstream(code string, seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(code).Inc()
	m.UpstreamDuration.Observe(seconds)
}

// SetTourShows records the size of the last assembled tour.
func (m *Metrics) SetTourShows(n int) {
	if m == nil {
		return
	}
	m.TourShows.Set(float64(n))
}
