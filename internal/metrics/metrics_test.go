package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CacheLookup("tour", "hit")
	m.CacheLookup("tour", "hit")
	m.CacheLookup("tour", "miss")
	m.Upstream("200", 0.2)
	m.SetTourShows(42)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("tour", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("tour", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("200")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.TourShows))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheLookup("k", "hit")
		m.Upstream("500", 1)
		m.SetTourShows(1)
	})
}
