package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveScrape(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.JobStarted()
	m.ObserveScrape("YELP", "SUCCESS", 0.3, 3)
	m.ObserveScrape("YELP", "FAILED", 0.1, 0)
	m.JobFinished()
	m.ProviderError("YELP", "status")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScrapesTotal.WithLabelValues("YELP", "SUCCESS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScrapesTotal.WithLabelValues("YELP", "FAILED")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ScrapedItemsTotal.WithLabelValues("YELP")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderErrorsTotal.WithLabelValues("YELP", "status")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RunningJobs))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.JobStarted()
		m.ObserveScrape("BBB", "SUCCESS", 1, 1)
		m.ObserveHTTP("GET", "/", "200", 0.1)
		m.ProviderError("BBB", "transport")
		m.JobFinished()
	})
}
