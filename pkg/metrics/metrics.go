package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ScrapesTotal        *prometheus.CounterVec
	ScrapeDuration      *prometheus.HistogramVec
	ScrapedItemsTotal   *prometheus.CounterVec
	ProviderErrorsTotal *prometheus.CounterVec
	RunningJobs         prometheus.Gauge
}

// New registers the metrics on reg. Pass prometheus.DefaultRegisterer in production
// and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		ScrapesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scrapes_total",
				Help: "Total number of scrape invocations by outcome.",
			},
			[]string{"source", "status"},
		),
		ScrapeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scrape_duration_seconds",
				Help:    "Duration of provider fetches.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"source"},
		),
		ScrapedItemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scraped_items_total",
				Help: "Total number of normalized items persisted.",
			},
			[]string{"source"},
		),
		ProviderErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_errors_total",
				Help: "Total number of failed provider calls.",
			},
			[]string{"source", "type"},
		),
		RunningJobs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "scrape_jobs_running",
				Help: "Current number of scrape jobs in RUNNING state.",
			},
		),
	}
}

func (m *Metrics) ObserveHTTP(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}

func (m *Metrics) JobStarted() {
	if m == nil {
		return
	}
	m.RunningJobs.Inc()
}

func (m *Metrics) JobFinished() {
	if m == nil {
		return
	}
	m.RunningJobs.Dec()
}

// ObserveScrape records one finished invocation.
func (m *Metrics) ObserveScrape(source, status string, seconds float64, items int) {
	if m == nil {
		return
	}
	m.ScrapesTotal.WithLabelValues(source, status).Inc()
	m.ScrapeDuration.WithLabelValues(source).Observe(seconds)
	if items > 0 {
		m.ScrapedItemsTotal.WithLabelValues(source).Add(float64(items))
	}
}

func (m *Metrics) ProviderError(source, errorType string) {
	if m == nil {
		return
	}
	m.ProviderErrorsTotal.WithLabelValues(source, errorType).Inc()
}
