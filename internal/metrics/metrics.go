package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector the service exports on /metrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DownloadsTotal    *prometheus.CounterVec
	RatesInserted     prometheus.Counter
	RatesDeleted      prometheus.Counter
	JobRunsTotal      *prometheus.CounterVec
	ProviderLatencies prometheus.Histogram
}

// NewMetrics registers the collectors on reg. Passing prometheus.DefaultRegisterer
// exposes them through promhttp.Handler(); tests pass a fresh registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		DownloadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_downloads_total",
				Help: "Total number of snapshot downloads by outcome (stored, skipped, failed)",
			},
			[]string{"outcome"},
		),

		RatesInserted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rates_inserted_total",
				Help: "Total number of rate rows inserted",
			},
		),

		RatesDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rates_deleted_total",
				Help: "Total number of rate rows removed by retention",
			},
		),

		JobRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scheduled_job_runs_total",
				Help: "Total number of scheduled job runs by job and outcome",
			},
			[]string{"job", "outcome"},
		),

		ProviderLatencies: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "exchange_provider_request_duration_seconds",
				Help:    "Duration of snapshot downloads from the exchange provider",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
