package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes dashboard metrics through Prometheus.
type Recorder struct {
	reports      *prometheus.CounterVec
	fetchErrors  *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		reports: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datarizzer_reports_total",
				Help: "Total number of reports computed, by verdict",
			},
			[]string{"verdict"},
		),
		fetchErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datarizzer_fetch_errors_total",
				Help: "Total number of failed market-data fetches",
			},
			[]string{"source"},
		),
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "datarizzer_fetch_duration_seconds",
				Help:    "Duration of market-data fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datarizzer_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "datarizzer_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// RecordReport counts a computed report.
func (r *Recorder) RecordReport(verdict string) {
	r.reports.WithLabelValues(verdict).Inc()
}

// RecordFetch records fetch latency and, when err is non-nil, a failure.
func (r *Recorder) RecordFetch(source string, took time.Duration, err error) {
	r.fetchLatency.WithLabelValues(source).Observe(took.Seconds())
	if err != nil {
		r.fetchErrors.WithLabelValues(source).Inc()
	}
}

// RecordHTTP records a served request.
func (r *Recorder) RecordHTTP(method, path string, status int, took time.Duration) {
	r.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(method, path).Observe(took.Seconds())
}
