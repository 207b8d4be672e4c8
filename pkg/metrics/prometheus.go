package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	requestsTotal   *prometheus.CounterVec
	fallbacksTotal  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	snapshotOps     *prometheus.CounterVec
	lastRefresh     prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bitsense_requests_total",
				Help: "Upstream API requests by endpoint and result source",
			},
			[]string{"endpoint", "source"},
		),
		fallbacksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bitsense_fallbacks_total",
				Help: "Golden dataset substitutions by endpoint and failure reason",
			},
			[]string{"endpoint", "reason"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bitsense_request_duration_seconds",
				Help:    "Upstream API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		snapshotOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bitsense_snapshot_ops_total",
				Help: "Snapshot store operations by kind and result",
			},
			[]string{"op", "result"},
		),
		lastRefresh: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "bitsense_last_refresh_timestamp_seconds",
				Help: "Unix time of the last completed refresh cycle",
			},
		),
	}
}

// RecordRequest records an upstream request outcome (live, golden, error).
func (r *Recorder) RecordRequest(endpoint, source string) {
	r.requestsTotal.WithLabelValues(endpoint, source).Inc()
}

// RecordFallback records a golden dataset substitution and why it happened.
func (r *Recorder) RecordFallback(endpoint, reason string) {
	r.fallbacksTotal.WithLabelValues(endpoint, reason).Inc()
}

// RecordLatency records upstream request latency in seconds.
func (r *Recorder) RecordLatency(endpoint string, seconds float64) {
	r.requestDuration.WithLabelValues(endpoint).Observe(seconds)
}

// RecordSnapshot records a snapshot store operation (save/load, ok/miss/error).
func (r *Recorder) RecordSnapshot(op, result string) {
	r.snapshotOps.WithLabelValues(op, result).Inc()
}

// RecordRefreshCompleted marks the wall-clock time of a finished refresh cycle.
func (r *Recorder) RecordRefreshCompleted() {
	r.lastRefresh.SetToCurrentTime()
}
