// Package metrics tracks scrape and storage counters as Prometheus collectors.
//
// A Metrics value owns its own registry so tests and multiple servers never
// collide on the global one. All methods are safe on a nil *Metrics, which lets
// callers treat metrics as optional.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wimbledon"

// Metrics groups the collectors updated by the scrape pipeline
type Metrics struct {
	registry      *prometheus.Registry
	runs          *prometheus.CounterVec
	rowsSkipped   prometheus.Counter
	upserts       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	lastSuccess   *prometheus.GaugeVec
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_runs_total",
			Help:      "Scrape invocations by mode and outcome.",
		}, []string{"mode", "outcome"}),
		rowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Table rows dropped because they did not form a complete record.",
		}),
		upserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upserts_total",
			Help:      "Record upserts by result.",
		}, []string{"result"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching the source document.",
			Buckets:   prometheus.DefBuckets,
		}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run by mode.",
		}, []string{"mode"}),
	}

	m.registry.MustRegister(
		m.runs,
		m.rowsSkipped,
		m.upserts,
		m.fetchDuration,
		m.lastSuccess,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry holding every collector
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun counts one invocation and stamps the last success time
func (m *Metrics) ObserveRun(mode, outcome string, success bool) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(mode, outcome).Inc()
	if success {
		m.lastSuccess.WithLabelValues(mode).SetToCurrentTime()
	}
}

// AddSkipped counts rows dropped during record building
func (m *Metrics) AddSkipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rowsSkipped.Add(float64(n))
}

// ObserveUpsert counts an upsert attempt
func (m *Metrics) ObserveUpsert(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.upserts.WithLabelValues(result).Inc()
}

// ObserveFetch records how long a source fetch took
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.Observe(d.Seconds())
}
