// Package metrics exposes Prometheus metrics for the rate limiter, the
// submission client, and the journal.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus collectors for crptgate. All collectors
// are registered on a private registry so multiple instances (e.g. in
// tests) do not collide.
type Metrics struct {
	registry *prometheus.Registry

	// Rate limiter
	admissions  prometheus.Counter
	waitSeconds prometheus.Histogram
	inWindow    prometheus.Gauge

	// Submissions
	submissions        *prometheus.CounterVec
	submissionDuration *prometheus.HistogramVec

	// Spool
	spoolPending prometheus.Gauge
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		admissions: factory.NewCounter(prometheus.CounterOpts{
			Name: "crptgate_ratelimit_admissions_total",
			Help: "Total number of rate limiter admissions granted",
		}),

		waitSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "crptgate_ratelimit_wait_seconds",
			Help:    "Time callers spent blocked waiting for rate limiter admission",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms .. ~32s
		}),

		inWindow: factory.NewGauge(prometheus.GaugeOpts{
			Name: "crptgate_ratelimit_in_window",
			Help: "Number of admissions currently inside the rolling window",
		}),

		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crptgate_submissions_total",
			Help: "Total number of document submissions by format and outcome",
		}, []string{"format", "outcome"}),

		submissionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crptgate_submission_duration_seconds",
			Help:    "End-to-end submission duration including admission wait",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),

		spoolPending: factory.NewGauge(prometheus.GaugeOpts{
			Name: "crptgate_spool_pending",
			Help: "Number of documents waiting in the submission spool",
		}),
	}
}

// RegisterJournalDropped exposes the journal recorder's drop counter as
// crptgate_journal_dropped_total. The function is sampled at scrape time.
func (m *Metrics) RegisterJournalDropped(fn func() int64) {
	promauto.With(m.registry).NewCounterFunc(prometheus.CounterOpts{
		Name: "crptgate_journal_dropped_total",
		Help: "Journal records dropped because the recorder buffer was full",
	}, func() float64 {
		return float64(fn())
	})
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveAdmission records a granted admission and the time spent waiting
// for it.
func (m *Metrics) ObserveAdmission(wait time.Duration) {
	m.admissions.Inc()
	m.waitSeconds.Observe(wait.Seconds())
}

// SetInWindow updates the in-window admissions gauge.
func (m *Metrics) SetInWindow(n int) {
	m.inWindow.Set(float64(n))
}

// ObserveSubmission records a completed submission attempt.
func (m *Metrics) ObserveSubmission(format, outcome string, duration time.Duration) {
	m.submissions.WithLabelValues(format, outcome).Inc()
	m.submissionDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// SetSpoolPending updates the pending-spool gauge.
func (m *Metrics) SetSpoolPending(n int64) {
	m.spoolPending.Set(float64(n))
}
