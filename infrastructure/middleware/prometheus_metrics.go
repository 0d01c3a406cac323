// Package middleware provides cross-cutting concerns for the scoring
// engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides real-time monitoring of scoring volume, grading
// latency, level distribution, and tie-break frequency.
type PrometheusMetrics struct {
	scoringsTotal    *prometheus.CounterVec
	levelAssignments *prometheus.CounterVec
	tieBreaksTotal   *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	gradingsTotal    *prometheus.CounterVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance registered in
// the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWith(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsWith creates a PrometheusMetrics instance registered
// in the given registerer. Tests use this with a private registry to keep
// metric registration isolated.
func NewPrometheusMetricsWith(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		scoringsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "semf_scorings_total",
				Help: "Total number of answer sets scored.",
			},
			[]string{"exam"},
		),
		levelAssignments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "semf_level_assigned_total",
				Help: "Levels assigned, per skill and level.",
			},
			[]string{"skill", "level"},
		),
		tieBreaksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "semf_tie_breaks_total",
				Help: "Tie-break adjustments applied, per skill.",
			},
			[]string{"skill"},
		),
		operationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "semf_operation_duration_seconds",
				Help:    "Execution time of scoring engine operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		gradingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "semf_gradings_total",
				Help: "Individual question gradings, per strategy and outcome.",
			},
			[]string{"strategy", "outcome"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// operation latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string, duration time.Duration, labels map[string]string,
) {
	pm.operationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// the Prometheus counter matching the metric name. Unknown metric names
// are ignored rather than failing, keeping collection best-effort.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "scorings_total":
		pm.scoringsTotal.WithLabelValues(labels["exam"]).Add(value)
	case "level_assigned_total":
		pm.levelAssignments.WithLabelValues(labels["skill"], labels["level"]).Add(value)
	case "tie_breaks_total":
		pm.tieBreaksTotal.WithLabelValues(labels["skill"]).Add(value)
	case "gradings_total":
		pm.gradingsTotal.WithLabelValues(labels["strategy"], labels["outcome"]).Add(value)
	}
}
