package ports

import "time"

// MetricsCollector defines the interface for collecting operational
// metrics from the scoring engine. Implementations should integrate with
// observability platforms like Prometheus or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	// This is useful for tracking events like scorings performed,
	// levels assigned, or tie-break adjustments fired.
	RecordCounter(metric string, value float64, labels map[string]string)
}
