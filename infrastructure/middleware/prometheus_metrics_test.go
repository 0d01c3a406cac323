package middleware

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetricsRecordCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(reg)

	pm.RecordCounter("scorings_total", 1, map[string]string{"exam": "SEMF Placement Exam"})
	pm.RecordCounter("scorings_total", 1, map[string]string{"exam": "SEMF Placement Exam"})
	pm.RecordCounter("level_assigned_total", 1, map[string]string{"skill": "overall", "level": "S3"})
	pm.RecordCounter("tie_breaks_total", 1, map[string]string{"skill": "reading_writing"})
	pm.RecordCounter("gradings_total", 1, map[string]string{"strategy": "grammar", "outcome": "correct"})

	assert.InDelta(t, 2.0, testutil.ToFloat64(
		pm.scoringsTotal.WithLabelValues("SEMF Placement Exam")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(
		pm.levelAssignments.WithLabelValues("overall", "S3")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(
		pm.tieBreaksTotal.WithLabelValues("reading_writing")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(
		pm.gradingsTotal.WithLabelValues("grammar", "correct")), 1e-9)
}

func TestPrometheusMetricsIgnoresUnknownMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(reg)

	assert.NotPanics(t, func() {
		pm.RecordCounter("nonexistent_total", 1, nil)
	})
}

func TestPrometheusMetricsRecordLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(reg)

	pm.RecordLatency("score", 25*time.Millisecond, nil)

	count := testutil.CollectAndCount(pm.operationLatency, "semf_operation_duration_seconds")
	assert.Equal(t, 1, count)
}
