package middleware

import (
	"context"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/domain"
	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.GradingStrategy = (*MetricsStrategy)(nil)

// MetricsStrategy decorates a GradingStrategy with per-question metrics:
// grading latency and an outcome counter. The wrapped strategy's grading
// behavior is unchanged, so the decorator can be layered onto any policy
// without affecting scores.
type MetricsStrategy struct {
	// next is the wrapped grading strategy.
	next ports.GradingStrategy
	// collector receives the recorded metrics.
	collector ports.MetricsCollector
}

// NewMetricsStrategy wraps a strategy with metrics collection. A nil
// collector returns the strategy unwrapped, so callers can chain the
// constructor unconditionally.
func NewMetricsStrategy(next ports.GradingStrategy, collector ports.MetricsCollector) ports.GradingStrategy {
	if collector == nil {
		return next
	}
	return &MetricsStrategy{next: next, collector: collector}
}

// Name returns the wrapped strategy's identifier.
func (m *MetricsStrategy) Name() string { return m.next.Name() }

// Grade delegates to the wrapped strategy, recording latency and outcome.
func (m *MetricsStrategy) Grade(ctx context.Context, question domain.Question, submitted string) (domain.QuestionScore, error) {
	start := time.Now()
	score, err := m.next.Grade(ctx, question, submitted)

	labels := map[string]string{"strategy": m.next.Name()}
	m.collector.RecordLatency("grade", time.Since(start), labels)

	outcome := "incorrect"
	switch {
	case err != nil:
		outcome = "error"
	case score.Correct:
		outcome = "correct"
	}
	m.collector.RecordCounter("gradings_total", 1, map[string]string{
		"strategy": m.next.Name(),
		"outcome":  outcome,
	})

	return score, err
}

// Validate delegates to the wrapped strategy.
func (m *MetricsStrategy) Validate() error { return m.next.Validate() }

// UnmarshalParameters delegates to the wrapped strategy.
func (m *MetricsStrategy) UnmarshalParameters(params yaml.Node) error {
	return m.next.UnmarshalParameters(params)
}
