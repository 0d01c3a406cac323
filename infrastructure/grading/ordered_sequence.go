package grading

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/domain"
	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/ports"
)

var _ ports.GradingStrategy = (*OrderedSequenceStrategy)(nil)

// OrderedSequenceStrategy grades drag-reorder questions whose answer is a
// comma-and-space-delimited letter sequence such as "B, C, D, A". The
// submitted answer is trimmed of surrounding whitespace only; no case
// folding or separator normalization is applied, so a submission that
// deviates from the key's exact formatting is a non-match. The input
// capture layer is responsible for serializing the reorder result in the
// canonical "A, B, C, D" form.
//
// OrderedSequenceStrategy is stateless and safe for concurrent use.
type OrderedSequenceStrategy struct {
	// name is the unique identifier for this strategy instance.
	name string
	// config contains the validated configuration parameters.
	config OrderedSequenceConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// OrderedSequenceConfig controls submission normalization before the
// strict comparison.
type OrderedSequenceConfig struct {
	// TrimWhitespace controls leading/trailing whitespace trimming of the
	// submitted answer. The key itself is never altered. Default: true.
	TrimWhitespace bool `yaml:"trim_whitespace" json:"trim_whitespace"`
}

// DefaultOrderedSequenceConfig returns the SEMF defaults: trimming
// enabled, everything else strict.
func DefaultOrderedSequenceConfig() OrderedSequenceConfig {
	return OrderedSequenceConfig{TrimWhitespace: true}
}

// NewOrderedSequenceStrategy creates an OrderedSequenceStrategy with
// validated configuration. Returns ErrEmptyStrategyName if name is empty.
func NewOrderedSequenceStrategy(name string, config OrderedSequenceConfig) (*OrderedSequenceStrategy, error) {
	if name == "" {
		return nil, ErrEmptyStrategyName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &OrderedSequenceStrategy{
		name:   name,
		config: config,
		tracer: otel.Tracer("ordered-sequence-strategy"),
	}, nil
}

// Name returns the unique identifier for this strategy instance.
func (s *OrderedSequenceStrategy) Name() string { return s.name }

// Grade awards the point only when the trimmed submission equals the
// key's sequence byte for byte. Missing submissions grade as incorrect.
func (s *OrderedSequenceStrategy) Grade(ctx context.Context, question domain.Question, submitted string) (domain.QuestionScore, error) {
	_, span := s.tracer.Start(ctx, "OrderedSequenceStrategy.Grade",
		trace.WithAttributes(
			attribute.String("strategy.type", "ordered_sequence"),
			attribute.String("strategy.id", s.name),
			attribute.Int("question.id", question.ID),
		),
	)
	defer span.End()

	if question.Expected == "" {
		err := fmt.Errorf("question %d: %w", question.ID, ErrMissingExpected)
		span.RecordError(err)
		return domain.QuestionScore{}, err
	}

	prepared := submitted
	if s.config.TrimWhitespace {
		prepared = strings.TrimSpace(prepared)
	}

	score := domain.QuestionScore{Reasoning: "sequence mismatch"}
	if prepared != "" && prepared == question.Expected {
		score = domain.QuestionScore{Correct: true, Reasoning: "sequence match"}
	}

	span.SetAttributes(attribute.Bool("grade.correct", score.Correct))
	return score, nil
}

// Validate verifies the strategy is properly configured and ready for
// grading. Safe for concurrent use.
func (s *OrderedSequenceStrategy) Validate() error {
	if err := validate.Struct(s.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration into the strategy's
// config with validation. The configuration remains unchanged on error.
func (s *OrderedSequenceStrategy) UnmarshalParameters(params yaml.Node) error {
	var config OrderedSequenceConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	s.config = config
	return nil
}

// NewOrderedSequenceFromConfig creates an OrderedSequenceStrategy from a
// configuration map. Missing keys keep their defaults.
func NewOrderedSequenceFromConfig(id string, config map[string]any) (ports.GradingStrategy, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultOrderedSequenceConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewOrderedSequenceStrategy(id, cfg)
}
