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

var _ ports.GradingStrategy = (*SingleChoiceStrategy)(nil)

// SingleChoiceStrategy grades single-letter multiple-choice questions by
// deterministic exact comparison against the answer key. The submitted
// answer is trimmed of surrounding whitespace and case-folded before the
// comparison, so "b " matches a key of "B". A missing or empty submission
// never matches.
//
// SingleChoiceStrategy is stateless and safe for concurrent use. It emits
// OpenTelemetry spans with the grading outcome for observability.
type SingleChoiceStrategy struct {
	// name is the unique identifier for this strategy instance.
	name string
	// config contains the validated configuration parameters.
	config SingleChoiceConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// SingleChoiceConfig controls string normalization during letter matching.
// Configuration is immutable after strategy creation and safe for
// concurrent access.
type SingleChoiceConfig struct {
	// CaseSensitive controls case sensitivity during comparison.
	// When false, Unicode-aware case folding is applied to both sides.
	// Default: false.
	CaseSensitive bool `yaml:"case_sensitive" json:"case_sensitive"`

	// TrimWhitespace controls leading/trailing whitespace normalization
	// of the submitted answer. Default: true.
	TrimWhitespace bool `yaml:"trim_whitespace" json:"trim_whitespace"`
}

// DefaultSingleChoiceConfig returns the SEMF defaults: case-insensitive
// matching with whitespace trimming enabled.
func DefaultSingleChoiceConfig() SingleChoiceConfig {
	return SingleChoiceConfig{CaseSensitive: false, TrimWhitespace: true}
}

// NewSingleChoiceStrategy creates a SingleChoiceStrategy with validated
// configuration. Returns ErrEmptyStrategyName if name is empty.
func NewSingleChoiceStrategy(name string, config SingleChoiceConfig) (*SingleChoiceStrategy, error) {
	if name == "" {
		return nil, ErrEmptyStrategyName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &SingleChoiceStrategy{
		name:   name,
		config: config,
		tracer: otel.Tracer("single-choice-strategy"),
	}, nil
}

// Name returns the unique identifier for this strategy instance.
func (s *SingleChoiceStrategy) Name() string { return s.name }

// Grade compares the submitted answer against the question's expected
// letter. The point is awarded only on exact equality after the
// configured normalization. An empty submission grades as incorrect, not
// as an error.
func (s *SingleChoiceStrategy) Grade(ctx context.Context, question domain.Question, submitted string) (domain.QuestionScore, error) {
	_, span := s.tracer.Start(ctx, "SingleChoiceStrategy.Grade",
		trace.WithAttributes(
			attribute.String("strategy.type", "single_choice"),
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

	prepared := s.prepareString(submitted)
	expected := s.prepareString(question.Expected)

	score := domain.QuestionScore{Reasoning: "no match"}
	if prepared != "" && prepared == expected {
		score = domain.QuestionScore{Correct: true, Reasoning: "exact match"}
	}

	span.SetAttributes(attribute.Bool("grade.correct", score.Correct))
	return score, nil
}

// prepareString normalizes a string according to the strategy's
// configuration: whitespace trimming first, then Unicode case folding.
func (s *SingleChoiceStrategy) prepareString(v string) string {
	if s.config.TrimWhitespace {
		v = strings.TrimSpace(v)
	}
	if !s.config.CaseSensitive {
		v = foldCaser.String(v)
	}
	return v
}

// Validate verifies the strategy is properly configured and ready for
// grading. Safe for concurrent use.
func (s *SingleChoiceStrategy) Validate() error {
	if err := validate.Struct(s.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration into the strategy's
// config with validation. The configuration remains unchanged on error.
func (s *SingleChoiceStrategy) UnmarshalParameters(params yaml.Node) error {
	var config SingleChoiceConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	s.config = config
	return nil
}

// NewSingleChoiceFromConfig creates a SingleChoiceStrategy from a
// configuration map. This is the boundary adapter for YAML configuration:
// missing keys keep their defaults.
func NewSingleChoiceFromConfig(id string, config map[string]any) (ports.GradingStrategy, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultSingleChoiceConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewSingleChoiceStrategy(id, cfg)
}
