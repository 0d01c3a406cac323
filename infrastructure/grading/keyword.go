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

var _ ports.GradingStrategy = (*KeywordStrategy)(nil)

// KeywordStrategy grades short free-text questions with a presence
// heuristic: the submitted answer is lower-cased and each keyword of the
// question's fixed keyword set is checked as a substring. The point is
// awarded when at least MinHits keywords appear and the raw answer (as
// submitted, before lowercasing) is at least MinLength characters long.
//
// This is deliberately approximate, not semantic grading; false positives
// and negatives are expected and acceptable. KeywordStrategy is stateless
// and safe for concurrent use.
type KeywordStrategy struct {
	// name is the unique identifier for this strategy instance.
	name string
	// config contains the validated configuration parameters.
	config KeywordConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// KeywordConfig defines the thresholds of the keyword heuristic.
// All fields are validated during creation and parameter unmarshaling.
type KeywordConfig struct {
	// MinHits is the minimum number of distinct keywords that must appear
	// as substrings of the lower-cased answer. Default: 2.
	MinHits int `yaml:"min_hits" json:"min_hits" validate:"required,min=1"`

	// MinLength is the minimum length in bytes of the raw submitted
	// answer. Default: 20.
	MinLength int `yaml:"min_length" json:"min_length" validate:"required,min=1"`
}

// DefaultKeywordConfig returns the SEMF defaults: at least 2 keyword hits
// and a 20-character minimum answer length.
func DefaultKeywordConfig() KeywordConfig {
	return KeywordConfig{MinHits: 2, MinLength: 20}
}

// NewKeywordStrategy creates a KeywordStrategy with validated
// configuration. Returns ErrEmptyStrategyName if name is empty.
func NewKeywordStrategy(name string, config KeywordConfig) (*KeywordStrategy, error) {
	if name == "" {
		return nil, ErrEmptyStrategyName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &KeywordStrategy{
		name:   name,
		config: config,
		tracer: otel.Tracer("keyword-strategy"),
	}, nil
}

// Name returns the unique identifier for this strategy instance.
func (s *KeywordStrategy) Name() string { return s.name }

// Grade counts keyword hits in the lower-cased answer and awards the
// point when both the hit and length thresholds are met. A missing
// submission counts as the empty string and grades as incorrect.
func (s *KeywordStrategy) Grade(ctx context.Context, question domain.Question, submitted string) (domain.QuestionScore, error) {
	_, span := s.tracer.Start(ctx, "KeywordStrategy.Grade",
		trace.WithAttributes(
			attribute.String("strategy.type", "keyword"),
			attribute.String("strategy.id", s.name),
			attribute.Int("question.id", question.ID),
		),
	)
	defer span.End()

	if len(question.Keywords) == 0 {
		err := fmt.Errorf("question %d: %w", question.ID, ErrMissingKeywords)
		span.RecordError(err)
		return domain.QuestionScore{}, err
	}

	lowered := strings.ToLower(submitted)
	hits := 0
	for _, keyword := range question.Keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			hits++
		}
	}

	// Length is measured on the raw submission, before lowercasing.
	correct := hits >= s.config.MinHits && len(submitted) >= s.config.MinLength

	score := domain.QuestionScore{
		Correct:   correct,
		Reasoning: fmt.Sprintf("keyword hits: %d/%d, length: %d", hits, len(question.Keywords), len(submitted)),
	}

	span.SetAttributes(
		attribute.Bool("grade.correct", score.Correct),
		attribute.Int("grade.keyword_hits", hits),
	)
	return score, nil
}

// Validate verifies the strategy is properly configured and ready for
// grading. Safe for concurrent use.
func (s *KeywordStrategy) Validate() error {
	if err := validate.Struct(s.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration into the strategy's
// config with validation. The configuration remains unchanged on error.
func (s *KeywordStrategy) UnmarshalParameters(params yaml.Node) error {
	var config KeywordConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	s.config = config
	return nil
}

// NewKeywordFromConfig creates a KeywordStrategy from a configuration
// map. Missing keys keep their defaults.
func NewKeywordFromConfig(id string, config map[string]any) (ports.GradingStrategy, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultKeywordConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewKeywordStrategy(id, cfg)
}
