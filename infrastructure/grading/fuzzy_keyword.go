package grading

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/domain"
	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/ports"
)

var _ ports.GradingStrategy = (*FuzzyKeywordStrategy)(nil)

// FuzzyKeywordStrategy is a typo-tolerant variant of the keyword
// heuristic. A keyword counts as a hit when it appears as a substring of
// the lower-cased answer, or when any whitespace-separated word of the
// answer is within MaxDistance Levenshtein edits of the keyword. The
// point is awarded under the same hit and length thresholds as
// KeywordStrategy.
//
// The standard SEMF exam does not use this strategy; it is registered so
// that alternative exam forms can opt into typo tolerance through
// configuration without touching the aggregation logic.
// FuzzyKeywordStrategy is stateless and safe for concurrent use.
type FuzzyKeywordStrategy struct {
	// name is the unique identifier for this strategy instance.
	name string
	// config contains the validated configuration parameters.
	config FuzzyKeywordConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// FuzzyKeywordConfig defines the thresholds of the typo-tolerant keyword
// heuristic. All fields are validated during creation and parameter
// unmarshaling.
type FuzzyKeywordConfig struct {
	// MinHits is the minimum number of distinct keywords that must hit.
	// Default: 2.
	MinHits int `yaml:"min_hits" json:"min_hits" validate:"required,min=1"`

	// MinLength is the minimum length in bytes of the raw submitted
	// answer. Default: 20.
	MinLength int `yaml:"min_length" json:"min_length" validate:"required,min=1"`

	// MaxDistance is the maximum Levenshtein distance at which an answer
	// word still counts as a keyword hit. Default: 1.
	MaxDistance int `yaml:"max_distance" json:"max_distance" validate:"min=0,max=3"`
}

// DefaultFuzzyKeywordConfig returns the defaults: the standard keyword
// thresholds with single-edit typo tolerance.
func DefaultFuzzyKeywordConfig() FuzzyKeywordConfig {
	return FuzzyKeywordConfig{MinHits: 2, MinLength: 20, MaxDistance: 1}
}

// NewFuzzyKeywordStrategy creates a FuzzyKeywordStrategy with validated
// configuration. Returns ErrEmptyStrategyName if name is empty.
func NewFuzzyKeywordStrategy(name string, config FuzzyKeywordConfig) (*FuzzyKeywordStrategy, error) {
	if name == "" {
		return nil, ErrEmptyStrategyName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &FuzzyKeywordStrategy{
		name:   name,
		config: config,
		tracer: otel.Tracer("fuzzy-keyword-strategy"),
	}, nil
}

// Name returns the unique identifier for this strategy instance.
func (s *FuzzyKeywordStrategy) Name() string { return s.name }

// Grade counts exact and near-miss keyword hits and awards the point when
// both thresholds are met. A missing submission grades as incorrect.
func (s *FuzzyKeywordStrategy) Grade(ctx context.Context, question domain.Question, submitted string) (domain.QuestionScore, error) {
	_, span := s.tracer.Start(ctx, "FuzzyKeywordStrategy.Grade",
		trace.WithAttributes(
			attribute.String("strategy.type", "fuzzy_keyword"),
			attribute.String("strategy.id", s.name),
			attribute.Int("question.id", question.ID),
			attribute.Int("config.max_distance", s.config.MaxDistance),
		),
	)
	defer span.End()

	if len(question.Keywords) == 0 {
		err := fmt.Errorf("question %d: %w", question.ID, ErrMissingKeywords)
		span.RecordError(err)
		return domain.QuestionScore{}, err
	}

	lowered := strings.ToLower(submitted)
	answerWords := strings.Fields(lowered)

	hits := 0
	for _, keyword := range question.Keywords {
		if keyword == "" {
			continue
		}
		if s.matches(lowered, answerWords, strings.ToLower(keyword)) {
			hits++
		}
	}

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

// matches reports whether the keyword hits the answer, first by substring
// containment and then by per-word edit distance.
func (s *FuzzyKeywordStrategy) matches(lowered string, answerWords []string, keyword string) bool {
	if strings.Contains(lowered, keyword) {
		return true
	}
	if s.config.MaxDistance == 0 {
		return false
	}
	for _, word := range answerWords {
		if levenshtein.ComputeDistance(word, keyword) <= s.config.MaxDistance {
			return true
		}
	}
	return false
}

// Validate verifies the strategy is properly configured and ready for
// grading. Safe for concurrent use.
func (s *FuzzyKeywordStrategy) Validate() error {
	if err := validate.Struct(s.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration into the strategy's
// config with validation. The configuration remains unchanged on error.
func (s *FuzzyKeywordStrategy) UnmarshalParameters(params yaml.Node) error {
	var config FuzzyKeywordConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	s.config = config
	return nil
}

// NewFuzzyKeywordFromConfig creates a FuzzyKeywordStrategy from a
// configuration map. Missing keys keep their defaults.
func NewFuzzyKeywordFromConfig(id string, config map[string]any) (ports.GradingStrategy, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultFuzzyKeywordConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewFuzzyKeywordStrategy(id, cfg)
}
