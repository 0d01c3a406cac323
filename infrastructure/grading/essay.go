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

var _ ports.GradingStrategy = (*EssayStrategy)(nil)

// defaultSignalWords are the argument-signal words the SEMF essay
// heuristic looks for in the lower-cased essay text.
var defaultSignalWords = []string{"advantage", "disadvantage", "benefit", "challenge"}

// EssayStrategy grades the essay question with a structural heuristic:
// the trimmed answer is split on whitespace to approximate a word count,
// and the point is awarded when the count falls inside the configured
// window and the lower-cased text contains at least one argument-signal
// word. An empty or whitespace-only answer yields word count 0 and never
// qualifies.
//
// Like the keyword heuristic this is a presence test, not semantic
// grading. EssayStrategy is stateless and safe for concurrent use.
type EssayStrategy struct {
	// name is the unique identifier for this strategy instance.
	name string
	// config contains the validated configuration parameters.
	config EssayConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// EssayConfig defines the word-count window and signal-word set of the
// essay heuristic. All fields are validated during creation and parameter
// unmarshaling.
type EssayConfig struct {
	// MinWords is the inclusive lower bound of the word-count window.
	// Default: 80.
	MinWords int `yaml:"min_words" json:"min_words" validate:"required,min=1"`

	// MaxWords is the inclusive upper bound of the word-count window.
	// Default: 200.
	MaxWords int `yaml:"max_words" json:"max_words" validate:"required,gtefield=MinWords"`

	// SignalWords are the argument-signal words, at least one of which
	// must appear in the lower-cased essay.
	SignalWords []string `yaml:"signal_words" json:"signal_words" validate:"required,min=1,dive,min=1"`
}

// DefaultEssayConfig returns the SEMF defaults: an 80-200 word window and
// the standard argument-signal word set.
func DefaultEssayConfig() EssayConfig {
	signals := make([]string, len(defaultSignalWords))
	copy(signals, defaultSignalWords)
	return EssayConfig{MinWords: 80, MaxWords: 200, SignalWords: signals}
}

// NewEssayStrategy creates an EssayStrategy with validated configuration.
// Returns ErrEmptyStrategyName if name is empty.
func NewEssayStrategy(name string, config EssayConfig) (*EssayStrategy, error) {
	if name == "" {
		return nil, ErrEmptyStrategyName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &EssayStrategy{
		name:   name,
		config: config,
		tracer: otel.Tracer("essay-strategy"),
	}, nil
}

// Name returns the unique identifier for this strategy instance.
func (s *EssayStrategy) Name() string { return s.name }

// Grade approximates the essay's word count and awards the point when the
// count is inside the window and a signal word is present. The essay
// question carries no answer key, so the question's reference data is not
// consulted.
func (s *EssayStrategy) Grade(ctx context.Context, question domain.Question, submitted string) (domain.QuestionScore, error) {
	_, span := s.tracer.Start(ctx, "EssayStrategy.Grade",
		trace.WithAttributes(
			attribute.String("strategy.type", "essay"),
			attribute.String("strategy.id", s.name),
			attribute.Int("question.id", question.ID),
		),
	)
	defer span.End()

	words := strings.Fields(strings.TrimSpace(submitted))
	wordCount := len(words)

	lowered := strings.ToLower(submitted)
	hasSignal := false
	for _, signal := range s.config.SignalWords {
		if strings.Contains(lowered, strings.ToLower(signal)) {
			hasSignal = true
			break
		}
	}

	correct := wordCount >= s.config.MinWords && wordCount <= s.config.MaxWords && hasSignal

	score := domain.QuestionScore{
		Correct:   correct,
		Reasoning: fmt.Sprintf("word count: %d, signal word present: %t", wordCount, hasSignal),
	}

	span.SetAttributes(
		attribute.Bool("grade.correct", score.Correct),
		attribute.Int("grade.word_count", wordCount),
	)
	return score, nil
}

// Validate verifies the strategy is properly configured and ready for
// grading. Safe for concurrent use.
func (s *EssayStrategy) Validate() error {
	if err := validate.Struct(s.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration into the strategy's
// config with validation. The configuration remains unchanged on error.
func (s *EssayStrategy) UnmarshalParameters(params yaml.Node) error {
	var config EssayConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	s.config = config
	return nil
}

// NewEssayFromConfig creates an EssayStrategy from a configuration map.
// Missing keys keep their defaults.
func NewEssayFromConfig(id string, config map[string]any) (ports.GradingStrategy, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultEssayConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewEssayStrategy(id, cfg)
}
