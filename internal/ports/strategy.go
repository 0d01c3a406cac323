// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the engine testable.
package ports

import (
	"context"

	"gopkg.in/yaml.v3"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/domain"
)

// GradingStrategy is the fundamental building block of the scoring
// pipeline. Each strategy implements one grading policy (exact letter
// match, ordered-sequence match, keyword heuristic, essay heuristic) and
// grades a single question at a time.
// Strategies must be stateless and safe for concurrent use.
type GradingStrategy interface {
	// Name returns a unique identifier for this strategy instance.
	// The name is used for tracing, metrics, and configuration.
	Name() string

	// Grade evaluates the submitted answer text against the question's
	// reference data and returns a binary QuestionScore. Missing or
	// malformed submissions must grade as "no point", never as an error;
	// errors are reserved for strategy misconfiguration discovered at
	// grading time.
	//
	// The context parameter allows cancellation and deadline propagation.
	Grade(ctx context.Context, question domain.Question, submitted string) (domain.QuestionScore, error)

	// Validate checks that the strategy is properly configured and ready
	// for grading. It is typically called during engine construction.
	Validate() error

	// UnmarshalParameters replaces the strategy's configuration with the
	// decoded and validated contents of a YAML node. The configuration
	// must remain unchanged on error.
	UnmarshalParameters(params yaml.Node) error
}

// StrategyFactory creates a GradingStrategy instance from a configuration
// map. The id parameter becomes the strategy's unique name.
type StrategyFactory func(id string, config map[string]any) (GradingStrategy, error)

// StrategyRegistry manages the set of available grading strategy types
// and creates instances from configuration. Implementations must be safe
// for concurrent use.
type StrategyRegistry interface {
	// Register binds a factory to a strategy type identifier.
	// Registering a type that already exists returns an error.
	Register(strategyType string, factory StrategyFactory) error

	// Create instantiates a strategy of the given type with the provided
	// configuration. It returns an error for unknown types or invalid
	// configuration.
	Create(strategyType, id string, config map[string]any) (GradingStrategy, error)

	// List returns the registered strategy type identifiers.
	List() []string
}
