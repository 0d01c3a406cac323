package application

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/infrastructure/grading"
	"github.com/shahdhi/SHaBridge-English-Mastery-Framework/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.StrategyRegistry = (*DefaultStrategyRegistry)(nil)

// DefaultStrategyRegistry implements the StrategyRegistry interface,
// providing a factory for creating grading strategies by type. The
// built-in SEMF policies are pre-registered; additional policies can be
// registered at startup for custom exam forms.
type DefaultStrategyRegistry struct {
	// factories maps strategy type strings to their factory functions.
	factories map[string]ports.StrategyFactory
	// mu protects concurrent access to the factories map.
	mu sync.RWMutex
}

// NewDefaultStrategyRegistry creates a registry with the standard grading
// policies pre-registered: single_choice, ordered_sequence, keyword,
// essay, and fuzzy_keyword.
func NewDefaultStrategyRegistry() *DefaultStrategyRegistry {
	registry := &DefaultStrategyRegistry{
		factories: make(map[string]ports.StrategyFactory),
	}
	registry.registerBuiltinFactories()
	return registry
}

// registerBuiltinFactories registers the standard grading policies
// provided by the framework.
func (r *DefaultStrategyRegistry) registerBuiltinFactories() {
	r.factories["single_choice"] = grading.NewSingleChoiceFromConfig
	r.factories["ordered_sequence"] = grading.NewOrderedSequenceFromConfig
	r.factories["keyword"] = grading.NewKeywordFromConfig
	r.factories["essay"] = grading.NewEssayFromConfig
	r.factories["fuzzy_keyword"] = grading.NewFuzzyKeywordFromConfig
}

// Register binds a factory to a strategy type identifier.
// It returns an error if the type is already registered, preventing
// accidental replacement of built-in policies.
func (r *DefaultStrategyRegistry) Register(strategyType string, factory ports.StrategyFactory) error {
	if strategyType == "" {
		return fmt.Errorf("strategy type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for strategy type %q", strategyType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[strategyType]; exists {
		return fmt.Errorf("strategy type %q is already registered", strategyType)
	}
	r.factories[strategyType] = factory
	return nil
}

// Create instantiates a strategy of the given type with the provided
// configuration map. Unknown types return an error naming the type.
func (r *DefaultStrategyRegistry) Create(strategyType, id string, config map[string]any) (ports.GradingStrategy, error) {
	r.mu.RLock()
	factory, ok := r.factories[strategyType]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown strategy type: %s", strategyType)
	}

	strategy, err := factory(id, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s strategy %q: %w", strategyType, id, err)
	}
	return strategy, nil
}

// List returns the registered strategy type identifiers in sorted order.
func (r *DefaultStrategyRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
