// Package grading provides the deterministic grading strategies that
// implement the ports.GradingStrategy interface for the SEMF scoring
// engine.
package grading

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
)

// Common errors returned by grading strategies.
var (
	// ErrEmptyStrategyName is returned when a strategy is created with an
	// empty name.
	ErrEmptyStrategyName = errors.New("strategy name cannot be empty")

	// ErrMissingExpected is returned when an exact-match policy grades a
	// question that carries no answer-key value.
	ErrMissingExpected = errors.New("question has no expected answer")

	// ErrMissingKeywords is returned when a keyword policy grades a
	// question that carries no keyword set.
	ErrMissingKeywords = errors.New("question has no keyword set")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// foldCaser is a package-level Unicode case folder shared by the
// strategies, avoiding a new caser per string preparation.
var foldCaser = cases.Fold()
