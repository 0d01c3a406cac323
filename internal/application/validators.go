package application

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// semverPattern matches the semantic version strings accepted for the
// configuration schema version, with an optional leading "v".
var semverPattern = regexp.MustCompile(`^v?\d+\.\d+\.\d+$`)

// registerCustomValidators installs the semantic validators used beyond
// basic struct tags: "semver" for schema versions and "semflevel" for
// level identifiers.
func registerCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("semver", validateSemver); err != nil {
		return fmt.Errorf("failed to register semver validator: %w", err)
	}
	if err := v.RegisterValidation("semflevel", validateSEMFLevel); err != nil {
		return fmt.Errorf("failed to register semflevel validator: %w", err)
	}
	return nil
}

// validateSemver checks that a field holds a semantic version string.
func validateSemver(fl validator.FieldLevel) bool {
	return semverPattern.MatchString(fl.Field().String())
}

// validateSEMFLevel checks that a field holds one of the five SEMF level
// identifiers.
func validateSEMFLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "S1", "S2", "S3", "S4", "S5":
		return true
	}
	return false
}
