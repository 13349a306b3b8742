package cmd

import (
	"errors"

	"github.com/specrun/specrun/packages/core/discover"
	"github.com/specrun/specrun/packages/core/matcher"
	"github.com/specrun/specrun/packages/core/parser"
	"github.com/specrun/specrun/packages/core/plan"
)

// Exit codes for the specrun CLI
const (
	// ExitSuccess indicates the whole run passed
	ExitSuccess = 0

	// ExitScenarioFailure indicates one or more scenarios failed
	ExitScenarioFailure = 1

	// ExitParseError indicates a feature file could not be parsed
	ExitParseError = 2

	// ExitConfigError indicates bad configuration or arguments,
	// including missing paths and invalid scenario filters
	ExitConfigError = 3

	// ExitNoFeatureFiles indicates discovery found nothing to run
	ExitNoFeatureFiles = 4

	// ExitStepMatchError indicates an unmatched or ambiguous step
	ExitStepMatchError = 5
)

// exitCodeFor maps the error taxonomy onto process exit codes.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, discover.ErrNoFeatureFiles) {
		return ExitNoFeatureFiles
	}

	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return ExitParseError
	}

	var pathErr *discover.PathNotFoundError
	var rangeErr *plan.ScenarioOutOfRangeError
	var filterErr *plan.MalformedFilterError
	if errors.As(err, &pathErr) || errors.As(err, &rangeErr) || errors.As(err, &filterErr) {
		return ExitConfigError
	}

	var unmatched *matcher.UnmatchedStepError
	var ambiguous *matcher.AmbiguousStepError
	if errors.As(err, &unmatched) || errors.As(err, &ambiguous) {
		return ExitStepMatchError
	}

	return ExitScenarioFailure
}
