package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specrun/specrun/packages/core/config"
	"github.com/specrun/specrun/packages/core/discover"
	"github.com/specrun/specrun/packages/core/matcher"
	"github.com/specrun/specrun/packages/core/parser"
	"github.com/specrun/specrun/packages/core/plan"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitSuccess},
		{"no feature files", discover.ErrNoFeatureFiles, ExitNoFeatureFiles},
		{"wrapped no feature files", fmt.Errorf("run: %w", discover.ErrNoFeatureFiles), ExitNoFeatureFiles},
		{"path not found", &discover.PathNotFoundError{Path: "x"}, ExitConfigError},
		{"parse error", &parser.ParseError{File: "a.feature", Line: 3}, ExitParseError},
		{"filter out of range", &plan.ScenarioOutOfRangeError{ID: 9, Total: 3}, ExitConfigError},
		{"malformed filter", &plan.MalformedFilterError{Token: "x"}, ExitConfigError},
		{"unmatched step", &matcher.UnmatchedStepError{Text: "s"}, ExitStepMatchError},
		{"ambiguous step", &matcher.AmbiguousStepError{Text: "s"}, ExitStepMatchError},
		{"anything else", errors.New("boom"), ExitScenarioFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestRawArgumentsResolve(t *testing.T) {
	// Every key the CLI hands over must exist in the resolver's table.
	cfg, err := config.Resolve(rawArguments([]string{"a.feature"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.feature"}, cfg.Features)
}
