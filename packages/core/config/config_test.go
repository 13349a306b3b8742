package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Defaults(t *testing.T) {
	cfg, err := Resolve(RawArguments{
		"features": []string{"a.feature"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.feature"}, cfg.Features)
	assert.Equal(t, DefaultBaseDir, cfg.BaseDir)
	assert.False(t, cfg.EarlyExit)
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.Shuffle)
	assert.False(t, cfg.Marker.IsExplicit())
	assert.Empty(t, cfg.Scenarios)
}

func TestResolve_AllFlags(t *testing.T) {
	cfg, err := Resolve(RawArguments{
		"features":              []string{"a.feature", "dir"},
		"basedir":               "impl",
		"early-exit":            true,
		"debug-steps":           true,
		"debug-after-failure":   true,
		"inspect-after-failure": true,
		"bdd-xml":               true,
		"no-ansi":               true,
		"no-line-jump":          true,
		"write-steps-once":      true,
		"with-traceback":        true,
		"marker":                "release-42",
		"profile":               "staging",
		"dry-run":               true,
		"scenarios":             "1,3,3",
		"shuffle":               true,
		"syslog":                true,
		"timings":               true,
		"history-db":            "runs.db",
		"watch":                 true,
	})
	require.NoError(t, err)

	assert.Equal(t, "impl", cfg.BaseDir)
	assert.True(t, cfg.EarlyExit)
	assert.True(t, cfg.BDDXML)
	assert.True(t, cfg.WithTraceback)
	assert.True(t, cfg.Marker.IsExplicit())
	assert.Equal(t, "release-42", cfg.Marker.Value())
	assert.Equal(t, "staging", cfg.Profile)
	assert.Equal(t, "1,3,3", cfg.Scenarios)
	assert.Equal(t, "runs.db", cfg.HistoryDB)
}

func TestResolve_UnknownFlag(t *testing.T) {
	_, err := Resolve(RawArguments{"turbo": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turbo")
}

func TestResolve_WrongType(t *testing.T) {
	_, err := Resolve(RawArguments{"early-exit": "yes"})
	require.Error(t, err)
}

func TestResolve_EmptyMarkerStaysDefault(t *testing.T) {
	cfg, err := Resolve(RawArguments{"marker": ""})
	require.NoError(t, err)
	assert.False(t, cfg.Marker.IsExplicit())
}
