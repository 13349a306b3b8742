package config

import (
	"fmt"
)

// RawArguments is the untyped flag map handed over by the CLI layer.
// Values are string, bool or []string depending on the flag.
type RawArguments map[string]any

// Marker is the run marker as given on the command line: either the
// default (resolved to epoch seconds later) or an explicit opaque value
// carried through verbatim.
type Marker struct {
	value    string
	explicit bool
}

func DefaultMarker() Marker {
	return Marker{}
}

func ExplicitMarker(value string) Marker {
	return Marker{value: value, explicit: true}
}

func (m Marker) IsExplicit() bool { return m.explicit }

// Value returns the explicit marker value. It is only meaningful when
// IsExplicit reports true.
func (m Marker) Value() string { return m.value }

// RunConfig is built exactly once per run and never mutated afterwards.
type RunConfig struct {
	Features []string
	BaseDir  string

	EarlyExit           bool
	DebugSteps          bool
	DebugAfterFailure   bool
	InspectAfterFailure bool
	BDDXML              bool
	NoAnsi              bool
	NoLineJump          bool
	WriteStepsOnce      bool
	WithTraceback       bool
	DryRun              bool
	Shuffle             bool

	Marker    Marker
	Profile   string
	Scenarios string

	// Reporting and tooling extensions beyond the core run.
	Syslog    bool
	Timings   bool
	HistoryDB string
	Watch     bool
}

// Resolve maps raw flag values onto a RunConfig. Every key must appear
// in the table below; an unknown key is a programming error in the CLI
// wiring, not a user mistake, and fails resolution.
func Resolve(raw RawArguments) (*RunConfig, error) {
	cfg := &RunConfig{
		BaseDir: DefaultBaseDir,
		Marker:  DefaultMarker(),
	}

	for key, value := range raw {
		var err error
		switch key {
		case "features":
			cfg.Features, err = asStringList(key, value)
		case "basedir":
			var dir string
			dir, err = asString(key, value)
			if err == nil && dir != "" {
				cfg.BaseDir = dir
			}
		case "early-exit":
			cfg.EarlyExit, err = asBool(key, value)
		case "debug-steps":
			cfg.DebugSteps, err = asBool(key, value)
		case "debug-after-failure":
			cfg.DebugAfterFailure, err = asBool(key, value)
		case "inspect-after-failure":
			cfg.InspectAfterFailure, err = asBool(key, value)
		case "bdd-xml":
			cfg.BDDXML, err = asBool(key, value)
		case "no-ansi":
			cfg.NoAnsi, err = asBool(key, value)
		case "no-line-jump":
			cfg.NoLineJump, err = asBool(key, value)
		case "write-steps-once":
			cfg.WriteStepsOnce, err = asBool(key, value)
		case "with-traceback":
			cfg.WithTraceback, err = asBool(key, value)
		case "marker":
			var marker string
			marker, err = asString(key, value)
			if err == nil && marker != "" {
				cfg.Marker = ExplicitMarker(marker)
			}
		case "profile":
			cfg.Profile, err = asString(key, value)
		case "dry-run":
			cfg.DryRun, err = asBool(key, value)
		case "scenarios":
			cfg.Scenarios, err = asString(key, value)
		case "shuffle":
			cfg.Shuffle, err = asBool(key, value)
		case "syslog":
			cfg.Syslog, err = asBool(key, value)
		case "timings":
			cfg.Timings, err = asBool(key, value)
		case "history-db":
			cfg.HistoryDB, err = asString(key, value)
		case "watch":
			cfg.Watch, err = asBool(key, value)
		default:
			return nil, fmt.Errorf("unknown flag %q in raw arguments", key)
		}
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func asString(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("flag %q: expected string, got %T", key, value)
	}
	return s, nil
}

func asBool(key string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("flag %q: expected bool, got %T", key, value)
	}
	return b, nil
}

func asStringList(key string, value any) ([]string, error) {
	l, ok := value.([]string)
	if !ok {
		return nil, fmt.Errorf("flag %q: expected string list, got %T", key, value)
	}
	return l, nil
}
