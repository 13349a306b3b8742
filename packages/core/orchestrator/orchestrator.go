// Package orchestrator sequences a run from raw configuration to the
// execution engine: discover feature files, build the run plan, load
// user step definitions, bind steps, resolve the marker, validate the
// scenario filter, and only then start the engine.
//
// Every stop before the engine starts is guaranteed not to touch any
// later collaborator: there is no partial run.
package orchestrator

import (
	"github.com/specrun/specrun/packages/core/config"
	"github.com/specrun/specrun/packages/core/discover"
	"github.com/specrun/specrun/packages/core/matcher"
	"github.com/specrun/specrun/packages/core/parser"
	"github.com/specrun/specrun/packages/core/plan"
	"github.com/specrun/specrun/packages/core/runner"
	"github.com/specrun/specrun/packages/core/steps"
)

// Loader imports user step and hook definitions from the base
// directory, populating the registries as a side effect.
type Loader interface {
	LoadAll(basedir string) error
}

// Matcher binds parsed steps against registered step definitions.
type Matcher interface {
	MergeSteps(features []*parser.Feature, defs []*steps.StepDef) error
}

// Engine runs the finished plan.
type Engine interface {
	Start(p *plan.RunPlan) (*runner.Summary, error)
}

// MatcherFunc adapts a plain function to the Matcher interface.
type MatcherFunc func(features []*parser.Feature, defs []*steps.StepDef) error

func (f MatcherFunc) MergeSteps(features []*parser.Feature, defs []*steps.StepDef) error {
	return f(features, defs)
}

// DefaultMatcher is the real step matcher.
var DefaultMatcher Matcher = MatcherFunc(matcher.MergeSteps)

// Orchestrator wires the collaborators of a run together.
type Orchestrator struct {
	parser   plan.Parser
	loader   Loader
	matcher  Matcher
	engine   Engine
	registry *steps.StepRegistry
	marker   *plan.MarkerResolver
}

func New(p plan.Parser, l Loader, m Matcher, e Engine, registry *steps.StepRegistry) *Orchestrator {
	return &Orchestrator{
		parser:   p,
		loader:   l,
		matcher:  m,
		engine:   e,
		registry: registry,
		marker:   plan.NewMarkerResolver(),
	}
}

// Run executes the full sequence for cfg. Any error is terminal for
// the run; the engine is only invoked when every earlier stage
// succeeded.
func (o *Orchestrator) Run(cfg *config.RunConfig) (*runner.Summary, error) {
	files, err := discover.FeatureFiles(cfg.Features)
	if err != nil {
		return nil, err
	}

	features, total, err := plan.Build(files, o.parser)
	if err != nil {
		return nil, err
	}

	if err := o.loader.LoadAll(cfg.BaseDir); err != nil {
		return nil, err
	}

	if err := o.matcher.MergeSteps(features, o.registry.Steps()); err != nil {
		return nil, err
	}

	marker := o.marker.Resolve(cfg.Marker)

	filter, err := plan.SelectScenarios(cfg.Scenarios, total)
	if err != nil {
		return nil, err
	}

	return o.engine.Start(&plan.RunPlan{
		Features:       features,
		TotalScenarios: total,
		Marker:         marker,
		ScenarioFilter: filter,
	})
}
