package runner

import (
	"time"

	"github.com/specrun/specrun/packages/core/parser"
)

// StepStatus is the outcome of a single step.
type StepStatus int

const (
	StepPassed StepStatus = iota
	StepFailed
	StepSkipped
)

func (s StepStatus) String() string {
	switch s {
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// StepResult is the outcome of one executed (or skipped) step.
type StepResult struct {
	Step     *parser.Step
	Status   StepStatus
	Output   []byte
	Err      error
	Duration time.Duration
}

// ScenarioResult is the outcome of one scenario run. A scenario that
// appears twice in the filter produces two results.
type ScenarioResult struct {
	Feature  *parser.Feature
	Scenario *parser.Scenario
	Steps    []*StepResult
	Passed   bool
	Skipped  bool
	HookErr  error
	Duration time.Duration
}

// Summary is the aggregate outcome of the whole run.
type Summary struct {
	RunID          string
	Marker         string
	TotalScenarios int
	Ran            int
	Passed         int
	Failed         int
	Skipped        int
	Duration       time.Duration
}

// Extension receives run events as they happen. Reporting plugins
// implement this; the active set is passed to the engine explicitly at
// construction time.
type Extension interface {
	RunStarted(marker string)
	FeatureStarted(feature *parser.Feature)
	ScenarioStarted(scenario *parser.Scenario)
	StepStarted(step *parser.Step)
	StepFinished(result *StepResult)
	ScenarioFinished(result *ScenarioResult)
	RunFinished(summary *Summary)
}

// BaseExtension is a no-op Extension for embedding, so plugins only
// implement the events they care about.
type BaseExtension struct{}

func (BaseExtension) RunStarted(string)                {}
func (BaseExtension) FeatureStarted(*parser.Feature)   {}
func (BaseExtension) ScenarioStarted(*parser.Scenario) {}
func (BaseExtension) StepStarted(*parser.Step)         {}
func (BaseExtension) StepFinished(*StepResult)         {}
func (BaseExtension) ScenarioFinished(*ScenarioResult) {}
func (BaseExtension) RunFinished(*Summary)             {}
