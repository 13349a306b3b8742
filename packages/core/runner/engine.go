package runner

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/specrun/specrun/packages/core/config"
	"github.com/specrun/specrun/packages/core/parser"
	"github.com/specrun/specrun/packages/core/plan"
	"github.com/specrun/specrun/packages/core/steps"
)

// Engine executes run plans. It is single-threaded: scenarios and steps
// run strictly one after another.
type Engine struct {
	cfg   *config.RunConfig
	hooks *steps.HookRegistry
	exts  []Extension
	out   io.Writer
	rand  *rand.Rand

	marker string
}

type Option func(*Engine)

// WithOutput redirects debug and inspection output (default stderr).
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

// WithShuffleSeed fixes the shuffle order, for tests.
func WithShuffleSeed(seed int64) Option {
	return func(e *Engine) {
		e.rand = rand.New(rand.NewSource(seed))
	}
}

func NewEngine(cfg *config.RunConfig, hooks *steps.HookRegistry, exts []Extension, opts ...Option) *Engine {
	e := &Engine{
		cfg:   cfg,
		hooks: hooks,
		exts:  exts,
		out:   os.Stderr,
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type entry struct {
	feature  *parser.Feature
	scenario *parser.Scenario
}

// Start runs the plan and returns the aggregate summary. Scenario
// failures are reported in the summary, not as an error; an error means
// the run itself could not proceed.
func (e *Engine) Start(p *plan.RunPlan) (*Summary, error) {
	start := time.Now()
	e.marker = p.Marker
	summary := &Summary{
		RunID:          uuid.NewString(),
		Marker:         p.Marker,
		TotalScenarios: p.TotalScenarios,
	}

	order, err := executionOrder(p)
	if err != nil {
		return nil, err
	}
	if e.cfg.Shuffle {
		e.rand.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	for _, ext := range e.exts {
		ext.RunStarted(p.Marker)
	}

	var lastFeature *parser.Feature
	for _, item := range order {
		if item.feature != lastFeature {
			lastFeature = item.feature
			for _, ext := range e.exts {
				ext.FeatureStarted(item.feature)
			}
		}

		result := e.runScenario(item.feature, item.scenario)
		summary.Ran++
		switch {
		case result.Skipped:
			summary.Skipped++
		case result.Passed:
			summary.Passed++
		default:
			summary.Failed++
		}

		for _, ext := range e.exts {
			ext.ScenarioFinished(result)
		}

		if e.cfg.EarlyExit && !result.Passed && !result.Skipped {
			break
		}
	}

	summary.Duration = time.Since(start)
	for _, ext := range e.exts {
		ext.RunFinished(summary)
	}
	return summary, nil
}

// executionOrder flattens the plan into scenario order, applying the
// validated filter when present. Duplicate filter entries run again.
func executionOrder(p *plan.RunPlan) ([]entry, error) {
	var all []entry
	byID := make(map[int]entry)
	for _, feature := range p.Features {
		for _, scenario := range feature.Scenarios {
			item := entry{feature: feature, scenario: scenario}
			all = append(all, item)
			byID[scenario.ID] = item
		}
	}

	if p.ScenarioFilter == nil {
		return all, nil
	}

	selected := make([]entry, 0, len(p.ScenarioFilter))
	for _, id := range p.ScenarioFilter {
		item, ok := byID[id]
		if !ok {
			// The filter is validated before the engine starts, so a
			// stray id here is a plan construction bug.
			return nil, fmt.Errorf("scenario id %d not present in run plan", id)
		}
		selected = append(selected, item)
	}
	return selected, nil
}

func (e *Engine) runScenario(feature *parser.Feature, scenario *parser.Scenario) *ScenarioResult {
	start := time.Now()
	result := &ScenarioResult{
		Feature:  feature,
		Scenario: scenario,
		Passed:   true,
	}

	for _, ext := range e.exts {
		ext.ScenarioStarted(scenario)
	}

	if e.cfg.DryRun {
		result.Skipped = true
		for _, step := range scenario.Steps {
			skipped := &StepResult{Step: step, Status: StepSkipped}
			e.notifyStep(step, skipped)
			result.Steps = append(result.Steps, skipped)
		}
		result.Duration = time.Since(start)
		return result
	}

	if err := e.runHooks(e.hooks.BeforeScenario(), scenario); err != nil {
		result.Passed = false
		result.HookErr = fmt.Errorf("before-scenario hook: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	for _, step := range scenario.Steps {
		if !result.Passed {
			skipped := &StepResult{Step: step, Status: StepSkipped}
			e.notifyStep(step, skipped)
			result.Steps = append(result.Steps, skipped)
			continue
		}

		stepResult := e.executeStep(step, scenario)
		e.notifyStep(step, stepResult)
		result.Steps = append(result.Steps, stepResult)
		if stepResult.Status == StepFailed {
			result.Passed = false
			e.afterFailure(stepResult)
		}
	}

	if err := e.runHooks(e.hooks.AfterScenario(), scenario); err != nil && result.HookErr == nil {
		result.Passed = false
		result.HookErr = fmt.Errorf("after-scenario hook: %w", err)
	}

	result.Duration = time.Since(start)
	return result
}

func (e *Engine) notifyStep(step *parser.Step, result *StepResult) {
	for _, ext := range e.exts {
		ext.StepStarted(step)
	}
	for _, ext := range e.exts {
		ext.StepFinished(result)
	}
}

func (e *Engine) executeStep(step *parser.Step, scenario *parser.Scenario) *StepResult {
	start := time.Now()
	result := &StepResult{Step: step, Status: StepPassed}

	match := step.Match
	if match == nil {
		result.Status = StepFailed
		result.Err = fmt.Errorf("step %q was never bound to a definition", step.Text)
		return result
	}

	if e.cfg.DebugSteps {
		fmt.Fprintf(e.out, "step: %s\n  $ %s\n", step.Text, match.Command)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command("sh", "-c", match.Command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = e.stepEnv(match, scenario)

	err := cmd.Run()
	result.Duration = time.Since(start)
	result.Output = append(stdout.Bytes(), stderr.Bytes()...)

	if err != nil {
		result.Status = StepFailed
		result.Err = fmt.Errorf("step command %q failed: %w", match.Command, err)
		return result
	}

	if match.JSONPath != "" {
		got := gjson.GetBytes(stdout.Bytes(), match.JSONPath)
		if !got.Exists() {
			result.Status = StepFailed
			result.Err = fmt.Errorf("step output has no value at %q", match.JSONPath)
		} else if got.String() != match.JSONWant {
			result.Status = StepFailed
			result.Err = fmt.Errorf("step output at %q: expected %q, got %q",
				match.JSONPath, match.JSONWant, got.String())
		}
	}

	return result
}

func (e *Engine) stepEnv(match *parser.StepMatch, scenario *parser.Scenario) []string {
	env := os.Environ()
	for i, arg := range match.Args {
		env = append(env, fmt.Sprintf("STEP_ARG_%d=%s", i+1, arg))
	}
	env = append(env,
		"SPECRUN_PROFILE="+e.cfg.Profile,
		"SPECRUN_MARKER="+e.marker,
		fmt.Sprintf("SPECRUN_SCENARIO_ID=%d", scenario.ID),
		"SPECRUN_SCENARIO="+scenario.Name,
	)
	return env
}
