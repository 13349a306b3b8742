package steps

import "regexp"

// StepDef is one registered step implementation: a pattern that step
// text must match and a shell command to run when it does.
type StepDef struct {
	Pattern string
	Command string
	Source  string

	// Optional assertion on the command's stdout, as a gjson path and
	// the value expected at it.
	JSONPath string
	JSONWant string

	re *regexp.Regexp
}

// Match returns the capture groups when text matches the full pattern,
// or false when it does not.
func (d *StepDef) Match(text string) ([]string, bool) {
	m := d.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// Hook is a shell command run around every scenario.
type Hook struct {
	Command string
	Source  string
}

// StepRegistry collects step definitions in load order.
type StepRegistry struct {
	defs []*StepDef
}

func NewStepRegistry() *StepRegistry {
	return &StepRegistry{}
}

func (r *StepRegistry) Register(def *StepDef) {
	r.defs = append(r.defs, def)
}

func (r *StepRegistry) Steps() []*StepDef {
	return r.defs
}

func (r *StepRegistry) Len() int {
	return len(r.defs)
}

// HookRegistry collects before/after scenario hooks in load order.
type HookRegistry struct {
	beforeScenario []Hook
	afterScenario  []Hook
}

func NewHookRegistry() *HookRegistry {
	return &HookRegistry{}
}

func (r *HookRegistry) RegisterBeforeScenario(h Hook) {
	r.beforeScenario = append(r.beforeScenario, h)
}

func (r *HookRegistry) RegisterAfterScenario(h Hook) {
	r.afterScenario = append(r.afterScenario, h)
}

func (r *HookRegistry) BeforeScenario() []Hook {
	return r.beforeScenario
}

func (r *HookRegistry) AfterScenario() []Hook {
	return r.afterScenario
}
