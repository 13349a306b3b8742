// Package matcher binds parsed step text to registered step
// definitions. Binding happens once, after loading and before any
// execution, so an unmatched or ambiguous step fails the whole run
// up front instead of halfway through it.
package matcher

import (
	"fmt"
	"strings"

	"github.com/specrun/specrun/packages/core/parser"
	"github.com/specrun/specrun/packages/core/steps"
)

// UnmatchedStepError means no registered pattern matched a step.
type UnmatchedStepError struct {
	Text string
	File string
	Line int
}

func (e *UnmatchedStepError) Error() string {
	return fmt.Sprintf("%s:%d: no step definition matches %q", e.File, e.Line, e.Text)
}

// AmbiguousStepError means more than one pattern matched a step.
type AmbiguousStepError struct {
	Text     string
	File     string
	Line     int
	Patterns []string
}

func (e *AmbiguousStepError) Error() string {
	return fmt.Sprintf("%s:%d: step %q matches multiple definitions: %s",
		e.File, e.Line, e.Text, strings.Join(e.Patterns, ", "))
}

// MergeSteps binds every step of every feature against the registered
// definitions, storing the match on the step itself. It stops at the
// first unmatched or ambiguous step.
func MergeSteps(features []*parser.Feature, defs []*steps.StepDef) error {
	for _, feature := range features {
		for _, scenario := range feature.Scenarios {
			for _, step := range scenario.Steps {
				if err := bind(step, feature.Path, defs); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func bind(step *parser.Step, file string, defs []*steps.StepDef) error {
	var match *parser.StepMatch
	var matched []string

	for _, def := range defs {
		args, ok := def.Match(step.Text)
		if !ok {
			continue
		}
		matched = append(matched, def.Pattern)
		match = &parser.StepMatch{
			Pattern:  def.Pattern,
			Command:  def.Command,
			Args:     args,
			JSONPath: def.JSONPath,
			JSONWant: def.JSONWant,
		}
	}

	switch len(matched) {
	case 0:
		return &UnmatchedStepError{Text: step.Text, File: file, Line: step.Line}
	case 1:
		step.Match = match
		return nil
	default:
		return &AmbiguousStepError{Text: step.Text, File: file, Line: step.Line, Patterns: matched}
	}
}
