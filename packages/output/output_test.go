package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/specrun/specrun/packages/core/parser"
	"github.com/specrun/specrun/packages/core/runner"
)

func sampleResults() ([]*runner.ScenarioResult, *runner.Summary) {
	feature := &parser.Feature{ID: 1, Name: "Login", Path: "login.feature"}
	passStep := &parser.Step{Keyword: "Given", Text: "a user"}
	failStep := &parser.Step{Keyword: "Then", Text: "it works"}

	results := []*runner.ScenarioResult{
		{
			Feature:  feature,
			Scenario: &parser.Scenario{ID: 1, Name: "ok"},
			Steps:    []*runner.StepResult{{Step: passStep, Status: runner.StepPassed, Duration: time.Millisecond}},
			Passed:   true,
			Duration: time.Millisecond,
		},
		{
			Feature:  feature,
			Scenario: &parser.Scenario{ID: 2, Name: "broken"},
			Steps: []*runner.StepResult{{
				Step:   failStep,
				Status: runner.StepFailed,
				Err:    assert.AnError,
			}},
			Passed: false,
		},
	}
	summary := &runner.Summary{
		RunID:          "run-1",
		Marker:         "1699999999",
		TotalScenarios: 2,
		Ran:            2,
		Passed:         1,
		Failed:         1,
	}
	return results, summary
}

func TestXMLWriter_Document(t *testing.T) {
	var buf bytes.Buffer
	w := NewXMLWriter(XMLWithWriter(&buf))

	results, summary := sampleResults()
	for _, r := range results {
		w.ScenarioFinished(r)
	}
	w.RunFinished(summary)

	out := buf.String()
	assert.Contains(t, out, `<testrun id="run-1" marker="1699999999"`)
	assert.Contains(t, out, `<feature id="1" name="Login" path="login.feature">`)
	assert.Contains(t, out, `<scenario id="2" name="broken" status="failed"`)
	assert.Contains(t, out, `keyword="Then" status="failed"`)
	assert.Contains(t, out, `passed="1" failed="1" skipped="0"`)
}

func TestConsoleWriter_NoAnsiWriteStepsOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewConsoleWriter(
		WithWriter(&buf),
		WithNoAnsi(true),
		WithWriteStepsOnce(true),
	)

	results, summary := sampleResults()
	w.RunStarted(summary.Marker)
	w.FeatureStarted(results[0].Feature)
	w.ScenarioStarted(results[0].Scenario)
	w.StepStarted(results[0].Steps[0].Step)
	w.StepFinished(results[0].Steps[0])
	w.ScenarioFinished(results[0])
	w.RunFinished(summary)

	out := buf.String()
	assert.Contains(t, out, "marker 1699999999")
	assert.Contains(t, out, "Feature: Login")
	assert.Contains(t, out, "Scenario 1: ok")
	assert.Equal(t, 1, strings.Count(out, "Given a user"), "steps written once")
	assert.NotContains(t, out, "\x1b[", "no escape sequences with --no-ansi")
	assert.Contains(t, out, "1 passed")
}

func TestConsoleWriter_NoLineJumpKeepsBothLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewConsoleWriter(WithWriter(&buf), WithNoAnsi(true), WithNoLineJump(true))

	results, _ := sampleResults()
	w.StepStarted(results[0].Steps[0].Step)
	w.StepFinished(results[0].Steps[0])

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "Given a user"))
	assert.NotContains(t, out, "\x1b[1A")
}

func TestTimingRecorder_Percentiles(t *testing.T) {
	var buf bytes.Buffer
	rec := NewTimingRecorder(TimingWithWriter(&buf))

	for i := 1; i <= 10; i++ {
		rec.StepFinished(&runner.StepResult{
			Status:   runner.StepPassed,
			Duration: time.Duration(i) * time.Millisecond,
		})
	}
	rec.StepFinished(&runner.StepResult{Status: runner.StepSkipped})
	rec.RunFinished(&runner.Summary{})

	out := buf.String()
	assert.Contains(t, out, "step timings (10 steps)")
	assert.Contains(t, out, "p95")
}
