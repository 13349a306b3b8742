package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/specrun/specrun/packages/core/parser"
	"github.com/specrun/specrun/packages/core/runner"
)

// ConsoleWriter prints the run as it happens. By default each step line
// is written when the step starts and rewritten in place with its
// result; --no-line-jump keeps both lines, --write-steps-once prints
// each step only once with its result, and --no-ansi drops all escape
// sequences (implying no rewriting).
type ConsoleWriter struct {
	runner.BaseExtension

	writer         io.Writer
	noAnsi         bool
	noLineJump     bool
	writeStepsOnce bool
}

type ConsoleOption func(*ConsoleWriter)

func NewConsoleWriter(opts ...ConsoleOption) *ConsoleWriter {
	w := &ConsoleWriter{writer: os.Stdout}
	for _, opt := range opts {
		opt(w)
	}
	if w.noAnsi {
		color.NoColor = true
	}
	return w
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(c *ConsoleWriter) {
		c.writer = w
	}
}

func WithNoAnsi(v bool) ConsoleOption {
	return func(c *ConsoleWriter) {
		c.noAnsi = v
	}
}

func WithNoLineJump(v bool) ConsoleOption {
	return func(c *ConsoleWriter) {
		c.noLineJump = v
	}
}

func WithWriteStepsOnce(v bool) ConsoleOption {
	return func(c *ConsoleWriter) {
		c.writeStepsOnce = v
	}
}

func (c *ConsoleWriter) rewrites() bool {
	return !c.noAnsi && !c.noLineJump && !c.writeStepsOnce
}

func (c *ConsoleWriter) RunStarted(marker string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(c.writer, "%s\n", bold("specrun — marker "+marker))
}

func (c *ConsoleWriter) FeatureStarted(feature *parser.Feature) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(c.writer, "\n%s %s\n", bold("Feature:"), feature.Name)
}

func (c *ConsoleWriter) ScenarioStarted(scenario *parser.Scenario) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(c.writer, "  %s %s\n", cyan(fmt.Sprintf("Scenario %d:", scenario.ID)), scenario.Name)
}

func (c *ConsoleWriter) StepStarted(step *parser.Step) {
	if c.writeStepsOnce {
		return
	}
	fmt.Fprintf(c.writer, "      %s %s\n", step.Keyword, step.Text)
}

func (c *ConsoleWriter) StepFinished(result *runner.StepResult) {
	if c.rewrites() {
		// Move back over the pending step line and overwrite it.
		fmt.Fprint(c.writer, "\x1b[1A\x1b[2K")
	}

	symbol := c.statusSymbol(result.Status)
	fmt.Fprintf(c.writer, "    %s %s %s\n", symbol, result.Step.Keyword, result.Step.Text)

	if result.Err != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(c.writer, "      %s\n", red(result.Err.Error()))
	}
}

func (c *ConsoleWriter) ScenarioFinished(result *runner.ScenarioResult) {
	if result.HookErr != nil {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(c.writer, "    %s\n", red(result.HookErr.Error()))
	}
}

func (c *ConsoleWriter) RunFinished(summary *runner.Summary) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(c.writer, "\n%d scenarios ran in %dms: %s, %s, %s\n",
		summary.Ran,
		summary.Duration.Milliseconds(),
		green(fmt.Sprintf("%d passed", summary.Passed)),
		red(fmt.Sprintf("%d failed", summary.Failed)),
		yellow(fmt.Sprintf("%d skipped", summary.Skipped)),
	)
}

func (c *ConsoleWriter) statusSymbol(status runner.StepStatus) string {
	switch status {
	case runner.StepPassed:
		return color.New(color.FgGreen).Sprint("✓")
	case runner.StepFailed:
		return color.New(color.FgRed).Sprint("✗")
	default:
		return color.New(color.FgYellow).Sprint("-")
	}
}
