package runner

import (
	"fmt"
	"os"
	"os/exec"
)

// afterFailure runs the configured failure tooling for a failed step:
// inspection dumps the step's command and output, debugging drops the
// user into an interactive shell.
func (e *Engine) afterFailure(result *StepResult) {
	if e.cfg.InspectAfterFailure {
		fmt.Fprintf(e.out, "\nfailed step: %s %s\n", result.Step.Keyword, result.Step.Text)
		if result.Step.Match != nil {
			fmt.Fprintf(e.out, "command: %s\n", result.Step.Match.Command)
		}
		if result.Err != nil {
			fmt.Fprintf(e.out, "error: %v\n", result.Err)
		}
		if len(result.Output) > 0 {
			fmt.Fprintf(e.out, "output:\n%s\n", result.Output)
		}
	}

	if e.cfg.DebugAfterFailure {
		shell := os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
		fmt.Fprintf(e.out, "\nstep failed, starting %s (exit to continue the run)\n", shell)

		cmd := exec.Command(shell)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(e.out, "debug shell: %v\n", err)
		}
	}
}
