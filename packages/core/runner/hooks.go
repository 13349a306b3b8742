package runner

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/specrun/specrun/packages/core/parser"
	"github.com/specrun/specrun/packages/core/steps"
)

// runHooks executes hook commands in registration order and stops at
// the first failure.
func (e *Engine) runHooks(hooks []steps.Hook, scenario *parser.Scenario) error {
	for _, hook := range hooks {
		cmd := exec.Command("sh", "-c", hook.Command)
		cmd.Env = append(os.Environ(),
			fmt.Sprintf("SPECRUN_SCENARIO_ID=%d", scenario.ID),
			"SPECRUN_SCENARIO="+scenario.Name,
			"SPECRUN_MARKER="+e.marker,
			"SPECRUN_PROFILE="+e.cfg.Profile,
		)

		output, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("hook %q (from %s) failed: %v\noutput: %s",
				hook.Command, hook.Source, err, output)
		}
	}
	return nil
}
