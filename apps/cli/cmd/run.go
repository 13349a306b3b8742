package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/specrun/specrun/packages/core/config"
	"github.com/specrun/specrun/packages/core/discover"
	"github.com/specrun/specrun/packages/core/orchestrator"
	"github.com/specrun/specrun/packages/core/plan"
	"github.com/specrun/specrun/packages/core/runner"
	"github.com/specrun/specrun/packages/core/steps"
	"github.com/specrun/specrun/packages/history"
	"github.com/specrun/specrun/packages/output"
)

var runCmd = &cobra.Command{
	Use:   "run <features>...",
	Short: "Run feature files",
	Long: `Run scenarios from .feature files or directories of them.

Examples:
  specrun run login.feature
  specrun run ./features/ --basedir ./steps
  specrun run ./features/ -s 3,1 --marker release-42
  specrun run ./features/ --bdd-xml --timings
  specrun run ./features/ --shuffle --early-exit`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	basedirFlag             string
	earlyExitFlag           bool
	debugStepsFlag          bool
	debugAfterFailureFlag   bool
	inspectAfterFailureFlag bool
	bddXMLFlag              bool
	noAnsiFlag              bool
	noLineJumpFlag          bool
	writeStepsOnceFlag      bool
	withTracebackFlag       bool
	markerFlag              string
	profileFlag             string
	dryRunFlag              bool
	scenariosFlag           string
	shuffleFlag             bool

	// Reporting extension flags
	syslogFlag    bool
	timingsFlag   bool
	historyDBFlag string

	watchFlag bool
)

func init() {
	runCmd.Flags().StringVarP(&basedirFlag, "basedir", "b", getEnvString("SPECRUN_BASEDIR", config.DefaultBaseDir), "Directory to load step and hook definitions from (env: SPECRUN_BASEDIR)")
	runCmd.Flags().BoolVarP(&earlyExitFlag, "early-exit", "e", false, "Stop the run after the first failed scenario")
	runCmd.Flags().BoolVar(&debugStepsFlag, "debug-steps", false, "Print each step's command before running it")
	runCmd.Flags().BoolVar(&debugAfterFailureFlag, "debug-after-failure", false, "Start an interactive shell after a step fails")
	runCmd.Flags().BoolVar(&inspectAfterFailureFlag, "inspect-after-failure", false, "Dump the failed step's command and output")
	runCmd.Flags().BoolVar(&bddXMLFlag, "bdd-xml", false, "Write a BDD XML result file after the run")
	runCmd.Flags().BoolVar(&noAnsiFlag, "no-ansi", getEnvBool("SPECRUN_NO_ANSI", false), "Print without ANSI sequences like colors and line jumps (env: SPECRUN_NO_ANSI)")
	runCmd.Flags().BoolVar(&noLineJumpFlag, "no-line-jump", false, "Print steps without overwriting them with their result")
	runCmd.Flags().BoolVar(&writeStepsOnceFlag, "write-steps-once", false, "Write each step only once, with its result")
	runCmd.Flags().BoolVarP(&withTracebackFlag, "with-traceback", "t", false, "Show the full error chain when the run fails")
	runCmd.Flags().StringVarP(&markerFlag, "marker", "m", "", "Marker for this run (default: current time as epoch seconds)")
	runCmd.Flags().StringVarP(&profileFlag, "profile", "p", getEnvString("SPECRUN_PROFILE", ""), "Profile exported to step and hook commands (env: SPECRUN_PROFILE)")
	runCmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "d", false, "Resolve and print the run without executing any step")
	runCmd.Flags().StringVarP(&scenariosFlag, "scenarios", "s", "", "Only run the given scenario ids (comma separated)")
	runCmd.Flags().BoolVar(&shuffleFlag, "shuffle", false, "Shuffle the scenario run order")

	runCmd.Flags().BoolVar(&syslogFlag, "syslog", false, "Log scenario outcomes to the local syslog")
	runCmd.Flags().BoolVar(&timingsFlag, "timings", false, "Print a step duration distribution after the run")
	runCmd.Flags().StringVar(&historyDBFlag, "history-db", getEnvString("SPECRUN_HISTORY_DB", ""), "Record run summaries to a SQLite database (env: SPECRUN_HISTORY_DB)")

	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch feature files for changes and re-run")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// rawArguments collects the flag values into the untyped map the config
// resolver validates. Every key here must exist in the resolver's table.
func rawArguments(args []string) config.RawArguments {
	return config.RawArguments{
		"features":              args,
		"basedir":               basedirFlag,
		"early-exit":            earlyExitFlag,
		"debug-steps":           debugStepsFlag,
		"debug-after-failure":   debugAfterFailureFlag,
		"inspect-after-failure": inspectAfterFailureFlag,
		"bdd-xml":               bddXMLFlag,
		"no-ansi":               noAnsiFlag,
		"no-line-jump":          noLineJumpFlag,
		"write-steps-once":      writeStepsOnceFlag,
		"with-traceback":        withTracebackFlag,
		"marker":                markerFlag,
		"profile":               profileFlag,
		"dry-run":               dryRunFlag,
		"scenarios":             scenariosFlag,
		"shuffle":               shuffleFlag,
		"syslog":                syslogFlag,
		"timings":               timingsFlag,
		"history-db":            historyDBFlag,
		"watch":                 watchFlag,
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(rawArguments(args))
	if err != nil {
		return err
	}

	summary, err := executeRun(cmd, cfg)
	if err != nil {
		return err
	}

	if !cfg.Watch {
		if summary.Failed > 0 {
			os.Exit(ExitScenarioFailure)
		}
		return nil
	}

	return watchAndRerun(cmd, cfg)
}

// executeRun wires the collaborators for one run and drives it.
func executeRun(cmd *cobra.Command, cfg *config.RunConfig) (*runner.Summary, error) {
	stepRegistry := steps.NewStepRegistry()
	hookRegistry := steps.NewHookRegistry()

	extensions, cleanup, err := buildExtensions(cmd, cfg)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	engine := runner.NewEngine(cfg, hookRegistry, extensions, runner.WithOutput(cmd.OutOrStderr()))
	orch := orchestrator.New(
		plan.FeatureParser{},
		steps.NewLoader(stepRegistry, hookRegistry),
		orchestrator.DefaultMatcher,
		engine,
		stepRegistry,
	)

	return orch.Run(cfg)
}

// buildExtensions assembles the explicit reporting extension list for a
// run, so the active set is visible here rather than assembled through
// import side effects.
func buildExtensions(cmd *cobra.Command, cfg *config.RunConfig) ([]runner.Extension, func(), error) {
	extensions := []runner.Extension{
		output.NewConsoleWriter(
			output.WithWriter(cmd.OutOrStdout()),
			output.WithNoAnsi(cfg.NoAnsi),
			output.WithNoLineJump(cfg.NoLineJump),
			output.WithWriteStepsOnce(cfg.WriteStepsOnce),
		),
	}
	cleanup := func() {}

	if cfg.BDDXML {
		extensions = append(extensions, output.NewXMLWriter())
	}
	if cfg.Syslog {
		syslogWriter, err := output.NewSyslogWriter()
		if err != nil {
			return nil, nil, err
		}
		extensions = append(extensions, syslogWriter)
	}
	if cfg.Timings {
		extensions = append(extensions, output.NewTimingRecorder(output.TimingWithWriter(cmd.OutOrStdout())))
	}
	if cfg.HistoryDB != "" {
		store, err := history.NewStore(cfg.HistoryDB)
		if err != nil {
			return nil, nil, err
		}
		extensions = append(extensions, store)
		cleanup = func() { _ = store.Close() }
	}

	return extensions, cleanup, nil
}

// watchAndRerun re-runs the features whenever one of them changes.
func watchAndRerun(cmd *cobra.Command, cfg *config.RunConfig) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	files, err := discover.FeatureFiles(cfg.Features)
	if err != nil {
		return err
	}

	watchedDirs := make(map[string]bool)
	addDir := func(dir string) {
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				fmt.Fprintf(cmd.OutOrStderr(), "failed to watch %s: %v\n", dir, err)
			}
			watchedDirs[dir] = true
		}
	}
	for _, file := range files {
		addDir(filepath.Dir(file))
	}
	for _, arg := range cfg.Features {
		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			addDir(arg)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")

	var debounceTimer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) || !strings.HasSuffix(event.Name, discover.FeatureFileSuffix) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\nRe-running...\n\n", event.Name)
				if _, err := executeRun(cmd, cfg); err != nil {
					printDiagnostic(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.OutOrStderr(), "watcher error: %v\n", err)
		}
	}
}
