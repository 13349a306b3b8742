package steps

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// definition file schema
type defFile struct {
	Steps []stepEntry `yaml:"steps"`
	Hooks hookEntry   `yaml:"hooks"`
}

type stepEntry struct {
	Pattern    string      `yaml:"pattern"`
	Run        string      `yaml:"run"`
	ExpectJSON *jsonExpect `yaml:"expect_json"`
}

type jsonExpect struct {
	Path   string `yaml:"path"`
	Equals string `yaml:"equals"`
}

type hookEntry struct {
	BeforeScenario []string `yaml:"before_scenario"`
	AfterScenario  []string `yaml:"after_scenario"`
}

// Loader imports step and hook definitions from a base directory into
// the registries it was created with.
type Loader struct {
	steps *StepRegistry
	hooks *HookRegistry
}

func NewLoader(steps *StepRegistry, hooks *HookRegistry) *Loader {
	return &Loader{steps: steps, hooks: hooks}
}

// LoadAll walks basedir and loads every *.steps.yaml and *.steps.yml
// file, in lexical order. A missing base directory is fatal: a run
// without step definitions cannot bind anything.
func (l *Loader) LoadAll(basedir string) error {
	info, err := os.Stat(basedir)
	if err != nil {
		return fmt.Errorf("base directory %s: %w", basedir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("base directory %s is not a directory", basedir)
	}

	return filepath.WalkDir(basedir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isDefinitionFile(d.Name()) {
			return nil
		}
		return l.loadFile(path)
	})
}

func (l *Loader) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file defFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, entry := range file.Steps {
		if entry.Pattern == "" {
			return fmt.Errorf("%s: step definition without a pattern", path)
		}
		if entry.Run == "" {
			return fmt.Errorf("%s: step %q has no run command", path, entry.Pattern)
		}

		re, err := regexp.Compile("^" + entry.Pattern + "$")
		if err != nil {
			return fmt.Errorf("%s: invalid step pattern %q: %w", path, entry.Pattern, err)
		}

		def := &StepDef{
			Pattern: entry.Pattern,
			Command: entry.Run,
			Source:  path,
			re:      re,
		}
		if entry.ExpectJSON != nil {
			def.JSONPath = entry.ExpectJSON.Path
			def.JSONWant = entry.ExpectJSON.Equals
		}
		l.steps.Register(def)
	}

	for _, cmd := range file.Hooks.BeforeScenario {
		l.hooks.RegisterBeforeScenario(Hook{Command: cmd, Source: path})
	}
	for _, cmd := range file.Hooks.AfterScenario {
		l.hooks.RegisterAfterScenario(Hook{Command: cmd, Source: path})
	}

	return nil
}

func isDefinitionFile(name string) bool {
	return strings.HasSuffix(name, ".steps.yaml") || strings.HasSuffix(name, ".steps.yml")
}
