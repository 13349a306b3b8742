package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefs(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoader_LoadAll(t *testing.T) {
	dir := t.TempDir()
	writeDefs(t, dir, "users.steps.yaml", `
steps:
  - pattern: 'a registered user "([^"]+)"'
    run: ./create_user.sh
  - pattern: 'the API reports (\d+) users'
    run: curl -s localhost:8080/stats
    expect_json:
      path: users.total
      equals: "42"
hooks:
  before_scenario:
    - ./reset_db.sh
  after_scenario:
    - ./cleanup.sh
`)
	writeDefs(t, filepath.Join(dir, "nested"), "auth.steps.yml", `
steps:
  - pattern: 'she logs in'
    run: ./login.sh
`)
	writeDefs(t, dir, "ignored.yaml", "steps: []\n")

	stepReg := NewStepRegistry()
	hookReg := NewHookRegistry()
	require.NoError(t, NewLoader(stepReg, hookReg).LoadAll(dir))

	require.Equal(t, 3, stepReg.Len())

	args, ok := stepReg.Steps()[0].Match(`a registered user "alice"`)
	require.True(t, ok)
	assert.Equal(t, []string{"alice"}, args)

	assert.Equal(t, "users.total", stepReg.Steps()[1].JSONPath)
	assert.Equal(t, "42", stepReg.Steps()[1].JSONWant)

	require.Len(t, hookReg.BeforeScenario(), 1)
	require.Len(t, hookReg.AfterScenario(), 1)
	assert.Equal(t, "./reset_db.sh", hookReg.BeforeScenario()[0].Command)
}

func TestLoader_PatternsAnchored(t *testing.T) {
	dir := t.TempDir()
	writeDefs(t, dir, "a.steps.yaml", `
steps:
  - pattern: 'a user'
    run: 'true'
`)

	stepReg := NewStepRegistry()
	require.NoError(t, NewLoader(stepReg, NewHookRegistry()).LoadAll(dir))

	_, ok := stepReg.Steps()[0].Match("a user exists")
	assert.False(t, ok)
	_, ok = stepReg.Steps()[0].Match("a user")
	assert.True(t, ok)
}

func TestLoader_MissingBasedir(t *testing.T) {
	err := NewLoader(NewStepRegistry(), NewHookRegistry()).LoadAll(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestLoader_InvalidPattern(t *testing.T) {
	dir := t.TempDir()
	writeDefs(t, dir, "bad.steps.yaml", `
steps:
  - pattern: '([unclosed'
    run: 'true'
`)

	err := NewLoader(NewStepRegistry(), NewHookRegistry()).LoadAll(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid step pattern")
}

func TestLoader_StepWithoutCommand(t *testing.T) {
	dir := t.TempDir()
	writeDefs(t, dir, "bad.steps.yaml", `
steps:
  - pattern: 'a user'
`)

	err := NewLoader(NewStepRegistry(), NewHookRegistry()).LoadAll(dir)
	require.Error(t, err)
}
