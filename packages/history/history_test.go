package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specrun/specrun/packages/core/parser"
	"github.com/specrun/specrun/packages/core/runner"
)

func TestStore_RecordsRuns(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	store.ScenarioFinished(&runner.ScenarioResult{
		Scenario: &parser.Scenario{ID: 1, Name: "ok"},
		Passed:   true,
		Duration: 5 * time.Millisecond,
	})
	store.ScenarioFinished(&runner.ScenarioResult{
		Scenario: &parser.Scenario{ID: 2, Name: "broken"},
	})
	store.RunFinished(&runner.Summary{
		RunID:    "run-1",
		Marker:   "m1",
		Ran:      2,
		Passed:   1,
		Failed:   1,
		Duration: 20 * time.Millisecond,
	})

	runs, err := store.Runs(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, "m1", runs[0].Marker)
	assert.Equal(t, 1, runs[0].Failed)
	assert.Equal(t, 20*time.Millisecond, runs[0].Duration)
}

func TestStore_SecondRunAppends(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	store.RunFinished(&runner.Summary{RunID: "run-1", Marker: "a"})
	store.RunFinished(&runner.Summary{RunID: "run-2", Marker: "b"})

	runs, err := store.Runs(10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}
