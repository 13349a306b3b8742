package plan

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specrun/specrun/packages/core/discover"
	"github.com/specrun/specrun/packages/core/parser"
)

// fakeParser fabricates features with a fixed scenario count per file.
type fakeParser struct {
	scenarios map[string]int
	failOn    string
	calls     []string
}

func (p *fakeParser) Parse(path string, featureID, startScenarioID int) (*parser.Feature, int, error) {
	p.calls = append(p.calls, path)
	if path == p.failOn {
		return nil, startScenarioID, fmt.Errorf("parse failure in %s", path)
	}

	feature := &parser.Feature{ID: featureID, Path: path}
	counter := startScenarioID
	for i := 0; i < p.scenarios[path]; i++ {
		counter++
		feature.Scenarios = append(feature.Scenarios, &parser.Scenario{ID: counter})
	}
	return feature, counter, nil
}

func TestBuild_GlobalIdentifierSpace(t *testing.T) {
	paths := []string{"a.feature", "b.feature", "c.feature"}
	fake := &fakeParser{scenarios: map[string]int{
		"a.feature": 2,
		"b.feature": 0,
		"c.feature": 3,
	}}

	features, total, err := Build(paths, fake)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, features, 3)

	// Feature ids follow discovery order, 1-based.
	for i, f := range features {
		assert.Equal(t, i+1, f.ID)
	}

	// Scenario ids are one contiguous run-wide range with no gaps.
	var ids []int
	for _, f := range features {
		for _, s := range f.Scenarios {
			ids = append(ids, s.ID)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
}

func TestBuild_EmptyPathListIsNoFeatureFiles(t *testing.T) {
	_, _, err := Build(nil, &fakeParser{})
	require.ErrorIs(t, err, discover.ErrNoFeatureFiles)
}

func TestBuild_ParserFailureStopsImmediately(t *testing.T) {
	fake := &fakeParser{
		scenarios: map[string]int{"a.feature": 1},
		failOn:    "b.feature",
	}

	_, _, err := Build([]string{"a.feature", "b.feature", "c.feature"}, fake)
	require.Error(t, err)
	assert.Equal(t, []string{"a.feature", "b.feature"}, fake.calls)
}

func TestSelectScenarios_EmptyFilterRunsEverything(t *testing.T) {
	ids, err := SelectScenarios("", 5)
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestSelectScenarios_OrderAndDuplicatesPreserved(t *testing.T) {
	ids, err := SelectScenarios("3,1,3", 5)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 3}, ids)
}

func TestSelectScenarios_OutOfRange(t *testing.T) {
	for _, filter := range []string{"0", "6", "2,6,3", "-1"} {
		_, err := SelectScenarios(filter, 5)
		require.Error(t, err, "filter %q", filter)

		var oor *ScenarioOutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, 5, oor.Total)
	}
}

func TestSelectScenarios_MalformedToken(t *testing.T) {
	_, err := SelectScenarios("1,two,3", 5)
	require.Error(t, err)

	var malformed *MalformedFilterError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "two", malformed.Token)

	var oor *ScenarioOutOfRangeError
	assert.False(t, errors.As(err, &oor))
}
