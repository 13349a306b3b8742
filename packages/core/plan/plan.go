// Package plan assembles the run plan: parsed features with their
// run-wide identifier space, the resolved marker, and the validated
// scenario filter. A run plan is built exactly once and then handed to
// the execution engine.
package plan

import (
	"github.com/specrun/specrun/packages/core/discover"
	"github.com/specrun/specrun/packages/core/parser"
)

// Parser is the per-file parsing contract. Implementations return the
// parsed feature and the scenario id counter value for the next file.
type Parser interface {
	Parse(path string, featureID, startScenarioID int) (*parser.Feature, int, error)
}

// FeatureParser is the real Parser backed by the parser package.
type FeatureParser struct{}

func (FeatureParser) Parse(path string, featureID, startScenarioID int) (*parser.Feature, int, error) {
	return parser.NewParser(path, featureID, startScenarioID).Parse()
}

// RunPlan is the finished description of what will execute. Ownership
// moves to the execution engine once built.
type RunPlan struct {
	Features       []*parser.Feature
	TotalScenarios int
	Marker         string

	// ScenarioFilter is nil when every scenario runs. Order and
	// duplicates are kept as given: a repeated id runs again.
	ScenarioFilter []int
}

// Build parses every file in discovery order, assigning 1-based feature
// ids and threading one global scenario id counter through all files.
// It returns the features and the total scenario count.
func Build(paths []string, p Parser) ([]*parser.Feature, int, error) {
	if len(paths) == 0 {
		return nil, 0, discover.ErrNoFeatureFiles
	}

	features := make([]*parser.Feature, 0, len(paths))
	counter := 0
	for i, path := range paths {
		feature, next, err := p.Parse(path, i+1, counter)
		if err != nil {
			return nil, 0, err
		}
		features = append(features, feature)
		counter = next
	}

	return features, counter, nil
}
