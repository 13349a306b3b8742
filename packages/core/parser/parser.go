package parser

import (
	"fmt"
	"os"
	"strings"
)

var stepKeywords = []string{"Given", "When", "Then", "And", "But"}

// ParseError reports a malformed feature file with its location.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// Parser parses one feature file and assigns identifiers while doing so.
type Parser struct {
	file       string
	featureID  int
	scenarioID int
}

// NewParser returns a parser for path. featureID is the 1-based position
// of the file in the run; startScenarioID is the last scenario id
// consumed by earlier files (0 for the first file).
func NewParser(path string, featureID, startScenarioID int) *Parser {
	return &Parser{
		file:       path,
		featureID:  featureID,
		scenarioID: startScenarioID,
	}
}

// Parse reads and parses the feature file. It returns the feature and
// the id counter value to hand to the next file's parser.
func (p *Parser) Parse() (*Feature, int, error) {
	content, err := os.ReadFile(p.file)
	if err != nil {
		return nil, p.scenarioID, err
	}
	feature, err := p.parse(string(content))
	if err != nil {
		return nil, p.scenarioID, err
	}
	return feature, p.scenarioID, nil
}

func (p *Parser) parse(input string) (*Feature, error) {
	var feature *Feature
	var scenario *Scenario
	var pendingTags []string
	var description []string

	for i, raw := range strings.Split(input, "\n") {
		lineno := i + 1
		line := strings.TrimSpace(raw)

		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue

		case strings.HasPrefix(line, "@"):
			for _, tag := range strings.Fields(line) {
				pendingTags = append(pendingTags, strings.TrimPrefix(tag, "@"))
			}

		case strings.HasPrefix(line, "Feature:"):
			if feature != nil {
				return nil, &ParseError{File: p.file, Line: lineno, Message: "multiple Feature blocks in one file"}
			}
			feature = &Feature{
				ID:   p.featureID,
				Path: p.file,
				Name: strings.TrimSpace(strings.TrimPrefix(line, "Feature:")),
				Tags: pendingTags,
				Line: lineno,
			}
			pendingTags = nil

		case strings.HasPrefix(line, "Scenario:"):
			if feature == nil {
				return nil, &ParseError{File: p.file, Line: lineno, Message: "Scenario before Feature"}
			}
			p.scenarioID++
			scenario = &Scenario{
				ID:   p.scenarioID,
				Name: strings.TrimSpace(strings.TrimPrefix(line, "Scenario:")),
				Tags: pendingTags,
				Line: lineno,
			}
			pendingTags = nil
			feature.Scenarios = append(feature.Scenarios, scenario)

		case isStepLine(line):
			if scenario == nil {
				if feature != nil {
					// Free text between Feature: and the first scenario
					// is the feature description.
					description = append(description, line)
					continue
				}
				return nil, &ParseError{File: p.file, Line: lineno, Message: "step outside of a scenario"}
			}
			keyword, text := splitStep(line)
			scenario.Steps = append(scenario.Steps, &Step{
				Keyword: keyword,
				Text:    text,
				Line:    lineno,
			})

		default:
			if feature != nil && scenario == nil {
				description = append(description, line)
				continue
			}
			return nil, &ParseError{File: p.file, Line: lineno, Message: fmt.Sprintf("unexpected line %q", line)}
		}
	}

	if feature == nil {
		return nil, &ParseError{File: p.file, Line: 1, Message: "no Feature block found"}
	}
	feature.Description = strings.Join(description, "\n")
	return feature, nil
}

func isStepLine(line string) bool {
	for _, kw := range stepKeywords {
		if strings.HasPrefix(line, kw+" ") {
			return true
		}
	}
	return false
}

func splitStep(line string) (keyword, text string) {
	parts := strings.SplitN(line, " ", 2)
	return parts[0], strings.TrimSpace(parts[1])
}
