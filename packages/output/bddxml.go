package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/specrun/specrun/packages/core/runner"
)

// BDD XML result document

type xmlTestRun struct {
	XMLName   xml.Name     `xml:"testrun"`
	RunID     string       `xml:"id,attr"`
	Marker    string       `xml:"marker,attr"`
	Timestamp string       `xml:"timestamp,attr"`
	Scenarios int          `xml:"scenarios,attr"`
	Passed    int          `xml:"passed,attr"`
	Failed    int          `xml:"failed,attr"`
	Skipped   int          `xml:"skipped,attr"`
	Time      float64      `xml:"time,attr"`
	Features  []xmlFeature `xml:"feature"`
}

type xmlFeature struct {
	ID        int           `xml:"id,attr"`
	Name      string        `xml:"name,attr"`
	Path      string        `xml:"path,attr"`
	Scenarios []xmlScenario `xml:"scenario"`
}

type xmlScenario struct {
	ID     int       `xml:"id,attr"`
	Name   string    `xml:"name,attr"`
	Status string    `xml:"status,attr"`
	Time   float64   `xml:"time,attr"`
	Steps  []xmlStep `xml:"step"`
}

type xmlStep struct {
	Keyword string  `xml:"keyword,attr"`
	Status  string  `xml:"status,attr"`
	Time    float64 `xml:"time,attr"`
	Text    string  `xml:",chardata"`
	Failure string  `xml:"failure,omitempty"`
}

// XMLWriter accumulates scenario results and writes one BDD XML
// document, tagged with the run marker, when the run finishes.
type XMLWriter struct {
	runner.BaseExtension

	writer  io.Writer
	path    string
	results []*runner.ScenarioResult
}

type XMLOption func(*XMLWriter)

func NewXMLWriter(opts ...XMLOption) *XMLWriter {
	w := &XMLWriter{path: "specrun-results.xml"}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// XMLWithWriter writes the document to w instead of a file.
func XMLWithWriter(w io.Writer) XMLOption {
	return func(x *XMLWriter) {
		x.writer = w
		x.path = ""
	}
}

func XMLWithPath(path string) XMLOption {
	return func(x *XMLWriter) {
		x.path = path
	}
}

func (x *XMLWriter) ScenarioFinished(result *runner.ScenarioResult) {
	x.results = append(x.results, result)
}

func (x *XMLWriter) RunFinished(summary *runner.Summary) {
	doc := xmlTestRun{
		RunID:     summary.RunID,
		Marker:    summary.Marker,
		Timestamp: time.Now().Format(time.RFC3339),
		Scenarios: summary.Ran,
		Passed:    summary.Passed,
		Failed:    summary.Failed,
		Skipped:   summary.Skipped,
		Time:      summary.Duration.Seconds(),
	}

	// Group results by feature, in result order.
	index := make(map[int]int)
	for _, result := range x.results {
		pos, ok := index[result.Feature.ID]
		if !ok {
			doc.Features = append(doc.Features, xmlFeature{
				ID:   result.Feature.ID,
				Name: result.Feature.Name,
				Path: result.Feature.Path,
			})
			pos = len(doc.Features) - 1
			index[result.Feature.ID] = pos
		}
		doc.Features[pos].Scenarios = append(doc.Features[pos].Scenarios, toXMLScenario(result))
	}

	if err := x.write(doc); err != nil {
		fmt.Fprintf(os.Stderr, "warning: writing BDD XML result: %v\n", err)
	}
}

func (x *XMLWriter) write(doc xmlTestRun) error {
	w := x.writer
	if w == nil {
		f, err := os.Create(x.path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	fmt.Fprintf(w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	return encoder.Encode(doc)
}

func toXMLScenario(result *runner.ScenarioResult) xmlScenario {
	sc := xmlScenario{
		ID:     result.Scenario.ID,
		Name:   result.Scenario.Name,
		Status: scenarioStatus(result),
		Time:   result.Duration.Seconds(),
	}
	for _, step := range result.Steps {
		xs := xmlStep{
			Keyword: step.Step.Keyword,
			Status:  step.Status.String(),
			Time:    step.Duration.Seconds(),
			Text:    step.Step.Text,
		}
		if step.Err != nil {
			xs.Failure = step.Err.Error()
		}
		sc.Steps = append(sc.Steps, xs)
	}
	return sc
}

func scenarioStatus(result *runner.ScenarioResult) string {
	switch {
	case result.Skipped:
		return "skipped"
	case result.Passed:
		return "passed"
	default:
		return "failed"
	}
}
