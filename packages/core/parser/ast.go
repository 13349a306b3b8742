package parser

// Feature is a single parsed .feature file.
type Feature struct {
	ID          int
	Path        string
	Name        string
	Description string
	Tags        []string
	Scenarios   []*Scenario
	Line        int
}

// Scenario carries a run-wide unique id assigned at parse time.
type Scenario struct {
	ID    int
	Name  string
	Tags  []string
	Steps []*Step
	Line  int
}

// Step is one Given/When/Then line. Match is populated later by the
// matcher; it stays nil until steps are merged against a registry.
type Step struct {
	Keyword string
	Text    string
	Line    int
	Match   *StepMatch
}

// StepMatch is the binding of a step to a registered definition.
// Args holds the capture groups of the definition pattern, in order.
type StepMatch struct {
	Pattern string
	Command string
	Args    []string

	// JSONPath/JSONWant, when set, assert on the command's stdout.
	JSONPath string
	JSONWant string
}
