package plan

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedFilterError reports a scenario filter token that is not a
// positive integer.
type MalformedFilterError struct {
	Token string
}

func (e *MalformedFilterError) Error() string {
	return fmt.Sprintf("malformed scenario filter entry %q: expected a positive integer", e.Token)
}

// ScenarioOutOfRangeError reports a filter id outside [1, Total].
type ScenarioOutOfRangeError struct {
	ID    int
	Total int
}

func (e *ScenarioOutOfRangeError) Error() string {
	return fmt.Sprintf("scenario %d not found: this run has scenarios 1 to %d", e.ID, e.Total)
}

// SelectScenarios parses and validates the comma-separated scenario
// filter against the total scenario count. An empty filter means "run
// everything" and yields nil. Order and duplicates are preserved; the
// first out-of-range id aborts validation.
func SelectScenarios(filter string, total int) ([]int, error) {
	if filter == "" {
		return nil, nil
	}

	tokens := strings.Split(filter, ",")
	ids := make([]int, 0, len(tokens))
	for _, token := range tokens {
		trimmed := strings.TrimSpace(token)
		id, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, &MalformedFilterError{Token: trimmed}
		}
		if id < 1 || id > total {
			return nil, &ScenarioOutOfRangeError{ID: id, Total: total}
		}
		ids = append(ids, id)
	}

	return ids, nil
}
