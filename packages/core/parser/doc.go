// Package parser turns .feature files into Feature trees.
//
// A feature file holds one Feature with a name and an optional free-text
// description, followed by any number of Scenario blocks. Each scenario
// is a list of steps introduced by Given/When/Then/And/But keywords.
// Lines starting with # are comments and @-prefixed lines are tags.
//
// The parser also owns identifier assignment: a feature receives the id
// it is parsed with, and its scenarios consume a contiguous range of a
// run-wide scenario id counter that the caller threads through
// consecutive Parse calls.
package parser
