// Package harness provides conformance testing for qbool translations.
//
// A scenario pairs one query string with either the expected bucketed
// clauses or the expected syntax error. Scenarios document the observable
// behavior of the pipeline, including the last-segment-wins aggregation
// rule, and each successful scenario also has a golden document.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: scenario_b
//	description: "Earlier segments of an operator are overwritten"
//	input: "the +cat in the -hat"
//	expect:
//	  should:
//	    - term: in
//	    - term: the
//	  must:
//	    - term: cat
//	  must_not:
//	    - term: hat
//	  overwritten:
//	    - term: the
//
// Failing inputs use an error block instead of expect:
//
//	name: unterminated_phrase
//	description: "An opening quote needs a closing quote"
//	input: "\"cat in"
//	error:
//	  offset: 7
//	  expected: closing quote
//
// Unknown fields are rejected so typos surface as load errors.
//
// # Golden Documents
//
// RunWithGolden compares the canonical JSON of the produced document (or
// of the error) against testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
