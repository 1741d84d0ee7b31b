// Package harness provides scenario-driven conformance testing for the
// search engine.
//
// The harness loads a CUE problem definition, runs a seeded search, and
// validates the outcome against the scenario's expectations. Fixed
// seeds and run tokens make every scenario reproducible, so traces can
// be compared against golden files byte for byte.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	problem: path/to/problem.cue
//	mode: parallel
//	samples: 100000
//	workers: 4
//	seed: 42
//	expect:
//	  found: true
//	  min_goal: 66100
//	  solution: { x1: 122, x2: 78 }
//	  verdicts: [true, true, true]
//
// mode is "sequential" or "parallel"; workers is only meaningful for
// parallel runs. Every expect field is optional: omitted fields are
// not checked.
//
// # Golden Files
//
// RunWithGolden serializes the run trace as canonical JSON and
// compares it against testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
