package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/tmarden/sift/internal/trace"
)

// Snapshot captures a scenario outcome for golden comparison.
// Serialized with canonical JSON so comparisons are byte-stable.
type Snapshot struct {
	ScenarioName string
	Result       *Result
}

// toCanonicalMap converts a Snapshot to a map[string]any for the
// canonical JSON codec, which only handles maps, slices, and primitives.
func (s *Snapshot) toCanonicalMap() map[string]any {
	events := make([]any, len(s.Result.Trace))
	for i, event := range s.Result.Trace {
		eventMap := map[string]any{
			"type": event.Type,
			"seq":  event.Seq,
		}
		if event.Detail != nil {
			eventMap["detail"] = event.Detail
		}
		events[i] = eventMap
	}

	out := map[string]any{
		"scenario_name": s.ScenarioName,
		"run_token":     s.Result.RunToken,
		"found":         s.Result.Found,
		"trace":         events,
	}
	if s.Result.Found {
		out["goal"] = s.Result.Goal
		out["solution"] = s.Result.Solution
		out["verdicts"] = s.Result.Verdicts
	}
	return out
}

// RunWithGolden executes a scenario and compares the outcome against a
// golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution or serialization fails. Test
// failure (via goldie) occurs if the outcome doesn't match the golden
// file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-computed result against a golden
// file, without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := Snapshot{
		ScenarioName: scenarioName,
		Result:       result,
	}

	data, err := trace.Marshal(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
