package harness

import (
	"context"
	"fmt"

	"github.com/tmarden/sift/internal/compiler"
	"github.com/tmarden/sift/internal/problem"
	"github.com/tmarden/sift/internal/rng"
	"github.com/tmarden/sift/internal/search"
	"github.com/tmarden/sift/internal/store"
	"github.com/tmarden/sift/internal/testutil"
	"github.com/tmarden/sift/internal/trace"
)

// Harness executes one scenario with deterministic helpers.
type Harness struct {
	scenario *Scenario
	clock    *testutil.DeterministicClock
	store    *store.Store
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory ledger for isolation.
// The seed and run token from the scenario make the trace reproducible.
//
// Execution flow:
//  1. Compile the CUE problem definition
//  2. Run the seeded search (sequential or parallel per mode)
//  3. Record the run in the ledger
//  4. Check the outcome against the expect clause
func Run(scenario *Scenario) (*Result, error) {
	spec, err := compiler.LoadProblemFile(scenario.Problem)
	if err != nil {
		return nil, fmt.Errorf("load problem: %w", err)
	}

	prob, err := problem.New(spec)
	if err != nil {
		return nil, fmt.Errorf("build problem: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory ledger: %w", err)
	}
	defer st.Close()

	token := scenario.RunToken
	if token == "" {
		token = DefaultRunToken
	}

	h := &Harness{
		scenario: scenario,
		clock:    testutil.NewDeterministicClock(),
		store:    st,
	}

	return h.run(context.Background(), prob, token)
}

func (h *Harness) run(ctx context.Context, prob *problem.Problem, token string) (*Result, error) {
	s := h.scenario
	result := NewResult(token)

	eng := search.New[problem.Mix](prob, prob.Constraints(), rng.NewSource(s.Seed),
		search.WithDirection[problem.Mix](prob.Direction()),
		search.WithRunTokens[problem.Mix](search.NewFixedGenerator(token)),
	)

	result.AddTrace("run_started", h.clock.Next(), map[string]any{
		"problem": prob.Spec().Name,
		"mode":    s.Mode,
		"samples": s.Samples,
		"workers": s.Workers,
		"seed":    s.Seed,
	})

	var winner search.Validated[problem.Mix]
	var found bool
	var err error
	switch s.Mode {
	case store.ModeSequential:
		winner, found, err = eng.Run(ctx, s.Samples)
	case store.ModeParallel:
		winner, found, err = eng.RunParallel(ctx, s.Samples, s.Workers)
	default:
		return nil, fmt.Errorf("unknown mode %q", s.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("run scenario %q: %w", s.Name, err)
	}

	result.Found = found
	if found {
		result.Goal = prob.Goal(winner.Candidate)
		result.Solution = prob.Assignment(winner.Candidate)
		result.Verdicts = append([]bool(nil), winner.Verdicts...)
		result.AddTrace("winner", h.clock.Next(), map[string]any{
			"goal":     result.Goal,
			"solution": result.Solution,
			"verdicts": result.Verdicts,
		})
	} else {
		result.AddTrace("absence", h.clock.Next(), nil)
	}

	if err := h.record(ctx, prob, result); err != nil {
		return nil, err
	}

	h.checkExpectations(result)
	return result, nil
}

// record writes the run and its verdicts to the ledger.
func (h *Harness) record(ctx context.Context, prob *problem.Problem, result *Result) error {
	s := h.scenario

	rec := store.RunRecord{
		Token:   result.RunToken,
		Problem: prob.Spec().Name,
		Mode:    s.Mode,
		Samples: s.Samples,
		Workers: s.Workers,
		Seed:    s.Seed,
		Seq:     h.clock.Next(),
		Found:   result.Found,
	}

	var verdicts []store.Verdict
	if result.Found {
		rec.Goal = result.Goal
		solutionJSON, err := trace.Marshal(result.Solution)
		if err != nil {
			return fmt.Errorf("serialize solution: %w", err)
		}
		rec.Solution = string(solutionJSON)

		constraints := prob.Spec().Constraints
		for i, satisfied := range result.Verdicts {
			verdicts = append(verdicts, store.Verdict{
				Name:      constraints[i].Name,
				Satisfied: satisfied,
			})
		}
	}

	if _, err := h.store.WriteRun(ctx, rec, verdicts); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	result.AddTrace("run_recorded", rec.Seq, map[string]any{
		"token": rec.Token,
	})

	return nil
}

// checkExpectations validates the result against the expect clause.
func (h *Harness) checkExpectations(result *Result) {
	expect := h.scenario.Expect
	if expect == nil {
		return
	}

	if expect.Found != nil && result.Found != *expect.Found {
		result.AddError(fmt.Sprintf("found = %v, expected %v", result.Found, *expect.Found))
	}

	if expect.MinGoal != nil {
		if !result.Found {
			result.AddError(fmt.Sprintf("min_goal %v expected but no candidate was found", *expect.MinGoal))
		} else if result.Goal < *expect.MinGoal {
			result.AddError(fmt.Sprintf("goal = %v, expected at least %v", result.Goal, *expect.MinGoal))
		}
	}

	if len(expect.Solution) > 0 {
		if !result.Found {
			result.AddError("solution expected but no candidate was found")
		} else {
			for name, want := range expect.Solution {
				got, ok := result.Solution[name]
				if !ok {
					result.AddError(fmt.Sprintf("solution has no variable %q", name))
					continue
				}
				if got != want {
					result.AddError(fmt.Sprintf("solution[%s] = %d, expected %d", name, got, want))
				}
			}
		}
	}

	if expect.Verdicts != nil {
		if !result.Found {
			result.AddError("verdicts expected but no candidate was found")
		} else if !equalVerdicts(result.Verdicts, expect.Verdicts) {
			result.AddError(fmt.Sprintf("verdicts = %v, expected %v", result.Verdicts, expect.Verdicts))
		}
	}
}

func equalVerdicts(got, want []bool) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
