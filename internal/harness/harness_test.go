package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ProductMixParallel(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/product_mix_parallel.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.True(t, result.Found)
	assert.Equal(t, 66100.0, result.Goal)
	assert.Equal(t, map[string]int{"x1": 122, "x2": 78}, result.Solution)
	assert.Equal(t, []bool{true, true, true}, result.Verdicts)
	assert.Equal(t, DefaultRunToken, result.RunToken)
}

func TestRun_ProductMixSequential(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/product_mix_sequential.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.True(t, result.Found)
	assert.GreaterOrEqual(t, result.Goal, 60000.0)
}

func TestRun_InfeasibleProblemIsAbsenceNotError(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/no_valid_candidates.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.False(t, result.Found)
	assert.Zero(t, result.Goal)
	assert.Nil(t, result.Solution)
	assert.Nil(t, result.Verdicts)
}

func TestRun_TraceHasLogicalClockOrder(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/no_valid_candidates.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	require.Len(t, result.Trace, 3)
	assert.Equal(t, "run_started", result.Trace[0].Type)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, "absence", result.Trace[1].Type)
	assert.Equal(t, int64(2), result.Trace[1].Seq)
	assert.Equal(t, "run_recorded", result.Trace[2].Type)
	assert.Equal(t, int64(3), result.Trace[2].Seq)
}

func TestRun_FailedExpectationMarksResult(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/no_valid_candidates.yaml")
	require.NoError(t, err)

	// Flip the expectation: the infeasible problem can never satisfy it.
	found := true
	minGoal := 1.0
	s.Expect = &ExpectClause{Found: &found, MinGoal: &minGoal}

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "found = false, expected true")
	assert.Contains(t, result.Errors[1], "no candidate was found")
}

func TestRun_FixedRunTokenFlowsThrough(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/no_valid_candidates.yaml")
	require.NoError(t, err)
	s.RunToken = "run-override"

	result, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, "run-override", result.RunToken)
	recorded := result.Trace[len(result.Trace)-1]
	assert.Equal(t, "run-override", recorded.Detail["token"])
}

func TestRun_Deterministic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/product_mix_sequential.yaml")
	require.NoError(t, err)

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, first.Goal, second.Goal)
	assert.Equal(t, first.Solution, second.Solution)
	assert.Equal(t, first.Trace, second.Trace)
}
