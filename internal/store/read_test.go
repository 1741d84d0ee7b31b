package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRun_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ReadRun(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReadRunsForProblem_EmptySliceNotNil(t *testing.T) {
	s := openTestStore(t)

	runs, err := s.ReadRunsForProblem(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestReadVerdicts_EmptySliceNotNil(t *testing.T) {
	s := openTestStore(t)

	verdicts, err := s.ReadVerdicts(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, verdicts)
	assert.Empty(t, verdicts)
}

func TestReadRunsForProblem_OrderedBySeq(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Insert out of seq order.
	for _, rec := range []RunRecord{
		{Token: "run-c", Problem: "p", Mode: ModeSequential, Samples: 10, Workers: 1, Seed: 3, Seq: 3},
		{Token: "run-a", Problem: "p", Mode: ModeSequential, Samples: 10, Workers: 1, Seed: 1, Seq: 1},
		{Token: "run-b", Problem: "p", Mode: ModeParallel, Samples: 10, Workers: 2, Seed: 2, Seq: 2},
		{Token: "run-x", Problem: "other", Mode: ModeSequential, Samples: 10, Workers: 1, Seed: 9, Seq: 0},
	} {
		_, err := s.WriteRun(ctx, rec, nil)
		require.NoError(t, err)
	}

	runs, err := s.ReadRunsForProblem(ctx, "p")
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-a", runs[0].Token)
	assert.Equal(t, "run-b", runs[1].Token)
	assert.Equal(t, "run-c", runs[2].Token)
}

func TestReadAllRuns_TokenTieBreakIsBinary(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Same seq: binary collation orders uppercase before lowercase.
	for _, token := range []string{"b", "A", "a"} {
		_, err := s.WriteRun(ctx, RunRecord{
			Token: token, Problem: "p", Mode: ModeSequential,
			Samples: 1, Workers: 1, Seed: 0, Seq: 5,
		}, nil)
		require.NoError(t, err)
	}

	runs, err := s.ReadAllRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "A", runs[0].Token)
	assert.Equal(t, "a", runs[1].Token)
	assert.Equal(t, "b", runs[2].Token)
}
