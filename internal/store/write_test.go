package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() RunRecord {
	return RunRecord{
		Token:    "run-1",
		Problem:  "product_mix",
		Mode:     ModeParallel,
		Samples:  100000,
		Workers:  4,
		Seed:     42,
		Seq:      1,
		Found:    true,
		Goal:     66100,
		Solution: `{"x1":122,"x2":78}`,
	}
}

func sampleVerdicts() []Verdict {
	return []Verdict{
		{Name: "assembly", Satisfied: true},
		{Name: "machining", Satisfied: true},
		{Name: "finishing", Satisfied: true},
	}
}

func TestWriteRun_InsertsRunAndVerdicts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	inserted, err := s.WriteRun(ctx, sampleRun(), sampleVerdicts())
	require.NoError(t, err)
	assert.True(t, inserted)

	rec, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, sampleRun(), rec)

	verdicts, err := s.ReadVerdicts(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, verdicts, 3)
	assert.Equal(t, Verdict{RunToken: "run-1", Position: 0, Name: "assembly", Satisfied: true}, verdicts[0])
	assert.Equal(t, "machining", verdicts[1].Name)
	assert.Equal(t, "finishing", verdicts[2].Name)
}

func TestWriteRun_DuplicateTokenIsNoOp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	inserted, err := s.WriteRun(ctx, sampleRun(), sampleVerdicts())
	require.NoError(t, err)
	require.True(t, inserted)

	// Same token, different payload: original record wins.
	altered := sampleRun()
	altered.Goal = 99999
	inserted, err = s.WriteRun(ctx, altered, nil)
	require.NoError(t, err)
	assert.False(t, inserted)

	rec, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 66100.0, rec.Goal)

	verdicts, err := s.ReadVerdicts(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, verdicts, 3)
}

func TestWriteRun_AbsenceStoresNullGoalAndSolution(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := sampleRun()
	rec.Token = "run-empty"
	rec.Found = false
	rec.Goal = 12345 // ignored when Found is false
	rec.Solution = `{"x1":1}`

	inserted, err := s.WriteRun(ctx, rec, nil)
	require.NoError(t, err)
	require.True(t, inserted)

	got, err := s.ReadRun(ctx, "run-empty")
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Zero(t, got.Goal)
	assert.Empty(t, got.Solution)

	verdicts, err := s.ReadVerdicts(ctx, "run-empty")
	require.NoError(t, err)
	assert.Empty(t, verdicts)
}

func TestWriteRun_RejectsUnknownMode(t *testing.T) {
	s := openTestStore(t)

	rec := sampleRun()
	rec.Mode = "speculative"

	_, err := s.WriteRun(context.Background(), rec, nil)
	require.Error(t, err)
}

func TestWriteRun_VerdictPositionsFollowSliceOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := sampleRun()
	rec.Token = "run-order"
	verdicts := []Verdict{
		{Name: "zulu", Satisfied: false},
		{Name: "alpha", Satisfied: true},
	}

	_, err := s.WriteRun(ctx, rec, verdicts)
	require.NoError(t, err)

	got, err := s.ReadVerdicts(ctx, "run-order")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "zulu", got[0].Name)
	assert.Equal(t, 0, got[0].Position)
	assert.Equal(t, "alpha", got[1].Name)
	assert.Equal(t, 1, got[1].Position)
}
