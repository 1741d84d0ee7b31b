package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/product_mix_parallel.yaml")
	require.NoError(t, err)

	assert.Equal(t, "product-mix-parallel", s.Name)
	assert.Equal(t, "parallel", s.Mode)
	assert.Equal(t, 100000, s.Samples)
	assert.Equal(t, 4, s.Workers)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, filepath.Join("testdata", "scenarios", "..", "problems", "product_mix.cue"), s.Problem)

	require.NotNil(t, s.Expect)
	require.NotNil(t, s.Expect.Found)
	assert.True(t, *s.Expect.Found)
	require.NotNil(t, s.Expect.MinGoal)
	assert.Equal(t, 66100.0, *s.Expect.MinGoal)
	assert.Equal(t, map[string]int{"x1": 122, "x2": 78}, s.Expect.Solution)
	assert.Equal(t, []bool{true, true, true}, s.Expect.Verdicts)
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// absProblemPath gives temp-dir scenarios a problem file that exists.
func absProblemPath(t *testing.T) string {
	t.Helper()
	abs, err := filepath.Abs("testdata/problems/product_mix.cue")
	require.NoError(t, err)
	return abs
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "unknown key"
problem: `+absProblemPath(t)+`
mode: sequential
samples: 10
seed: 1
expects:
  found: true
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	problem := absProblemPath(t)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nproblem: " + problem + "\nmode: sequential\nsamples: 1\nseed: 1\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nproblem: " + problem + "\nmode: sequential\nsamples: 1\nseed: 1\n",
			wantErr: "description is required",
		},
		{
			name:    "missing problem",
			content: "name: n\ndescription: d\nmode: sequential\nsamples: 1\nseed: 1\n",
			wantErr: "problem is required",
		},
		{
			name:    "unknown mode",
			content: "name: n\ndescription: d\nproblem: " + problem + "\nmode: speculative\nsamples: 1\nseed: 1\n",
			wantErr: `unknown mode "speculative"`,
		},
		{
			name:    "workers in sequential mode",
			content: "name: n\ndescription: d\nproblem: " + problem + "\nmode: sequential\nsamples: 1\nworkers: 2\nseed: 1\n",
			wantErr: "workers is only valid for parallel mode",
		},
		{
			name:    "parallel without workers",
			content: "name: n\ndescription: d\nproblem: " + problem + "\nmode: parallel\nsamples: 1\nseed: 1\n",
			wantErr: "workers must be positive",
		},
		{
			name:    "negative samples",
			content: "name: n\ndescription: d\nproblem: " + problem + "\nmode: sequential\nsamples: -5\nseed: 1\n",
			wantErr: "samples must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_ProblemFileMustExist(t *testing.T) {
	path := writeScenario(t, `
name: n
description: d
problem: does_not_exist.cue
mode: sequential
samples: 1
seed: 1
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem file not found")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
