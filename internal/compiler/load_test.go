package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productMixCUE = `
problem: product_mix: {
	description: "Two-product mix under machine capacity"
	vars: {
		x1: {min: 1, max: 174}
		x2: {min: 1, max: 174}
	}
	constraints: [
		{name: "assembly", terms: {x1: 1, x2: 1}, op: "<=", bound: 200},
		{name: "machining", terms: {x1: 9, x2: 6}, op: "<=", bound: 1566},
		{name: "finishing", terms: {x1: 12, x2: 16}, op: "<=", bound: 2880},
	]
	objective: {
		terms: {x1: 350, x2: 300}
		direction: "maximize"
	}
}
`

func TestLoadProblemSource_Valid(t *testing.T) {
	spec, err := LoadProblemSource(productMixCUE, "product_mix.cue")
	require.NoError(t, err)
	assert.Equal(t, "product_mix", spec.Name)
	assert.Len(t, spec.Vars, 2)
	assert.Len(t, spec.Constraints, 3)
}

func TestLoadProblemFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mix.cue")
	require.NoError(t, os.WriteFile(path, []byte(productMixCUE), 0o644))

	spec, err := LoadProblemFile(path)
	require.NoError(t, err)
	assert.Equal(t, "product_mix", spec.Name)
}

func TestLoadProblemFile_Missing(t *testing.T) {
	_, err := LoadProblemFile(filepath.Join(t.TempDir(), "absent.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read problem file")
}

func TestLoadProblemSource_NoProblemStruct(t *testing.T) {
	_, err := LoadProblemSource(`puzzle: {x: 1}`, "puzzle.cue")
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "no top-level problem struct")
}

func TestLoadProblemSource_MultipleProblems(t *testing.T) {
	src := `
problem: first: {
	vars: x: {min: 0, max: 1}
	objective: terms: {x: 1}
}
problem: second: {
	vars: y: {min: 0, max: 1}
	objective: terms: {y: 1}
}
`
	_, err := LoadProblemSource(src, "two.cue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected exactly one problem, found 2")
}

func TestLoadProblemSource_SemanticValidation(t *testing.T) {
	// Compiles structurally but the range is empty.
	src := `
problem: hollow: {
	vars: x: {min: 5, max: 2}
	objective: terms: {x: 1}
}
`
	_, err := LoadProblemSource(src, "hollow.cue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid problem "hollow"`)
}

func TestLoadProblemSource_BadSyntax(t *testing.T) {
	_, err := LoadProblemSource(`problem: { x: `, "broken.cue")
	require.Error(t, err)
}
