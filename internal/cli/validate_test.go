package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidProblem(t *testing.T) {
	out, err := execute(t, "validate", "testdata/product_mix.cue")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ product_mix is valid")
}

func TestValidate_InvalidProblem(t *testing.T) {
	out, err := execute(t, "validate", "testdata/broken.cue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, `unknown op "<"`)
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := execute(t, "validate", "testdata/absent.cue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestValidate_JSONOutput(t *testing.T) {
	out, err := execute(t, "--format", "json", "validate", "testdata/product_mix.cue")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidate_JSONError(t *testing.T) {
	out, err := execute(t, "--format", "json", "validate", "testdata/broken.cue")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_VALIDATE", resp.Error.Code)
}
