package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/tmarden/sift/internal/problem"
)

// LoadProblemFile reads a CUE file and compiles the problem it defines.
// The file must declare exactly one entry under the top-level "problem"
// struct; its label becomes the problem name.
func LoadProblemFile(path string) (*problem.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read problem file: %w", err)
	}
	return LoadProblemSource(string(data), path)
}

// LoadProblemSource compiles CUE source text into a problem spec.
// filename is used for error positions only.
func LoadProblemSource(src, filename string) (*problem.Spec, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	root := v.LookupPath(cue.ParsePath("problem"))
	if !root.Exists() {
		return nil, &CompileError{
			Field:   "problem",
			Message: "no top-level problem struct",
			Pos:     v.Pos(),
		}
	}

	iter, err := root.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var entries []cue.Value
	for iter.Next() {
		entries = append(entries, iter.Value())
	}
	if len(entries) != 1 {
		return nil, &CompileError{
			Field:   "problem",
			Message: fmt.Sprintf("expected exactly one problem, found %d", len(entries)),
			Pos:     root.Pos(),
		}
	}

	spec, err := CompileProblem(entries[0])
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem %q: %w", spec.Name, err)
	}

	return spec, nil
}
