package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmarden/sift/internal/compiler"
)

// ValidationResult holds validation results for a problem file.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Problem string `json:"problem,omitempty"`
	Error   string `json:"error,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <problem.cue>",
		Short: "Validate a problem definition without searching",
		Long: `Compile and validate a CUE problem definition without running a search.

Performs syntax checking, structural compilation, and semantic checks
(declared variables, sane ranges, known relations). Faster than solve
for development feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, problemPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	spec, err := compiler.LoadProblemFile(problemPath)
	if err != nil {
		return outputValidateFailure(formatter, err)
	}

	formatter.VerboseLog("problem %s: %d vars, %d constraints, %d objective terms",
		spec.Name, len(spec.Vars), len(spec.Constraints), len(spec.Objective.Terms))

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Problem: spec.Name})
	}

	fmt.Fprintf(formatter.Writer, "✓ %s is valid\n", spec.Name)
	return nil
}

// outputValidateFailure reports a compile or validation error.
// Compile errors carry a source position; semantic errors don't.
func outputValidateFailure(formatter *OutputFormatter, err error) error {
	line := 0
	var ce *compiler.CompileError
	if errors.As(err, &ce) && ce.Pos.IsValid() {
		line = ce.Pos.Line()
	}

	if formatter.Format == "json" {
		result := ValidationResult{
			Valid: false,
			Error: err.Error(),
			Line:  line,
		}
		if encodeErr := formatter.Error("E_VALIDATE", err.Error(), result); encodeErr != nil {
			return encodeErr
		}
		return NewExitError(ExitFailure, "validation failed")
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	if line > 0 {
		fmt.Fprintf(formatter.Writer, "  line %d: %s\n", line, err.Error())
	} else {
		fmt.Fprintf(formatter.Writer, "  %s\n", err.Error())
	}
	return NewExitError(ExitFailure, "validation failed")
}
