package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmarden/sift/internal/compiler"
	"github.com/tmarden/sift/internal/problem"
	"github.com/tmarden/sift/internal/rng"
	"github.com/tmarden/sift/internal/search"
	"github.com/tmarden/sift/internal/store"
	"github.com/tmarden/sift/internal/trace"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Samples int
	Workers int
	Seed    int64
	DB      string
	Token   string
}

// VerdictView is one constraint outcome in solve output.
type VerdictView struct {
	Name      string `json:"name"`
	Satisfied bool   `json:"satisfied"`
}

// SolveResult is the payload for solve output.
type SolveResult struct {
	Token    string         `json:"token"`
	Problem  string         `json:"problem"`
	Mode     string         `json:"mode"`
	Samples  int            `json:"samples"`
	Workers  int            `json:"workers"`
	Seed     int64          `json:"seed"`
	Found    bool           `json:"found"`
	Goal     float64        `json:"goal,omitempty"`
	Solution map[string]int `json:"solution,omitempty"`
	Verdicts []VerdictView  `json:"verdicts,omitempty"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <problem.cue>",
		Short: "Search for the best valid solution to a problem",
		Long: `Sample random candidates for a CUE-defined problem, keep the ones
that satisfy every constraint, and report the best survivor.

With --workers greater than 1 the samples are drawn by independent
workers, each on its own random stream; --samples then counts per
worker. A fixed --seed makes the run reproducible.

Exit codes:
  0 - A valid candidate was found
  1 - No valid candidate in the sampled batch
  2 - Command error (bad problem file, invalid flags, etc.)

Examples:
  sift solve problems/product_mix.cue --samples 100000
  sift solve problems/product_mix.cue --samples 100000 --workers 4 --seed 42
  sift solve problems/product_mix.cue --samples 50000 --db runs.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Samples, "samples", 10000, "samples to draw (per worker in parallel mode)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "worker count (>1 enables parallel mode)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (defaults to wall clock)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record the run in this ledger database")
	cmd.Flags().StringVar(&opts.Token, "token", "", "fixed run token (defaults to a generated UUIDv7)")

	return cmd
}

func runSolve(opts *SolveOptions, problemPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	spec, err := compiler.LoadProblemFile(problemPath)
	if err != nil {
		_ = formatter.Error("E_COMPILE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load problem", err)
	}

	prob, err := problem.New(spec)
	if err != nil {
		_ = formatter.Error("E_COMPILE", err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to build problem", err)
	}

	source := rng.NewTimeSource()
	if cmd.Flags().Changed("seed") {
		source = rng.NewSource(opts.Seed)
	}

	// Pin the run token up front so the log lines, the printed result,
	// and the ledger row all carry the same token.
	token := opts.Token
	if token == "" {
		token = search.UUIDv7Generator{}.Generate()
	}

	eng := search.New[problem.Mix](prob, prob.Constraints(), source,
		search.WithDirection[problem.Mix](prob.Direction()),
		search.WithRunTokens[problem.Mix](search.NewFixedGenerator(token)),
	)

	mode := store.ModeSequential
	formatter.VerboseLog("problem %s: %d vars, %d constraints", spec.Name, len(spec.Vars), len(spec.Constraints))
	formatter.VerboseLog("seed %d, %d samples, %d workers", source.Seed(), opts.Samples, opts.Workers)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var winner search.Validated[problem.Mix]
	var found bool
	if opts.Workers > 1 {
		mode = store.ModeParallel
		winner, found, err = eng.RunParallel(ctx, opts.Samples, opts.Workers)
	} else {
		winner, found, err = eng.Run(ctx, opts.Samples)
	}
	if err != nil {
		_ = formatter.Error("E_SEARCH", err.Error(), nil)
		return WrapExitError(ExitCommandError, "search failed", err)
	}

	result := SolveResult{
		Token:   token,
		Problem: spec.Name,
		Mode:    mode,
		Samples: opts.Samples,
		Workers: opts.Workers,
		Seed:    source.Seed(),
		Found:   found,
	}
	if found {
		result.Goal = prob.Goal(winner.Candidate)
		result.Solution = prob.Assignment(winner.Candidate)
		for i, satisfied := range winner.Verdicts {
			result.Verdicts = append(result.Verdicts, VerdictView{
				Name:      spec.Constraints[i].Name,
				Satisfied: satisfied,
			})
		}
	}

	if opts.DB != "" {
		if err := recordSolve(ctx, opts.DB, result); err != nil {
			_ = formatter.Error("E_LEDGER", err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		formatter.VerboseLog("run %s recorded in %s", result.Token, opts.DB)
	}

	return outputSolve(formatter, result)
}

// recordSolve writes the run to the ledger database.
func recordSolve(ctx context.Context, dbPath string, result SolveResult) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	rec := store.RunRecord{
		Token:   result.Token,
		Problem: result.Problem,
		Mode:    result.Mode,
		Samples: result.Samples,
		Workers: result.Workers,
		Seed:    result.Seed,
		Found:   result.Found,
	}

	// Seq continues the ledger's logical clock.
	existing, err := st.ReadAllRuns(ctx)
	if err != nil {
		return err
	}
	rec.Seq = int64(len(existing)) + 1

	var verdicts []store.Verdict
	if result.Found {
		rec.Goal = result.Goal
		solutionJSON, err := trace.Marshal(result.Solution)
		if err != nil {
			return err
		}
		rec.Solution = string(solutionJSON)

		for _, v := range result.Verdicts {
			verdicts = append(verdicts, store.Verdict{Name: v.Name, Satisfied: v.Satisfied})
		}
	}

	_, err = st.WriteRun(ctx, rec, verdicts)
	return err
}

// outputSolve renders the result and maps absence to exit code 1.
func outputSolve(formatter *OutputFormatter, result SolveResult) error {
	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
		if !result.Found {
			return NewExitError(ExitFailure, "no valid candidate found")
		}
		return nil
	}

	w := formatter.Writer
	if !result.Found {
		fmt.Fprintf(w, "✗ %s: no valid candidate in %d samples\n", result.Problem, totalSamples(result))
		return NewExitError(ExitFailure, "no valid candidate found")
	}

	fmt.Fprintf(w, "✓ %s: goal %v\n", result.Problem, result.Goal)
	fmt.Fprintf(w, "  solution: %s\n", formatSolution(result.Solution))
	for _, v := range result.Verdicts {
		mark := "ok"
		if !v.Satisfied {
			mark = "violated"
		}
		fmt.Fprintf(w, "  %s: %s\n", v.Name, mark)
	}
	fmt.Fprintf(w, "  run: %s\n", result.Token)
	return nil
}

func totalSamples(result SolveResult) int {
	if result.Mode == store.ModeParallel {
		return result.Samples * result.Workers
	}
	return result.Samples
}

// formatSolution renders an assignment with variables in sorted order.
func formatSolution(solution map[string]int) string {
	keys := make([]string, 0, len(solution))
	for k := range solution {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, solution[k])
	}
	return strings.Join(parts, ", ")
}
