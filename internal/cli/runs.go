package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmarden/sift/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	DB      string
	Problem string
}

// RunView is one ledger row in runs output.
type RunView struct {
	Token    string  `json:"token"`
	Problem  string  `json:"problem"`
	Mode     string  `json:"mode"`
	Samples  int     `json:"samples"`
	Workers  int     `json:"workers"`
	Seed     int64   `json:"seed"`
	Found    bool    `json:"found"`
	Goal     float64 `json:"goal,omitempty"`
	Solution string  `json:"solution,omitempty"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs from a ledger database",
		Long: `List runs recorded by solve --db, oldest first.

Examples:
  sift runs --db runs.db
  sift runs --db runs.db --problem product_mix
  sift runs --db runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "ledger database path (required)")
	cmd.Flags().StringVar(&opts.Problem, "problem", "", "only show runs for this problem")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	if _, err := os.Stat(opts.DB); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.DB))
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var records []store.RunRecord
	if opts.Problem != "" {
		records, err = st.ReadRunsForProblem(ctx, opts.Problem)
	} else {
		records, err = st.ReadAllRuns(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read runs", err)
	}

	views := make([]RunView, len(records))
	for i, rec := range records {
		views[i] = RunView{
			Token:    rec.Token,
			Problem:  rec.Problem,
			Mode:     rec.Mode,
			Samples:  rec.Samples,
			Workers:  rec.Workers,
			Seed:     rec.Seed,
			Found:    rec.Found,
			Goal:     rec.Goal,
			Solution: rec.Solution,
		}
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if formatter.Format == "json" {
		return formatter.Success(views)
	}

	w := formatter.Writer
	if len(views) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	for _, v := range views {
		if v.Found {
			fmt.Fprintf(w, "%s  %s  %s  goal=%v  %s\n", v.Token, v.Problem, v.Mode, v.Goal, v.Solution)
		} else {
			fmt.Fprintf(w, "%s  %s  %s  (no valid candidate)\n", v.Token, v.Problem, v.Mode)
		}
	}
	fmt.Fprintf(w, "\n%d run(s)\n", len(views))
	return nil
}
