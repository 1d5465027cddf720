package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scpsim/scpreport/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		Long: `List every run recorded in the history database, oldest first.

Example:
  scpreport history --db runs.db
  scpreport history --db runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run-history database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.SuccessText(renderHistoryText(runs), runs)
}

func renderHistoryText(runs []store.Run) string {
	if len(runs) == 0 {
		return "No runs recorded."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d run(s) recorded\n", len(runs))
	for _, run := range runs {
		fmt.Fprintf(&b, "%s  %s  nodes=%d slots=%d tx=%d/%d  %s",
			run.CreatedAt,
			run.ID,
			run.Params.NodeCount,
			run.Metrics.TotalSlots,
			run.Metrics.TotalTxInAllSlots,
			run.Metrics.TotalTxCreated,
			run.LogPath,
		)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
