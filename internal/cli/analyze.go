package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scpsim/scpreport/internal/aggregate"
	"github.com/scpsim/scpreport/internal/config"
	"github.com/scpsim/scpreport/internal/report"
	"github.com/scpsim/scpreport/internal/simlog"
	"github.com/scpsim/scpreport/internal/store"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	Out        string
	ParamsFile string
	Database   string

	NodeCount      int
	SimTime        float64
	SimParams      string
	AllTestsPassed bool
}

// analyzeResult is the JSON payload for a successful analysis.
type analyzeResult struct {
	LogPath       string           `json:"log_path"`
	ReportPath    string           `json:"report_path"`
	NodesObserved int              `json:"nodes_observed"`
	Params        simlog.RunParams `json:"params"`
	Metrics       simlog.Metrics   `json:"metrics"`
	RunID         string           `json:"run_id,omitempty"`
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze <log-file>",
		Short: "Analyze a simulation event log and append a summary row",
		Long: `Analyze an SCP simulator event log and append one summary row to the CSV report.

The log is scanned for mining announcements and SCPExternalize finalisation
events. Derived metrics plus the caller-supplied run parameters form one row
of the report; the file and its header are created on first use.

Run parameters come from a YAML file (--params) and/or individual flags;
flags override file values.

Example:
  scpreport analyze --out report/summary.csv --params run.yaml events.log
  scpreport analyze --out summary.csv --node-count 4 --sim-time 120.5 events.log --db runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "path to the summary CSV report (required)")
	_ = cmd.MarkFlagRequired("out")
	cmd.Flags().StringVar(&opts.ParamsFile, "params", "", "YAML file with run parameters")
	cmd.Flags().StringVar(&opts.Database, "db", "", "optional SQLite database recording run history")
	cmd.Flags().IntVar(&opts.NodeCount, "node-count", 0, "number of nodes in the run")
	cmd.Flags().Float64Var(&opts.SimTime, "sim-time", 0, "configured simulation time")
	cmd.Flags().StringVar(&opts.SimParams, "sim-params", "", "free-form run description stored verbatim")
	cmd.Flags().BoolVar(&opts.AllTestsPassed, "all-tests-passed", false, "whether the run's checks passed")

	return cmd
}

func runAnalyze(opts *AnalyzeOptions, logPath string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	params, err := resolveParams(opts, cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load run parameters", err)
	}

	slog.Info("analyzing log", "path", logPath)
	res, err := aggregate.AnalyzeFile(logPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to analyze log", err)
	}
	slog.Info("log analyzed",
		"nodes", len(res.Nodes),
		"total_slots", res.Metrics.TotalSlots,
		"total_tx_created", res.Metrics.TotalTxCreated)

	if err := report.Append(opts.Out, params, res.Metrics); err != nil {
		return WrapExitError(ExitCommandError, "failed to append summary row", err)
	}
	slog.Info("summary row appended", "report", opts.Out)

	out := analyzeResult{
		LogPath:       logPath,
		ReportPath:    opts.Out,
		NodesObserved: len(res.Nodes),
		Params:        params,
		Metrics:       res.Metrics,
	}

	if opts.Database != "" {
		runID, err := recordRun(cmd.Context(), opts.Database, logPath, params, res.Metrics)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record run history", err)
		}
		out.RunID = runID
		slog.Info("run recorded", "db", opts.Database, "run_id", runID)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.SuccessText(renderAnalyzeText(out), out)
}

// resolveParams merges the YAML parameter file with individual flag
// overrides. Flags win only when explicitly set.
func resolveParams(opts *AnalyzeOptions, cmd *cobra.Command) (simlog.RunParams, error) {
	var params simlog.RunParams

	if opts.ParamsFile != "" {
		loaded, err := config.LoadRunParams(opts.ParamsFile)
		if err != nil {
			return params, err
		}
		params = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("node-count") {
		params.NodeCount = opts.NodeCount
	}
	if flags.Changed("sim-time") {
		params.SimulationTime = opts.SimTime
	}
	if flags.Changed("sim-params") {
		params.SimParams = opts.SimParams
	}
	if flags.Changed("all-tests-passed") {
		params.AllTestsPassed = opts.AllTestsPassed
	}

	if err := config.Validate(params); err != nil {
		return params, err
	}
	return params, nil
}

func recordRun(ctx context.Context, dbPath, logPath string, params simlog.RunParams, m simlog.Metrics) (string, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	run := store.NewRun(logPath, params, m)
	if err := st.WriteRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}

func renderAnalyzeText(res analyzeResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %s\n", res.LogPath)
	fmt.Fprintf(&b, "  nodes observed:        %d\n", res.NodesObserved)
	fmt.Fprintf(&b, "  total_tx_created:      %d\n", res.Metrics.TotalTxCreated)
	fmt.Fprintf(&b, "  total_slots:           %d\n", res.Metrics.TotalSlots)
	fmt.Fprintf(&b, "  total_tx_in_all_slots: %d\n", res.Metrics.TotalTxInAllSlots)
	fmt.Fprintf(&b, "  avg_txs_per_slot:      %.2f\n", res.Metrics.AvgTxsPerSlot)
	fmt.Fprintf(&b, "  avg_inter_slot_time:   %.2f\n", res.Metrics.AvgInterSlotTime)
	fmt.Fprintf(&b, "Appended summary row to %s", res.ReportPath)
	if res.RunID != "" {
		fmt.Fprintf(&b, "\nRecorded run %s", res.RunID)
	}
	return b.String()
}

// configureLogging sets the process-wide slog handler.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
