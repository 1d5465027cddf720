// Package report appends per-run summary rows to the persistent CSV report.
//
// The report is append-only UTF-8 text with a fixed column order. The header
// is written exactly once, when the file is first created. Concurrent writers
// are not synchronized; callers must serialize invocations.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/scpsim/scpreport/internal/simlog"
)

// Columns is the fixed report schema, in order.
var Columns = []string{
	"node_count",
	"simulation_time",
	"sim_params",
	"total_tx_created",
	"total_slots",
	"total_tx_in_all_slots",
	"avg_txs_per_slot",
	"avg_inter_slot_time",
	"all_tests_passed",
}

// Append writes one summary row for a run to the CSV at path, creating the
// parent directory and the header on first use. Fails with a FileAccessError
// when the directory cannot be created or the file cannot be opened; no
// partial row is written in that case.
func Append(path string, params simlog.RunParams, m simlog.Metrics) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return simlog.NewFileAccessError("mkdir", dir, err)
	}

	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return simlog.NewFileAccessError("append", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(formatRow(params, m)); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return simlog.NewFileAccessError("append", path, err)
	}
	return nil
}

// formatRow renders the row in Columns order. Averages carry exactly two
// decimal digits; sim_params is stored verbatim (csv handles quoting).
func formatRow(params simlog.RunParams, m simlog.Metrics) []string {
	return []string{
		strconv.Itoa(params.NodeCount),
		strconv.FormatFloat(params.SimulationTime, 'g', -1, 64),
		params.SimParams,
		strconv.Itoa(m.TotalTxCreated),
		strconv.Itoa(m.TotalSlots),
		strconv.Itoa(m.TotalTxInAllSlots),
		fmt.Sprintf("%.2f", m.AvgTxsPerSlot),
		fmt.Sprintf("%.2f", m.AvgInterSlotTime),
		strconv.FormatBool(params.AllTestsPassed),
	}
}
