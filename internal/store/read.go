package store

import (
	"context"
	"fmt"
)

// ListRuns returns all recorded runs ordered by created_at ASC, id ASC.
// Returns an empty slice (not nil) when the table is empty.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, log_path, node_count, simulation_time, sim_params,
		       all_tests_passed, total_tx_created, total_slots, total_tx_in_all_slots,
		       avg_txs_per_slot, avg_inter_slot_time
		FROM runs
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.ID,
			&run.CreatedAt,
			&run.LogPath,
			&run.Params.NodeCount,
			&run.Params.SimulationTime,
			&run.Params.SimParams,
			&run.Params.AllTestsPassed,
			&run.Metrics.TotalTxCreated,
			&run.Metrics.TotalSlots,
			&run.Metrics.TotalTxInAllSlots,
			&run.Metrics.AvgTxsPerSlot,
			&run.Metrics.AvgInterSlotTime,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}
