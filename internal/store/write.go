package store

import (
	"context"
	"fmt"
)

// WriteRun inserts a run record. Uses ON CONFLICT(id) DO NOTHING so retrying
// the same run is idempotent; other constraint violations still error.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, created_at, log_path, node_count, simulation_time, sim_params,
		 all_tests_passed, total_tx_created, total_slots, total_tx_in_all_slots,
		 avg_txs_per_slot, avg_inter_slot_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.CreatedAt,
		run.LogPath,
		run.Params.NodeCount,
		run.Params.SimulationTime,
		run.Params.SimParams,
		run.Params.AllTestsPassed,
		run.Metrics.TotalTxCreated,
		run.Metrics.TotalSlots,
		run.Metrics.TotalTxInAllSlots,
		run.Metrics.AvgTxsPerSlot,
		run.Metrics.AvgInterSlotTime,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	return nil
}
