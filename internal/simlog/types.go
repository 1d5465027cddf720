package simlog

// NodeRecord accumulates finalisation activity for one simulated node.
// Created lazily on the node's first externalize event and mutated by every
// subsequent event for the same node.
type NodeRecord struct {
	// FirstFinalisation is the timestamp of the node's first externalize
	// event. Set once and never overwritten; nil until a matching line
	// carries a leading timestamp.
	FirstFinalisation *float64

	// Finalized is the union of all transaction IDs this node has
	// externalized across every event.
	Finalized map[string]struct{}

	// Messages holds the raw trimmed finalisation lines for this node,
	// in file order. len(Messages) is the node's message count.
	Messages []string
}

// NewNodeRecord returns an empty record ready to accumulate events.
func NewNodeRecord() *NodeRecord {
	return &NodeRecord{Finalized: make(map[string]struct{})}
}

// TxCount is the number of distinct transactions the node has finalized.
func (r *NodeRecord) TxCount() int {
	return len(r.Finalized)
}

// SlotTime pairs a consensus slot with the earliest timestamp at which any
// node in the network was observed finalizing it.
type SlotTime struct {
	Slot      int
	Timestamp float64
}

// Metrics are the derived per-run aggregates written to the summary report.
type Metrics struct {
	// TotalTxCreated is the number of distinct transaction IDs seen in
	// mining announcements.
	TotalTxCreated int `json:"total_tx_created"`

	// TotalSlots is the total count of finalisation-marker lines summed
	// across all nodes. NOTE: despite the name this is NOT the number of
	// distinct slots; the historical computation sums per-node message
	// counts and is preserved as-is.
	TotalSlots int `json:"total_slots"`

	// TotalTxInAllSlots is the size of the union of every node's
	// finalized-transaction set.
	TotalTxInAllSlots int `json:"total_tx_in_all_slots"`

	AvgTxsPerSlot    float64 `json:"avg_txs_per_slot"`
	AvgInterSlotTime float64 `json:"avg_inter_slot_time"`
}

// RunParams are the caller-supplied values describing a simulation run.
// They are pass-through configuration, never derived from the log text.
type RunParams struct {
	NodeCount      int     `yaml:"node_count" json:"node_count"`
	SimulationTime float64 `yaml:"simulation_time" json:"simulation_time"`
	SimParams      string  `yaml:"sim_params" json:"sim_params"`
	AllTestsPassed bool    `yaml:"all_tests_passed" json:"all_tests_passed"`
}
