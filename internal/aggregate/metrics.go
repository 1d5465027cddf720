package aggregate

import "github.com/scpsim/scpreport/internal/simlog"

// deriveMetrics computes the summary aggregates from the scan results.
//
// TotalSlots deliberately counts finalisation-marker lines summed across
// nodes rather than distinct slots; the historical report schema depends on
// that computation, so it is preserved under the historical name.
func deriveMetrics(txCreated int, nodes map[string]*simlog.NodeRecord, slotTimes []simlog.SlotTime) simlog.Metrics {
	m := simlog.Metrics{TotalTxCreated: txCreated}

	union := make(map[string]struct{})
	for _, rec := range nodes {
		m.TotalSlots += len(rec.Messages)
		for id := range rec.Finalized {
			union[id] = struct{}{}
		}
	}
	m.TotalTxInAllSlots = len(union)

	if m.TotalSlots > 0 {
		m.AvgTxsPerSlot = float64(m.TotalTxInAllSlots) / float64(m.TotalSlots)
	}
	m.AvgInterSlotTime = avgInterSlotTime(slotTimes)
	return m
}

// avgInterSlotTime averages the gaps between consecutive finalisation
// timestamps in slot order. Zero when fewer than two slots were observed.
func avgInterSlotTime(slotTimes []simlog.SlotTime) float64 {
	if len(slotTimes) < 2 {
		return 0.0
	}
	var sum float64
	for i := 1; i < len(slotTimes); i++ {
		sum += slotTimes[i].Timestamp - slotTimes[i-1].Timestamp
	}
	return sum / float64(len(slotTimes)-1)
}
