package aggregate

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/scpsim/scpreport/internal/extract"
	"github.com/scpsim/scpreport/internal/simlog"
)

// Result holds everything derived from one simulation event log.
type Result struct {
	// Nodes maps node identifier to its accumulated finalisation record.
	Nodes map[string]*simlog.NodeRecord

	// SlotTimes is the earliest observed finalisation timestamp per slot,
	// ordered by ascending slot number. First-writer-wins: a slot's
	// timestamp is fixed by the first line that mentions it.
	SlotTimes []simlog.SlotTime

	Metrics simlog.Metrics
}

// AnalyzeFile runs the full analysis over the log at path. A missing or
// unreadable file yields a FileAccessError and no partial result.
func AnalyzeFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, simlog.NewFileAccessError("open", path, err)
	}
	defer f.Close()

	res, err := Analyze(f)
	if err != nil {
		return nil, simlog.NewFileAccessError("read", path, err)
	}
	return res, nil
}

// Analyze streams the log line by line and applies three independent scans:
// the mining scan, the finalisation scan, and the slot-time scan. Each scan
// looks at one line at a time and its keyed structures are first-writer-wins,
// so a single pass produces the same result as separate passes over the same
// file.
func Analyze(r io.Reader) (*Result, error) {
	mined := make(map[string]struct{})
	nodes := make(map[string]*simlog.NodeRecord)
	slotSeen := make(map[int]float64)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		// Mining scan: distinct IDs only, duplicates count once.
		if id, ok := extract.MinedTransactionID(line); ok {
			mined[id] = struct{}{}
		}

		if extract.IsFinalisation(line) {
			scanFinalisation(line, nodes)
		}

		// Slot-time scan, first-writer-wins per slot.
		if ts, slot, ok := extract.SlotTime(line); ok {
			if _, seen := slotSeen[slot]; !seen {
				slotSeen[slot] = ts
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Nodes:     nodes,
		SlotTimes: sortedSlotTimes(slotSeen),
	}
	res.Metrics = deriveMetrics(len(mined), nodes, res.SlotTimes)
	return res, nil
}

// scanFinalisation folds one finalisation-marker line into the per-node
// records. Lines without a node token are skipped: no node, no aggregation.
func scanFinalisation(line string, nodes map[string]*simlog.NodeRecord) {
	nodeID, ok := extract.NodeID(line)
	if !ok {
		return
	}

	rec, ok := nodes[nodeID]
	if !ok {
		rec = simlog.NewNodeRecord()
		nodes[nodeID] = rec
	}

	// A node's finalisation time is its first externalize event; later
	// events never overwrite it.
	if rec.FirstFinalisation == nil {
		if ts, ok := extract.Timestamp(line); ok {
			rec.FirstFinalisation = &ts
		}
	}

	for _, id := range extract.TransactionIDs(line) {
		rec.Finalized[id] = struct{}{}
	}

	rec.Messages = append(rec.Messages, strings.TrimSpace(line))
}

func sortedSlotTimes(slotSeen map[int]float64) []simlog.SlotTime {
	out := make([]simlog.SlotTime, 0, len(slotSeen))
	for slot, ts := range slotSeen {
		out = append(out, simlog.SlotTime{Slot: slot, Timestamp: ts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}
