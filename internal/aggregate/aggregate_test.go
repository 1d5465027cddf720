package aggregate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scpsim/scpreport/internal/simlog"
)

func analyzeString(t *testing.T, log string) *Result {
	t.Helper()
	res, err := Analyze(strings.NewReader(log))
	require.NoError(t, err)
	return res
}

func TestAnalyze_SpecExample(t *testing.T) {
	log := strings.Join([]string{
		"12.5 Node A1 appended SCPExternalize message for slot 1 to its storage and state, message = transactions = {Transaction aa11 , Transaction bb22}",
		"13.0 Node A1 appended SCPExternalize message for slot 2 to its storage and state, message = transactions = {Transaction cc33}",
		"[Transaction aa11 time = 10.0] mined to the mempool!",
	}, "\n")

	res := analyzeString(t, log)

	assert.Equal(t, 1, res.Metrics.TotalTxCreated)
	assert.Equal(t, 2, res.Metrics.TotalSlots)
	assert.Equal(t, 3, res.Metrics.TotalTxInAllSlots)

	rec := res.Nodes["A1"]
	require.NotNil(t, rec)
	assert.Equal(t, 3, rec.TxCount())
	assert.Contains(t, rec.Finalized, "aa11")
	assert.Contains(t, rec.Finalized, "bb22")
	assert.Contains(t, rec.Finalized, "cc33")
	require.NotNil(t, rec.FirstFinalisation)
	assert.Equal(t, 12.5, *rec.FirstFinalisation)
}

func TestAnalyze_FirstFinalisationWins(t *testing.T) {
	// Later events carry both earlier and later timestamps; neither
	// overwrites the first one seen.
	log := strings.Join([]string{
		"12.5 Node A1 appended SCPExternalize message for slot 1",
		"8.0 Node A1 appended SCPExternalize message for slot 2",
		"20.0 Node A1 appended SCPExternalize message for slot 3",
	}, "\n")

	res := analyzeString(t, log)
	rec := res.Nodes["A1"]
	require.NotNil(t, rec)
	require.NotNil(t, rec.FirstFinalisation)
	assert.Equal(t, 12.5, *rec.FirstFinalisation)
	assert.Len(t, rec.Messages, 3)
}

func TestAnalyze_TimestamplessFirstLine(t *testing.T) {
	// A finalisation line without a leading timestamp still counts as a
	// message, but the node's timestamp stays unset until a later line
	// provides one.
	log := strings.Join([]string{
		"NODE - INFO - Node A1 appended SCPExternalize message for slot 1",
		"14.0 Node A1 appended SCPExternalize message for slot 2",
	}, "\n")

	res := analyzeString(t, log)
	rec := res.Nodes["A1"]
	require.NotNil(t, rec)
	assert.Len(t, rec.Messages, 2)
	require.NotNil(t, rec.FirstFinalisation)
	assert.Equal(t, 14.0, *rec.FirstFinalisation)
}

func TestAnalyze_NoFinalisationEvents(t *testing.T) {
	log := strings.Join([]string{
		"[Transaction aa11 time = 10.0] mined to the mempool!",
		"12.5 Node A1 appended SCPPrepare message to its storage",
	}, "\n")

	res := analyzeString(t, log)

	assert.Empty(t, res.Nodes)
	assert.Empty(t, res.SlotTimes)
	assert.Equal(t, 1, res.Metrics.TotalTxCreated)
	assert.Equal(t, 0, res.Metrics.TotalSlots)
	assert.Equal(t, 0, res.Metrics.TotalTxInAllSlots)
	assert.Equal(t, 0.0, res.Metrics.AvgTxsPerSlot)
	assert.Equal(t, 0.0, res.Metrics.AvgInterSlotTime)
}

func TestAnalyze_DuplicateMiningCountsOnce(t *testing.T) {
	log := strings.Join([]string{
		"[Transaction aa11 time = 10.0] mined to the mempool!",
		"[Transaction aa11 time = 11.0] mined to the mempool!",
		"[Transaction bb22 time = 12.0] mined to the mempool!",
	}, "\n")

	res := analyzeString(t, log)
	assert.Equal(t, 2, res.Metrics.TotalTxCreated)
}

func TestAnalyze_FinalizedIDsAbsentFromMinedSet(t *testing.T) {
	// Finalized identifiers need not come from the mining set; the
	// aggregator must not assume total_tx_in_all_slots <= total_tx_created.
	log := "12.5 Node A1 appended SCPExternalize message for slot 1, transactions = {Transaction aa11 , Transaction bb22}"

	res := analyzeString(t, log)
	assert.Equal(t, 0, res.Metrics.TotalTxCreated)
	assert.Equal(t, 2, res.Metrics.TotalTxInAllSlots)
	assert.Greater(t, res.Metrics.TotalTxInAllSlots, res.Metrics.TotalTxCreated)
}

func TestAnalyze_NodelessFinalisationSkipped(t *testing.T) {
	// Marker line with no "Node <ID>" token: no record is created.
	log := "12.5 appended SCPExternalize message for slot 1, transactions = {Transaction aa11}"

	res := analyzeString(t, log)
	assert.Empty(t, res.Nodes)
	assert.Equal(t, 0, res.Metrics.TotalSlots)
}

func TestAnalyze_SlotTimesFirstWriterWins(t *testing.T) {
	log := strings.Join([]string{
		"10.0 Node A1 appended SCPExternalize message for slot 2 to its storage",
		"11.0 Node B2  adopting externalized value for slot 2: v",
		"12.0 Node A1 appended SCPExternalize message for slot 1 to its storage",
		"14.0 Node B2 appended SCPExternalize message for slot 3 to its storage",
	}, "\n")

	res := analyzeString(t, log)

	require.Len(t, res.SlotTimes, 3)
	assert.Equal(t, []simlog.SlotTime{
		{Slot: 1, Timestamp: 12.0},
		{Slot: 2, Timestamp: 10.0},
		{Slot: 3, Timestamp: 14.0},
	}, res.SlotTimes)

	// Gaps in slot order: 10.0-12.0 = -2.0 and 14.0-10.0 = 4.0, mean 1.0.
	assert.InDelta(t, 1.0, res.Metrics.AvgInterSlotTime, 1e-9)
}

func TestAnalyze_AvgTxsPerSlot(t *testing.T) {
	log := strings.Join([]string{
		"10.0 Node A1 appended SCPExternalize message for slot 1, transactions = {Transaction aa11 , Transaction bb22 , Transaction cc33}",
		"11.0 Node B2 appended SCPExternalize message for slot 1, transactions = {Transaction aa11}",
	}, "\n")

	res := analyzeString(t, log)
	assert.Equal(t, 2, res.Metrics.TotalSlots)
	assert.Equal(t, 3, res.Metrics.TotalTxInAllSlots)
	assert.InDelta(t, 1.5, res.Metrics.AvgTxsPerSlot, 1e-9)
}

func TestAnalyze_Deterministic(t *testing.T) {
	log := strings.Join([]string{
		"[Transaction aa11 time = 10.0] mined to the mempool!",
		"12.5 Node A1 appended SCPExternalize message for slot 1, transactions = {Transaction aa11 , Transaction bb22}",
		"13.0 Node B2  adopting externalized value for slot 2: v",
	}, "\n")

	first := analyzeString(t, log)
	second := analyzeString(t, log)

	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.SlotTimes, second.SlotTimes)
	assert.Equal(t, first.Nodes, second.Nodes)
}

func TestAnalyzeFile_MissingFile(t *testing.T) {
	_, err := AnalyzeFile(filepath.Join(t.TempDir(), "no-such.log"))
	require.Error(t, err)
	assert.True(t, simlog.IsFileAccess(err))
}

func TestAnalyzeFile_ReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")
	log := "12.5 Node A1 appended SCPExternalize message for slot 1, transactions = {Transaction aa11}\n"
	require.NoError(t, os.WriteFile(path, []byte(log), 0o644))

	res, err := AnalyzeFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Metrics.TotalSlots)
	assert.Equal(t, 1, res.Metrics.TotalTxInAllSlots)
}
