// Package extract recognizes the line shapes of the SCP simulator event log
// and pulls typed fields out of them. All extractors are pure functions over
// a single line: no state, no side effects, and silent non-match (comma-ok
// or empty results) because irrelevant or malformed lines are skipped, never
// treated as errors.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Recognized line shapes:
//
//	mining:       [Transaction <hex> time = <float>] mined to the mempool!
//	finalisation: <ts> ... Node <ID> ... appended SCPExternalize message for slot <n> ...
//	              <ts> ... Node <ID> ... adopting externalized value for slot <n> ...
var (
	txBlockRe   = regexp.MustCompile(`transactions = \{([^}]*)\}`)
	hexIDRe     = regexp.MustCompile(`\b[0-9a-f]+\b`)
	timestampRe = regexp.MustCompile(`^(\d+\.\d+)`)
	nodeIDRe    = regexp.MustCompile(`Node ([A-Z0-9]+)`)
	minedRe     = regexp.MustCompile(`\[Transaction ([0-9a-f]+) time = \d+(?:\.\d+)?\] mined to the mempool!`)
	slotTimeRe  = regexp.MustCompile(`(?i)^(\d+\.\d+).*?\bnode ([a-z0-9]+)\b.*?(?:appended scpexternalize message for slot|adopting externalized value for slot) (\d+)`)
)

// Finalisation marker phrases. A line containing either is a finalisation
// event for the aggregation scan.
const (
	markerAppended = "appended SCPExternalize message"
	markerAdopted  = "adopting externalized value for slot"
)

// TransactionIDs returns every hex transaction identifier inside a bounded
// "transactions = {...}" block. Empty if the line has no block or the block
// holds no identifiers.
func TransactionIDs(line string) []string {
	m := txBlockRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return hexIDRe.FindAllString(m[1], -1)
}

// Timestamp parses the leading decimal timestamp of a line. The pattern is
// anchored at the very start: a line not beginning with digits.digits has no
// timestamp.
func Timestamp(line string) (float64, bool) {
	m := timestampRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	ts, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

// NodeID returns the node identifier from a "Node <ID>" token.
func NodeID(line string) (string, bool) {
	m := nodeIDRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MinedTransactionID returns the transaction identifier from a
// mining-completion announcement.
func MinedTransactionID(line string) (string, bool) {
	m := minedRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SlotTime matches the composite finalisation shape: leading timestamp, a
// node token, one of the two marker phrases, and the trailing slot number.
// Case-insensitive. Returns the timestamp and slot on a full match.
func SlotTime(line string) (ts float64, slot int, ok bool) {
	m := slotTimeRe.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	ts, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, false
	}
	slot, err = strconv.Atoi(m[3])
	if err != nil {
		return 0, 0, false
	}
	return ts, slot, true
}

// IsFinalisation reports whether the line carries either finalisation marker
// phrase.
func IsFinalisation(line string) bool {
	return strings.Contains(line, markerAppended) || strings.Contains(line, markerAdopted)
}
