// Package simlog defines the shared domain types for SCP simulation log
// analysis: per-node finalisation records, the slot finalisation table,
// derived run metrics, and the error taxonomy.
//
// Types here are plain data. The extract package produces fields from raw
// lines, the aggregate package builds these records from a whole log, and
// the report/store packages persist them. simlog itself performs no I/O.
package simlog
