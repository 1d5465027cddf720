// Package store provides SQLite-backed durable storage for run history.
//
// Each analyzed log contributes one row to the runs table: a uuid run ID,
// the log path, the caller-supplied run parameters, and every derived
// metric. The CSV report remains the canonical flat output; the store exists
// so accumulated runs can be listed and compared without re-parsing logs.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Listing order is created_at ASC, id ASC so output is stable across runs
// recorded within the same second.
package store
