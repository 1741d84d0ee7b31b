// Package store provides SQLite-backed durable storage for the run ledger.
//
// The ledger is an append-only record of search runs:
//   - Runs: one row per run, keyed by run token
//   - Verdicts: per-constraint outcomes for a run's winner
//
// # Critical Patterns
//
// Token-Level Idempotency
//   - runs.token is the primary key
//   - Re-recording a run token is a silent no-op, verdicts included
//
// Logical Time
//   - All ordering uses seq INTEGER (logical clock), NEVER timestamps
//   - Enables stable reads regardless of wall time
//
// Deterministic Query Results
//   - Multi-row queries ORDER BY seq ASC, token ASC COLLATE BINARY
//   - Verdicts ORDER BY position ASC (constraint declaration order)
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Winning assignments are serialized with internal/trace canonical JSON
// before storage, so identical runs produce byte-identical rows.
package store
