// Package search implements the sift stochastic-search core.
//
// The core is a thin, transparent orchestrator: it draws candidate
// solutions from a user-supplied Problem, tags each candidate with a
// per-constraint verdict vector, and reduces the batch to the single
// best valid candidate. An approximate answer from repeated random
// sampling stands in for an exact solver.
//
// ARCHITECTURE:
//
// Sequential pipeline (one pass, no retries):
//  1. Generate: Problem.NewCandidate called once per requested sample
//  2. Validate: every constraint evaluated against every candidate
//  3. Select: invalid candidates discarded, extremum of goal kept
//
// Parallel mode fans the sampling budget out over workerCount
// independent workers. Each worker runs the full sequential pipeline
// over its own sub-batch with its own private rng.Stream, writes its
// winner into its own result slot, and the caller reduces the slots
// with the same selection rule. No locking, no shared mutable state:
// isolation is achieved by construction, not synchronization.
//
// CRITICAL PATTERNS:
//
// One stream per worker.
// Streams are derived from the Source by worker index and never cross
// a goroutine boundary. Sharing one stream across workers is the
// principal hazard this design removes.
//
// Absence is not an error.
// An empty or all-invalid batch reduces to (zero value, false). Errors
// are reserved for caller misconfiguration and defects in user-supplied
// code, which are recovered, tagged with phase and worker, and
// surfaced whole. The core never returns a partial best-so-far
// alongside an error.
//
// Deterministic reduction.
// Selection depends only on batch content (goal values and validity),
// not generation order, except for ties: among equal-goal candidates
// the first encountered in batch order wins. With a fixed Source seed
// the whole search is reproducible.
package search
