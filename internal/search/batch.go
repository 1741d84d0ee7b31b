package search

import (
	"github.com/tmarden/sift/internal/rng"
)

// GenerateBatch draws exactly n candidates from the problem using the
// supplied stream. n = 0 yields an empty batch, not an error.
//
// Candidates are generated independently - no deduplication and no
// implicit validation; validation is a separate, explicit step.
//
// A panic in NewCandidate propagates: a generator that fails partway
// through fails the whole batch rather than returning a truncated one.
// The stream must be owned by the calling goroutine.
func GenerateBatch[C any](p Problem[C], s rng.Stream, n int) []C {
	batch := make([]C, n)
	for i := range batch {
		batch[i] = p.NewCandidate(s)
	}
	return batch
}

// ValidateBatch validates every member of a batch against the
// constraint set, preserving batch order.
func ValidateBatch[C any](batch []C, constraints []Constraint[C]) []Validated[C] {
	validated := make([]Validated[C], len(batch))
	for i, c := range batch {
		validated[i] = Validate(c, constraints)
	}
	return validated
}
