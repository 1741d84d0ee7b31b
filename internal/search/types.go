package search

import (
	"github.com/tmarden/sift/internal/rng"
)

// Problem is the capability a concrete search domain must provide.
//
// Implementations are external collaborators: the core treats the
// candidate type C as opaque beyond these two methods.
//
// NewCandidate must be pure apart from draws on the supplied stream,
// and safe to call concurrently as long as each caller passes its own
// stream. Goal must be a pure function of the candidate.
type Problem[C any] interface {
	// NewCandidate produces one pseudo-random candidate, drawing all
	// randomness from s. Candidates are i.i.d. across calls.
	NewCandidate(s rng.Stream) C

	// Goal returns the scalar used to rank valid candidates.
	Goal(c C) float64
}

// Constraint is a named pure predicate a valid candidate must satisfy.
//
// Constraints must be free of side effects and must not depend on the
// outcome of other constraints; the core assumes this and may evaluate
// them in any order. This is a contract on user code, not something
// the core checks at runtime.
type Constraint[C any] struct {
	Name string
	Test func(C) bool
}

// Vector holds per-constraint verdicts, positionally aligned with the
// constraint set in declaration order.
type Vector []bool

// AllTrue reports whether every verdict is true.
// An empty vector is vacuously true.
func (v Vector) AllTrue() bool {
	for _, ok := range v {
		if !ok {
			return false
		}
	}
	return true
}

// Validated is a candidate plus its validation outcome.
//
// Validation is two-phase by type: a bare C is unvalidated, a
// Validated[C] is immutable and carries a verdict vector whose AND is
// always equal to Valid. The two cannot diverge because Validated
// values are only produced by Validate.
type Validated[C any] struct {
	Candidate C
	Verdicts  Vector
	Valid     bool
}

// Validate evaluates every constraint against one candidate snapshot.
//
// The returned vector has exactly len(constraints) entries in
// declaration order. Zero constraints yield an empty vector and a
// vacuously valid candidate. A panicking predicate propagates to the
// caller; the core does not swallow defects in user-supplied code.
func Validate[C any](c C, constraints []Constraint[C]) Validated[C] {
	verdicts := make(Vector, len(constraints))
	for i, con := range constraints {
		verdicts[i] = con.Test(c)
	}
	return Validated[C]{
		Candidate: c,
		Verdicts:  verdicts,
		Valid:     verdicts.AllTrue(),
	}
}

// Direction configures which extremum of the goal wins selection.
type Direction int

const (
	// Maximize selects the candidate with the largest goal value.
	Maximize Direction = iota
	// Minimize selects the candidate with the smallest goal value.
	Minimize
)

// String returns the direction name for logging and ledgers.
func (d Direction) String() string {
	if d == Minimize {
		return "minimize"
	}
	return "maximize"
}

// SelectBest reduces a batch to its best valid member.
//
// Invalid candidates are discarded; among the remainder the extremum
// of goal per dir is chosen. Returns (zero, false) when the batch is
// empty or has no valid member - absence is a normal outcome, not an
// error.
//
// The result depends only on batch content: two batches that are
// permutations of each other select the same candidate by value,
// except for ties. Tie-break rule: among candidates sharing the
// optimal goal value, the first encountered in the supplied batch
// order wins.
func SelectBest[C any](batch []Validated[C], goal func(C) float64, dir Direction) (Validated[C], bool) {
	var (
		best     Validated[C]
		bestGoal float64
		found    bool
	)
	for _, v := range batch {
		if !v.Valid {
			continue
		}
		g := goal(v.Candidate)
		if !found || better(g, bestGoal, dir) {
			best = v
			bestGoal = g
			found = true
		}
	}
	return best, found
}

// better reports whether a strictly improves on b for dir.
// Strict comparison keeps the first-seen candidate on ties.
func better(a, b float64, dir Direction) bool {
	if dir == Minimize {
		return a < b
	}
	return a > b
}
