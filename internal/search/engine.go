package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tmarden/sift/internal/rng"
)

// StreamSource derives one private randomness stream per worker index.
// Implemented by rng.Source (production) and testutil.ScriptedSource
// (tests). Each Stream call must return a stream positioned at the
// start of the worker's sequence.
type StreamSource interface {
	Stream(worker int) rng.Stream
	Seed() int64
}

// Engine orchestrates batch generation, validation, and selection for
// one Problem and one constraint set.
//
// Thread-safety model:
//   - Engine fields are immutable after New; Run and RunParallel may
//     be called from any goroutine, including concurrently.
//   - Each run derives its own private streams from the Source, so
//     concurrent runs never contend on randomness.
//
// INVARIANTS:
//   - constraints slice order NEVER changes after construction; verdict
//     vectors are positionally aligned with it.
//   - Workers exchange no mutable state; each writes only its own
//     result slot.
type Engine[C any] struct {
	problem     Problem[C]
	constraints []Constraint[C]
	source      StreamSource
	direction   Direction
	tokens      RunTokenGenerator
}

// Option configures engine parameters.
type Option[C any] func(*Engine[C])

// WithDirection sets the selection direction. Default: Maximize.
func WithDirection[C any](d Direction) Option[C] {
	return func(e *Engine[C]) {
		e.direction = d
	}
}

// WithRunTokens overrides the run token generator.
// Tests use NewFixedGenerator for deterministic traces.
func WithRunTokens[C any](g RunTokenGenerator) Option[C] {
	return func(e *Engine[C]) {
		e.tokens = g
	}
}

// New creates an Engine for the given problem, constraint set, and
// randomness source.
//
// The constraints slice must be in declaration order - verdict vectors
// and diagnostic output preserve this order. The slice is copied to
// prevent external mutation from breaking the alignment invariant.
func New[C any](p Problem[C], constraints []Constraint[C], source StreamSource, opts ...Option[C]) *Engine[C] {
	var cs []Constraint[C]
	if constraints != nil {
		cs = make([]Constraint[C], len(constraints))
		copy(cs, constraints)
	}

	e := &Engine[C]{
		problem:     p,
		constraints: cs,
		source:      source,
		direction:   Maximize,
		tokens:      UUIDv7Generator{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Constraints returns the constraint set in declaration order.
// Used for diagnostic display and introspection.
func (e *Engine[C]) Constraints() []Constraint[C] {
	return e.constraints
}

// Direction returns the configured selection direction.
func (e *Engine[C]) Direction() Direction {
	return e.direction
}

// Run executes one sequential search pass: generate batchSize
// candidates, validate every member, reduce to the best valid one.
//
// Returns (zero, false, nil) when the batch is empty or entirely
// invalid - absence is a normal outcome. A negative batchSize is an
// INVALID_CONFIG error reported before any work starts. A panic in
// user-supplied code surfaces as a COLLABORATOR_PANIC error tagged
// with the phase it occurred in.
func (e *Engine[C]) Run(ctx context.Context, batchSize int) (Validated[C], bool, error) {
	if batchSize < 0 {
		return Validated[C]{}, false, NewConfigError("batch size", batchSize)
	}

	token := e.tokens.Generate()
	slog.Debug("search run starting",
		"run", token,
		"mode", "sequential",
		"batch_size", batchSize,
		"seed", e.source.Seed(),
	)

	winner, found, err := e.searchOne(ctx, 0, batchSize)
	if err != nil {
		return Validated[C]{}, false, err
	}

	logRunComplete(token, "sequential", found, winner, e.problem.Goal)
	return winner, found, nil
}

// RunParallel partitions the sampling budget across workerCount
// independent workers, each running the full sequential pipeline over
// samplesPerWorker candidates with its own private stream, then
// reduces the per-worker winners with the same selection rule.
//
// Degenerate cases: workerCount = 0 yields absence without spawning
// work; samplesPerWorker = 0 yields per-worker absence, filtered out
// at the second-level reduction. Negative values are INVALID_CONFIG
// errors.
//
// Failure semantics: a panicking worker does not corrupt or drop the
// results of siblings - every worker runs to completion and writes its
// own slot - but any worker failure fails the whole call with an
// aggregate error naming each failed worker. No partial best-so-far
// is returned alongside an error.
//
// Ties between workers' winners resolve to the lowest worker index,
// consistent with the first-seen rule of SelectBest.
func (e *Engine[C]) RunParallel(ctx context.Context, samplesPerWorker, workerCount int) (Validated[C], bool, error) {
	if samplesPerWorker < 0 {
		return Validated[C]{}, false, NewConfigError("samples per worker", samplesPerWorker)
	}
	if workerCount < 0 {
		return Validated[C]{}, false, NewConfigError("worker count", workerCount)
	}

	token := e.tokens.Generate()
	slog.Debug("search run starting",
		"run", token,
		"mode", "parallel",
		"samples_per_worker", samplesPerWorker,
		"workers", workerCount,
		"seed", e.source.Seed(),
	)

	if workerCount == 0 {
		slog.Debug("no workers requested, nothing to search", "run", token)
		return Validated[C]{}, false, nil
	}

	// One result slot per worker. Each goroutine writes only its own
	// slot, and searchOne converts panics to errors internally, so the
	// WaitGroup always drains.
	type outcome struct {
		winner Validated[C]
		found  bool
		err    error
	}
	slots := make([]outcome, workerCount)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			w, found, err := e.searchOne(ctx, worker, samplesPerWorker)
			slots[worker] = outcome{winner: w, found: found, err: err}
		}(i)
	}
	wg.Wait()

	// Collect failures in worker order so the aggregate reads
	// deterministically.
	var errs []error
	for i := range slots {
		if slots[i].err != nil {
			errs = append(errs, fmt.Errorf("worker %d: %w", i, slots[i].err))
		}
	}
	if len(errs) > 0 {
		return Validated[C]{}, false, errors.Join(errs...)
	}

	// Second-level reduction over per-worker winners, absent winners
	// filtered. Worker order fixes the tie-break.
	winners := make([]Validated[C], 0, workerCount)
	for i := range slots {
		slog.Debug("worker finished", "run", token, "worker", i, "found", slots[i].found)
		if slots[i].found {
			winners = append(winners, slots[i].winner)
		}
	}

	winner, found := SelectBest(winners, e.problem.Goal, e.direction)
	logRunComplete(token, "parallel", found, winner, e.problem.Goal)
	return winner, found, nil
}

// searchOne runs the sequential pipeline for one worker:
// Generate -> Validate -> Select.
//
// Panics from user-supplied code are recovered here and returned as
// COLLABORATOR_PANIC errors tagged with the active phase, so parallel
// callers never lose a WaitGroup count to a crashing worker.
//
// The context is checked between phases; workers are not preempted
// mid-batch.
func (e *Engine[C]) searchOne(ctx context.Context, worker, n int) (winner Validated[C], found bool, err error) {
	phase := PhaseGenerate
	defer func() {
		if r := recover(); r != nil {
			winner = Validated[C]{}
			found = false
			err = NewCollaboratorError(worker, phase, r)
		}
	}()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return Validated[C]{}, false, ctxErr
	}

	// Private stream for this worker; never crosses the goroutine.
	stream := e.source.Stream(worker)

	batch := GenerateBatch(e.problem, stream, n)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return Validated[C]{}, false, ctxErr
	}

	phase = PhaseValidate
	validated := ValidateBatch(batch, e.constraints)

	phase = PhaseSelect
	winner, found = SelectBest(validated, e.problem.Goal, e.direction)
	return winner, found, nil
}

// logRunComplete emits the end-of-run record shared by both modes.
func logRunComplete[C any](token, mode string, found bool, winner Validated[C], goal func(C) float64) {
	if found {
		slog.Info("search run complete",
			"run", token,
			"mode", mode,
			"found", true,
			"goal", goal(winner.Candidate),
		)
		return
	}
	slog.Info("search run complete",
		"run", token,
		"mode", mode,
		"found", false,
	)
}
