package testutil

import (
	"sync"

	"github.com/tmarden/sift/internal/rng"
)

// ScriptedSource hands out pre-built streams by worker index,
// implementing the engine's StreamSource capability for tests.
//
// Workers without an entry in Streams receive an empty ScriptedStream,
// which panics on first draw - a worker the test did not script should
// not be drawing.
type ScriptedSource struct {
	Streams  map[int]rng.Stream
	BaseSeed int64
}

// Stream returns the scripted stream for the given worker index.
func (s *ScriptedSource) Stream(worker int) rng.Stream {
	if st, ok := s.Streams[worker]; ok {
		return st
	}
	return &ScriptedStream{}
}

// Seed returns the configured base seed (zero unless set).
func (s *ScriptedSource) Seed() int64 {
	return s.BaseSeed
}

// ScriptedStream replays predetermined draws, implementing rng.Stream
// for deterministic tests.
//
// Each kind of draw consumes from its own script. Running past the end
// of a script panics - fail-fast to catch tests that draw more values
// than they scripted.
//
// Thread-safety: guarded by a mutex so a stream handed to a single
// worker behaves the same whether the test runs it inline or in a
// goroutine. Production streams carry no such guarantee.
type ScriptedStream struct {
	mu     sync.Mutex
	Ints   []int
	Floats []float64
	Uints  []uint64
	iIdx   int
	fIdx   int
	uIdx   int
}

// IntN returns the next scripted int, reduced modulo n so scripts can
// use plain values without tracking the caller's bound. Panics if the
// script is exhausted or n <= 0.
func (s *ScriptedStream) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		panic("ScriptedStream: IntN called with non-positive bound")
	}
	if s.iIdx >= len(s.Ints) {
		panic("ScriptedStream: int script exhausted")
	}
	v := s.Ints[s.iIdx] % n
	s.iIdx++
	return v
}

// Float64 returns the next scripted float.
func (s *ScriptedStream) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fIdx >= len(s.Floats) {
		panic("ScriptedStream: float script exhausted")
	}
	v := s.Floats[s.fIdx]
	s.fIdx++
	return v
}

// Uint64 returns the next scripted uint64.
func (s *ScriptedStream) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.uIdx >= len(s.Uints) {
		panic("ScriptedStream: uint script exhausted")
	}
	v := s.Uints[s.uIdx]
	s.uIdx++
	return v
}
