// Package rng provides the randomness capability consumed by candidate
// generators.
//
// The package exists to make one hazard structurally impossible: two
// concurrent search workers drawing from the same unsynchronized random
// stream. Instead of a process-global source, callers hold a Source (a
// seeded factory) and hand each worker its own Stream derived from the
// worker index. Streams are never shared across goroutines.
//
// Determinism: a Source built from a fixed seed derives the same Stream
// for the same worker index on every run, so seeded searches are
// reproducible.
package rng
