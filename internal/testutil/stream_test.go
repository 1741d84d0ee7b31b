package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptedStream_ReplaysInOrder(t *testing.T) {
	s := &ScriptedStream{
		Ints:   []int{5, 17, 2},
		Floats: []float64{0.25, 0.5},
		Uints:  []uint64{99},
	}

	assert.Equal(t, 5, s.IntN(100))
	assert.Equal(t, 17, s.IntN(100))
	assert.Equal(t, 2, s.IntN(100))
	assert.Equal(t, 0.25, s.Float64())
	assert.Equal(t, 0.5, s.Float64())
	assert.Equal(t, uint64(99), s.Uint64())
}

func TestScriptedStream_IntNReducesModuloBound(t *testing.T) {
	s := &ScriptedStream{Ints: []int{13}}
	assert.Equal(t, 3, s.IntN(10))
}

func TestScriptedStream_PanicsOnExhaustion(t *testing.T) {
	s := &ScriptedStream{Ints: []int{1}}
	s.IntN(10)
	assert.Panics(t, func() { s.IntN(10) })
}

func TestScriptedStream_PanicsOnBadBound(t *testing.T) {
	s := &ScriptedStream{Ints: []int{1}}
	assert.Panics(t, func() { s.IntN(0) })
}
