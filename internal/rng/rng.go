// Package rng provides the random source used by the simulation.
//
// Every probabilistic decision in the engine draws from a Source so that a run
// can be replayed exactly from a seed, or scripted draw-by-draw in tests.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source is the subset of a PRNG the engine needs.
type Source interface {
	// Float64 returns a uniform draw in [0,1).
	Float64() float64
	// IntN returns a uniform draw in [0,n). n must be > 0.
	IntN(n int) int
}

// New returns a PCG-backed Source seeded with seed.
func New(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed>>8|3))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Between returns a uniform integer in [lo, hi].
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Chance reports whether a single draw falls below p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// RollD6 returns one six-sided die roll.
func RollD6(src Source) int {
	return src.IntN(6) + 1
}
