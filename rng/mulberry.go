// Package rng provides the seeded Mulberry32 generator used for all
// reproducible randomness (permutation tables, backend seeding).
package rng

import "github.com/pthm-cable/heightgen/seed"

const (
	increment = 0x6D2B79F5
	twoTo32   = 4294967296.0
)

// Mulberry32 is a 32-bit state generator producing a reproducible stream
// of floats in [0,1). All arithmetic is uint32 so it wraps identically on
// every platform.
//
// A Mulberry32 is not safe for concurrent use. Give each generation task
// its own instance.
type Mulberry32 struct {
	state   uint32
	initial uint32
}

// New creates a generator with the given raw state.
func New(state uint32) *Mulberry32 {
	return &Mulberry32{state: state, initial: state}
}

// FromSeed creates a generator seeded with s.Hash().
func FromSeed(s seed.Seed) *Mulberry32 {
	return New(s.Hash())
}

// Uint32 advances the generator one step and returns the raw output.
func (r *Mulberry32) Uint32() uint32 {
	r.state += increment
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Next returns the next float in [0,1).
func (r *Mulberry32) Next() float64 {
	return float64(r.Uint32()) / twoTo32
}

// Range returns min + Next()*(max-min). Callers must pass min <= max.
func (r *Mulberry32) Range(min, max float64) float64 {
	// Explicit conversion rounds the product so it cannot fuse into an FMA.
	return min + float64(r.Next()*(max-min))
}

// Intn returns floor(Next()*n), an integer in [0,n) for n > 0.
func (r *Mulberry32) Intn(n int) int {
	return int(r.Next() * float64(n))
}

// Reset rewinds the generator to its seeded state.
func (r *Mulberry32) Reset() {
	r.state = r.initial
}

// State returns the current internal state.
func (r *Mulberry32) State() uint32 { return r.state }

// Initial returns the state the generator was seeded with.
func (r *Mulberry32) Initial() uint32 { return r.initial }
