// Package rng provides a small seeded pseudo-random generator whose output
// depends only on a string key. Two generators built from the same key
// produce the same stream, which is what keeps the question bank and the
// daily mission selection reproducible.
package rng

import (
	"math"
	"unicode/utf16"
)

// Rand is a mulberry32 stream seeded from an FNV-1a hash of a string key.
// A Rand is not safe for concurrent use; build one per goroutine.
type Rand struct {
	state uint32
}

// New returns a generator seeded from key.
func New(key string) *Rand {
	return &Rand{state: Seed(key)}
}

// Seed hashes key with 32-bit FNV-1a over its UTF-16 code units.
func Seed(key string) uint32 {
	h := uint32(2166136261)
	for _, c := range utf16.Encode([]rune(key)) {
		h ^= uint32(c)
		h *= 16777619
	}
	return h
}

// Next returns the next value in [0, 1).
func (r *Rand) Next() float64 {
	r.state += 0x6D2B79F5
	a := r.state
	t := (a ^ a>>15) * (1 | a)
	t = (t + (t^t>>7)*(61|t)) ^ t
	return float64(t^t>>14) / 4294967296
}

// Int returns an integer in [min, max].
func (r *Rand) Int(min, max int) int {
	return int(math.Floor(r.Next()*float64(max-min+1))) + min
}

// Pick returns a uniformly chosen element of list. list must not be empty.
func Pick[T any](r *Rand, list []T) T {
	return list[r.Int(0, len(list)-1)]
}

// Shuffle returns a Fisher-Yates shuffled copy of list.
func Shuffle[T any](r *Rand, list []T) []T {
	out := make([]T, len(list))
	copy(out, list)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Int(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
