// Package seed provides the deterministic pseudo-random stream that drives
// exercise generation. The same seed string yields the same float sequence on
// any platform and any run, so frozen assignments reproduce identically and
// no random state ever needs to be persisted.
package seed

import "strings"

// RNG is a deterministic stream of floats in [0,1).
type RNG func() float64

// New reduces the seed string to a 32-bit state with an xmur3-style string
// hash, then expands that state with a mulberry32-style counter generator.
func New(seed string) RNG {
	state := mix(seed)
	return func() float64 {
		state += 0x6D2B79F5
		t := state
		t = (t ^ (t >> 15)) * (t | 1)
		t ^= t + (t^(t>>7))*(t|61)
		return float64(t^(t>>14)) / 4294967296.0
	}
}

// mix is an xmur3-style string hash reduced to a single 32-bit output.
func mix(s string) uint32 {
	h := uint32(1779033703) ^ uint32(len(s))
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * 3432918353
		h = h<<13 | h>>19
	}
	h = (h ^ (h >> 16)) * 2246822507
	h = (h ^ (h >> 13)) * 3266489909
	return h ^ h>>16
}

// IntN draws an integer in [0,n) from the stream. n must be positive.
func IntN(rng RNG, n int) int {
	return int(rng() * float64(n))
}

// Between draws an integer in [min,max] inclusive.
func Between(rng RNG, min, max int) int {
	if max <= min {
		return min
	}
	return min + IntN(rng, max-min+1)
}

// Shuffle reorders indices 0..n-1 with a Fisher-Yates walk over the stream
// and returns the permutation. The caller applies it to its own slice so the
// draw count stays fixed regardless of element type.
func Shuffle(rng RNG, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := IntN(rng, i+1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// Build joins the seed components with the fixed separator. Scope is either
// the literal "global" (same exercise for every learner) or the actor key
// (per-learner reproducible variation).
func Build(subject, module, topic, difficulty, salt, scope string) string {
	return strings.Join([]string{subject, module, topic, difficulty, salt, scope}, "|")
}
