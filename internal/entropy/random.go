// Package entropy provides the seeded randomness behind every stochastic
// game decision. A Source is deterministic for a given seed and its state
// can be saved and restored, so a reloaded game replays identically.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	mrand "math/rand/v2"
)

// Source is a seeded PCG generator with helpers for the draws the engine makes.
type Source struct {
	pcg *mrand.PCG
	rng *mrand.Rand
}

// New returns a Source seeded from seed.
func New(seed int64) *Source {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	pcg := mrand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b"))
	return &Source{pcg: pcg, rng: mrand.New(pcg)}
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// NewSeed returns a fresh seed from crypto/rand.
func NewSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms.
		panic(fmt.Sprintf("entropy: read seed: %v", err))
	}
	// Keep seeds positive so they print cleanly.
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
}

// Float returns a float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rng.Float64() < p
}

// Uniform returns a float64 in [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// IntBetween returns an int in [lo, hi], both inclusive.
func (s *Source) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}

// IntN returns an int in [0, n). It panics if n <= 0.
func (s *Source) IntN(n int) int {
	return s.rng.IntN(n)
}

// Pick returns a uniformly chosen index into a collection of length n,
// or -1 when n is zero.
func (s *Source) Pick(n int) int {
	if n <= 0 {
		return -1
	}
	return s.rng.IntN(n)
}

// MarshalBinary captures the generator state.
func (s *Source) MarshalBinary() ([]byte, error) {
	return s.pcg.MarshalBinary()
}

// UnmarshalBinary restores state captured by MarshalBinary.
func (s *Source) UnmarshalBinary(data []byte) error {
	if s.pcg == nil {
		s.pcg = mrand.NewPCG(0, 0)
		s.rng = mrand.New(s.pcg)
	}
	if err := s.pcg.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("restore rng state: %w", err)
	}
	return nil
}

// Restore builds a Source from saved state.
func Restore(state []byte) (*Source, error) {
	s := &Source{}
	if err := s.UnmarshalBinary(state); err != nil {
		return nil, err
	}
	return s, nil
}
