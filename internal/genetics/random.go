package genetics

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Source is the random source threaded through every generation, breeding
// and scoring call. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSystemSource returns a source seeded from crypto/rand that is safe for
// concurrent use. Production servers share one of these across requests.
func NewSystemSource() (Source, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewLockedSource(NewSource(seed)), nil
}

// NewLockedSource serializes access to src.
func NewLockedSource(src Source) Source {
	return &lockedSource{src: src}
}

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// Chance reports whether a single uniform roll falls under p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// IntBetween returns a uniform integer in [lo, hi].
func IntBetween(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}
