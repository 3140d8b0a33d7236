// Package random provides the injectable randomness source used by the
// reward selector and the upgrade coin flip. Draw sites take a Source so
// tests can pin outcomes with a fixed seed or a scripted sequence.
package random

import (
	"math/rand"
	"sync"
)

// Source yields uniform random values. Implementations must return values
// in [0.0, 1.0) and be safe for concurrent use: one Source is shared by
// every request the engines serve.
type Source interface {
	Float64() float64
}

type globalSource struct{}

// New returns the production source, backed by the package-level math/rand
// generator, which serializes access internally.
func New() Source {
	return globalSource{}
}

func (globalSource) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a deterministic source for tests. A *rand.Rand is not
// safe for concurrent use on its own, so draws are serialized here.
func NewSeeded(seed int64) Source {
	return &seededSource{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // Deterministic by design
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Sequence is a scripted source that replays the given values in order,
// wrapping around when exhausted. Test helper.
type Sequence struct {
	values []float64
	idx    int
}

// NewSequence creates a Sequence from explicit values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.idx%len(s.values)]
	s.idx++
	return v
}
