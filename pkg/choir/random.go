package choir

import (
	"math/rand/v2"
	"sync"
)

// RandomSource draws a uniform integer in [low, high).
// Implementations must be safe for concurrent use.
type RandomSource interface {
	Draw(low, high int) int
}

// DrawFunc adapts a plain function to RandomSource.
type DrawFunc func(low, high int) int

// Draw calls f(low, high).
func (f DrawFunc) Draw(low, high int) int {
	return f(low, high)
}

type pcgSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomSource returns a PCG-backed source. A zero seed picks a random one.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *pcgSource) Draw(low, high int) int {
	if high <= low {
		return low
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return low + s.r.IntN(high-low)
}

type sequenceSource struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequenceSource replays values in order, wrapping around at the end.
// Each value is clamped into the requested range.
func NewSequenceSource(values ...int) RandomSource {
	return &sequenceSource{values: values}
}

func (s *sequenceSource) Draw(low, high int) int {
	if high <= low || len(s.values) == 0 {
		return low
	}
	s.mu.Lock()
	v := s.values[s.next%len(s.values)]
	s.next++
	s.mu.Unlock()

	if v < low {
		return low
	}
	if v >= high {
		return high - 1
	}
	return v
}
