//go:generate mockgen -source=sampler.go -destination=mocks/mock_sampler.go -package=mocks

package numtheory

import (
	"math/big"
	"math/rand"
	"sync"
)

// Sampler draws uniformly distributed integers from a closed range.
// Primality tests use it to pick their witnesses.
type Sampler interface {
	// Between returns a value in [min, max]. The caller guarantees min <= max.
	Between(min, max *big.Int) *big.Int
}

// Splitter is a Sampler that can derive independent child samplers. A child
// depends only on the parent's state when Split is called, so splitting in a
// fixed order yields the same children on every run.
type Splitter interface {
	Sampler
	Split() Sampler
}

// RandSampler is a seeded, non-cryptographic Sampler. It is safe for
// concurrent use; calls are serialized on an internal mutex.
type RandSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a RandSampler whose stream is fully determined by seed.
func NewSampler(seed int64) *RandSampler {
	return &RandSampler{rng: rand.New(rand.NewSource(seed))}
}

// Between returns a uniformly distributed integer in [min, max].
// It panics if min > max.
func (s *RandSampler) Between(min, max *big.Int) *big.Int {
	span := new(big.Int).Sub(max, min)
	span.Add(span, one)

	s.mu.Lock()
	r := new(big.Int).Rand(s.rng, span)
	s.mu.Unlock()

	return r.Add(r, min)
}

// Split draws a seed from s and returns a new RandSampler seeded with it.
// The parent stream advances by one draw.
func (s *RandSampler) Split() Sampler {
	s.mu.Lock()
	seed := s.rng.Int63()
	s.mu.Unlock()
	return NewSampler(seed)
}
