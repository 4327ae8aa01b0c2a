// Package random holds the small set of random helpers the walk needs.
package random

import (
	"math"
	"math/rand"
	"time"
)

type Source struct {
	rng *rand.Rand
}

// New returns a source seeded with seed, or with the current time when seed is 0.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Coin reports true with probability 0.5.
func (s *Source) Coin() bool {
	return s.rng.Float64() < 0.5
}

// Int returns a uniformly distributed integer in [low, high]. When high < low
// it returns low. Any pair of ints is accepted, including spans wider than
// math.MaxInt.
func (s *Source) Int(low, high int) int {
	if high < low {
		return low
	}
	// Two's complement wrap gives the exact span for every low <= high.
	span := uint64(high) - uint64(low) + 1
	if span != 0 && span <= math.MaxInt {
		return low + s.rng.Intn(int(span))
	}
	for {
		v := s.rng.Uint64()
		if span == 0 || v < span {
			return low + int(v)
		}
	}
}
