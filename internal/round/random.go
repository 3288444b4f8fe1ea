// internal/round/random.go
//
// Randomness helpers used by the round composer.
// The composer never owns its random source: callers inject a Rand so a
// fixed seed reproduces the exact same round.

package round

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Rand is the random source consumed by Compose.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a high-entropy seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Choose returns one element of items picked uniformly. items must be non-empty.
func Choose[T any](r Rand, items []T) T {
	return items[r.Intn(len(items))]
}

// IntRange returns an integer drawn uniformly from the closed range [lo, hi].
func IntRange(r Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

// Sample returns m distinct elements of items, uniformly and without
// replacement. items is not modified. m must be within [0, len(items)].
func Sample[T any](r Rand, items []T, m int) []T {
	pool := append([]T(nil), items...)
	// Partial Fisher–Yates: the first m slots end up holding the sample.
	for i := 0; i < m; i++ {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:m:m]
}

// Shuffle permutes items in place.
func Shuffle[T any](r Rand, items []T) {
	r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}
