package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
	"time"
)

// Source is the randomness the generators draw from. *Random satisfies it;
// tests may substitute a scripted implementation.
type Source interface {
	IntN(n int) int
	IntRange(min, max int) int
	Int64Range(min, max int64) int64
	Float64() float64
	Float64Range(min, max float64) float64
	NormalFloat64() float64
	Probability(p float64) bool
	PickString(slice []string) string
	WeightedPick(weights []int) int
	String(length int) string
	NumericString(length int) string
	Read(p []byte) (int, error)
}

// Random provides a deterministic pseudo-random number generator with
// convenient methods for common generation tasks. It's designed to be
// reproducible given the same seed.
type Random struct {
	rng  *rand.Rand
	seed uint64
	mu   sync.Mutex
}

var _ Source = (*Random)(nil)

// NewRandom creates a new Random instance with the given seed.
// If seed is 0, a cryptographically random seed is generated.
func NewRandom(seed int64) *Random {
	var actualSeed uint64
	if seed == 0 {
		actualSeed = generateRandomSeed()
	} else {
		actualSeed = uint64(seed)
	}

	return &Random{
		rng:  rand.New(rand.NewPCG(actualSeed, actualSeed^0xDEADBEEF)),
		seed: actualSeed,
	}
}

// generateRandomSeed creates a cryptographically random seed
func generateRandomSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// Fallback to time-based seed if crypto/rand fails
		return uint64(time.Now().UnixNano())
	}
	seed := binary.LittleEndian.Uint64(b[:])
	if seed == 0 {
		seed = 1
	}
	return seed
}

// Seed returns the seed used to initialize this RNG
func (r *Random) Seed() uint64 {
	return r.seed
}

// Fork creates a new Random instance with a derived seed.
// Each batch worker gets its own fork so streams never interleave.
func (r *Random) Fork() *Random {
	r.mu.Lock()
	defer r.mu.Unlock()

	newSeed := r.rng.Uint64()
	return &Random{
		rng:  rand.New(rand.NewPCG(newSeed, newSeed^0xCAFEBABE)),
		seed: newSeed,
	}
}

// ForkN creates N independent Random instances with derived seeds.
func (r *Random) ForkN(n int) []*Random {
	results := make([]*Random, n)
	for i := 0; i < n; i++ {
		results[i] = r.Fork()
	}
	return results
}

// IntN returns a pseudo-random int in [0, n)
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

// IntRange returns a pseudo-random int in [min, max]
func (r *Random) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.IntN(max-min+1)
}

// Int64N returns a pseudo-random int64 in [0, n)
func (r *Random) Int64N(n int64) int64 {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Int64N(n)
}

// Int64Range returns a pseudo-random int64 in [min, max]
func (r *Random) Int64Range(min, max int64) int64 {
	if min >= max {
		return min
	}
	return min + r.Int64N(max-min+1)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0)
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Float64Range returns a pseudo-random float64 in [min, max)
func (r *Random) Float64Range(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + r.Float64()*(max-min)
}

// Probability returns true with the given probability (0.0 to 1.0)
func (r *Random) Probability(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// PickString returns a random string from the slice
func (r *Random) PickString(slice []string) string {
	if len(slice) == 0 {
		return ""
	}
	return slice[r.IntN(len(slice))]
}

// WeightedPick selects an index based on weights
// weights[i] is the relative weight for index i
func (r *Random) WeightedPick(weights []int) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0
	for _, w := range weights {
		total += w
	}

	if total <= 0 {
		return r.IntN(len(weights))
	}

	target := r.IntN(total) + 1
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if target <= cumulative {
			return i
		}
	}

	return len(weights) - 1
}

// NormalFloat64 returns a normally distributed float64 with mean 0 and stddev 1
func (r *Random) NormalFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.NormFloat64()
}

// String generates a random alphanumeric string of the given length
func (r *Random) String(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[r.IntN(len(charset))]
	}
	return string(result)
}

// NumericString generates a random numeric string of the given length
func (r *Random) NumericString(length int) string {
	const charset = "0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[r.IntN(len(charset))]
	}
	return string(result)
}

// Read fills p with pseudo-random bytes. It lets the RNG back io.Reader
// consumers such as uuid.NewRandomFromReader, keeping IDs reproducible.
func (r *Random) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < len(p); i += 8 {
		v := r.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}
