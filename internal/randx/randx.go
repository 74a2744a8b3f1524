// Package randx holds the distribution primitives every generator samples
// from. All functions draw from an explicitly passed *rand.Rand so a whole
// run consumes one sequential, seedable stream.
package randx

import (
	"math"
	"math/rand"
)

// New returns a seeded source for a generation run.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Weighted is one outcome of a categorical draw. Key "" is the none
// sentinel. Order matters: WeightedChoice scans options in slice order,
// so callers fix tie semantics by fixing the slice.
type Weighted struct {
	Key    string
	Weight float64
}

// WeightedChoice draws a uniform value in [0,1) and returns the first key
// whose cumulative weight reaches it. Weights are expected to sum to ~1.0;
// if they sum short the trailing mass maps to "".
func WeightedChoice(r *rand.Rand, options []Weighted) string {
	u := r.Float64()
	cumulative := 0.0
	for _, opt := range options {
		cumulative += opt.Weight
		if u <= cumulative {
			return opt.Key
		}
	}
	return ""
}

// IntBetween samples uniformly from [lo,hi], both inclusive.
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// FloatBetween samples uniformly from [lo,hi].
func FloatBetween(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Bernoulli reports true with probability p.
func Bernoulli(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// Exponential draws from an exponential distribution with the given mean.
func Exponential(r *rand.Rand, mean float64) float64 {
	return r.ExpFloat64() * mean
}

// ClippedLogNormal samples a log-normal variate parameterized by the mean
// and stddev of the underlying normal (callers pass pre-scaled values),
// truncated to the integer range [lo,hi].
func ClippedLogNormal(r *rand.Rand, mu, sigma float64, lo, hi int) int {
	v := int(math.Exp(r.NormFloat64()*sigma + mu))
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// SampleIndices picks k distinct indices out of [0,n) without replacement.
// k is capped at n.
func SampleIndices(r *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	perm := r.Perm(n)
	return perm[:k]
}

// Shuffle permutes the slice in place.
func Shuffle[T any](r *rand.Rand, items []T) {
	r.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Round1 rounds to one decimal place, used for hour estimates.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
