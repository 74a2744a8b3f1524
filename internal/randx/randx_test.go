package randx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedChoiceOrderSemantics(t *testing.T) {
	options := []Weighted{
		{Key: "high", Weight: 0.15},
		{Key: "medium", Weight: 0.35},
		{Key: "low", Weight: 0.20},
		{Key: "", Weight: 0.30},
	}
	r := New(7)
	counts := map[string]int{}
	const n = 100000
	for i := 0; i < n; i++ {
		counts[WeightedChoice(r, options)]++
	}
	assert.InDelta(t, 0.15, float64(counts["high"])/n, 0.01)
	assert.InDelta(t, 0.35, float64(counts["medium"])/n, 0.01)
	assert.InDelta(t, 0.20, float64(counts["low"])/n, 0.01)
	assert.InDelta(t, 0.30, float64(counts[""])/n, 0.01)
}

func TestWeightedChoiceEmpty(t *testing.T) {
	r := New(1)
	assert.Equal(t, "", WeightedChoice(r, nil))
}

func TestIntBetweenInclusive(t *testing.T) {
	r := New(3)
	sawLo, sawHi := false, false
	for i := 0; i < 10000; i++ {
		v := IntBetween(r, 2, 5)
		if v < 2 || v > 5 {
			t.Fatalf("out of range: %d", v)
		}
		if v == 2 {
			sawLo = true
		}
		if v == 5 {
			sawHi = true
		}
	}
	assert.True(t, sawLo, "expected lower bound to be reachable")
	assert.True(t, sawHi, "expected upper bound to be reachable")
	assert.Equal(t, 4, IntBetween(r, 4, 4))
}

func TestClippedLogNormalBounds(t *testing.T) {
	r := New(11)
	for i := 0; i < 10000; i++ {
		v := ClippedLogNormal(r, 7.0/3, 1.0, 1, 30)
		if v < 1 || v > 30 {
			t.Fatalf("out of bounds: %d", v)
		}
	}
}

func TestSampleIndicesDistinct(t *testing.T) {
	r := New(5)
	idx := SampleIndices(r, 20, 8)
	assert.Len(t, idx, 8)
	seen := map[int]bool{}
	for _, i := range idx {
		assert.False(t, seen[i], "duplicate index %d", i)
		seen[i] = true
	}
	// k capped at n
	assert.Len(t, SampleIndices(r, 3, 10), 3)
}

func TestDeterminismWithSeed(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}
