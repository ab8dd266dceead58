package core

import (
	"math"
	"testing"
)

func TestRNGFloatBetweenStaysInRange(t *testing.T) {
	rng := NewRNG(42)
	for i := 0; i < 10000; i++ {
		v := rng.FloatBetween(0.2, 1)
		if v < 0.2 || v > 1 {
			t.Fatalf("FloatBetween(0.2, 1) = %v, out of range", v)
		}
	}
}

func TestRNGIntBetweenInclusive(t *testing.T) {
	rng := NewRNG(7)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := rng.IntBetween(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("IntBetween(3, 5) = %d, out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all of 3, 4, 5 to be drawn, got %v", seen)
	}
}

func TestRNGDegenerateRange(t *testing.T) {
	rng := NewRNG(1)
	if v := rng.FloatBetween(4, 4); v != 4 {
		t.Errorf("FloatBetween(4, 4) = %v, expected 4", v)
	}
	if v := rng.IntBetween(9, 2); v != 9 {
		t.Errorf("IntBetween(9, 2) = %d, expected 9", v)
	}
	// The span overflows int
	if v := rng.IntBetween(math.MinInt, math.MaxInt); v != math.MinInt {
		t.Errorf("IntBetween(MinInt, MaxInt) = %d, expected MinInt", v)
	}
}

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(12345)
	b := NewRNG(12345)
	for i := 0; i < 100; i++ {
		if a.Float(Range{Min: 0, Max: 10}) != b.Float(Range{Min: 0, Max: 10}) {
			t.Fatal("RNGs with same seed diverged")
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: 0.5, Max: 1.5}
	if !r.Contains(0.5) || !r.Contains(1.5) || !r.Contains(1) {
		t.Error("Contains() should include both ends")
	}
	if r.Contains(0.49) || r.Contains(1.51) {
		t.Error("Contains() should exclude values outside the range")
	}
}
