package rng

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func draws(s *Source, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Fraction()
	}
	return out
}

func TestSameSeedSameSequence(t *testing.T) {
	for _, seed := range []int32{0, 1, -1, 12345, -2147483648, 2147483647} {
		a, b := New(seed), New(seed)
		if diff := cmp.Diff(draws(a, 64), draws(b, 64)); diff != "" {
			t.Errorf("seed %d: sequences differ (-a +b):\n%s", seed, diff)
		}
	}
}

func TestInitializeRestarts(t *testing.T) {
	s := New(7)
	first := draws(s, 32)
	s.IntInRange(-1, 1)
	s.Initialize(7)
	if diff := cmp.Diff(first, draws(s, 32)); diff != "" {
		t.Errorf("Initialize did not restart the sequence (-want +got):\n%s", diff)
	}
}

func TestDifferentSeeds(t *testing.T) {
	if cmp.Equal(draws(New(1), 16), draws(New(2), 16)) {
		t.Error("seeds 1 and 2 produced identical sequences")
	}
	if cmp.Equal(draws(New(-1), 16), draws(New(1), 16)) {
		t.Error("seeds -1 and 1 produced identical sequences")
	}
}

func TestFractionRange(t *testing.T) {
	s := New(99)
	for i := 0; i < 10000; i++ {
		if f := s.Fraction(); f < 0 || f >= 1 {
			t.Fatalf("Fraction() = %v, want in [0, 1)", f)
		}
	}
}

func TestIntInRange(t *testing.T) {
	s := New(3)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := s.IntInRange(-1, 1)
		if v < -1 || v > 1 {
			t.Fatalf("IntInRange(-1, 1) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) != 3 {
		t.Errorf("IntInRange(-1, 1) only produced %v", seen)
	}
	if got := s.IntInRange(4, 4); got != 4 {
		t.Errorf("IntInRange(4, 4) = %d, want: 4", got)
	}
	if got := s.IntInRange(5, 2); got != 5 {
		t.Errorf("IntInRange(5, 2) = %d, want: 5", got)
	}
}
