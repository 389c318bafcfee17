// package rng provides the seedable random source that drives note choice,
// percussion probability and noise. Everything random in a render comes from
// one Source so that a seed fully determines the output.
package rng

import "math/rand/v2"

// stream selects the PCG stream. It is fixed so that only the seed matters.
const stream = 0x9e3779b97f4a7c15

// Source is a deterministic pseudo-random source. The zero value is not
// usable; call New or Initialize first.
type Source struct {
	pcg *rand.PCG
	r   *rand.Rand
}

// New returns a Source initialised with seed.
func New(seed int32) *Source {
	pcg := rand.NewPCG(0, stream)
	s := &Source{pcg: pcg, r: rand.New(pcg)}
	s.Initialize(seed)
	return s
}

// Initialize resets the source so that subsequent draws depend only on seed.
// It does not allocate and is safe to call from the render loop.
func (s *Source) Initialize(seed int32) {
	s.pcg.Seed(uint64(int64(seed)), stream)
}

// Fraction returns a value in [0, 1).
func (s *Source) Fraction() float64 {
	return s.r.Float64()
}

// IntInRange returns an integer in [lo, hi] inclusive. If hi < lo it returns
// lo.
func (s *Source) IntInRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo+1)
}
