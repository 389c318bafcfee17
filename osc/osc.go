// package osc provides oscillators.
package osc

import (
	"math"

	"github.com/pfcm/groove/internal/num"
)

const twoPi = 2 * math.Pi

// Fold turns an accumulated phase in radians into a bipolar sawtooth in
// [-1, 1): 2*(p - round(p)) where p is the phase in cycles. Rounding is
// half-up so the discontinuity sits at exactly half a cycle.
func Fold(phase float64) float64 {
	p := phase / twoPi
	return 2 * (p - math.Floor(p+0.5))
}

// Saw is a cheap, non band-limited sawtooth. The phase is left to accumulate
// rather than wrapped: Fold only looks at its fractional part.
type Saw struct {
	Phase float64
}

// Step advances the oscillator by one sample at freq and returns the new
// value.
func (s *Saw) Step(freq, sampleRate float64) float64 {
	s.Phase += twoPi * (freq / sampleRate)
	return Fold(s.Phase)
}

// Detuned is a pair of saws, the second tuned above the first by a number of
// cents. The beating between them is the main source of movement in the
// tone.
type Detuned struct {
	Primary, Secondary Saw
}

// Step advances both saws and returns their average.
func (d *Detuned) Step(freq, cents, sampleRate float64) float64 {
	s1 := d.Primary.Step(freq, sampleRate)
	s2 := d.Secondary.Step(freq*num.Cents(cents), sampleRate)
	return 0.5 * (s1 + s2)
}
