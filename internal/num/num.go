// package num holds the small numeric helpers shared by the synthesis
// packages.
package num

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp bounds x to [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Unit clamps x to [0, 1].
func Unit[T constraints.Float](x T) T {
	return Clamp(x, 0, 1)
}

// SoftClip is a cubic saturator, x - x³/3, hard limited to [-1, 1].
func SoftClip[T constraints.Float](x T) T {
	return Clamp(x-(x*x*x)/3, -1, 1)
}

// MidiToHz converts a MIDI note number to a frequency with A4 (69) at 440Hz.
func MidiToHz(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

// Cents returns the frequency ratio for an interval in cents.
func Cents(c float64) float64 {
	return math.Pow(2, c/1200)
}
