// package interp provides helpers for interpolating between float samples.
package interp

import "golang.org/x/exp/constraints"

// L does linear interpolation in the blend form:
//
//	L(a, b, c) = (1-c)*a + c*b
//
// This is the form the meters smooth with; it is exact at both c=0 and c=1.
func L[T constraints.Float](a, b, c T) T {
	return (1-c)*a + c*b
}

// Toward is the same interpolation written as a single step of a one-pole
// follower:
//
//	Toward(a, b, c) = a + c*(b-a)
//
// It saves a multiply and is what envelopes and filters use. It rounds
// differently to L, so the two are not interchangeable where output must be
// reproducible.
func Toward[T constraints.Float](a, b, c T) T {
	return a + c*(b-a)
}
