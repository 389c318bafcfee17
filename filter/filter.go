// package filter provides filters.
package filter

import "github.com/pfcm/groove/interp"

// OnePole is a first order recursive low-pass, y += a*(x-y).
type OnePole struct {
	Y float64
}

// Step feeds x through the filter with coefficient a and returns the output.
func (f *OnePole) Step(x, a float64) float64 {
	f.Y = interp.Toward(f.Y, x, a)
	return f.Y
}

// BandPass is two cascaded one-poles: a low-pass, and a high-pass made by
// subtracting a second low-pass of the first from it.
type BandPass struct {
	lo, hi OnePole
}

// Step filters x with coefficient a for both stages.
func (b *BandPass) Step(x, a float64) float64 {
	l := b.lo.Step(x, a)
	return l - b.hi.Step(l, a)
}

const (
	bassCoeff   = 0.0025
	trebleCoeff = 0.02
)

// Bands is a crude three way energy split used only for metering. The bass
// and treble followers are one-poles at fixed coefficients; the mid band
// accumulates what is left once both are taken out.
type Bands struct {
	Bass, Mid, Treble float64
}

// Step feeds one mono sample through the followers.
func (b *Bands) Step(x float64) {
	b.Bass = interp.Toward(b.Bass, x, bassCoeff)
	b.Treble = interp.Toward(b.Treble, x, trebleCoeff)
	b.Mid += x - b.Bass - (b.Treble - x)
}
