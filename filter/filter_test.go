package filter

import (
	"math"
	"testing"
)

func TestOnePoleStep(t *testing.T) {
	var f OnePole
	for i, want := range []float64{0.5, 0.75, 0.875, 0.9375} {
		if got := f.Step(1, 0.5); got != want {
			t.Errorf("step %d = %v, want: %v", i, got, want)
		}
	}
}

func TestOnePoleDC(t *testing.T) {
	var f OnePole
	for i := 0; i < 10000; i++ {
		f.Step(-0.3, 0.01)
	}
	if math.Abs(f.Y+0.3) > 1e-9 {
		t.Errorf("settled at %v, want: -0.3", f.Y)
	}
}

func TestBandPassBlocksDC(t *testing.T) {
	var b BandPass
	var out float64
	for i := 0; i < 20000; i++ {
		out = b.Step(1, 0.1)
	}
	if math.Abs(out) > 1e-9 {
		t.Errorf("DC output %v, want: 0", out)
	}
}

func TestBandPassPassesMid(t *testing.T) {
	// A tone near the corner should come through with real energy, while
	// silence in stays silence out.
	var b BandPass
	var sum float64
	for i := 0; i < 48000; i++ {
		x := math.Sin(2 * math.Pi * 3000 * float64(i) / 48000)
		y := b.Step(x, 0.1)
		sum += y * y
	}
	if rms := math.Sqrt(sum / 48000); rms < 0.05 {
		t.Errorf("rms of 3kHz through band pass = %v, want > 0.05", rms)
	}
	var quiet BandPass
	if got := quiet.Step(0, 0.1); got != 0 {
		t.Errorf("Step(0) = %v, want: 0", got)
	}
}

func TestBandsFollow(t *testing.T) {
	var b Bands
	b.Step(1)
	if b.Bass != 0.0025 || b.Treble != 0.02 {
		t.Errorf("after one step Bass, Treble = %v, %v, want: 0.0025, 0.02", b.Bass, b.Treble)
	}
	if want := 1 - 0.0025 - (0.02 - 1); math.Abs(b.Mid-want) > 1e-15 {
		t.Errorf("after one step Mid = %v, want: %v", b.Mid, want)
	}
}
