package delay

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestEchoImpulse(t *testing.T) {
	var e Echo
	var gotL, gotR []float64
	for i := 0; i < 5; i++ {
		in := 0.0
		if i == 0 {
			in = 1
		}
		l, r := e.Tick(in, -in, 0.5)
		gotL = append(gotL, l)
		gotR = append(gotR, r)
	}
	want := []float64{1, 0.5, 0.25, 0.125, 0.0625}
	if diff := cmp.Diff(want, gotL); diff != "" {
		t.Errorf("left impulse response (-want +got):\n%s", diff)
	}
	neg := make([]float64, len(want))
	for i, w := range want {
		neg[i] = -w
	}
	if diff := cmp.Diff(neg, gotR); diff != "" {
		t.Errorf("right impulse response (-want +got):\n%s", diff)
	}
}

func TestEchoFeedsBackEffectedSignal(t *testing.T) {
	// With a constant input the output converges to x/(1-fb), which only
	// happens if the line holds the echoed output rather than the dry input
	// (a dry line would settle at x*(1+fb)).
	var e Echo
	var l float64
	for i := 0; i < 1000; i++ {
		l, _ = e.Tick(0.1, 0.1, 0.37)
	}
	want := 0.1 / (1 - 0.37)
	if !cmp.Equal(l, want, cmpopts.EquateApprox(0, 1e-12)) {
		t.Errorf("settled at %v, want: %v", l, want)
	}
	if math.Abs(l-0.1*1.37) < 1e-3 {
		t.Errorf("settled at the dry-feedback value %v", l)
	}
}

func TestEchoReset(t *testing.T) {
	var e Echo
	e.Tick(1, 1, 0.5)
	e.Reset()
	if l, r := e.Tick(0, 0, 0.5); l != 0 || r != 0 {
		t.Errorf("after Reset Tick(0, 0) = %v, %v, want: 0, 0", l, r)
	}
}
