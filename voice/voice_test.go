package voice

import (
	"math"
	"testing"
	"time"

	"github.com/pfcm/groove/env"
	"github.com/pfcm/groove/rng"
)

var arp = env.ADSR{
	Attack:  80 * time.Millisecond,
	Decay:   100 * time.Millisecond,
	Sustain: 0.3,
	Release: 200 * time.Millisecond,
}

func TestVoiceSilentUntilTriggered(t *testing.T) {
	v := New(arp, 0, 48000)
	for i := 0; i < 1000; i++ {
		if l, r := v.Step(0.5, 0.5); l != 0 || r != 0 {
			t.Fatalf("untriggered voice produced %v, %v", l, r)
		}
	}
}

func TestVoicePan(t *testing.T) {
	for _, c := range []struct {
		pan          float64
		wantL, wantR float64 // fraction of the mono output
	}{
		{0, 0.5, 0.5},
		{-1, 1, 0},
		{1, 0, 1},
		{-0.2, 0.6, 0.4},
	} {
		v := New(arp, c.pan, 48000)
		v.Freq = 330
		v.Trigger()
		var sumL, sumR float64
		for i := 0; i < 2000; i++ {
			l, r := v.Step(0.5, 0)
			sumL += math.Abs(l)
			sumR += math.Abs(r)
		}
		total := sumL + sumR
		if math.Abs(sumL/total-c.wantL) > 1e-9 || math.Abs(sumR/total-c.wantR) > 1e-9 {
			t.Errorf("pan %v: split %v/%v, want: %v/%v", c.pan, sumL/total, sumR/total, c.wantL, c.wantR)
		}
	}
}

func TestVoiceBounded(t *testing.T) {
	for _, bright := range []float64{0, 0.5, 1} {
		for _, shape := range []float64{0, 0.5, 1} {
			v := New(arp, -0.2, 44100)
			v.Freq = 880
			for i := 0; i < 44100; i++ {
				if i%5000 == 0 {
					v.Trigger()
				}
				l, r := v.Step(bright, shape)
				if math.Abs(l) > 0.25 || math.Abs(r) > 0.25 || math.IsNaN(l) || math.IsNaN(r) {
					t.Fatalf("bright %v shape %v sample %d: %v, %v", bright, shape, i, l, r)
				}
			}
		}
	}
}

func TestVoiceRectifiedIsPositive(t *testing.T) {
	v := New(arp, 0, 48000)
	v.Freq = 440
	v.Trigger()
	for i := 0; i < 4800; i++ {
		if l, _ := v.Step(0.3, 1); l < 0 {
			t.Fatalf("fully rectified voice went negative at %d: %v", i, l)
		}
	}
}

func TestPercDecay(t *testing.T) {
	for _, sr := range []float64{22050, 44100, 48000, 96000} {
		p := NewPerc(sr)
		p.Trigger()
		r := rng.New(1)
		n := int(math.Round(0.04 * sr))
		for i := 0; i < n; i++ {
			p.Step(0.5, r)
		}
		if got := p.Level(); math.Abs(got-0.001) > 1e-9 {
			t.Errorf("sample rate %v: level after 40ms = %v, want: 0.001", sr, got)
		}
	}
}

func TestPercSilentDoesNotDraw(t *testing.T) {
	p := NewPerc(48000)
	r, ref := rng.New(9), rng.New(9)
	for i := 0; i < 100; i++ {
		if l, rr := p.Step(0.5, r); l != 0 || rr != 0 {
			t.Fatalf("idle perc produced %v, %v", l, rr)
		}
	}
	if r.Fraction() != ref.Fraction() {
		t.Error("idle perc consumed random numbers")
	}
}

func TestPercBoundedAndCentered(t *testing.T) {
	p := NewPerc(48000)
	r := rng.New(4)
	for i := 0; i < 48000; i++ {
		if i%6000 == 0 {
			p.Trigger()
		}
		l, rr := p.Step(1, r)
		if l != rr {
			t.Fatalf("sample %d not centred: %v, %v", i, l, rr)
		}
		if math.Abs(l) > percGain*percSend {
			t.Fatalf("sample %d: %v out of range", i, l)
		}
	}
}
