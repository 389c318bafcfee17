// package voice implements the two melodic voices and the percussion voice.
package voice

import (
	"fmt"
	"math"
	"time"

	"github.com/pfcm/groove/env"
	"github.com/pfcm/groove/filter"
	"github.com/pfcm/groove/internal/num"
	"github.com/pfcm/groove/osc"
	"github.com/pfcm/groove/rng"
)

// headroom scales every melodic voice before the soft clip.
const headroom = 0.25

// Voice is a detuned saw pair through an envelope, panned into stereo.
type Voice struct {
	Osc  osc.Detuned
	Env  env.ADSR
	Freq float64
	// Pan runs from -1 (left) to 1 (right).
	Pan float64

	sampleRate float64
}

// New returns a voice using the envelope preset e.
func New(e env.ADSR, pan, sampleRate float64) *Voice {
	return &Voice{
		Env:        e,
		Freq:       220,
		Pan:        pan,
		sampleRate: sampleRate,
	}
}

func (v *Voice) String() string {
	return fmt.Sprintf("Voice(%.2fHz, %v, pan %.2f)", v.Freq, &v.Env, v.Pan)
}

// Trigger restarts the envelope at full scale.
func (v *Voice) Trigger() { v.Env.Trigger() }

// Level returns the current envelope level.
func (v *Voice) Level() float64 { return v.Env.Level() }

// Step renders one frame. bright widens the detune and speeds up the
// envelope; shape blends the bipolar saw toward its rectified form.
func (v *Voice) Step(bright, shape float64) (l, r float64) {
	s := v.Osc.Step(v.Freq, 10+60*bright, v.sampleRate)
	level := v.Env.Step(0.001+0.007*bright, v.sampleRate)
	shaped := (1-shape)*s + shape*math.Abs(s)
	out := num.SoftClip(level * shaped * headroom)
	return out * 0.5 * (1 - v.Pan), out * 0.5 * (1 + v.Pan)
}

const (
	percDecay   = 40 * time.Millisecond
	percFloor   = 0.001
	percSilence = 1e-5
	percGain    = 0.6
	percSend    = 0.35
)

// Perc is a filtered noise burst with a fast exponential decay.
type Perc struct {
	env        *env.Exp
	bp         filter.BandPass
	sampleRate float64
}

// NewPerc returns a percussion voice whose hits fall to a thousandth of full
// scale after 40ms at any sample rate.
func NewPerc(sampleRate float64) *Perc {
	return &Perc{
		env:        env.NewExp(percDecay, percFloor, sampleRate),
		sampleRate: sampleRate,
	}
}

func (p *Perc) String() string { return fmt.Sprintf("Perc(%v)", p.env) }

// Trigger starts a hit at full scale.
func (p *Perc) Trigger() { p.env.Trigger() }

// Level returns the current envelope level.
func (p *Perc) Level() float64 { return p.env.Level() }

// Step renders one frame, drawing noise from r. Once the hit has died away
// it returns silence without touching r or the filters.
func (p *Perc) Step(brightness float64, r *rng.Source) (float64, float64) {
	if p.env.Level() <= percSilence {
		return 0, 0
	}
	n := 2*r.Fraction() - 1
	corner := 2000 + 4000*(0.4+0.6*brightness)
	a := num.Clamp(corner/p.sampleRate, 0, 0.25)
	v := num.Clamp(p.bp.Step(n, a), -1, 1) * p.env.Step() * percGain
	return v * percSend, v * percSend
}
