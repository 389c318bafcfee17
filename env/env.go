// package env provides envelope generators.
package env

import (
	"fmt"
	"math"
	"time"

	"github.com/pfcm/groove/interp"
)

// ADSR is a two stage approximation of an attack-decay-sustain-release
// envelope. On every sample the level moves exponentially toward a target,
// which is 1 during the attack and Sustain afterwards, and is then scaled by
// a release factor. The release bleed applies in every stage, so the sustain
// is not a flat hold: the level keeps sinking toward zero while held.
//
// Decay is part of the preset but the law does not read it.
type ADSR struct {
	Attack, Decay time.Duration
	Sustain       float64
	Release       time.Duration

	level   float64
	elapsed float64 // samples since the last trigger
}

func (a *ADSR) String() string {
	return fmt.Sprintf("ADSR(%v,%v,%v,%v)", a.Attack, a.Decay, a.Sustain, a.Release)
}

// Trigger jumps the level to full scale and restarts the attack. There is no
// ramp from the previous level.
func (a *ADSR) Trigger() {
	a.level = 1
	a.elapsed = 0
}

// Step advances the envelope by one sample and returns the new level. rate is
// the fraction of the distance to the target covered per sample.
func (a *ADSR) Step(rate, sampleRate float64) float64 {
	a.elapsed++
	attack := a.Attack.Seconds() * sampleRate
	release := math.Max(1, a.Release.Seconds()*sampleRate)
	target := a.Sustain
	if a.elapsed < attack {
		target = 1
	}
	a.level = interp.Toward(a.level, target, rate)
	a.level *= 1 - 1/release
	return a.level
}

// Level returns the current level without advancing.
func (a *ADSR) Level() float64 { return a.level }

// Exp is a one-shot exponential decay: triggered to full scale, it falls by a
// constant factor each sample.
type Exp struct {
	level  float64
	factor float64
}

// NewExp returns an envelope that falls to floor (relative to full scale)
// after d, at any sample rate.
func NewExp(d time.Duration, floor, sampleRate float64) *Exp {
	return &Exp{factor: math.Pow(floor, 1/(d.Seconds()*sampleRate))}
}

func (e *Exp) String() string { return fmt.Sprintf("Exp(%.8f)", e.factor) }

// Trigger jumps to full scale.
func (e *Exp) Trigger() { e.level = 1 }

// Step returns the current level and then decays it.
func (e *Exp) Step() float64 {
	l := e.level
	e.level *= e.factor
	return l
}

// Level returns the current level without advancing.
func (e *Exp) Level() float64 { return e.level }

// Factor returns the per-sample decay multiplier.
func (e *Exp) Factor() float64 { return e.factor }
