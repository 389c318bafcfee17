// package clock provides the sample-accurate rhythmic grid that triggers
// notes and hits.
package clock

import (
	"fmt"

	"github.com/pfcm/groove/internal/num"
)

const (
	MinBPM = 20
	MaxBPM = 300
)

// Events is the set of grid lines crossed on one tick.
type Events uint8

const (
	// Sixteenth fires every sixteenth note and drives the arpeggio.
	Sixteenth Events = 1 << iota
	// Eighth fires every eighth note and drives the percussion.
	Eighth
	// Pad fires every two beats and drives the pad.
	Pad
)

func (e Events) Has(f Events) bool { return e&f != 0 }

func (e Events) String() string {
	s := ""
	for _, f := range []struct {
		e Events
		n string
	}{{Sixteenth, "16"}, {Eighth, "8"}, {Pad, "pad"}} {
		if e.Has(f.e) {
			if s != "" {
				s += "|"
			}
			s += f.n
		}
	}
	if s == "" {
		return "-"
	}
	return s
}

// Clock is three free-running sample counters, one per grid. Periods are
// fractional sample counts; counters wrap by subtracting the period so the
// fractional part carries over to the next cycle.
type Clock struct {
	SamplesPerBeat float64

	periods  [3]float64
	counters [3]float64
}

// New returns a clock running at bpm.
func New(bpm, sampleRate float64) *Clock {
	c := &Clock{}
	c.RecomputeTiming(bpm, sampleRate)
	return c
}

// RecomputeTiming derives the grid periods from the tempo, which is clamped
// to [MinBPM, MaxBPM]. Counters are left alone so a tempo change does not
// restart the bar.
func (c *Clock) RecomputeTiming(bpm, sampleRate float64) {
	c.SamplesPerBeat = sampleRate * 60 / num.Clamp(bpm, MinBPM, MaxBPM)
	c.periods = [3]float64{
		c.SamplesPerBeat / 4,
		c.SamplesPerBeat / 2,
		c.SamplesPerBeat * 2,
	}
}

// Tick advances the clock by one frame and reports which grids wrapped.
func (c *Clock) Tick() Events {
	var ev Events
	for i := range c.counters {
		c.counters[i]++
		if c.counters[i] >= c.periods[i] {
			c.counters[i] -= c.periods[i]
			ev |= 1 << i
		}
	}
	return ev
}

// Period returns the period in samples of the given grid.
func (c *Clock) Period(e Events) float64 {
	switch e {
	case Sixteenth:
		return c.periods[0]
	case Eighth:
		return c.periods[1]
	case Pad:
		return c.periods[2]
	}
	panic(fmt.Errorf("clock: no single grid for %v", e))
}
