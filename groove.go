// package groove renders an endless, seed-deterministic stream of procedural
// music: an arpeggio and a pad walking a scale, and filtered noise hits, all
// on a sample-accurate rhythmic grid.
//
// A Renderer is driven by an audio callback that asks for one block at a
// time. It reads its parameters from a ParamSource once per block and
// publishes analysis values to a Meters once per block; neither involves a
// lock, so parameters and meters may be touched from other goroutines while
// audio runs.
package groove

import (
	"math"
	"time"

	"github.com/pfcm/groove/clock"
	"github.com/pfcm/groove/env"
	"github.com/pfcm/groove/internal/num"
	"github.com/pfcm/groove/scale"
)

// Params is a snapshot of the musical parameters.
type Params struct {
	// BPM is clamped to [20, 300] by the renderer.
	BPM float64
	// Root is a MIDI note number.
	Root  int
	Scale scale.Scale
	// Density is the base probability of a percussion hit on each eighth.
	Density float64
	// Brightness widens the detune, sharpens envelopes, rectifies the tone
	// and raises the percussion corner.
	Brightness float64
	// Motion is a performance control that pushes brightness and density
	// up together.
	Motion float64
	Seed   int32

	Arp, Pad, Perc bool
}

// DefaultParams returns the parameters a fresh host starts with.
func DefaultParams() Params {
	return Params{
		BPM:        100,
		Root:       60,
		Scale:      scale.Ionian,
		Density:    0.35,
		Brightness: 0.5,
		Seed:       12345,
		Arp:        true,
		Pad:        true,
		Perc:       true,
	}
}

// sanitized clamps every continuous parameter into range, replacing NaNs
// with the defaults.
func (p Params) sanitized() Params {
	d := DefaultParams()
	fix := func(x, def, lo, hi float64) float64 {
		if math.IsNaN(x) {
			return def
		}
		return num.Clamp(x, lo, hi)
	}
	p.BPM = fix(p.BPM, d.BPM, clock.MinBPM, clock.MaxBPM)
	p.Density = fix(p.Density, d.Density, 0, 1)
	p.Brightness = fix(p.Brightness, d.Brightness, 0, 1)
	p.Motion = fix(p.Motion, d.Motion, 0, 1)
	return p
}

// ParamSource is the read side of whatever owns the parameters. Params
// reports false once the owner has gone away, in which case the renderer
// keeps the last parameters it saw.
type ParamSource interface {
	Params() (Params, bool)
}

// Envelope presets for the two melodic voices.
var (
	ArpEnvelope = env.ADSR{
		Attack:  80 * time.Millisecond,
		Decay:   100 * time.Millisecond,
		Sustain: 0.30,
		Release: 200 * time.Millisecond,
	}
	PadEnvelope = env.ADSR{
		Attack:  200 * time.Millisecond,
		Decay:   500 * time.Millisecond,
		Sustain: 0.60,
		Release: 800 * time.Millisecond,
	}
)

const (
	ArpPan = -0.2
	PadPan = 0.2
)
