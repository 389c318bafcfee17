package groove

import (
	"fmt"
	"math"

	"github.com/pfcm/groove/clock"
	"github.com/pfcm/groove/delay"
	"github.com/pfcm/groove/filter"
	"github.com/pfcm/groove/internal/num"
	"github.com/pfcm/groove/rng"
	"github.com/pfcm/groove/scale"
	"github.com/pfcm/groove/voice"
)

const (
	DefaultSampleRate = 48000
	DefaultChannels   = 2

	// bpmEpsilon is how far the tempo must move before the grid is
	// recomputed.
	bpmEpsilon = 1e-4
)

// Config fixes the output format for a Renderer's lifetime.
type Config struct {
	SampleRate int
	// Channels is the number of interleaved channels in each frame. Only the
	// first two are written.
	Channels int
}

// Stats counts what a Renderer has done. It is only meaningful on the
// goroutine that calls Render.
type Stats struct {
	Frames         uint64
	Arp, Pad, Perc uint64 // triggers
}

// Renderer turns parameters into interleaved audio, one block per call. It
// is not safe for concurrent use: one goroutine (the audio callback) calls
// Render, while parameters and meters are shared through ParamSource and
// Meters.
type Renderer struct {
	src    ParamSource
	meters *Meters

	sampleRate float64
	channels   int

	// p is the renderer's own copy of the parameters, refreshed at the start
	// of each block.
	p         Params
	lastBPM   float64
	lastScale scale.Scale

	rng      *rng.Source
	clock    *clock.Clock
	walker   scale.Walker
	arp, pad *voice.Voice
	perc     *voice.Perc
	echo     delay.Echo
	bands    filter.Bands

	stats Stats
}

// New returns a Renderer. A non-positive sample rate or channel count is
// replaced by the default. src may be nil, in which case the default
// parameters are used throughout; m may be nil, in which case the renderer
// publishes to meters of its own.
func New(cfg Config, src ParamSource, m *Meters) *Renderer {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.Channels <= 0 {
		cfg.Channels = DefaultChannels
	}
	if m == nil {
		m = new(Meters)
	}
	p := DefaultParams()
	if src != nil {
		if q, ok := src.Params(); ok {
			p = q
		}
	}
	p = p.sanitized()

	sr := float64(cfg.SampleRate)
	r := &Renderer{
		src:        src,
		meters:     m,
		sampleRate: sr,
		channels:   cfg.Channels,
		p:          p,
		lastBPM:    p.BPM,
		lastScale:  p.Scale,
		rng:        rng.New(p.Seed),
		clock:      clock.New(p.BPM, sr),
		arp:        voice.New(ArpEnvelope, ArpPan, sr),
		pad:        voice.New(PadEnvelope, PadPan, sr),
		perc:       voice.NewPerc(sr),
	}
	r.walker.Rebuild(p.Scale, r.rng)
	return r
}

func (r *Renderer) Channels() int   { return r.channels }
func (r *Renderer) SampleRate() int { return int(r.sampleRate) }
func (r *Renderer) Meters() *Meters { return r.meters }
func (r *Renderer) Stats() Stats    { return r.stats }

// Params returns the parameters used for the most recent block.
func (r *Renderer) Params() Params { return r.p }

func (r *Renderer) String() string {
	return fmt.Sprintf("Renderer(%dHz, %dch)", int(r.sampleRate), r.channels)
}

// Render writes numSamples interleaved samples to out and returns the number
// written, which is numSamples unless out is shorter. Whole frames are
// rendered; samples of a trailing partial frame are zeroed. Channels beyond
// the second are left untouched.
func (r *Renderer) Render(out []float32, numSamples int) int {
	n := min(numSamples, len(out))
	if n <= 0 {
		return 0
	}
	r.refresh()
	r.reconcile()

	var (
		p        = r.p
		bright   = num.Unit(p.Brightness + 0.30*p.Motion)
		percProb = num.Unit(p.Density + 0.20*p.Motion)
		shape    = num.Unit(p.Brightness + 0.25*p.Motion)
		feedback = 0.12 + 0.25*bright

		frames = n / r.channels
		sumSq  float64
	)
	for f := 0; f < frames; f++ {
		ev := r.clock.Tick()
		if ev.Has(clock.Sixteenth) && p.Arp {
			r.triggerArp()
		}
		if ev.Has(clock.Eighth) && p.Perc && r.rng.Fraction() < percProb {
			r.perc.Trigger()
			r.stats.Perc++
		}
		if ev.Has(clock.Pad) && p.Pad {
			r.triggerPad()
		}

		var left, right float64
		if p.Pad {
			vl, vr := r.pad.Step(bright*0.6, shape)
			left, right = left+vl, right+vr
		}
		if p.Arp {
			vl, vr := r.arp.Step(bright, shape)
			left, right = left+vl, right+vr
		}
		if p.Perc {
			vl, vr := r.perc.Step(p.Brightness, r.rng)
			left, right = left+vl, right+vr
		}
		left, right = r.echo.Tick(left, right, feedback)

		mono := 0.5 * (left + right)
		r.bands.Step(mono)
		sumSq += mono * mono

		i := f * r.channels
		out[i] = float32(left)
		if r.channels > 1 {
			out[i+1] = float32(right)
		}
	}
	clear(out[frames*r.channels : n])
	r.stats.Frames += uint64(frames)

	if frames > 0 {
		r.publish(math.Sqrt(sumSq / float64(frames)))
	}
	return n
}

// refresh copies the parameters from the source, reseeding if the seed has
// changed. A missing or departed source leaves the last parameters in place.
func (r *Renderer) refresh() {
	if r.src == nil {
		return
	}
	p, ok := r.src.Params()
	if !ok {
		return
	}
	p = p.sanitized()
	if p.Seed != r.p.Seed {
		r.rng.Initialize(p.Seed)
	}
	r.p = p
}

// reconcile rebuilds the grid and scale if the tempo or scale changed.
func (r *Renderer) reconcile() {
	if math.Abs(r.p.BPM-r.lastBPM) > bpmEpsilon {
		r.lastBPM = r.p.BPM
		r.clock.RecomputeTiming(r.p.BPM, r.sampleRate)
	}
	if r.p.Scale != r.lastScale {
		r.lastScale = r.p.Scale
		r.walker.Rebuild(r.p.Scale, r.rng)
	}
}

func (r *Renderer) triggerArp() {
	r.walker.Advance(r.rng)
	r.arp.Freq = num.MidiToHz(r.p.Root + r.walker.Semitone() + 12)
	r.arp.Trigger()
	r.stats.Arp++
}

func (r *Renderer) triggerPad() {
	r.pad.Freq = num.MidiToHz(r.p.Root + r.walker.Semitone())
	// Restart the detuned saws so the pad attack starts from a known phase.
	r.pad.Osc.Secondary.Phase = 0
	r.arp.Osc.Secondary.Phase = 0
	r.pad.Trigger()
	r.stats.Pad++
}

func (r *Renderer) publish(rms float64) {
	r.meters.Publish(MeterValues{
		RMS:    rms,
		Arp:    r.arp.Level(),
		Pad:    r.pad.Level(),
		Perc:   r.perc.Level(),
		Bass:   math.Abs(r.bands.Bass),
		Mid:    math.Abs(r.bands.Mid),
		Treble: math.Abs(r.bands.Treble),
	})
}
