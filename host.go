package groove

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/pfcm/groove/internal/num"
	"github.com/pfcm/groove/scale"
)

// Limits for NudgeBPM, narrower than what the renderer accepts.
const (
	MinNudgeBPM = 60
	MaxNudgeBPM = 160

	// DefaultMaxSpeed is the speed that UpdateFromSpeed maps to full motion
	// when no maximum is given.
	DefaultMaxSpeed = 600
)

// Host owns the authoritative parameters and the meters. Every parameter is
// its own atomic, so controls may be changed from any goroutine while a
// Renderer reads them; a renderer may see a mix of old and new values for
// one block, which is harmless since no two parameters need to change
// together.
type Host struct {
	bpm                         cell
	root                        atomic.Int32
	scale                       atomic.Uint32
	density, brightness, motion cell
	seed                        atomic.Int32
	arp, pad, perc              atomic.Bool
	closed                      atomic.Bool

	meters Meters
}

// NewHost returns a Host holding p.
func NewHost(p Params) *Host {
	h := &Host{}
	h.Set(p)
	return h
}

// Params implements ParamSource. It reports false once the host is closed.
func (h *Host) Params() (Params, bool) {
	if h.closed.Load() {
		return Params{}, false
	}
	return Params{
		BPM:        h.bpm.Load(),
		Root:       int(h.root.Load()),
		Scale:      scale.Scale(h.scale.Load()),
		Density:    h.density.Load(),
		Brightness: h.brightness.Load(),
		Motion:     h.motion.Load(),
		Seed:       h.seed.Load(),
		Arp:        h.arp.Load(),
		Pad:        h.pad.Load(),
		Perc:       h.perc.Load(),
	}, true
}

// Set stores every parameter. The stores are independent.
func (h *Host) Set(p Params) {
	h.SetBPM(p.BPM)
	h.SetRoot(p.Root)
	h.SetScale(p.Scale)
	h.SetDensity(p.Density)
	h.SetBrightness(p.Brightness)
	h.SetMotion(p.Motion)
	h.Reseed(p.Seed)
	h.SetVoices(p.Arp, p.Pad, p.Perc)
}

// Meters returns the meters a Renderer should publish to.
func (h *Host) Meters() *Meters { return &h.meters }

// Close marks the host as gone. Renderers reading from it keep their last
// parameters.
func (h *Host) Close() { h.closed.Store(true) }

func (h *Host) SetBPM(bpm float64)      { h.bpm.Store(bpm) }
func (h *Host) SetRoot(note int)        { h.root.Store(int32(note)) }
func (h *Host) SetScale(s scale.Scale)  { h.scale.Store(uint32(s)) }
func (h *Host) SetDensity(d float64)    { h.density.Store(num.Unit(d)) }
func (h *Host) SetBrightness(b float64) { h.brightness.Store(num.Unit(b)) }

// SetMotion sets the motion amount, clamped to [0, 1].
func (h *Host) SetMotion(m float64) { h.motion.Store(num.Unit(m)) }

// Reseed sets the seed. Renderers pick it up at their next block and restart
// their random sequence from it.
func (h *Host) Reseed(seed int32) { h.seed.Store(seed) }

// ReseedRandom picks a fresh seed and returns it.
func (h *Host) ReseedRandom() int32 {
	s := rand.Int32()
	h.Reseed(s)
	return s
}

// SetVoices enables or disables each voice.
func (h *Host) SetVoices(arp, pad, perc bool) {
	h.arp.Store(arp)
	h.pad.Store(pad)
	h.perc.Store(perc)
}

// ToggleArp, TogglePad and TogglePerc flip one voice. They are not atomic
// with respect to each other, only per voice.
func (h *Host) ToggleArp()  { toggle(&h.arp) }
func (h *Host) TogglePad()  { toggle(&h.pad) }
func (h *Host) TogglePerc() { toggle(&h.perc) }

func toggle(b *atomic.Bool) {
	for {
		v := b.Load()
		if b.CompareAndSwap(v, !v) {
			return
		}
	}
}

// NudgeBPM moves the tempo by delta, keeping it within
// [MinNudgeBPM, MaxNudgeBPM].
func (h *Host) NudgeBPM(delta float64) {
	h.SetBPM(num.Clamp(h.bpm.Load()+delta, MinNudgeBPM, MaxNudgeBPM))
}

// CycleScale moves dir scales along, wrapping, and reapplies the current seed
// so the pattern restarts from it.
func (h *Host) CycleScale(dir int) {
	s := scale.Scale(h.scale.Load())
	if int(s) >= scale.Count {
		s = scale.Ionian
	}
	h.SetScale(s.Next(dir))
	h.Reseed(h.seed.Load())
}

// UpdateFromSpeed maps a speed in [0, maxSpeed] onto motion. maxSpeed below
// one is treated as one.
func (h *Host) UpdateFromSpeed(speed, maxSpeed float64) {
	h.SetMotion(speed / max(1, maxSpeed))
}
