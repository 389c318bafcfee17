package groove

import (
	"math"
	"sync/atomic"

	"github.com/pfcm/groove/interp"
)

// MeterSmoothing is how far each meter moves toward a new block's value.
const MeterSmoothing = 0.20

// MeterValues holds one reading of every meter.
type MeterValues struct {
	RMS               float64
	Arp, Pad, Perc    float64 // envelope levels
	Bass, Mid, Treble float64
}

// cell is a float64 that can be loaded and stored atomically.
type cell struct {
	bits atomic.Uint64
}

func (c *cell) Load() float64   { return math.Float64frombits(c.bits.Load()) }
func (c *cell) Store(f float64) { c.bits.Store(math.Float64bits(f)) }

// smooth moves the cell toward x. It is a load then a store, which is only
// safe with a single writer.
func (c *cell) smooth(x float64) {
	c.Store(interp.L(c.Load(), x, MeterSmoothing))
}

// Meters are the smoothed analysis values published by a Renderer. There
// must be one writer; any number of goroutines may read. Each meter is an
// independent atomic, so a reader may see some meters from one block and
// some from the next.
type Meters struct {
	rms, arp, pad, perc, bass, mid, treble cell
}

// Publish smooths one block's raw values into the meters.
func (m *Meters) Publish(v MeterValues) {
	m.rms.smooth(v.RMS)
	m.arp.smooth(v.Arp)
	m.pad.smooth(v.Pad)
	m.perc.smooth(v.Perc)
	m.bass.smooth(v.Bass)
	m.mid.smooth(v.Mid)
	m.treble.smooth(v.Treble)
}

// Load reads every meter.
func (m *Meters) Load() MeterValues {
	return MeterValues{
		RMS:    m.rms.Load(),
		Arp:    m.arp.Load(),
		Pad:    m.pad.Load(),
		Perc:   m.perc.Load(),
		Bass:   m.bass.Load(),
		Mid:    m.mid.Load(),
		Treble: m.treble.Load(),
	}
}

func (m *Meters) RMS() float64     { return m.rms.Load() }
func (m *Meters) ArpEnv() float64  { return m.arp.Load() }
func (m *Meters) PadEnv() float64  { return m.pad.Load() }
func (m *Meters) PercEnv() float64 { return m.perc.Load() }
func (m *Meters) Bass() float64    { return m.bass.Load() }
func (m *Meters) Mid() float64     { return m.mid.Load() }
func (m *Meters) Treble() float64  { return m.treble.Load() }
