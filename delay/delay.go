// package delay provides some delay lines.
package delay

import "fmt"

// Echo is a stereo one-tap recursive echo with a single sample of delay per
// channel. Each output is the input plus the previous output scaled by the
// feedback, so what is fed back is the already-echoed signal.
// TODO: longer taps would need a ring per channel; the single sample is all
// the renderer uses.
type Echo struct {
	l, r float64
}

func (e *Echo) String() string { return fmt.Sprintf("Echo(%.4f, %.4f)", e.l, e.r) }

// Tick mixes one frame through the echo with the given feedback gain.
func (e *Echo) Tick(l, r, feedback float64) (float64, float64) {
	e.l = l + e.l*feedback
	e.r = r + e.r*feedback
	return e.l, e.r
}

// Reset clears the delay lines.
func (e *Echo) Reset() { e.l, e.r = 0, 0 }
