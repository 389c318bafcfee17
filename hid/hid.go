// package hid maps human interface devices, keyboards and MIDI control
// surfaces, onto the synth's parameters.
package hid

import (
	"context"
	"fmt"

	"github.com/pfcm/groove"
	"github.com/pfcm/groove/midi"
)

// Target is the set of parameter operations the controls drive. *groove.Host
// implements it.
type Target interface {
	Params() (groove.Params, bool)
	SetBPM(float64)
	SetRoot(int)
	SetDensity(float64)
	SetBrightness(float64)
	SetMotion(float64)
	NudgeBPM(float64)
	CycleScale(int)
	ReseedRandom() int32
	ToggleArp()
	TogglePad()
	TogglePerc()
}

// CCMap assigns MIDI controller numbers to parameters. Zero or less leaves a
// parameter unassigned.
type CCMap struct {
	Motion, Brightness, Density, Tempo int
}

const (
	// BPMStep is how far one key press moves the tempo.
	BPMStep = 2
	// Step is how far one key press moves a continuous control.
	Step = 0.05
)

// Controls turns key presses and MIDI messages into parameter changes.
type Controls struct {
	t  Target
	cc CCMap
}

func New(t Target, cc CCMap) *Controls {
	return &Controls{t: t, cc: cc}
}

func (c *Controls) String() string {
	return fmt.Sprintf("Controls(cc motion=%d brightness=%d density=%d tempo=%d)",
		c.cc.Motion, c.cc.Brightness, c.cc.Density, c.cc.Tempo)
}

// ccUnit maps a 7 bit controller value to [0, 1].
func ccUnit(v byte) float64 { return float64(v&0x7F) / 127 }

// HandleMessage applies one MIDI message and reports whether it did
// anything. Assigned controllers set motion, brightness and density across
// [0, 1] and tempo across [groove.MinNudgeBPM, groove.MaxNudgeBPM]; a note on
// sets the root.
func (c *Controls) HandleMessage(m midi.Message) bool {
	switch m.Kind {
	case midi.NoteOn:
		c.t.SetRoot(int(m.Key))
		return true
	case midi.ControlChange:
		v := ccUnit(m.Value)
		is := func(cc int) bool { return cc > 0 && cc == int(m.Key) }
		switch {
		case is(c.cc.Motion):
			c.t.SetMotion(v)
		case is(c.cc.Brightness):
			c.t.SetBrightness(v)
		case is(c.cc.Density):
			c.t.SetDensity(v)
		case is(c.cc.Tempo):
			c.t.SetBPM(groove.MinNudgeBPM + v*(groove.MaxNudgeBPM-groove.MinNudgeBPM))
		default:
			return false
		}
		return true
	}
	return false
}

// Keys lists the key bindings, for help text.
var Keys = []struct{ Key, Help string }{
	{"w/s", "tempo up/down"},
	{"a", "next scale"},
	{"d", "new seed"},
	{"up/down", "motion"},
	{"left/right", "brightness"},
	{"+/-", "density"},
	{"[/]", "root down/up"},
	{"1/2/3", "toggle arp/pad/perc"},
}

// HandleKey applies a key press, named the way bubbletea names keys, and
// reports whether it was bound.
func (c *Controls) HandleKey(key string) bool {
	p, ok := c.t.Params()
	if !ok {
		return false
	}
	switch key {
	case "w", "W":
		c.t.NudgeBPM(BPMStep)
	case "s", "S":
		c.t.NudgeBPM(-BPMStep)
	case "a", "A":
		c.t.CycleScale(1)
	case "d", "D":
		c.t.ReseedRandom()
	case "up":
		c.t.SetMotion(p.Motion + 2*Step)
	case "down":
		c.t.SetMotion(p.Motion - 2*Step)
	case "right":
		c.t.SetBrightness(p.Brightness + Step)
	case "left":
		c.t.SetBrightness(p.Brightness - Step)
	case "+", "=":
		c.t.SetDensity(p.Density + Step)
	case "-", "_":
		c.t.SetDensity(p.Density - Step)
	case "]":
		c.t.SetRoot(min(p.Root+1, 127))
	case "[":
		c.t.SetRoot(max(p.Root-1, 0))
	case "1":
		c.t.ToggleArp()
	case "2":
		c.t.TogglePad()
	case "3":
		c.t.TogglePerc()
	default:
		return false
	}
	return true
}

// Run applies messages from c until it is closed or ctx is cancelled.
func (c *Controls) Run(ctx context.Context, msgs <-chan midi.Message) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-msgs:
			if !ok {
				return nil
			}
			c.HandleMessage(m)
		}
	}
}
