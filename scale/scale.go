// package scale maps scale selectors to semitone offsets and walks over
// scale degrees.
package scale

import (
	"fmt"
	"strings"

	"github.com/pfcm/groove/internal/num"
	"github.com/pfcm/groove/rng"
)

// Scale selects a fixed set of semitone offsets from the root.
type Scale uint8

const (
	Ionian Scale = iota
	Dorian
	MinorPentatonic
	HarmonicMinor

	// Count is the number of scales.
	Count = 4
)

var names = [Count]string{
	Ionian:          "ionian",
	Dorian:          "dorian",
	MinorPentatonic: "minor-pentatonic",
	HarmonicMinor:   "harmonic-minor",
}

var table = [Count][]int{
	Ionian:          {0, 2, 4, 5, 7, 9, 11},
	Dorian:          {0, 2, 3, 5, 7, 9, 10},
	MinorPentatonic: {0, 3, 5, 7, 10},
	HarmonicMinor:   {0, 2, 3, 5, 7, 8, 11},
}

func (s Scale) String() string {
	if int(s) < Count {
		return names[s]
	}
	return fmt.Sprintf("Scale(%d)", uint8(s))
}

// Semitones returns the offsets for s. The slice is shared and must not be
// modified. Unknown scales have no offsets.
func (s Scale) Semitones() []int {
	if int(s) < Count {
		return table[s]
	}
	return nil
}

// Next returns the scale dir steps away from s, wrapping around.
func (s Scale) Next(dir int) Scale {
	return Scale(((int(s)+dir)%Count + Count) % Count)
}

// Parse returns the scale with the given name. Matching ignores case, and
// spaces or underscores may stand in for hyphens.
func Parse(name string) (Scale, bool) {
	n := strings.ToLower(strings.NewReplacer(" ", "-", "_", "-").Replace(strings.TrimSpace(name)))
	for i, s := range names {
		if s == n {
			return Scale(i), true
		}
	}
	return 0, false
}

// Walker is a bounded random walk over the degrees of a scale.
type Walker struct {
	semis []int
	index int
}

// Rebuild switches the walker to scale s and moves it to a uniformly random
// degree. It must be called whenever the scale changes.
func (w *Walker) Rebuild(s Scale, r *rng.Source) {
	w.semis = s.Semitones()
	w.index = 0
	if len(w.semis) > 0 {
		w.index = r.IntInRange(0, len(w.semis)-1)
	}
}

// Advance steps the walker by -1, 0 or +1 degrees. Steps past either end of
// the scale are absorbed rather than wrapped.
func (w *Walker) Advance(r *rng.Source) {
	w.Step(r.IntInRange(-1, 1))
}

// Step moves the walker by delta degrees, saturating at the ends of the scale.
func (w *Walker) Step(delta int) {
	if len(w.semis) == 0 {
		w.index = 0
		return
	}
	w.index = num.Clamp(w.index+delta, 0, len(w.semis)-1)
}

// Index returns the current degree.
func (w *Walker) Index() int { return w.index }

// Len returns the number of degrees in the current scale.
func (w *Walker) Len() int { return len(w.semis) }

// Semitone returns the offset from the root of the current degree. An empty
// scale yields the root.
func (w *Walker) Semitone() int {
	if len(w.semis) == 0 {
		return 0
	}
	return w.semis[w.index]
}
