package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pfcm/groove"
	"github.com/pfcm/groove/scale"
)

// ErrUnknownScale is returned for a preset naming a scale that does not
// exist.
var ErrUnknownScale = errors.New("unknown scale")

// Preset is the musical parameters as stored in a YAML file.
type Preset struct {
	BPM        float64 `yaml:"bpm"`
	Root       int     `yaml:"root"`
	Scale      string  `yaml:"scale"`
	Density    float64 `yaml:"density"`
	Brightness float64 `yaml:"brightness"`
	Motion     float64 `yaml:"motion,omitempty"`
	Seed       int32   `yaml:"seed"`
	Arp        bool    `yaml:"arp"`
	Pad        bool    `yaml:"pad"`
	Perc       bool    `yaml:"perc"`
}

// PresetFrom captures p.
func PresetFrom(p groove.Params) Preset {
	return Preset{
		BPM:        p.BPM,
		Root:       p.Root,
		Scale:      p.Scale.String(),
		Density:    p.Density,
		Brightness: p.Brightness,
		Motion:     p.Motion,
		Seed:       p.Seed,
		Arp:        p.Arp,
		Pad:        p.Pad,
		Perc:       p.Perc,
	}
}

// ReadPreset parses a preset. Anything the document leaves out keeps its
// default value.
func ReadPreset(r io.Reader) (Preset, error) {
	p := PresetFrom(groove.DefaultParams())
	if err := yaml.NewDecoder(r).Decode(&p); err != nil && err != io.EOF {
		return Preset{}, err
	}
	if _, err := p.Params(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// LoadPreset reads the preset file at path.
func LoadPreset(path string) (Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Preset{}, err
	}
	defer f.Close()
	p, err := ReadPreset(f)
	if err != nil {
		return Preset{}, fmt.Errorf("loading preset %s: %w", path, err)
	}
	return p, nil
}

// Params converts the preset to renderer parameters.
func (p Preset) Params() (groove.Params, error) {
	s, ok := scale.Parse(p.Scale)
	if !ok {
		return groove.Params{}, fmt.Errorf("%w: %q", ErrUnknownScale, p.Scale)
	}
	return groove.Params{
		BPM:        p.BPM,
		Root:       p.Root,
		Scale:      s,
		Density:    p.Density,
		Brightness: p.Brightness,
		Motion:     p.Motion,
		Seed:       p.Seed,
		Arp:        p.Arp,
		Pad:        p.Pad,
		Perc:       p.Perc,
	}, nil
}

// Write encodes the preset as YAML.
func (p Preset) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}
