package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pfcm/groove"
	"github.com/pfcm/groove/scale"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"audio": {"backend": "oto"}, "lastSeed": 7}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.Audio.Backend = "oto"
	seed := int32(7)
	want.LastSeed = &seed
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"audio": `), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("Load of truncated json succeeded")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.MIDI.Port = "nanoKONTROL2"
	cfg.UI.MeterFPS = 60
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config (-saved +loaded):\n%s", diff)
	}
}

func TestReadPreset(t *testing.T) {
	doc := `
bpm: 128
root: 57
scale: harmonic minor
density: 0.6
seed: -3
pad: false
`
	p, err := ReadPreset(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	got, err := p.Params()
	if err != nil {
		t.Fatal(err)
	}
	want := groove.DefaultParams()
	want.BPM = 128
	want.Root = 57
	want.Scale = scale.HarmonicMinor
	want.Density = 0.6
	want.Seed = -3
	want.Pad = false
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("params (-want +got):\n%s", diff)
	}
}

func TestReadPresetEmpty(t *testing.T) {
	p, err := ReadPreset(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := p.Params()
	if diff := cmp.Diff(groove.DefaultParams(), got); diff != "" {
		t.Errorf("params (-want +got):\n%s", diff)
	}
}

func TestReadPresetUnknownScale(t *testing.T) {
	_, err := ReadPreset(strings.NewReader("scale: lydian\n"))
	if !errors.Is(err, ErrUnknownScale) {
		t.Errorf("err = %v, want: ErrUnknownScale", err)
	}
}

func TestPresetWrite(t *testing.T) {
	want := groove.Params{
		BPM: 90, Root: 62, Scale: scale.Dorian,
		Density: 0.25, Brightness: 0.75, Motion: 0.5, Seed: 99,
		Arp: true, Perc: true,
	}
	var buf bytes.Buffer
	if err := PresetFrom(want).Write(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "scale: dorian") {
		t.Errorf("scale not written by name:\n%s", buf.String())
	}
	p, err := ReadPreset(&buf)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := p.Params()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("params (-want +got):\n%s", diff)
	}
}

func TestLoadPresetMissing(t *testing.T) {
	if _, err := LoadPreset(filepath.Join(t.TempDir(), "x.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want: not exist", err)
	}
}
