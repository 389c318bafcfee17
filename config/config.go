// package config loads the player's settings and musical presets.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AudioConfig selects the output device format.
type AudioConfig struct {
	SampleRate int    `json:"sampleRate,omitempty"`
	Channels   int    `json:"channels,omitempty"`
	Backend    string `json:"backend,omitempty"` // "malgo" or "oto"
	BufferMs   int    `json:"bufferMs,omitempty"`
}

// MIDIConfig names the input port and which controllers drive which
// parameters. A controller number of zero or less is unassigned.
type MIDIConfig struct {
	Port         string `json:"port,omitempty"`
	CCMotion     int    `json:"ccMotion,omitempty"`
	CCBrightness int    `json:"ccBrightness,omitempty"`
	CCDensity    int    `json:"ccDensity,omitempty"`
	CCTempo      int    `json:"ccTempo,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	MeterFPS int `json:"meterFPS,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Audio AudioConfig `json:"audio"`
	MIDI  MIDIConfig  `json:"midi"`
	UI    UIConfig    `json:"ui"`
	// LastSeed is the seed in use when the player last exited.
	LastSeed *int32 `json:"lastSeed,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate: 48000,
			Channels:   2,
			Backend:    "malgo",
			BufferMs:   20,
		},
		MIDI: MIDIConfig{
			CCMotion:     1,
			CCBrightness: 74,
			CCDensity:    71,
			CCTempo:      3,
		},
		UI: UIConfig{
			MeterFPS: 30,
		},
	}
}

// Dir returns the config directory path
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "groove"), nil
}

// Path returns the full path to config.json
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config at path, or returns defaults if there is none.
// Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
