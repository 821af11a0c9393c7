package config

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/Mavwarf/boolflag/internal/paths"
	"github.com/Mavwarf/boolflag/internal/speech"
)

// DefaultVolume is the default playback volume (0-100).
const DefaultVolume = speech.DefaultVolume

// DefaultListen is where "boolflag serve" binds. Loopback only.
const DefaultListen = "127.0.0.1:8812"

// Config holds every setting boolflag reads from disk.
type Config struct {
	Volume   int    `json:"volume"`
	Voice    string `json:"voice,omitempty"`   // preferred voice name
	Backend  string `json:"backend,omitempty"` // "" | "auto" | "espeak-ng" | "espeak" | "say" | "sapi"
	Chickens bool   `json:"chickens"`
	Listen   string `json:"listen,omitempty"`
	Verbose  bool   `json:"verbose,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Volume:   DefaultVolume,
		Chickens: true,
		Listen:   DefaultListen,
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// FindPath resolves the config file path. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. boolflag-config.json next to the running binary
//  3. ~/.config/boolflag/boolflag-config.json (%APPDATA%\boolflag on Windows)
//
// It returns "" without error when no file exists and none was asked for.
func FindPath(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
		return explicitPath, nil
	}
	for _, p := range paths.ConfigCandidates() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// Load reads the config file found by FindPath, falling back to
// Default when there is none. The result is validated.
func Load(explicitPath string) (Config, error) {
	p, err := FindPath(explicitPath)
	if err != nil {
		return Config{}, err
	}
	if p == "" {
		return Default(), nil
	}
	cfg, err := readConfig(p)
	if err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", p, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func Validate(cfg Config) error {
	if cfg.Volume < 0 || cfg.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", cfg.Volume)
	}
	if cfg.Backend != "" && !slices.Contains(speech.Backends(), cfg.Backend) {
		return fmt.Errorf("unknown backend %q (supported: %v)", cfg.Backend, speech.Backends())
	}
	return nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
