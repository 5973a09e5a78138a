// Package config loads and saves viewer settings as YAML and ships a
// small set of named presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avelev/wormview/internal/geom"
)

// Config is the full settings document.
type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Journey JourneyConfig `yaml:"journey"`
	Display DisplayConfig `yaml:"display"`
}

// SceneConfig sizes the world.
type SceneConfig struct {
	Radius         float64 `yaml:"radius"`
	Length         float64 `yaml:"length"`
	RadialSegments int     `yaml:"radial_segments"`
	HeightSegments int     `yaml:"height_segments"`
	Particles      int     `yaml:"particles"`
	Rings          int     `yaml:"rings"`
	Celestials     int     `yaml:"celestials"`
	Seed           int64   `yaml:"seed"`
	Amplitude      float64 `yaml:"amplitude"`

	// Distortion is the pinch slider position, 0-100.
	Distortion float64 `yaml:"distortion"`
	// Kind names the wormhole topology: two-way, one-way or
	// inter-universe.
	Kind string `yaml:"kind"`
}

// JourneyConfig tunes the guided flight.
type JourneyConfig struct {
	Wobble      float64 `yaml:"wobble"`
	SettleDelay float64 `yaml:"settle_delay"`
}

// DisplayConfig tunes the frontends.
type DisplayConfig struct {
	Theme string `yaml:"theme"`
	FPS   int    `yaml:"fps"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Scene: SceneConfig{
			Radius:         8,
			Length:         24,
			RadialSegments: 24,
			HeightSegments: 32,
			Particles:      800,
			Rings:          6,
			Celestials:     12,
			Seed:           1,
			Amplitude:      0.8,
			Distortion:     50,
			Kind:           "two-way",
		},
		Journey: JourneyConfig{
			Wobble:      1.6,
			SettleDelay: 1.5,
		},
		Display: DisplayConfig{
			Theme: "nebula",
			FPS:   60,
		},
	}
}

// DistortionFactor maps the 0-100 slider to the mesh factor in [0,1].
func (s SceneConfig) DistortionFactor() float64 {
	return geom.Clamp(s.Distortion, 0, 100) / 100
}

// Load reads a YAML config from path. Missing fields keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Presets are the built-in looks selectable by name.
var Presets = map[string]Config{
	"calm":      calmPreset(),
	"turbulent": turbulentPreset(),
	"cinematic": cinematicPreset(),
}

// PresetNames lists the preset keys in a stable order.
func PresetNames() []string {
	return []string{"calm", "turbulent", "cinematic"}
}

func calmPreset() Config {
	c := Default()
	c.Scene.Distortion = 20
	c.Scene.Amplitude = 0.4
	c.Scene.Particles = 400
	c.Journey.Wobble = 0.8
	return c
}

func turbulentPreset() Config {
	c := Default()
	c.Scene.Distortion = 85
	c.Scene.Amplitude = 1.4
	c.Scene.Particles = 1200
	c.Journey.Wobble = 2.4
	return c
}

func cinematicPreset() Config {
	c := Default()
	c.Scene.Distortion = 60
	c.Scene.Rings = 9
	c.Scene.Celestials = 20
	c.Journey.SettleDelay = 3
	c.Display.Theme = "ember"
	return c
}
