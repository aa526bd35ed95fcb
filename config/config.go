// Package config provides configuration loading and access for the overlay and demo host.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen  ScreenConfig  `yaml:"screen"`
	Overlay OverlayConfig `yaml:"overlay"`
	Demo    DemoConfig    `yaml:"demo"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"` // 0 = uncapped
	Title     string `yaml:"title"`
}

// OverlayConfig holds the sampling, throttling and panel layout parameters.
type OverlayConfig struct {
	RingCapacity   int     `yaml:"ring_capacity"`   // Frame-time samples kept; power of two
	ResourcePeriod float64 `yaml:"resource_period"` // Seconds between CPU/memory probe refreshes
	DisplayPeriod  float64 `yaml:"display_period"`  // Seconds between panel text refreshes

	FontSize      float32  `yaml:"font_size"`
	OuterMargin   float32  `yaml:"outer_margin"`    // Gap between panel and screen edge
	InnerMargin   float32  `yaml:"inner_margin"`    // Gap around each column
	ValueMinWidth float32  `yaml:"value_min_width"` // Keeps the panel from jittering as digits change
	Background    [4]uint8 `yaml:"background"`      // RGBA
}

// DemoConfig holds parameters for the demo host's particle world.
type DemoConfig struct {
	Particles        int      `yaml:"particles"`         // Initial target population
	MaxParticles     int      `yaml:"max_particles"`     // Upper bound of the target slider
	ParticleLifetime float64  `yaml:"particle_lifetime"` // Seconds before a particle despawns
	ParticleSpeed    float64  `yaml:"particle_speed"`    // Pixels per second
	SpawnPerFrame    int      `yaml:"spawn_per_frame"`   // Cap on entity churn per frame
	ClearColor       [4]uint8 `yaml:"clear_color"`       // RGBA
	StatsLogPeriod   float64  `yaml:"stats_log_period"`  // Headless: seconds between stats log lines
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks values the overlay cannot work with.
func (c *Config) Validate() error {
	var errs []error

	n := c.Overlay.RingCapacity
	if n <= 0 || n&(n-1) != 0 {
		errs = append(errs, fmt.Errorf("overlay.ring_capacity must be a positive power of two, got %d", n))
	}
	if c.Overlay.ResourcePeriod <= 0 {
		errs = append(errs, fmt.Errorf("overlay.resource_period must be positive, got %v", c.Overlay.ResourcePeriod))
	}
	if c.Overlay.DisplayPeriod <= 0 {
		errs = append(errs, fmt.Errorf("overlay.display_period must be positive, got %v", c.Overlay.DisplayPeriod))
	}
	if c.Demo.MaxParticles < c.Demo.Particles {
		errs = append(errs, fmt.Errorf("demo.max_particles (%d) is below demo.particles (%d)", c.Demo.MaxParticles, c.Demo.Particles))
	}

	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
