// Package config provides configuration loading and access for the generator.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/heightgen/biome"
	"github.com/pthm-cable/heightgen/noise"
	"github.com/pthm-cable/heightgen/terrain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all generator configuration parameters.
type Config struct {
	Seed      string          `yaml:"seed"`  // Text or decimal integer
	Biome     string          `yaml:"biome"` // Name of the active biome
	Noise     NoiseConfig     `yaml:"noise"`
	Sampling  SamplingConfig  `yaml:"sampling"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Preview   PreviewConfig   `yaml:"preview"`
	Biomes    []biome.Config  `yaml:"biomes"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// NoiseConfig selects the noise backend and fractal shape.
type NoiseConfig struct {
	Backend     string  `yaml:"backend"`     // simplex, opensimplex or perlin
	Lacunarity  float64 `yaml:"lacunarity"`  // Frequency multiplier per octave
	Persistence float64 `yaml:"persistence"` // Amplitude multiplier per octave
}

// SamplingConfig describes the grid sampled by the headless tools.
type SamplingConfig struct {
	OriginX float64 `yaml:"origin_x"`
	OriginZ float64 `yaml:"origin_z"`
	Width   int     `yaml:"width"` // Samples along X
	Depth   int     `yaml:"depth"` // Samples along Z
	Step    float64 `yaml:"step"`  // World units between samples
}

// TelemetryConfig holds output parameters.
type TelemetryConfig struct {
	SamplesCSV bool `yaml:"samples_csv"` // Write every sample, not just summary stats
	PerfWindow int  `yaml:"perf_window"` // Runs averaged by the perf collector
}

// PreviewConfig holds raster export parameters.
type PreviewConfig struct {
	Mode string `yaml:"mode"` // color or height
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	BiomeIndex map[string]int // name -> index into Biomes
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
		// Only overwrites fields present in the file. A biomes list
		// replaces the default list wholesale.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Noise.Backend == "" {
		c.Noise.Backend = noise.BackendSimplex
	}
	if c.Noise.Lacunarity == 0 {
		c.Noise.Lacunarity = noise.DefaultLacunarity
	}
	if c.Noise.Persistence == 0 {
		c.Noise.Persistence = noise.DefaultPersistence
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 1
	}

	c.Derived.BiomeIndex = make(map[string]int, len(c.Biomes))
	for i, b := range c.Biomes {
		c.Derived.BiomeIndex[b.Name] = i
	}
}

func (c *Config) validate() error {
	for i := range c.Biomes {
		b := &c.Biomes[i]
		if err := b.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if err := c.Octaves(b).Validate(); err != nil {
			return fmt.Errorf("config: noise for biome %q: %w", b.Name, err)
		}
	}
	if len(c.Derived.BiomeIndex) != len(c.Biomes) {
		return fmt.Errorf("config: duplicate biome names")
	}
	if _, err := c.BiomeConfig(c.Biome); err != nil {
		return fmt.Errorf("config: default biome: %w", err)
	}
	return nil
}

// BiomeConfig returns the named biome. An empty name selects the
// configured default.
func (c *Config) BiomeConfig(name string) (*biome.Config, error) {
	if name == "" {
		name = c.Biome
	}
	i, ok := c.Derived.BiomeIndex[name]
	if !ok {
		return nil, fmt.Errorf("unknown biome %q", name)
	}
	return &c.Biomes[i], nil
}

// Octaves returns the fractal parameters for a biome under this config.
func (c *Config) Octaves(b *biome.Config) noise.Octaves {
	return noise.Octaves{
		Count:       b.Octaves,
		Lacunarity:  c.Noise.Lacunarity,
		Persistence: c.Noise.Persistence,
	}
}

// TerrainOptions returns the noise section as generator options.
func (c *Config) TerrainOptions() terrain.Options {
	return terrain.Options{
		Backend:     c.Noise.Backend,
		Lacunarity:  c.Noise.Lacunarity,
		Persistence: c.Noise.Persistence,
	}
}

// Region returns the sampling section as a grid region.
func (c *Config) Region() terrain.Region {
	return terrain.Region{
		OriginX: c.Sampling.OriginX,
		OriginZ: c.Sampling.OriginZ,
		Width:   c.Sampling.Width,
		Depth:   c.Sampling.Depth,
		Step:    c.Sampling.Step,
	}
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
