// Package biome holds biome configuration and the height-to-color banding
// used to tint terrain samples.
package biome

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidConfig is matched by every ValidationError.
var ErrInvalidConfig = errors.New("invalid biome config")

// Color is a linear RGB triple with channels in [0,1].
// It decodes from YAML as a three element sequence.
type Color mgl64.Vec3

// RGB builds a Color.
func RGB(r, g, b float64) Color { return Color{r, g, b} }

// Lerp blends per channel: c*(1-t) + o*t.
func (c Color) Lerp(o Color, t float64) Color {
	return Color(mgl64.Vec3(c).Mul(1 - t).Add(mgl64.Vec3(o).Mul(t)))
}

// RGBA8 converts to 8-bit channels, clamping out-of-range values.
func (c Color) RGBA8() (r, g, b uint8) {
	return to8(c[0]), to8(c[1]), to8(c[2])
}

func to8(v float64) uint8 {
	v = mgl64.Clamp(v, 0, 1)
	// Round the product before adding so it cannot fuse into an FMA.
	return uint8(float64(v*255) + 0.5)
}

// Stops are the five colors at the band edges, from lowest to highest.
type Stops struct {
	Deep Color `yaml:"deep"`
	Low  Color `yaml:"low"`
	Mid  Color `yaml:"mid"`
	High Color `yaml:"high"`
	Peak Color `yaml:"peak"`
}

func (s *Stops) ordered() [5]Color {
	return [5]Color{s.Deep, s.Low, s.Mid, s.High, s.Peak}
}

// Thresholds split [-1, 1] into five bands. They must be strictly increasing.
type Thresholds struct {
	Deep float64 `yaml:"deep"`
	Low  float64 `yaml:"low"`
	Mid  float64 `yaml:"mid"`
	High float64 `yaml:"high"`
}

func (t *Thresholds) ordered() [4]float64 {
	return [4]float64{t.Deep, t.Low, t.Mid, t.High}
}

// Config describes one biome. It is supplied externally and never mutated
// by the generator.
type Config struct {
	Name        string     `yaml:"name"`
	HeightScale float64    `yaml:"height_scale"` // World units per unit of height
	NoiseScale  float64    `yaml:"noise_scale"`  // Spatial frequency applied to query coordinates
	Octaves     int        `yaml:"octaves"`
	Colors      Stops      `yaml:"colors"`
	Thresholds  Thresholds `yaml:"thresholds"`
}

// ValidationError reports which field of a Config is unusable.
type ValidationError struct {
	Biome  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Biome == "" {
		return fmt.Sprintf("biome: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("biome %q: %s: %s", e.Biome, e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidConfig) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Validate rejects configs that would divide by zero or produce degenerate
// output: non-positive scales or octaves, and thresholds that are not
// strictly increasing or leave no room for the peak band below 1.
func (c *Config) Validate() error {
	fail := func(field, format string, args ...any) error {
		return &ValidationError{Biome: c.Name, Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	if !(c.HeightScale > 0) {
		return fail("height_scale", "must be positive, got %v", c.HeightScale)
	}
	if !(c.NoiseScale > 0) {
		return fail("noise_scale", "must be positive, got %v", c.NoiseScale)
	}
	if c.Octaves <= 0 {
		return fail("octaves", "must be positive, got %d", c.Octaves)
	}

	th := c.Thresholds.ordered()
	names := [4]string{"deep", "low", "mid", "high"}
	for i := 1; i < len(th); i++ {
		if !(th[i] > th[i-1]) {
			return fail("thresholds."+names[i], "must be greater than %s (%v), got %v", names[i-1], th[i-1], th[i])
		}
	}
	if !(th[3] < 1) {
		return fail("thresholds.high", "must be below 1, got %v", th[3])
	}
	return nil
}
