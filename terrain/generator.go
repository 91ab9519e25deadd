// Package terrain samples height and color for world coordinates by
// running the seeded noise kernel through a biome.
package terrain

import (
	"fmt"

	"github.com/pthm-cable/heightgen/biome"
	"github.com/pthm-cable/heightgen/noise"
	"github.com/pthm-cable/heightgen/rng"
	"github.com/pthm-cable/heightgen/seed"
)

// Options controls the noise backend and fractal shape.
type Options struct {
	Backend     string  // Empty selects simplex
	Lacunarity  float64 // Zero selects noise.DefaultLacunarity
	Persistence float64 // Zero selects noise.DefaultPersistence
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		Backend:     noise.BackendSimplex,
		Lacunarity:  noise.DefaultLacunarity,
		Persistence: noise.DefaultPersistence,
	}
}

// Sample is one (x, z) query result.
type Sample struct {
	X, Z      float64
	Raw       float64 // Unclamped fractal noise
	Height    float64 // Raw clamped to [-1, 1]
	Elevation float64 // Height * biome height scale
	Band      biome.Band
	Color     biome.Color
}

// Generator produces samples for one seed and biome. It is immutable once
// built and safe for concurrent use.
type Generator struct {
	seed    uint32
	biome   biome.Config
	octaves noise.Octaves
	backend string
	source  noise.Source
}

// New builds a generator. The biome and fractal parameters are validated
// and the biome is copied.
func New(s seed.Seed, b *biome.Config, opts Options) (*Generator, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if opts.Backend == "" {
		opts.Backend = noise.BackendSimplex
	}
	if opts.Lacunarity == 0 {
		opts.Lacunarity = noise.DefaultLacunarity
	}
	if opts.Persistence == 0 {
		opts.Persistence = noise.DefaultPersistence
	}

	octaves := noise.Octaves{
		Count:       b.Octaves,
		Lacunarity:  opts.Lacunarity,
		Persistence: opts.Persistence,
	}
	if err := octaves.Validate(); err != nil {
		return nil, err
	}

	r := rng.FromSeed(s)
	src, err := noise.NewSource(opts.Backend, r)
	if err != nil {
		return nil, fmt.Errorf("building noise source: %w", err)
	}

	return &Generator{
		seed:    r.Initial(),
		biome:   *b,
		octaves: octaves,
		backend: opts.Backend,
		source:  src,
	}, nil
}

// Seed returns the hashed seed.
func (g *Generator) Seed() uint32 { return g.seed }

// Biome returns a copy of the biome in use.
func (g *Generator) Biome() biome.Config { return g.biome }

// Backend returns the noise backend name.
func (g *Generator) Backend() string { return g.backend }

// Raw returns the unclamped fractal noise at world (x, z).
func (g *Generator) Raw(x, z float64) float64 {
	// Octaves were validated in New, so Fractal cannot fail here.
	v, _ := noise.Fractal(g.source, x*g.biome.NoiseScale, z*g.biome.NoiseScale, g.octaves)
	return v
}

// Sample returns the full result for world (x, z).
func (g *Generator) Sample(x, z float64) Sample {
	raw := g.Raw(x, z)
	h := biome.Clamp(raw)
	return Sample{
		X:         x,
		Z:         z,
		Raw:       raw,
		Height:    h,
		Elevation: h * g.biome.HeightScale,
		Band:      g.biome.Band(h),
		Color:     biome.Colorize(h, &g.biome),
	}
}
