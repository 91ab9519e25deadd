package terrain

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/heightgen/biome"
	"github.com/pthm-cable/heightgen/noise"
	"github.com/pthm-cable/heightgen/rng"
	"github.com/pthm-cable/heightgen/seed"
)

func testBiome() *biome.Config {
	return &biome.Config{
		Name:        "temperate",
		HeightScale: 20,
		NoiseScale:  0.02,
		Octaves:     5,
		Colors: biome.Stops{
			Deep: biome.RGB(0.05, 0.12, 0.35),
			Low:  biome.RGB(0.20, 0.45, 0.75),
			Mid:  biome.RGB(0.25, 0.60, 0.25),
			High: biome.RGB(0.45, 0.40, 0.30),
			Peak: biome.RGB(0.95, 0.95, 0.95),
		},
		Thresholds: biome.Thresholds{Deep: -0.3, Low: 0, Mid: 0.3, High: 0.6},
	}
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := New(seed.Text("my-world-seed"), testBiome(), DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewRejectsInvalidBiome(t *testing.T) {
	b := testBiome()
	b.Thresholds.Low = b.Thresholds.Deep
	_, err := New(seed.Int(1), b, DefaultOptions())
	if !errors.Is(err, biome.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(seed.Int(1), testBiome(), Options{Backend: "voronoi"})
	if !errors.Is(err, noise.ErrUnknownBackend) {
		t.Errorf("err = %v, want ErrUnknownBackend", err)
	}
}

func TestNewRejectsDegenerateFractal(t *testing.T) {
	// Four octaves with persistence -1 have amplitudes summing to zero.
	opts := Options{Lacunarity: 2, Persistence: -1}
	b := testBiome()
	b.Octaves = 4
	_, err := New(seed.Int(1), b, opts)
	if !errors.Is(err, noise.ErrDegenerateFractal) {
		t.Errorf("err = %v, want ErrDegenerateFractal", err)
	}
}

func TestGeneratorMatchesKernel(t *testing.T) {
	g := newTestGenerator(t)
	ref := noise.NewSimplex(rng.FromSeed(seed.Text("my-world-seed")))
	b := testBiome()

	for i := 0; i < 100; i++ {
		x, z := float64(i)*3.7-150, float64(i)*-2.1+40
		want, err := ref.Fractal(x*b.NoiseScale, z*b.NoiseScale, b.Octaves, 2, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		if got := g.Raw(x, z); got != want {
			t.Fatalf("Raw(%v, %v) = %v, want %v", x, z, got, want)
		}
	}
}

func TestSampleFields(t *testing.T) {
	g := newTestGenerator(t)
	b := testBiome()

	for i := 0; i < 200; i++ {
		x, z := float64(i)*1.3, float64(i)*0.7
		s := g.Sample(x, z)

		if s.X != x || s.Z != z {
			t.Fatalf("sample coords = (%v, %v), want (%v, %v)", s.X, s.Z, x, z)
		}
		if s.Height < -1 || s.Height > 1 {
			t.Fatalf("height %v outside [-1, 1]", s.Height)
		}
		if s.Height != biome.Clamp(s.Raw) {
			t.Fatalf("height %v is not clamp(raw %v)", s.Height, s.Raw)
		}
		if s.Elevation != s.Height*b.HeightScale {
			t.Fatalf("elevation %v != height*scale %v", s.Elevation, s.Height*b.HeightScale)
		}
		if s.Band != b.Band(s.Height) {
			t.Fatalf("band %v, want %v", s.Band, b.Band(s.Height))
		}
		if s.Color != biome.Colorize(s.Height, b) {
			t.Fatalf("color %v, want %v", s.Color, biome.Colorize(s.Height, b))
		}
		for _, c := range s.Color {
			if c < 0 || c > 1 || math.IsNaN(c) {
				t.Fatalf("color channel %v outside [0, 1]", c)
			}
		}
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	a := newTestGenerator(t)
	b := newTestGenerator(t)
	for i := 0; i < 500; i++ {
		x, z := float64(i)*0.9, float64(i)*-1.1
		if a.Sample(x, z) != b.Sample(x, z) {
			t.Fatalf("samples differ at (%v, %v)", x, z)
		}
	}
}

func TestGeneratorIgnoresCallerBiomeMutation(t *testing.T) {
	b := testBiome()
	g, err := New(seed.Int(5), b, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	before := g.Sample(10, 10)
	b.NoiseScale = 5
	b.Colors.Peak = biome.RGB(1, 0, 0)
	if after := g.Sample(10, 10); after != before {
		t.Errorf("generator changed after caller mutated biome: %v -> %v", before, after)
	}
}

func TestZeroOptionsUseDefaults(t *testing.T) {
	a, err := New(seed.Int(3), testBiome(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(seed.Int(3), testBiome(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if a.Backend() != noise.BackendSimplex {
		t.Errorf("backend = %q", a.Backend())
	}
	if a.Raw(12.5, -3) != b.Raw(12.5, -3) {
		t.Error("zero options differ from defaults")
	}
}

func TestLibraryBackends(t *testing.T) {
	for _, backend := range []string{noise.BackendOpenSimplex, noise.BackendPerlin} {
		g, err := New(seed.Text("my-world-seed"), testBiome(), Options{Backend: backend})
		if err != nil {
			t.Fatalf("%s: %v", backend, err)
		}
		s := g.Sample(33, 44)
		if s.Height < -1 || s.Height > 1 {
			t.Errorf("%s: height %v outside [-1, 1]", backend, s.Height)
		}
	}
}
