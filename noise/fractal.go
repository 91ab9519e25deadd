package noise

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidOctaves is returned when a fractal sum is requested with fewer
// than one octave.
var ErrInvalidOctaves = errors.New("octave count must be positive")

// ErrDegenerateFractal is returned when the octave amplitudes cannot be
// normalised, or when lacunarity or persistence is not positive and finite.
var ErrDegenerateFractal = errors.New("degenerate fractal parameters")

// Default fractal parameters.
const (
	DefaultLacunarity  = 2.0
	DefaultPersistence = 0.5
)

// Source is any continuous 2D noise function.
type Source interface {
	Noise2D(x, y float64) float64
}

// Octaves configures a fractal (fBm) sum.
type Octaves struct {
	Count       int     // Number of layers, must be > 0
	Lacunarity  float64 // Frequency multiplier per octave
	Persistence float64 // Amplitude multiplier per octave
}

// DefaultOctaves returns n octaves with lacunarity 2 and persistence 0.5.
func DefaultOctaves(n int) Octaves {
	return Octaves{Count: n, Lacunarity: DefaultLacunarity, Persistence: DefaultPersistence}
}

// Validate checks that o can drive a fractal sum over any number of
// samples: a positive count and positive, finite lacunarity and
// persistence.
func (o Octaves) Validate() error {
	if o.Count <= 0 {
		return fmt.Errorf("fractal noise with %d octaves: %w", o.Count, ErrInvalidOctaves)
	}
	if !positiveFinite(o.Lacunarity) {
		return fmt.Errorf("lacunarity %v: %w", o.Lacunarity, ErrDegenerateFractal)
	}
	if !positiveFinite(o.Persistence) {
		return fmt.Errorf("persistence %v: %w", o.Persistence, ErrDegenerateFractal)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Fractal sums o.Count octaves of src and divides by the total amplitude,
// keeping the result in the base function's range. A single octave returns
// src.Noise2D(x, y) exactly.
func Fractal(src Source, x, y float64, o Octaves) (float64, error) {
	if o.Count <= 0 {
		return 0, fmt.Errorf("fractal noise with %d octaves: %w", o.Count, ErrInvalidOctaves)
	}

	var total, norm float64
	freq, amp := 1.0, 1.0
	for i := 0; i < o.Count; i++ {
		total += float64(src.Noise2D(x*freq, y*freq) * amp)
		norm += amp
		amp *= o.Persistence
		freq *= o.Lacunarity
	}
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return 0, fmt.Errorf("amplitude sum %v: %w", norm, ErrDegenerateFractal)
	}
	return total / norm, nil
}

// Fractal is Fractal(s, x, y, Octaves{octaves, lacunarity, persistence}).
func (s *Simplex) Fractal(x, y float64, octaves int, lacunarity, persistence float64) (float64, error) {
	return Fractal(s, x, y, Octaves{Count: octaves, Lacunarity: lacunarity, Persistence: persistence})
}
