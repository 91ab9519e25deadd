package biome

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoSamples is returned when calibration gets an empty height set.
var ErrNoSamples = errors.New("no height samples")

// Coverage gives the fraction of samples falling in each band.
type Coverage [NumBands]float64

// BandCoverage measures how heights distribute over c's bands.
func BandCoverage(heights []float64, c *Config) Coverage {
	var cov Coverage
	if len(heights) == 0 {
		return cov
	}
	for _, h := range heights {
		cov[c.Band(h)]++
	}
	floats.Scale(1/float64(len(heights)), cov[:])
	return cov
}

// CalibrateThresholds picks thresholds so that each band holds roughly the
// requested share of heights. Shares are normalised to sum to 1. The
// thresholds are empirical quantiles of the samples, so the result is only
// as smooth as the sample set.
func CalibrateThresholds(heights []float64, want Coverage) (Thresholds, error) {
	if len(heights) == 0 {
		return Thresholds{}, ErrNoSamples
	}
	for i, w := range want {
		if w < 0 || math.IsNaN(w) {
			return Thresholds{}, &ValidationError{Field: "coverage." + Band(i).String(), Reason: fmt.Sprintf("must be non-negative, got %v", w)}
		}
	}
	total := floats.Sum(want[:])
	if total <= 0 {
		return Thresholds{}, &ValidationError{Field: "coverage", Reason: "shares sum to zero"}
	}

	sorted := make([]float64, len(heights))
	copy(sorted, heights)
	sort.Float64s(sorted)

	var q [4]float64
	var cum float64
	for i := range q {
		cum += want[i] / total
		q[i] = stat.Quantile(math.Min(cum, 1), stat.Empirical, sorted, nil)
	}

	th := Thresholds{Deep: q[0], Low: q[1], Mid: q[2], High: q[3]}
	probe := Config{Name: "calibrated", HeightScale: 1, NoiseScale: 1, Octaves: 1, Thresholds: th}
	if err := probe.Validate(); err != nil {
		return Thresholds{}, fmt.Errorf("calibrated thresholds unusable (too few distinct heights?): %w", err)
	}
	return th, nil
}
