package biome

import (
	"errors"
	"math"
	"testing"
)

func uniformHeights(n int) []float64 {
	h := make([]float64, n)
	for i := range h {
		h[i] = -1 + 2*(float64(i)+0.5)/float64(n)
	}
	return h
}

func TestBandCoverage(t *testing.T) {
	cfg := testBiome()
	cov := BandCoverage(uniformHeights(10000), cfg)
	// Band widths over [-1,1]: 0.7, 0.3, 0.3, 0.3, 0.4
	want := Coverage{0.35, 0.15, 0.15, 0.15, 0.2}
	for i := range cov {
		if math.Abs(cov[i]-want[i]) > 0.001 {
			t.Errorf("coverage[%v] = %v, want %v", Band(i), cov[i], want[i])
		}
	}
}

func TestBandCoverageEmpty(t *testing.T) {
	if cov := BandCoverage(nil, testBiome()); cov != (Coverage{}) {
		t.Errorf("BandCoverage(nil) = %v, want zeros", cov)
	}
}

func TestCalibrateThresholds(t *testing.T) {
	heights := uniformHeights(10000)
	want := Coverage{0.2, 0.2, 0.2, 0.2, 0.2}

	th, err := CalibrateThresholds(heights, want)
	if err != nil {
		t.Fatalf("CalibrateThresholds: %v", err)
	}

	expected := [4]float64{-0.6, -0.2, 0.2, 0.6}
	got := th.ordered()
	for i := range got {
		if math.Abs(got[i]-expected[i]) > 0.001 {
			t.Errorf("threshold %d = %v, want ~%v", i, got[i], expected[i])
		}
	}

	cfg := testBiome()
	cfg.Thresholds = th
	cov := BandCoverage(heights, cfg)
	for i := range cov {
		if math.Abs(cov[i]-want[i]) > 0.001 {
			t.Errorf("calibrated coverage[%v] = %v, want %v", Band(i), cov[i], want[i])
		}
	}
}

func TestCalibrateNormalisesShares(t *testing.T) {
	heights := uniformHeights(1000)
	a, err := CalibrateThresholds(heights, Coverage{1, 1, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	b, err := CalibrateThresholds(heights, Coverage{0.2, 0.2, 0.2, 0.2, 0.2})
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("unnormalised shares gave %v, normalised gave %v", a, b)
	}
}

func TestCalibrateErrors(t *testing.T) {
	if _, err := CalibrateThresholds(nil, Coverage{1, 1, 1, 1, 1}); !errors.Is(err, ErrNoSamples) {
		t.Errorf("empty heights: err = %v, want ErrNoSamples", err)
	}
	if _, err := CalibrateThresholds(uniformHeights(10), Coverage{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero shares: err = %v, want ErrInvalidConfig", err)
	}
	if _, err := CalibrateThresholds(uniformHeights(10), Coverage{1, -1, 1, 1, 1}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("negative share: err = %v, want ErrInvalidConfig", err)
	}

	flat := make([]float64, 100)
	if _, err := CalibrateThresholds(flat, Coverage{1, 1, 1, 1, 1}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("flat heights: err = %v, want ErrInvalidConfig", err)
	}
}
