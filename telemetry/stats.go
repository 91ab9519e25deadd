package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/heightgen/biome"
	"github.com/pthm-cable/heightgen/terrain"
)

// GridStats holds summary statistics for one sampled grid.
type GridStats struct {
	Run     int    `csv:"run"`
	Seed    uint32 `csv:"seed"`
	Biome   string `csv:"biome"`
	Backend string `csv:"backend"`
	Count   int    `csv:"count"`

	// Clamped height distribution
	Min  float64 `csv:"min"`
	Max  float64 `csv:"max"`
	Mean float64 `csv:"mean"`
	Std  float64 `csv:"std"`
	P10  float64 `csv:"p10"`
	P50  float64 `csv:"p50"`
	P90  float64 `csv:"p90"`

	// Raw noise range and how much of it the clamp touched
	RawMin      float64 `csv:"raw_min"`
	RawMax      float64 `csv:"raw_max"`
	ClippedFrac float64 `csv:"clipped_frac"`

	// Fraction of samples per band
	DeepFrac float64 `csv:"deep_frac"`
	LowFrac  float64 `csv:"low_frac"`
	MidFrac  float64 `csv:"mid_frac"`
	HighFrac float64 `csv:"high_frac"`
	PeakFrac float64 `csv:"peak_frac"`
}

// Coverage returns the band fractions as a biome.Coverage.
func (s GridStats) Coverage() biome.Coverage {
	return biome.Coverage{s.DeepFrac, s.LowFrac, s.MidFrac, s.HighFrac, s.PeakFrac}
}

// ComputeGridStats summarises a grid sampled with biome b.
func ComputeGridStats(g *terrain.Grid, b *biome.Config) GridStats {
	s := GridStats{Biome: b.Name, Count: len(g.Samples)}
	if s.Count == 0 {
		return s
	}

	heights := g.Heights()
	raw := make([]float64, len(g.Samples))
	clipped := 0
	for i := range g.Samples {
		raw[i] = g.Samples[i].Raw
		if raw[i] != heights[i] {
			clipped++
		}
	}

	s.Mean, s.Std = stat.PopMeanStdDev(heights, nil)
	s.Min = floats.Min(heights)
	s.Max = floats.Max(heights)
	s.RawMin = floats.Min(raw)
	s.RawMax = floats.Max(raw)
	s.ClippedFrac = float64(clipped) / float64(s.Count)

	sort.Float64s(heights)
	s.P10 = stat.Quantile(0.10, stat.Empirical, heights, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, heights, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, heights, nil)

	cov := biome.BandCoverage(heights, b)
	s.DeepFrac, s.LowFrac, s.MidFrac, s.HighFrac, s.PeakFrac = cov[0], cov[1], cov[2], cov[3], cov[4]
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GridStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("run", s.Run),
		slog.Any("seed", s.Seed),
		slog.String("biome", s.Biome),
		slog.String("backend", s.Backend),
		slog.Int("count", s.Count),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("raw_min", s.RawMin),
		slog.Float64("raw_max", s.RawMax),
		slog.Float64("clipped_frac", s.ClippedFrac),
		slog.Float64("deep_frac", s.DeepFrac),
		slog.Float64("low_frac", s.LowFrac),
		slog.Float64("mid_frac", s.MidFrac),
		slog.Float64("high_frac", s.HighFrac),
		slog.Float64("peak_frac", s.PeakFrac),
	)
}

// LogStats logs the grid stats using slog.
func (s GridStats) LogStats() {
	slog.Info("stats", "grid", s)
}
