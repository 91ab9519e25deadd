package biome

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Band identifies one of the five height sub-ranges.
type Band uint8

const (
	BandDeep Band = iota // height < deep, flat deep color
	BandLow              // [deep, low): deep -> low
	BandMid              // [low, mid): low -> mid
	BandHigh             // [mid, high): mid -> high
	BandPeak             // height >= high: high -> peak
)

// NumBands is the number of height bands.
const NumBands = 5

var bandNames = [NumBands]string{"deep", "low", "mid", "high", "peak"}

func (b Band) String() string {
	if int(b) < len(bandNames) {
		return bandNames[b]
	}
	return "unknown"
}

// Band returns the band containing h. A height equal to a threshold
// belongs to the band above it.
func (c *Config) Band(h float64) Band {
	th := c.Thresholds.ordered()
	// First threshold strictly above h; NaN lands in the deep band.
	return Band(sort.Search(len(th), func(i int) bool { return !(h >= th[i]) }))
}

// Colorize maps a height, already clamped to [-1, 1] by the caller, to a
// color. Inside each band the two bounding stops are blended by the
// height's position within the band. In the peak band the blend factor is
// capped at 1 so heights past 1 never extrapolate beyond the peak color.
func Colorize(h float64, c *Config) Color {
	stops := c.Colors.ordered()
	band := c.Band(h)
	if band == BandDeep {
		return stops[0]
	}

	th := c.Thresholds.ordered()
	lo := th[band-1]
	hi := 1.0
	if band < BandPeak {
		hi = th[band]
	}

	var t float64
	if hi > lo {
		t = (h - lo) / (hi - lo)
	}
	if band == BandPeak && t > 1 {
		t = 1
	}
	return stops[band-1].Lerp(stops[band], t)
}

// Colorize is shorthand for Colorize(h, c).
func (c *Config) Colorize(h float64) Color {
	return Colorize(h, c)
}

// Clamp limits a raw noise height to [-1, 1]. Noise functions never clamp
// themselves; callers apply this before colorizing.
func Clamp(h float64) float64 {
	return mgl64.Clamp(h, -1, 1)
}
