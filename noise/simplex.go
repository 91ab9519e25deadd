// Package noise implements seeded coherent noise and its fractal
// composition.
package noise

import (
	"math"

	"github.com/pthm-cable/heightgen/rng"
)

// Skew and unskew factors for the 2D simplex grid.
var (
	f2 = 0.5 * (math.Sqrt(3) - 1)
	g2 = (3 - math.Sqrt(3)) / 6
)

// grad3 holds the 12 edge gradients of a cube. Only x and y are read in 2D.
var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Simplex is a seeded 2D simplex noise field. The permutation tables are
// fixed at construction, so a Simplex is safe for concurrent reads.
type Simplex struct {
	perm      [512]uint8
	permMod12 [512]uint8
}

// NewSimplex shuffles the identity table 0..255 with exactly 255 draws
// from r (Fisher-Yates, from the end toward the start).
func NewSimplex(r *rng.Mulberry32) *Simplex {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	for i := len(p) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}

	s := &Simplex{}
	for i := range s.perm {
		s.perm[i] = p[i&255]
		s.permMod12[i] = s.perm[i] % 12
	}
	return s
}

// Permutation returns a copy of the 256-entry shuffled table.
func (s *Simplex) Permutation() [256]uint8 {
	var p [256]uint8
	copy(p[:], s.perm[:256])
	return p
}

// Noise2D samples the field at (x, y). The result lies in roughly [-1, 1]
// and is not clamped.
//
// Products are wrapped in float64() conversions wherever they feed an
// addition. The Go compiler may otherwise fuse them into FMA instructions
// on some architectures, and the output must be bit-identical everywhere.
func (s *Simplex) Noise2D(x, y float64) float64 {
	sk := float64((x + y) * f2)
	i := math.Floor(x + sk)
	j := math.Floor(y + sk)
	t := float64((i + j) * g2)
	x0 := x - (i - t)
	y0 := y - (j - t)

	// Which triangle of the skewed cell holds the point.
	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1 + float64(2*g2)
	y2 := y0 - 1 + float64(2*g2)

	ii := int(i) & 255
	jj := int(j) & 255
	gi0 := s.permMod12[ii+int(s.perm[jj])]
	gi1 := s.permMod12[ii+i1+int(s.perm[jj+j1])]
	gi2 := s.permMod12[ii+1+int(s.perm[jj+1])]

	n0 := corner(gi0, x0, y0)
	n1 := corner(gi1, x1, y1)
	n2 := corner(gi2, x2, y2)
	return 70 * (n0 + n1 + n2)
}

// corner returns one vertex contribution: zero outside the falloff radius,
// otherwise falloff^4 times the gradient dot product.
func corner(gi uint8, x, y float64) float64 {
	t := 0.5 - float64(x*x) - float64(y*y)
	if t < 0 {
		return 0
	}
	t *= t
	g := &grad3[gi]
	return t * t * (float64(g[0]*x) + float64(g[1]*y))
}
