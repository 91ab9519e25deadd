package noise

import (
	"errors"
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/heightgen/rng"
)

// ErrUnknownBackend is returned by NewSource for unrecognised names.
var ErrUnknownBackend = errors.New("unknown noise backend")

// Backend names accepted by NewSource.
const (
	BackendSimplex     = "simplex"
	BackendOpenSimplex = "opensimplex"
	BackendPerlin      = "perlin"
)

// Backends lists the supported backend names, default first.
var Backends = []string{BackendSimplex, BackendOpenSimplex, BackendPerlin}

// openSimplexSource adapts opensimplex.Noise to Source.
type openSimplexSource struct {
	noise opensimplex.Noise
}

func (o openSimplexSource) Noise2D(x, y float64) float64 {
	return o.noise.Eval2(x, y)
}

// NewSource builds the named backend from r. The simplex backend consumes
// 255 draws and is the reference field. The library backends take one raw
// draw as their seed; they are reproducible per seed but only within this
// module's pinned library versions.
func NewSource(name string, r *rng.Mulberry32) (Source, error) {
	switch name {
	case "", BackendSimplex:
		return NewSimplex(r), nil
	case BackendOpenSimplex:
		return openSimplexSource{noise: opensimplex.New(int64(r.Uint32()))}, nil
	case BackendPerlin:
		// Single octave; fractal composition happens in Fractal.
		return perlin.NewPerlin(2, 2, 1, int64(r.Uint32())), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}
