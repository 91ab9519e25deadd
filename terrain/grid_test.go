package terrain

import (
	"errors"
	"testing"

	"github.com/pthm-cable/heightgen/seed"
)

func TestRegionValidate(t *testing.T) {
	tests := []struct {
		name string
		r    Region
		ok   bool
	}{
		{"valid", Region{Width: 4, Depth: 4, Step: 1}, true},
		{"zero width", Region{Width: 0, Depth: 4, Step: 1}, false},
		{"negative depth", Region{Width: 4, Depth: -1, Step: 1}, false},
		{"zero step", Region{Width: 4, Depth: 4, Step: 0}, false},
		{"negative step", Region{Width: 4, Depth: 4, Step: -0.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidRegion) {
				t.Errorf("err = %v, want ErrInvalidRegion", err)
			}
		})
	}
}

func TestRegionPoint(t *testing.T) {
	r := Region{OriginX: -10, OriginZ: 5, Width: 8, Depth: 8, Step: 0.5}
	x, z := r.Point(4, 2)
	if x != -8 || z != 6 {
		t.Errorf("Point(4, 2) = (%v, %v), want (-8, 6)", x, z)
	}
}

func TestGridMatchesSequential(t *testing.T) {
	g := newTestGenerator(t)
	r := Region{OriginX: -64, OriginZ: 32, Width: 48, Depth: 64, Step: 1.5}

	for _, workers := range []int{1, 3, 8} {
		s := NewSampler(g, workers)
		grid, err := s.Grid(r)
		s.Close()
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if len(grid.Samples) != r.Width*r.Depth {
			t.Fatalf("workers=%d: %d samples, want %d", workers, len(grid.Samples), r.Width*r.Depth)
		}

		for row := 0; row < r.Depth; row++ {
			for col := 0; col < r.Width; col++ {
				x, z := r.Point(col, row)
				if got, want := *grid.At(col, row), g.Sample(x, z); got != want {
					t.Fatalf("workers=%d: cell (%d, %d) = %+v, want %+v", workers, col, row, got, want)
				}
			}
		}
	}
}

func TestSamplerReuse(t *testing.T) {
	g := newTestGenerator(t)
	s := NewSampler(g, 4)
	defer s.Close()

	r := Region{Width: 20, Depth: 40, Step: 2}
	first, err := s.Grid(r)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Grid(r)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first.Samples {
		if first.Samples[i] != second.Samples[i] {
			t.Fatalf("sample %d differs between runs", i)
		}
	}

	// Closing and sampling again restarts the pool.
	s.Close()
	third, err := s.Grid(r)
	if err != nil {
		t.Fatal(err)
	}
	if third.Samples[len(third.Samples)-1] != first.Samples[len(first.Samples)-1] {
		t.Error("sample differs after pool restart")
	}
}

func TestGridSmallRegionSequential(t *testing.T) {
	g := newTestGenerator(t)
	grid, err := g.Grid(Region{Width: 3, Depth: 2, Step: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(grid.Samples) != 6 {
		t.Fatalf("samples = %d, want 6", len(grid.Samples))
	}
	if grid.At(2, 1).X != 2 || grid.At(2, 1).Z != 1 {
		t.Errorf("At(2, 1) = (%v, %v)", grid.At(2, 1).X, grid.At(2, 1).Z)
	}
}

func TestGridInvalidRegion(t *testing.T) {
	g := newTestGenerator(t)
	if _, err := g.Grid(Region{Width: 0, Depth: 1, Step: 1}); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("err = %v, want ErrInvalidRegion", err)
	}
}

func TestGridHeights(t *testing.T) {
	g := newTestGenerator(t)
	grid, err := g.Grid(Region{Width: 10, Depth: 10, Step: 3})
	if err != nil {
		t.Fatal(err)
	}
	h := grid.Heights()
	for i, v := range h {
		if v != grid.Samples[i].Height {
			t.Fatalf("Heights()[%d] = %v, want %v", i, v, grid.Samples[i].Height)
		}
	}
}

func BenchmarkGrid256(b *testing.B) {
	g, err := New(seed.Int(1), testBiome(), DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}
	s := NewSampler(g, 0)
	defer s.Close()
	r := Region{Width: 256, Depth: 256, Step: 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Grid(r); err != nil {
			b.Fatal(err)
		}
	}
}
