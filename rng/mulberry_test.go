package rng

import (
	"testing"

	"github.com/pthm-cable/heightgen/seed"
)

// Reference draws for the text seed "my-world-seed" (state 1971296909).
var worldSeedDraws = []float64{
	0.34297900507226586,
	0.9892409783788025,
	0.3549351927358657,
	0.10970286163501441,
}

func TestWorldSeedFixture(t *testing.T) {
	r := FromSeed(seed.Text("my-world-seed"))
	if r.Initial() != 1971296909 {
		t.Fatalf("initial state = %d, want 1971296909", r.Initial())
	}

	for i, want := range worldSeedDraws[:3] {
		if got := r.Next(); got != want {
			t.Errorf("draw %d = %v, want %v", i, got, want)
		}
	}

	// range(0,100) consumes the fourth draw
	if got, want := r.Range(0, 100), worldSeedDraws[3]*100; got != want {
		t.Errorf("Range(0, 100) = %v, want %v", got, want)
	}
}

func TestSmallSeedFixture(t *testing.T) {
	r := New(42)
	want := []float64{0.6011037519201636, 0.44829055899754167, 0.8524657934904099}
	for i, w := range want {
		if got := r.Next(); got != w {
			t.Errorf("New(42) draw %d = %v, want %v", i, got, w)
		}
	}
}

func TestDeterminism(t *testing.T) {
	for _, s := range []seed.Seed{seed.Text("abc"), seed.Int(0), seed.Int(123456789), seed.Text("")} {
		a := FromSeed(s)
		b := FromSeed(s)
		for i := 0; i < 1000; i++ {
			if va, vb := a.Next(), b.Next(); va != vb {
				t.Fatalf("seed %v diverged at draw %d: %v != %v", s, i, va, vb)
			}
		}
	}
}

func TestResetFidelity(t *testing.T) {
	for _, n := range []int{0, 1, 7, 255, 1000} {
		r := New(0xDEADBEEF)
		first := make([]float64, n)
		for i := range first {
			first[i] = r.Next()
		}

		r.Reset()
		if r.State() != r.Initial() {
			t.Fatalf("state after Reset = %d, want %d", r.State(), r.Initial())
		}
		for i := range first {
			if got := r.Next(); got != first[i] {
				t.Fatalf("n=%d: draw %d after reset = %v, want %v", n, i, got, first[i])
			}
		}
	}
}

func TestNextRange(t *testing.T) {
	r := New(1)
	for i := 0; i < 100000; i++ {
		v := r.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("Next() = %v, outside [0,1)", v)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	r := New(7)
	for i := 0; i < 10000; i++ {
		v := r.Range(-5, 5)
		if v < -5 || v >= 5 {
			t.Fatalf("Range(-5, 5) = %v", v)
		}
	}
	if got := r.Range(3, 3); got != 3 {
		t.Errorf("Range(3, 3) = %v, want 3", got)
	}
}

func TestIntn(t *testing.T) {
	r := New(99)
	seen := make([]bool, 10)
	for i := 0; i < 1000; i++ {
		v := r.Intn(10)
		if v < 0 || v >= 10 {
			t.Fatalf("Intn(10) = %d", v)
		}
		seen[v] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("Intn(10) never produced %d in 1000 draws", i)
		}
	}
}

func TestUint32MatchesNext(t *testing.T) {
	a := New(2024)
	b := New(2024)
	for i := 0; i < 100; i++ {
		if got, want := float64(a.Uint32())/twoTo32, b.Next(); got != want {
			t.Fatalf("draw %d: Uint32/2^32 = %v, Next = %v", i, got, want)
		}
	}
}

func BenchmarkNext(b *testing.B) {
	r := New(1)
	for i := 0; i < b.N; i++ {
		r.Next()
	}
}
