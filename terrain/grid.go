package terrain

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
)

// ErrInvalidRegion is returned for regions with no samples or a bad step.
var ErrInvalidRegion = errors.New("invalid sampling region")

// parallelThreshold is the minimum row count to use the worker pool.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 16

// Region is a regular grid of sample points starting at (OriginX, OriginZ).
type Region struct {
	OriginX, OriginZ float64
	Width, Depth     int     // Samples along X and Z
	Step             float64 // World units between neighbouring samples
}

// Validate checks that the region describes at least one sample.
func (r Region) Validate() error {
	if r.Width <= 0 || r.Depth <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidRegion, r.Width, r.Depth)
	}
	if !(r.Step > 0) || math.IsInf(r.Step, 0) {
		return fmt.Errorf("%w: step %v", ErrInvalidRegion, r.Step)
	}
	return nil
}

// Point returns the world coordinates of grid cell (col, row).
func (r Region) Point(col, row int) (x, z float64) {
	return r.OriginX + float64(col)*r.Step, r.OriginZ + float64(row)*r.Step
}

// Grid holds row-major samples for a region.
type Grid struct {
	Region  Region
	Samples []Sample
}

// At returns the sample at (col, row).
func (g *Grid) At(col, row int) *Sample {
	return &g.Samples[row*g.Region.Width+col]
}

// Heights returns the clamped heights in row-major order.
func (g *Grid) Heights() []float64 {
	h := make([]float64, len(g.Samples))
	for i := range g.Samples {
		h[i] = g.Samples[i].Height
	}
	return h
}

// rowChunk is a range of rows for a worker to fill.
type rowChunk struct {
	grid       *Grid
	start, end int
}

// Sampler fills grids using a persistent pool of worker goroutines. Rows
// are independent, so the result is identical to sequential sampling.
// Grid calls on one Sampler are serialised.
type Sampler struct {
	gen        *Generator
	numWorkers int

	mu       sync.Mutex
	workChan chan rowChunk  // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool
}

// NewSampler creates a sampler with one worker per GOMAXPROCS, or the
// given count when workers > 0. Workers start lazily on the first large grid.
func NewSampler(gen *Generator, workers int) *Sampler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Sampler{gen: gen, numWorkers: workers}
}

// Workers returns the pool size.
func (s *Sampler) Workers() int { return s.numWorkers }

// startWorkers launches persistent worker goroutines.
func (s *Sampler) startWorkers() {
	if s.running {
		return
	}

	s.workChan = make(chan rowChunk, s.numWorkers)
	s.doneChan = make(chan struct{}, s.numWorkers)
	s.stopChan = make(chan struct{})
	s.running = true

	for i := 0; i < s.numWorkers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

// worker runs in a goroutine, processing chunks until stopped.
func (s *Sampler) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stopChan:
			return
		case chunk, ok := <-s.workChan:
			if !ok {
				return
			}
			s.fillRows(chunk.grid, chunk.start, chunk.end)
			s.doneChan <- struct{}{}
		}
	}
}

// Close stops the worker pool. The sampler can still be used afterwards;
// workers restart on demand.
func (s *Sampler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	close(s.stopChan)
	s.wg.Wait()
	close(s.workChan)
	close(s.doneChan)
	s.running = false
}

// Grid samples every point of r.
func (s *Sampler) Grid(r Region) (*Grid, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := &Grid{Region: r, Samples: make([]Sample, r.Width*r.Depth)}
	if r.Depth < parallelThreshold || s.numWorkers == 1 {
		s.fillRows(g, 0, r.Depth)
		return g, nil
	}

	s.startWorkers()

	chunkSize := (r.Depth + s.numWorkers - 1) / s.numWorkers
	dispatched := 0
	for w := 0; w < s.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, r.Depth)
		if start >= end {
			continue
		}
		s.workChan <- rowChunk{grid: g, start: start, end: end}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-s.doneChan
	}
	return g, nil
}

// fillRows samples rows [start, end) of g.
func (s *Sampler) fillRows(g *Grid, start, end int) {
	r := g.Region
	for row := start; row < end; row++ {
		base := row * r.Width
		for col := 0; col < r.Width; col++ {
			x, z := r.Point(col, row)
			g.Samples[base+col] = s.gen.Sample(x, z)
		}
	}
}

// Grid samples r with a temporary sampler.
func (g *Generator) Grid(r Region) (*Grid, error) {
	s := NewSampler(g, 0)
	defer s.Close()
	return s.Grid(r)
}
