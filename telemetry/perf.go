package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one generation run.
const (
	PhaseBuild  = "build"  // seed hashing, permutation shuffle, backend setup
	PhaseSample = "sample" // grid sampling
	PhaseStats  = "stats"  // statistics over the grid
	PhaseWrite  = "write"  // CSV and preview output
)

var phaseOrder = []string{PhaseBuild, PhaseSample, PhaseStats, PhaseWrite}

// PerfSample holds timing data for a single run.
type PerfSample struct {
	RunDuration time.Duration
	Samples     int // grid points produced during the run
	Phases      map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window of runs.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	currentPoints int
	runStart      time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of runs to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 10
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartRun begins timing a new run.
func (p *PerfCollector) StartRun() {
	p.runStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.currentPoints = 0
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// AddSamples records how many grid points the current run produced.
func (p *PerfCollector) AddSamples(n int) {
	p.currentPoints += n
}

// EndRun finishes timing the current run and records the sample.
func (p *PerfCollector) EndRun() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		RunDuration: now.Sub(p.runStart),
		Samples:     p.currentPoints,
		Phases:      p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.lastPhase = ""
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Runs           int
	AvgRunDuration time.Duration
	MinRunDuration time.Duration
	MaxRunDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total run time
	PhasePct map[string]float64

	// Grid points per second across the window
	SamplesPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var total time.Duration
	var minRun, maxRun time.Duration
	var points int
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.RunDuration
		points += s.Samples

		if i == 0 || s.RunDuration < minRun {
			minRun = s.RunDuration
		}
		if s.RunDuration > maxRun {
			maxRun = s.RunDuration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var perSec float64
	if total > 0 {
		perSec = float64(points) / total.Seconds()
	}

	return PerfStats{
		Runs:             p.sampleCount,
		AvgRunDuration:   avg,
		MinRunDuration:   minRun,
		MaxRunDuration:   maxRun,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		SamplesPerSecond: perSec,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"runs", s.Runs,
		"avg_run_us", s.AvgRunDuration.Microseconds(),
		"min_run_us", s.MinRunDuration.Microseconds(),
		"max_run_us", s.MaxRunDuration.Microseconds(),
		"samples_per_sec", int(s.SamplesPerSecond),
	}

	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("runs", s.Runs),
		slog.Int64("avg_run_us", s.AvgRunDuration.Microseconds()),
		slog.Int64("min_run_us", s.MinRunDuration.Microseconds()),
		slog.Int64("max_run_us", s.MaxRunDuration.Microseconds()),
		slog.Float64("samples_per_sec", s.SamplesPerSecond),
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Run           int     `csv:"run"`
	AvgRunUS      int64   `csv:"avg_run_us"`
	MinRunUS      int64   `csv:"min_run_us"`
	MaxRunUS      int64   `csv:"max_run_us"`
	SamplesPerSec float64 `csv:"samples_per_sec"`
	BuildPct      float64 `csv:"build_pct"`
	SamplePct     float64 `csv:"sample_pct"`
	StatsPct      float64 `csv:"stats_pct"`
	WritePct      float64 `csv:"write_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(run int) PerfStatsCSV {
	return PerfStatsCSV{
		Run:           run,
		AvgRunUS:      s.AvgRunDuration.Microseconds(),
		MinRunUS:      s.MinRunDuration.Microseconds(),
		MaxRunUS:      s.MaxRunDuration.Microseconds(),
		SamplesPerSec: s.SamplesPerSecond,
		BuildPct:      s.PhasePct[PhaseBuild],
		SamplePct:     s.PhasePct[PhaseSample],
		StatsPct:      s.PhasePct[PhaseStats],
		WritePct:      s.PhasePct[PhaseWrite],
	}
}
