package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/heightgen/config"
	"github.com/pthm-cable/heightgen/terrain"
)

// SampleRecord is one grid point as written to samples.csv.
type SampleRecord struct {
	Run       int     `csv:"run"`
	Col       int     `csv:"col"`
	Row       int     `csv:"row"`
	X         float64 `csv:"x"`
	Z         float64 `csv:"z"`
	Raw       float64 `csv:"raw"`
	Height    float64 `csv:"height"`
	Elevation float64 `csv:"elevation"`
	Band      string  `csv:"band"`
	R         float64 `csv:"r"`
	G         float64 `csv:"g"`
	B         float64 `csv:"b"`
}

// SampleRecords flattens a grid into CSV rows.
func SampleRecords(run int, g *terrain.Grid) []SampleRecord {
	records := make([]SampleRecord, 0, len(g.Samples))
	w := g.Region.Width
	for i, s := range g.Samples {
		records = append(records, SampleRecord{
			Run:       run,
			Col:       i % w,
			Row:       i / w,
			X:         s.X,
			Z:         s.Z,
			Raw:       s.Raw,
			Height:    s.Height,
			Elevation: s.Elevation,
			Band:      s.Band.String(),
			R:         s.Color[0],
			G:         s.Color[1],
			B:         s.Color[2],
		})
	}
	return records
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir         string
	statsFile   *os.File
	perfFile    *os.File
	samplesFile *os.File // nil unless per-sample output is enabled

	// Track if headers have been written
	statsHeaderWritten   bool
	perfHeaderWritten    bool
	samplesHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). samples enables samples.csv.
func NewOutputManager(dir string, samples bool) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	om.statsFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.statsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	if samples {
		f, err = os.Create(filepath.Join(dir, "samples.csv"))
		if err != nil {
			om.statsFile.Close()
			om.perfFile.Close()
			return nil, fmt.Errorf("creating samples.csv: %w", err)
		}
		om.samplesFile = f
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// writeCSV marshals records, including the header only on the first call.
func writeCSV(f *os.File, records any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// WriteStats writes a grid stats record to stats.csv.
func (om *OutputManager) WriteStats(stats GridStats) error {
	if om == nil {
		return nil
	}
	if err := writeCSV(om.statsFile, []GridStats{stats}, &om.statsHeaderWritten); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, run int) error {
	if om == nil {
		return nil
	}
	if err := writeCSV(om.perfFile, []PerfStatsCSV{stats.ToCSV(run)}, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteSamples appends every sample of g to samples.csv. It is a no-op when
// per-sample output is disabled.
func (om *OutputManager) WriteSamples(run int, g *terrain.Grid) error {
	if om == nil || om.samplesFile == nil {
		return nil
	}
	if err := writeCSV(om.samplesFile, SampleRecords(run, g), &om.samplesHeaderWritten); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

// Path joins name onto the output directory.
func (om *OutputManager) Path(name string) string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, name)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.statsFile, om.perfFile, om.samplesFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
