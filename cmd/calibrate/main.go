// Package main fits biome thresholds so sampled terrain hits a target band
// coverage.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/heightgen/biome"
	"github.com/pthm-cable/heightgen/config"
	"github.com/pthm-cable/heightgen/seed"
	"github.com/pthm-cable/heightgen/terrain"
)

// parseCoverage reads five comma-separated band shares, deep to peak.
func parseCoverage(s string) (biome.Coverage, error) {
	var cov biome.Coverage
	parts := strings.Split(s, ",")
	if len(parts) != biome.NumBands {
		return cov, fmt.Errorf("coverage needs %d values, got %d", biome.NumBands, len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return cov, fmt.Errorf("coverage %s: %w", biome.Band(i), err)
		}
		cov[i] = v
	}
	return cov, nil
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seedFlag := flag.String("seed", "", "Base seed (empty = use config)")
	biomeName := flag.String("biome", "", "Biome to calibrate (empty = use config)")
	coverage := flag.String("coverage", "0.2,0.25,0.3,0.15,0.1", "Target band shares: deep,low,mid,high,peak")
	seeds := flag.Int("seeds", 4, "Number of derived seeds to pool samples from")
	outPath := flag.String("output", "", "Write the calibrated biome YAML here (empty = stdout)")
	flag.Parse()

	want, err := parseCoverage(*coverage)
	if err != nil {
		log.Fatal(err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()
	if *seedFlag != "" {
		cfg.Seed = *seedFlag
	}
	b, err := cfg.BiomeConfig(*biomeName)
	if err != nil {
		log.Fatal(err)
	}

	region := cfg.Region()
	opts := cfg.TerrainOptions()

	// Pool heights over several seeds so the fit is not tuned to one world.
	base := seed.Parse(cfg.Seed).Hash()
	var heights []float64
	for i := 0; i < max(*seeds, 1); i++ {
		s := seed.Int(seed.Derive(base, "calibrate:"+strconv.Itoa(i)))
		gen, err := terrain.New(s, b, opts)
		if err != nil {
			log.Fatalf("failed to build generator: %v", err)
		}
		g, err := gen.Grid(region)
		if err != nil {
			log.Fatalf("failed to sample grid: %v", err)
		}
		heights = append(heights, g.Heights()...)
	}

	before := biome.BandCoverage(heights, b)

	th, err := biome.CalibrateThresholds(heights, want)
	if err != nil {
		log.Fatalf("calibration failed: %v", err)
	}
	tuned := *b
	tuned.Thresholds = th
	after := biome.BandCoverage(heights, &tuned)

	fmt.Fprintf(os.Stderr, "Calibrated %q over %d samples from %d seeds\n", b.Name, len(heights), max(*seeds, 1))
	fmt.Fprintf(os.Stderr, "%-6s %8s %8s %8s\n", "band", "target", "before", "after")
	for i := 0; i < biome.NumBands; i++ {
		fmt.Fprintf(os.Stderr, "%-6s %8.3f %8.3f %8.3f\n", biome.Band(i), want[i], before[i], after[i])
	}

	data, err := yaml.Marshal(&tuned)
	if err != nil {
		log.Fatalf("marshaling biome: %v", err)
	}
	if *outPath == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		log.Fatalf("failed to write biome: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Calibrated biome saved to: %s\n", *outPath)
}
