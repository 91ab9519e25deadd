package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/heightgen/config"
	"github.com/pthm-cable/heightgen/preview"
	"github.com/pthm-cable/heightgen/seed"
	"github.com/pthm-cable/heightgen/telemetry"
	"github.com/pthm-cable/heightgen/terrain"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seedFlag := flag.String("seed", "", "World seed: text, integer, or text:<digits> (empty = use config)")
	biomeName := flag.String("biome", "", "Biome name (empty = use config)")
	backend := flag.String("backend", "", "Noise backend: simplex, opensimplex, perlin (empty = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	previewPath := flag.String("preview", "", "Write a preview image (.png, .bmp, .tiff)")
	runs := flag.Int("runs", 1, "Number of generation runs (for timing)")
	workers := flag.Int("workers", 0, "Sampling workers (0 = GOMAXPROCS)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *seedFlag != "" {
		cfg.Seed = *seedFlag
	}
	if *backend != "" {
		cfg.Noise.Backend = *backend
	}
	b, err := cfg.BiomeConfig(*biomeName)
	if err != nil {
		slog.Error("failed to select biome", "error", err)
		os.Exit(1)
	}
	cfg.Biome = b.Name

	out, err := telemetry.NewOutputManager(*outputDir, cfg.Telemetry.SamplesCSV)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	if out != nil {
		slog.Info("writing output", "dir", out.Dir())
	}

	region := cfg.Region()
	opts := cfg.TerrainOptions()
	s := seed.Parse(cfg.Seed)

	slog.Info("starting generation",
		"seed", cfg.Seed,
		"seed_hash", s.Hash(),
		"biome", b.Name,
		"backend", opts.Backend,
		"width", region.Width,
		"depth", region.Depth,
		"runs", *runs,
	)

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	var grid *terrain.Grid
	for run := 0; run < max(*runs, 1); run++ {
		perf.StartRun()

		perf.StartPhase(telemetry.PhaseBuild)
		gen, err := terrain.New(s, b, opts)
		if err != nil {
			slog.Error("failed to build generator", "error", err)
			os.Exit(1)
		}
		sampler := terrain.NewSampler(gen, *workers)
		if run == 0 {
			slog.Info("sampler ready", "workers", sampler.Workers(), "octaves", b.Octaves)
		}

		perf.StartPhase(telemetry.PhaseSample)
		grid, err = sampler.Grid(region)
		sampler.Close()
		if err != nil {
			slog.Error("failed to sample grid", "error", err)
			os.Exit(1)
		}
		perf.AddSamples(len(grid.Samples))

		perf.StartPhase(telemetry.PhaseStats)
		genBiome := gen.Biome()
		stats := telemetry.ComputeGridStats(grid, &genBiome)
		stats.Run = run
		stats.Seed = gen.Seed()
		stats.Backend = gen.Backend()
		if *logStats {
			stats.LogStats()
		}

		perf.StartPhase(telemetry.PhaseWrite)
		if err := out.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := out.WriteSamples(run, grid); err != nil {
			slog.Error("failed to write samples", "error", err)
		}

		perf.EndRun()
		if err := out.WritePerf(perf.Stats(), run); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	if *logStats {
		perf.Stats().LogStats()
	}

	if *previewPath != "" {
		if err := preview.WriteFile(*previewPath, grid, cfg.Preview.Mode); err != nil {
			slog.Error("failed to write preview", "error", err)
			os.Exit(1)
		}
		slog.Info("preview saved", "path", *previewPath)
	}
}
