package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"pattern-renderer/internal/batch"
	"pattern-renderer/internal/config"
	"pattern-renderer/internal/raster"
	"pattern-renderer/internal/render"
)

const usage = `Usage: %s [flags] [width] [height] [aa_type] [aa_level] [pattern_type] [output_file]
Positional arguments:
  width:        Output image width (default: 1920)
  height:       Output image height (default: 1080)
  aa_type:      none, ssaa, msaa, fxaa (default: msaa)
  aa_level:     1-8 (default: 2)
  pattern_type: uv, checkerboard, circle, voronoi (default: voronoi)
  output_file:  Optional output file name
Flags:
`

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	batchFile := flag.String("batch", "", "Path to a JSON array of render configs")
	width := flag.Int("width", config.DefaultWidth, "Output image width")
	height := flag.Int("height", config.DefaultHeight, "Output image height")
	aaType := flag.String("aa", "", "Antialiasing: none, ssaa, msaa, fxaa (default: msaa)")
	aaLevel := flag.Int("level", 0, "Antialiasing level 1-8, clamped (default: 2)")
	fxaaBase := flag.String("fxaa-base", "", "Buffer FXAA filters: none, ssaa, msaa (default: none)")
	patternName := flag.String("pattern", "", "Pattern: uv, checkerboard, circle, voronoi (default: voronoi)")
	tileSize := flag.Float64("tile", 0, "Checkerboard tile size in pixels (default: 50)")
	angle := flag.Float64("angle", config.DefaultAngle, "Checkerboard rotation in degrees")
	thickness := flag.Float64("thickness", config.DefaultThickness, "Circle ring thickness in pixels")
	gap := flag.Float64("gap", config.DefaultGap, "Circle ring gap in pixels")
	points := flag.Int("points", 0, "Voronoi site count (default: 100)")
	seed := flag.Uint64("seed", config.DefaultSeed, "Voronoi scatter seed")
	format := flag.String("format", "", "Output format: ppm, ppm-ascii, webp, tga, png, bmp, tiff (default: from extension or ppm)")
	output := flag.String("o", "", "Output file (default: output_<W>x<H>_<AA>_<level>.<ext>)")
	outputDir := flag.String("outdir", "", "Output directory for generated file names")
	preview := flag.Int("preview", 0, "Also write a preview with this longer side in pixels")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Log pipeline details to stderr")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) > 0 && (args[0] == "help" || args[0] == "--help") {
		flag.Usage()
		return
	}

	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	flags := config.Flags{
		AAType:    *aaType,
		AALevel:   *aaLevel,
		FXAABase:  *fxaaBase,
		Pattern:   *patternName,
		TileSize:  *tileSize,
		Points:    *points,
		Format:    *format,
		Output:    *output,
		OutputDir: *outputDir,
		Preview:   *preview,
		Workers:   *workers,
	}
	// Only flags given on the command line override, so explicit zeros reach Validate.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			flags.Width = width
		case "height":
			flags.Height = height
		case "angle":
			flags.Angle = angle
		case "thickness":
			flags.Thickness = thickness
		case "gap":
			flags.Gap = gap
		case "seed":
			flags.Seed = seed
		}
	})

	if err := applyPositional(&flags, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *batchFile != "" {
		os.Exit(runBatch(*batchFile, flags))
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	size := cfg.Size()
	fmt.Printf("Pattern: %s, %dx%d, AA: %s level %d\n", cfg.Pattern, size.X, size.Y, cfg.AAType, cfg.Level())

	res, err := render.Run(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s in %.2fs (%d samples/pixel)\n", res.Path, res.Elapsed.Seconds(), res.Samples)
	if res.PreviewPath != "" {
		fmt.Printf("Preview: %s\n", res.PreviewPath)
	}
}

// applyPositional fills flags from the positional form in the usage text. Width and
// height are only read as a pair.
func applyPositional(flags *config.Flags, args []string) error {
	if len(args) >= 2 {
		w, errW := strconv.Atoi(args[0])
		h, errH := strconv.Atoi(args[1])
		if errW != nil || errH != nil {
			return fmt.Errorf("width and height must be integers, got %q %q", args[0], args[1])
		}
		if err := raster.CheckSize(w, h); err != nil {
			return err
		}
		flags.Width, flags.Height = &w, &h
	}
	if len(args) >= 3 {
		flags.AAType = args[2]
	}
	if len(args) >= 4 {
		level, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("aa_level must be an integer, got %q", args[3])
		}
		flags.AALevel = raster.ClampLevel(level)
	}
	if len(args) >= 5 {
		flags.Pattern = args[4]
	}
	if len(args) >= 6 {
		flags.Output = args[5]
	}
	return nil
}

func runBatch(path string, flags config.Flags) int {
	jobs, err := batch.LoadJobs(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading batch: %v\n", err)
		return 1
	}
	if len(jobs) == 0 {
		fmt.Println("No jobs to render.")
		return 0
	}

	outDir := flags.OutputDir
	if outDir == "" {
		outDir = "."
	}
	workers := flags.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	// A shared output file would make every job overwrite the same image.
	flags.Output = ""

	fmt.Printf("Pattern renderer batch: %d jobs, Workers: %d\n", len(jobs), workers)
	fmt.Printf("Output: %s\n", outDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batch.Config{
		Flags:     flags,
		OutputDir: outDir,
		Workers:   workers,
		Progress:  2 * time.Second,
	}, jobs)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	// Count results
	var failed []batch.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", len(results)-len(failed), len(results))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := min(20, len(failed))
		for _, r := range failed[:limit] {
			fmt.Printf("  job %d: %s\n", r.Index, r.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(outDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		return 1
	}
	return 0
}
