// Package render runs the full pipeline for one config: pattern setup,
// sample-grid resolve, optional FXAA, encoding and file output.
package render

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"pattern-renderer/internal/config"
	"pattern-renderer/internal/encode"
	"pattern-renderer/internal/pattern"
	"pattern-renderer/internal/postprocess"
	"pattern-renderer/internal/raster"
)

// Result describes one finished render.
type Result struct {
	Path        string
	PreviewPath string
	Width       int
	Height      int
	Samples     int // pattern evaluations per pixel
	Edges       int // FXAA edge pixels, 0 without FXAA
	Elapsed     time.Duration
}

// Generate produces the final color buffer for cfg. cfg must be resolved.
// Invalid geometry fails before any buffer is allocated.
func Generate(cfg config.Config) (*raster.Buffer, Result, error) {
	var res Result
	if err := cfg.Validate(); err != nil {
		return nil, res, err
	}

	log := Logger()
	if lvl := cfg.Level(); lvl != cfg.AALevel {
		log.Warn("aa level clamped", "requested", cfg.AALevel, "level", lvl)
	}

	opts, err := cfg.RasterOptions()
	if err != nil {
		return nil, res, fmt.Errorf("render: %w", err)
	}
	params, err := cfg.PatternParams()
	if err != nil {
		return nil, res, fmt.Errorf("render: %w", err)
	}

	eval, err := pattern.New(params, opts.Size)
	if err != nil {
		return nil, res, fmt.Errorf("render: %w", err)
	}

	start := time.Now()
	buf, err := raster.Resolve(opts, eval)
	if err != nil {
		return nil, res, fmt.Errorf("render: %w", err)
	}
	size := buf.Size()
	mode, level := opts.Sampling()
	log.Debug("resolved",
		"pattern", params.Kind,
		"size", fmt.Sprintf("%dx%d", size.X, size.Y),
		"sampling", mode, "level", level,
		"samples", opts.SampleCount(),
		"elapsed", time.Since(start))

	res.Width, res.Height = size.X, size.Y
	res.Samples = opts.SampleCount()

	if opts.Mode == raster.FXAA {
		t := time.Now()
		var stats postprocess.FXAAStats
		buf, stats = postprocess.FXAA(buf, opts.Workers)
		res.Edges = stats.Edges
		log.Debug("fxaa", "edges", stats.Edges, "blended", stats.Blended, "elapsed", time.Since(t))
	}

	res.Elapsed = time.Since(start)
	return buf, res, nil
}

// Run renders cfg and writes the image, plus a preview when cfg.Preview > 0.
func Run(cfg config.Config) (Result, error) {
	start := time.Now()

	buf, res, err := Generate(cfg)
	if err != nil {
		return res, err
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return res, fmt.Errorf("render: %w", err)
	}

	img := encode.ToNRGBA(buf)
	res.Path = cfg.OutputPath()
	if err := encode.WriteFile(res.Path, img, format); err != nil {
		return res, fmt.Errorf("render: %w", err)
	}

	if cfg.Preview > 0 {
		res.PreviewPath = previewPath(res.Path)
		thumb := postprocess.Thumbnail(img, cfg.Preview)
		if err := encode.WriteFile(res.PreviewPath, thumb, format); err != nil {
			return res, fmt.Errorf("render: preview: %w", err)
		}
	}

	res.Elapsed = time.Since(start)
	Logger().Info("image written", "path", res.Path, "format", format, "elapsed", res.Elapsed)
	return res, nil
}

// previewPath inserts _preview before the extension.
func previewPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_preview" + ext
}
