package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"pattern-renderer/internal/encode"
	"pattern-renderer/internal/mathutil"
	"pattern-renderer/internal/pattern"
	"pattern-renderer/internal/raster"
)

// Default render settings.
const (
	DefaultWidth     = 1920
	DefaultHeight    = 1080
	DefaultAAType    = "msaa"
	DefaultAALevel   = 2
	DefaultFXAABase  = "none"
	DefaultPattern   = "voronoi"
	DefaultTileSize  = 50.0
	DefaultAngle     = 40.0
	DefaultPivot     = 0.5
	DefaultThickness = 12.0
	DefaultGap       = 7.0
	DefaultPoints    = 100
	DefaultSeed      = 1
	DefaultFormat    = "ppm"
)

// Config holds one render request.
type Config struct {
	// Image
	Width    *int   `json:"width,omitempty"`
	Height   *int   `json:"height,omitempty"`
	AAType   string `json:"aa_type"`
	AALevel  int    `json:"aa_level"`
	FXAABase string `json:"fxaa_base"`

	// Pattern
	Pattern   string   `json:"pattern"`
	TileSize  float64  `json:"tile_size"`
	Angle     *float64 `json:"angle,omitempty"`
	PivotX    *float64 `json:"pivot_x,omitempty"`
	PivotY    *float64 `json:"pivot_y,omitempty"`
	Thickness *float64 `json:"thickness,omitempty"`
	Gap       *float64 `json:"gap,omitempty"`
	Points    int      `json:"points"`
	Seed      *uint64  `json:"seed,omitempty"`

	// Output
	Format    string `json:"format"`
	Output    string `json:"output"`
	OutputDir string `json:"output_dir"`
	Preview   int    `json:"preview"`
	Workers   int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values. Pointer fields stay nil
// unless the file names them, so an explicit 0 survives to Validate.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values and nil pointers mean "not given".
type Flags struct {
	Width     *int
	Height    *int
	AAType    string
	AALevel   int
	FXAABase  string
	Pattern   string
	TileSize  float64
	Angle     *float64
	Thickness *float64
	Gap       *float64
	Points    int
	Seed      *uint64
	Format    string
	Output    string
	OutputDir string
	Preview   int
	Workers   int
}

// Resolve applies CLI overrides, then fills every empty field with its default.
// The AA level is kept as given; RasterOptions clamps it.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width != nil {
		c.Width = Ptr(*flags.Width)
	}
	if flags.Height != nil {
		c.Height = Ptr(*flags.Height)
	}
	if flags.AAType != "" {
		c.AAType = flags.AAType
	}
	if flags.AALevel != 0 {
		c.AALevel = flags.AALevel
	}
	if flags.FXAABase != "" {
		c.FXAABase = flags.FXAABase
	}
	if flags.Pattern != "" {
		c.Pattern = flags.Pattern
	}
	if flags.TileSize > 0 {
		c.TileSize = flags.TileSize
	}
	if flags.Angle != nil {
		c.Angle = Ptr(*flags.Angle)
	}
	if flags.Thickness != nil {
		c.Thickness = Ptr(*flags.Thickness)
	}
	if flags.Gap != nil {
		c.Gap = Ptr(*flags.Gap)
	}
	if flags.Points > 0 {
		c.Points = flags.Points
	}
	if flags.Seed != nil {
		c.Seed = Ptr(*flags.Seed)
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Preview > 0 {
		c.Preview = flags.Preview
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Explicit sizes stay as given, so Validate can reject 0 and negatives.
	if c.Width == nil {
		c.Width = Ptr(DefaultWidth)
	}
	if c.Height == nil {
		c.Height = Ptr(DefaultHeight)
	}
	if c.AAType == "" {
		c.AAType = DefaultAAType
	}
	if c.AALevel == 0 {
		c.AALevel = DefaultAALevel
	}
	if c.FXAABase == "" {
		c.FXAABase = DefaultFXAABase
	}
	if c.Pattern == "" {
		c.Pattern = DefaultPattern
	}
	if c.TileSize <= 0 {
		c.TileSize = DefaultTileSize
	}
	if c.Angle == nil {
		c.Angle = Ptr(DefaultAngle)
	}
	if c.PivotX == nil {
		c.PivotX = Ptr(DefaultPivot)
	}
	if c.PivotY == nil {
		c.PivotY = Ptr(DefaultPivot)
	}
	if c.Thickness == nil {
		c.Thickness = Ptr(DefaultThickness)
	}
	if c.Gap == nil {
		c.Gap = Ptr(DefaultGap)
	}
	if c.Points <= 0 {
		c.Points = DefaultPoints
	}
	if c.Seed == nil {
		c.Seed = Ptr(uint64(DefaultSeed))
	}
	if c.Format == "" {
		c.Format = DefaultFormat
		if c.Output != "" {
			if f, err := encode.FormatFromPath(c.Output); err == nil {
				c.Format = f.String()
			}
		}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports invalid geometry and unknown names. It must pass before
// anything is rendered.
func (c *Config) Validate() error {
	size := c.Size()
	if err := raster.CheckSize(size.X, size.Y); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.RasterOptions(); err != nil {
		return err
	}
	p, err := c.PatternParams()
	if err != nil {
		return err
	}
	if p.Thickness < 0 || p.Gap < 0 {
		return fmt.Errorf("config: circle thickness %g and gap %g must not be negative", p.Thickness, p.Gap)
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	return nil
}

// Size returns the image size. An unset dimension reads as 0.
func (c *Config) Size() mathutil.Vec2i {
	return mathutil.Vec2i{X: deref(c.Width, 0), Y: deref(c.Height, 0)}
}

// Level returns the antialiasing level clamped to [1,8].
func (c *Config) Level() int {
	return raster.ClampLevel(c.AALevel)
}

// RasterOptions translates the config for the resolver. The rotation is
// only set up for the tiled (checkerboard) pattern.
func (c *Config) RasterOptions() (raster.Options, error) {
	mode, err := raster.ParseMode(c.AAType)
	if err != nil {
		return raster.Options{}, fmt.Errorf("config: aa_type: %w", err)
	}
	base, err := raster.ParseMode(c.FXAABase)
	if err != nil {
		return raster.Options{}, fmt.Errorf("config: fxaa_base: %w", err)
	}
	if base == raster.FXAA {
		return raster.Options{}, fmt.Errorf("config: fxaa_base: %w: fxaa cannot be its own base", raster.ErrUnknownMode)
	}
	kind, err := pattern.ParseKind(c.Pattern)
	if err != nil {
		return raster.Options{}, fmt.Errorf("config: pattern: %w", err)
	}

	o := raster.Options{
		Size:     c.Size(),
		Mode:     mode,
		Level:    c.Level(),
		FXAABase: base,
		Workers:  c.Workers,
	}
	if kind == pattern.Checkerboard {
		o.Transform = raster.Rotate(deref(c.Angle, DefaultAngle), mathutil.Vec2{
			X: deref(c.PivotX, DefaultPivot),
			Y: deref(c.PivotY, DefaultPivot),
		})
	}
	return o, nil
}

// PatternParams translates the pattern section of the config.
func (c *Config) PatternParams() (pattern.Params, error) {
	kind, err := pattern.ParseKind(c.Pattern)
	if err != nil {
		return pattern.Params{}, fmt.Errorf("config: pattern: %w", err)
	}
	return pattern.Params{
		Kind:      kind,
		TileSize:  c.TileSize,
		Thickness: deref(c.Thickness, DefaultThickness),
		Gap:       deref(c.Gap, DefaultGap),
		Points:    c.Points,
		Seed:      deref(c.Seed, DefaultSeed),
	}, nil
}

// OutputFormat parses the format name.
func (c *Config) OutputFormat() (encode.Format, error) {
	f, err := encode.ParseFormat(c.Format)
	if err != nil {
		return 0, fmt.Errorf("config: format: %w", err)
	}
	return f, nil
}

// FileName returns the default output name,
// output_<W>x<H>[_SSAA|_MSAA|_FXAA]_<level><ext>.
func (c *Config) FileName() string {
	var sb strings.Builder
	size := c.Size()
	fmt.Fprintf(&sb, "output_%dx%d", size.X, size.Y)
	if mode, err := raster.ParseMode(c.AAType); err == nil && mode != raster.None {
		sb.WriteString("_" + strings.ToUpper(mode.String()))
	}
	fmt.Fprintf(&sb, "_%d", c.Level())

	ext := encode.PPM.Ext()
	if f, err := c.OutputFormat(); err == nil {
		ext = f.Ext()
	}
	sb.WriteString(ext)
	return sb.String()
}

// OutputPath is Output when set, otherwise FileName inside OutputDir.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return filepath.Join(c.OutputDir, c.FileName())
}

// Ptr returns a pointer to a copy of v, for the optional Config and Flags fields.
func Ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
