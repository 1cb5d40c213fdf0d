// Package encode serializes resolved color buffers to image files.
package encode

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"pattern-renderer/internal/raster"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned for unrecognized format names or extensions.
var ErrUnknownFormat = errors.New("encode: unknown format")

// Format is an output file format.
type Format int

const (
	PPM      Format = iota // binary P6
	PPMASCII               // plain P3
	WebP
	TGA
	PNG
	BMP
	TIFF
)

var formatNames = [...]string{
	PPM:      "ppm",
	PPMASCII: "ppm-ascii",
	WebP:     "webp",
	TGA:      "tga",
	PNG:      "png",
	BMP:      "bmp",
	TIFF:     "tiff",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	switch f {
	case PPM, PPMASCII:
		return ".ppm"
	case TIFF:
		return ".tiff"
	}
	return "." + f.String()
}

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range formatNames {
		if name == s {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return PPM, nil
	case ".webp":
		return WebP, nil
	case ".tga":
		return TGA, nil
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	}
	return 0, fmt.Errorf("%w: extension of %q", ErrUnknownFormat, path)
}

// ToNRGBA converts a buffer to an opaque 8-bit image. Channels are clamped
// to [0,1] and truncated after scaling by 255, never rounded.
func ToNRGBA(buf *raster.Buffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := buf.At(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i] = to8(c.X)
			img.Pix[i+1] = to8(c.Y)
			img.Pix[i+2] = to8(c.Z)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func to8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img *image.NRGBA, f Format) error {
	switch f {
	case PPM:
		return WritePPM(w, img, false)
	case PPMASCII:
		return WritePPM(w, img, true)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	case TGA:
		return tga.Encode(w, img)
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, nil)
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// WriteFile encodes img into path, creating parent directories.
func WriteFile(path string, img *image.NRGBA, f Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := Encode(out, img, f); err != nil {
		out.Close()
		return fmt.Errorf("encode: %s %s: %w", f, path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("encode: close %s: %w", path, err)
	}
	return nil
}
