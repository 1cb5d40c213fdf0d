package postprocess

import (
	"math"

	"pattern-renderer/internal/mathutil"
	"pattern-renderer/internal/raster"
)

const (
	// EdgeThreshold is the luminance contrast above which a pixel is an edge.
	EdgeThreshold = 0.001

	// EdgeSearchSteps bounds the walk along an edge in each direction.
	EdgeSearchSteps = 9
)

// LumaWeights are the Rec. 601 channel weights.
var LumaWeights = mathutil.Vec3{X: 0.299, Y: 0.587, Z: 0.114}

// Luminance returns the perceptual brightness of c.
func Luminance(c mathutil.Vec3) float64 {
	return c.Dot(LumaWeights)
}

// LumaField computes one luminance value per pixel, indexed like the buffer.
func LumaField(src *raster.Buffer) []float64 {
	luma := make([]float64, src.Len())
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			luma[src.Index(x, y)] = Luminance(src.At(x, y))
		}
	}
	return luma
}

// FXAAStats counts what the filter did.
type FXAAStats struct {
	Edges   int // interior pixels above the contrast threshold
	Blended int // edge pixels whose color changed
}

// FXAA returns a new buffer with colors blended across high-contrast edges.
// src is only read. Border pixels are copied unchanged.
func FXAA(src *raster.Buffer, workers int) (*raster.Buffer, FXAAStats) {
	dst := src.Clone()
	luma := LumaField(src)

	f := fxaa{src: src, luma: luma}

	// Rows are written by exactly one band, so per-row counters need no lock.
	type counts struct{ edges, blended int }
	rows := make([]counts, src.Height)

	raster.ForEachBand(src.Height, workers, func(y0, y1 int) {
		for y := max(y0, 1); y < min(y1, src.Height-1); y++ {
			for x := 1; x < src.Width-1; x++ {
				col, edge := f.pixel(x, y)
				if !edge {
					continue
				}
				rows[y].edges++
				if col != src.At(x, y) {
					rows[y].blended++
				}
				dst.Set(x, y, col)
			}
		}
	})

	var stats FXAAStats
	for _, c := range rows {
		stats.Edges += c.edges
		stats.Blended += c.blended
	}
	return dst, stats
}

type fxaa struct {
	src  *raster.Buffer
	luma []float64
}

func (f *fxaa) at(x, y int) float64 {
	return f.luma[f.src.Index(x, y)]
}

// pixel filters one interior pixel. edge is false when the local contrast is
// below EdgeThreshold and the color is passed through.
func (f *fxaa) pixel(x, y int) (mathutil.Vec3, bool) {
	center := f.src.At(x, y)

	lc := f.at(x, y)
	ln := f.at(x, y-1)
	ls := f.at(x, y+1)
	lw := f.at(x-1, y)
	le := f.at(x+1, y)

	lmin := min(lc, ln, ls, lw, le)
	lmax := max(lc, ln, ls, lw, le)
	if lmax-lmin <= EdgeThreshold {
		return center, false
	}

	lnw := f.at(x-1, y-1)
	lne := f.at(x+1, y-1)
	lsw := f.at(x-1, y+1)
	lse := f.at(x+1, y+1)

	contrastH := math.Abs((lnw + lsw) - (lne + lse))
	contrastV := math.Abs((lnw + lne) - (lsw + lse))

	dir := mathutil.Vec2i{Y: 1}
	if contrastH > contrastV {
		dir = mathutil.Vec2i{X: 1}
	}

	forward := f.search(x, y, dir, lc)
	backward := f.search(x, y, mathutil.Vec2i{X: -dir.X, Y: -dir.Y}, lc)

	total := forward + backward
	if total == 0 {
		return center, true
	}

	offset := float64(forward-backward)/(2*float64(total)) - 0.5
	step := int(offset)
	bx, by := x+dir.X*step, y+dir.Y*step
	if !f.src.InBounds(bx, by) {
		return center, true
	}
	return center.Add(f.src.At(bx, by)).Scale(0.5), true
}

// search walks from (x, y) along dir and returns the step count of the first
// pixel whose luminance differs from lc by more than EdgeThreshold, or 0 when
// none is found within EdgeSearchSteps or before leaving the image.
func (f *fxaa) search(x, y int, dir mathutil.Vec2i, lc float64) int {
	for i := 1; i <= EdgeSearchSteps; i++ {
		nx, ny := x+dir.X*i, y+dir.Y*i
		if !f.src.InBounds(nx, ny) {
			return 0
		}
		if math.Abs(f.at(nx, ny)-lc) > EdgeThreshold {
			return i
		}
	}
	return 0
}
