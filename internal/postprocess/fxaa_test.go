package postprocess

import (
	"math"
	"testing"

	"pattern-renderer/internal/mathutil"
	"pattern-renderer/internal/raster"
)

var (
	black = mathutil.Zero3
	white = mathutil.One3
)

// gray builds a buffer from rows of gray levels.
func gray(t *testing.T, rows [][]float64) *raster.Buffer {
	t.Helper()
	b, err := raster.NewBuffer(len(rows[0]), len(rows))
	if err != nil {
		t.Fatal(err)
	}
	for y, row := range rows {
		for x, v := range row {
			b.Set(x, y, mathutil.Vec3{X: v, Y: v, Z: v})
		}
	}
	return b
}

func TestLuminance(t *testing.T) {
	if got := Luminance(white); math.Abs(got-1) > 1e-12 {
		t.Errorf("Luminance(white) = %v, want 1", got)
	}
	if got := Luminance(mathutil.Vec3{Y: 1}); got != 0.587 {
		t.Errorf("Luminance(green) = %v", got)
	}
}

func TestFXAAFlatIsIdentity(t *testing.T) {
	for _, c := range []mathutil.Vec3{black, white, {X: 0.2, Y: 0.6, Z: 0.9}} {
		src, _ := raster.NewBuffer(7, 5)
		src.Fill(c)
		out, stats := FXAA(src, 1)
		if !out.Equal(src) {
			t.Errorf("flat %v changed", c)
		}
		if stats.Edges != 0 {
			t.Errorf("flat %v reported %d edges", c, stats.Edges)
		}
	}
}

func TestFXAA3x3Uniform(t *testing.T) {
	src, _ := raster.NewBuffer(3, 3)
	src.Fill(mathutil.Vec3{X: 0.25, Y: 0.5, Z: 0.75})
	out, _ := FXAA(src, 4)
	if !out.Equal(src) {
		t.Errorf("uniform 3x3 changed: %v", out.Pixels())
	}
}

func TestFXAABordersUnchanged(t *testing.T) {
	// Noisy checker so nearly every interior pixel is an edge.
	src, _ := raster.NewBuffer(9, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 9; x++ {
			if (x+y)%2 == 0 {
				src.Set(x, y, white)
			}
		}
	}
	out, stats := FXAA(src, 3)
	if stats.Edges == 0 {
		t.Fatal("no edges detected on a checker")
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 9; x++ {
			if x != 0 && y != 0 && x != 8 && y != 5 {
				continue
			}
			if out.At(x, y) != src.At(x, y) {
				t.Errorf("border (%d,%d) changed: %v -> %v", x, y, src.At(x, y), out.At(x, y))
			}
		}
	}
}

func TestFXAADoesNotMutateSource(t *testing.T) {
	src := gray(t, [][]float64{
		{0, 0, 1, 1, 1},
		{0, 0, 1, 1, 1},
		{0, 0, 1, 1, 1},
	})
	before := src.Clone()
	FXAA(src, 1)
	if !src.Equal(before) {
		t.Error("FXAA wrote to its input")
	}
}

func TestFXAAVerticalEdgeBlend(t *testing.T) {
	src := gray(t, [][]float64{
		{0, 0, 1, 1, 1},
		{0, 0, 1, 1, 1},
		{0, 0, 1, 1, 1},
	})
	out, stats := FXAA(src, 1)

	// (2,1): no contrast ahead, black one step behind, so it averages with (1,1).
	if got, want := out.At(2, 1), (mathutil.Vec3{X: 0.5, Y: 0.5, Z: 0.5}); got != want {
		t.Errorf("(2,1) = %v, want %v", got, want)
	}
	// (1,1): contrast one step ahead, offset rounds to itself.
	if got := out.At(1, 1); got != black {
		t.Errorf("(1,1) = %v, want black", got)
	}
	if got := out.At(3, 1); got != white {
		t.Errorf("(3,1) = %v, want white", got)
	}
	if stats.Edges != 2 || stats.Blended != 1 {
		t.Errorf("stats = %+v, want 2 edges, 1 blended", stats)
	}
}

func TestFXAAZeroDistanceFallsBack(t *testing.T) {
	// Row 1 is uniform, so the horizontal walk finds no bound either way.
	src := gray(t, [][]float64{
		{0, 0, 0, 1, 1},
		{1, 1, 1, 1, 1},
		{0, 0, 0, 1, 1},
	})
	out, stats := FXAA(src, 1)

	got := out.At(2, 1)
	if math.IsNaN(got.X) || got != white {
		t.Errorf("(2,1) = %v, want unchanged white", got)
	}
	if stats.Edges == 0 {
		t.Error("(2,1) should still count as an edge")
	}
}

func TestFXAASearchStopsAtImageEdge(t *testing.T) {
	f := fxaa{src: gray(t, [][]float64{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})}
	f.luma = LumaField(f.src)
	if got := f.search(1, 1, mathutil.Vec2i{X: 1}, 0); got != 1 {
		t.Errorf("search = %d, want 1", got)
	}
	if got := f.search(1, 1, mathutil.Vec2i{X: 1}, 1); got != 0 {
		t.Errorf("search past the edge = %d, want 0", got)
	}
}

func TestFXAAWorkersDeterministic(t *testing.T) {
	src, _ := raster.NewBuffer(31, 17)
	for y := 0; y < 17; y++ {
		for x := 0; x < 31; x++ {
			v := float64((x*7+y*13)%5) / 4
			src.Set(x, y, mathutil.Vec3{X: v, Y: v / 2, Z: 1 - v})
		}
	}
	seq, s1 := FXAA(src, 1)
	par, s2 := FXAA(src, 8)
	if !par.Equal(seq) || s1 != s2 {
		t.Error("parallel FXAA differs from sequential")
	}
}
