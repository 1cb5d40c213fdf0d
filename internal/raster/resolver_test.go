package raster

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"pattern-renderer/internal/mathutil"
	"pattern-renderer/internal/pattern"
)

// uvColor echoes the uv it receives.
type uvColor struct{}

func (uvColor) Evaluate(uv mathutil.Vec2, _ pattern.Domain) mathutil.Vec3 {
	return mathutil.Vec3{X: uv.X, Y: uv.Y}
}

type constant mathutil.Vec3

func (c constant) Evaluate(mathutil.Vec2, pattern.Domain) mathutil.Vec3 {
	return mathutil.Vec3(c)
}

type counter struct {
	n atomic.Int64
}

func (c *counter) Evaluate(mathutil.Vec2, pattern.Domain) mathutil.Vec3 {
	c.n.Add(1)
	return mathutil.Zero3
}

type recorder struct {
	mu  sync.Mutex
	uvs []mathutil.Vec2
	d   pattern.Domain
}

func (r *recorder) Evaluate(uv mathutil.Vec2, d pattern.Domain) mathutil.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uvs = append(r.uvs, uv)
	r.d = d
	return mathutil.Vec3{X: uv.X, Y: uv.Y}
}

func vecNear(a, b mathutil.Vec3) bool {
	const eps = 1e-12
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestResolveInvalidDimension(t *testing.T) {
	c := &counter{}
	buf, err := Resolve(Options{Size: mathutil.Vec2i{X: 0, Y: 10}, Mode: SSAA, Level: 2}, c)
	if !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("err = %v, want ErrInvalidDimension", err)
	}
	if buf != nil {
		t.Error("buffer produced for invalid geometry")
	}
	if c.n.Load() != 0 {
		t.Errorf("pattern evaluated %d times", c.n.Load())
	}
}

func TestResolveNoneSingleCenterSample(t *testing.T) {
	o := Options{Size: mathutil.Vec2i{X: 8, Y: 4}, Mode: None, Level: 5}
	buf, err := Resolve(o, uvColor{})
	if err != nil {
		t.Fatal(err)
	}
	if o.SampleCount() != 1 {
		t.Fatalf("SampleCount = %d, want 1", o.SampleCount())
	}

	aspect := 4.0 / 8.0
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			want := mathutil.Vec3{
				X: (float64(x) + 0.5) / 8,
				Y: (float64(y) + 0.5) / 4 * aspect,
			}
			if got := buf.At(x, y); !vecNear(got, want) {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestResolveMSAAMeanOfTable(t *testing.T) {
	size := mathutil.Vec2i{X: 6, Y: 6}
	for level := 1; level <= MaxLevel; level++ {
		o := Options{Size: size, Mode: MSAA, Level: level}
		buf, err := Resolve(o, uvColor{})
		if err != nil {
			t.Fatal(err)
		}

		x, y := 3, 2
		var want mathutil.Vec3
		for i := 0; i < level; i++ {
			off := MSAAOffset(i)
			want = want.Add(mathutil.Vec3{
				X: (float64(x) + 0.5 + off.X) / 6,
				Y: (float64(y) + 0.5 + off.Y) / 6,
			})
		}
		want = want.DivScalar(float64(level))
		if got := buf.At(x, y); !vecNear(got, want) {
			t.Errorf("level %d: %v, want %v", level, got, want)
		}
	}
}

func TestMSAALevelsArePrefixes(t *testing.T) {
	size := mathutil.Vec2i{X: 10, Y: 7}
	prev := SampleUVs(Options{Size: size, Mode: MSAA, Level: 1}, 4, 5)
	for level := 2; level <= MaxLevel; level++ {
		cur := SampleUVs(Options{Size: size, Mode: MSAA, Level: level}, 4, 5)
		if len(cur) != level {
			t.Fatalf("level %d: %d samples", level, len(cur))
		}
		for i := range prev {
			if cur[i] != prev[i] {
				t.Errorf("level %d moved sample %d: %v -> %v", level, i, prev[i], cur[i])
			}
		}
		prev = cur
	}
}

func TestMSAALevelClamped(t *testing.T) {
	c := &counter{}
	o := Options{Size: mathutil.Vec2i{X: 1, Y: 1}, Mode: MSAA, Level: 12}
	if _, err := Resolve(o, c); err != nil {
		t.Fatal(err)
	}
	if got := c.n.Load(); got != 8 {
		t.Errorf("evaluations = %d, want 8", got)
	}
}

func TestSSAASubGrid(t *testing.T) {
	for level := 1; level <= 4; level++ {
		r := &recorder{}
		o := Options{Size: mathutil.Vec2i{X: 1, Y: 1}, Mode: SSAA, Level: level}
		buf, err := Resolve(o, r)
		if err != nil {
			t.Fatal(err)
		}

		if len(r.uvs) != level*level {
			t.Fatalf("level %d: %d samples, want %d", level, len(r.uvs), level*level)
		}
		seen := map[mathutil.Vec2]bool{}
		var sum mathutil.Vec3
		for _, uv := range r.uvs {
			if uv.X <= 0 || uv.X >= 1 || uv.Y <= 0 || uv.Y >= 1 {
				t.Errorf("sample %v outside the pixel", uv)
			}
			seen[uv] = true
			sum = sum.Add(mathutil.Vec3{X: uv.X, Y: uv.Y})
		}
		if len(seen) != level*level {
			t.Errorf("level %d: %d distinct samples", level, len(seen))
		}
		if got, want := buf.At(0, 0), sum.DivScalar(float64(level*level)); !vecNear(got, want) {
			t.Errorf("level %d: pixel %v, want mean %v", level, got, want)
		}
		if r.d.Scale != level || r.d.Size != (mathutil.Vec2i{X: level, Y: level}) {
			t.Errorf("level %d: domain %+v", level, r.d)
		}
	}
}

func TestSSAAConstantMatchesNone(t *testing.T) {
	c := constant{X: 0.25, Y: 0.5, Z: 0.75}
	size := mathutil.Vec2i{X: 5, Y: 3}

	plain, err := Resolve(Options{Size: size, Mode: None}, c)
	if err != nil {
		t.Fatal(err)
	}
	for _, level := range []int{2, 3, 8} {
		ss, err := Resolve(Options{Size: size, Mode: SSAA, Level: level}, c)
		if err != nil {
			t.Fatal(err)
		}
		if !ss.Equal(plain) {
			t.Errorf("SSAA level %d differs from no-AA on a constant pattern", level)
		}
	}
}

func TestFXAABaseSampling(t *testing.T) {
	tests := []struct {
		base Mode
		want int
	}{
		{None, 1},
		{MSAA, 4},
		{SSAA, 16},
		{FXAA, 1},
	}
	for _, tt := range tests {
		o := Options{Size: mathutil.Vec2i{X: 2, Y: 2}, Mode: FXAA, Level: 4, FXAABase: tt.base}
		if got := o.SampleCount(); got != tt.want {
			t.Errorf("base %v: SampleCount = %d, want %d", tt.base, got, tt.want)
		}
	}
}

func TestTransformOrder(t *testing.T) {
	tr := Rotate(90, mathutil.Vec2{X: 0.5, Y: 0.5})
	aspect := 0.5

	// The aspect-corrected pivot lands on the raw pivot.
	got := tr.Apply(mathutil.Vec2{X: 0.5, Y: 0.25}, aspect)
	if math.Abs(got.X-0.5) > 1e-12 || math.Abs(got.Y-0.5) > 1e-12 {
		t.Errorf("pivot -> %v, want (0.5,0.5)", got)
	}

	got = tr.Apply(mathutil.Vec2{X: 0.75, Y: 0.25}, aspect)
	if math.Abs(got.X-0.5) > 1e-12 || math.Abs(got.Y-0.75) > 1e-12 {
		t.Errorf("rotated -> %v, want (0.5,0.75)", got)
	}

	if id := (Transform{}).Apply(mathutil.Vec2{X: 0.3, Y: 0.1}, aspect); id != (mathutil.Vec2{X: 0.3, Y: 0.1}) {
		t.Errorf("zero Transform changed uv: %v", id)
	}
}

func TestSampleUVsAppliesTransformAfterAspect(t *testing.T) {
	o := Options{
		Size:      mathutil.Vec2i{X: 200, Y: 100},
		Mode:      None,
		Transform: Rotate(90, mathutil.Vec2{X: 0.5, Y: 0.5}),
	}
	// Pixel (149, 49) has its center at normalized (0.7475, 0.495).
	uvs := SampleUVs(o, 149, 49)
	if len(uvs) != 1 {
		t.Fatalf("%d samples", len(uvs))
	}
	want := o.Transform.Apply(mathutil.Vec2{X: 149.5 / 200, Y: 49.5 / 100 * 0.5}, 0.5)
	if math.Abs(uvs[0].X-want.X) > 1e-12 || math.Abs(uvs[0].Y-want.Y) > 1e-12 {
		t.Errorf("uv = %v, want %v", uvs[0], want)
	}
}

func TestResolveWorkersDeterministic(t *testing.T) {
	ev, err := pattern.New(pattern.Params{Kind: pattern.Voronoi, Points: 16, Seed: 3}, mathutil.Vec2i{X: 33, Y: 21})
	if err != nil {
		t.Fatal(err)
	}
	base := Options{Size: mathutil.Vec2i{X: 33, Y: 21}, Mode: SSAA, Level: 3}
	seq, _ := Resolve(base, ev)

	base.Workers = 6
	par, _ := Resolve(base, ev)
	if !par.Equal(seq) {
		t.Error("parallel resolve differs from sequential")
	}
}

func TestResolveCheckerboard4x4(t *testing.T) {
	size := mathutil.Vec2i{X: 4, Y: 4}
	ev, err := pattern.New(pattern.Params{Kind: pattern.Checkerboard, TileSize: 2}, size)
	if err != nil {
		t.Fatal(err)
	}
	o := Options{Size: size, Mode: None, Transform: Rotate(0, mathutil.Vec2{X: 0.5, Y: 0.5})}
	buf, err := Resolve(o, ev)
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := mathutil.Zero3
			if (x/2+y/2)%2 == 1 {
				want = mathutil.One3
			}
			if got := buf.At(x, y); got != want {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}
