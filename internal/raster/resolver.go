package raster

import (
	"pattern-renderer/internal/mathutil"
	"pattern-renderer/internal/pattern"
)

// Options configures one resolve pass.
type Options struct {
	Size  mathutil.Vec2i
	Mode  Mode
	Level int

	// FXAABase is the strategy that produces the buffer FXAA later filters.
	// None, SSAA and MSAA are meaningful; anything else resolves as None.
	FXAABase Mode

	// Transform is applied after aspect correction, before evaluation.
	Transform Transform

	// Workers bounds concurrent row bands. Values <= 1 resolve sequentially.
	Workers int
}

// Sampling returns the strategy and clamped level that generate samples.
// FXAA resolves through its base strategy.
func (o Options) Sampling() (Mode, int) {
	m := o.Mode
	if m == FXAA {
		m = o.FXAABase
	}
	switch m {
	case SSAA, MSAA:
		return m, ClampLevel(o.Level)
	}
	return None, 1
}

// SampleCount is the number of pattern evaluations per pixel.
func (o Options) SampleCount() int {
	m, level := o.Sampling()
	switch m {
	case SSAA:
		return level * level
	case MSAA:
		return level
	}
	return 1
}

// Domain is the canvas the pattern sees. Supersampling evaluates on a canvas
// level times larger so spatial parameters keep their meaning.
func (o Options) Domain() pattern.Domain {
	m, level := o.Sampling()
	if m == SSAA {
		return pattern.Domain{Size: o.Size.Scale(level), Scale: level}
	}
	return pattern.Domain{Size: o.Size, Scale: 1}
}

// AspectRatio is height/width.
func (o Options) AspectRatio() float64 {
	return float64(o.Size.Y) / float64(o.Size.X)
}

type sampler struct {
	mode      Mode
	level     int
	size      mathutil.Vec2
	aspect    float64
	transform Transform
}

func newSampler(o Options) sampler {
	m, level := o.Sampling()
	return sampler{
		mode:      m,
		level:     level,
		size:      o.Size.Float(),
		aspect:    o.AspectRatio(),
		transform: o.Transform,
	}
}

// project turns a position in output pixels into the uv a pattern sees:
// normalize, aspect-correct y, then the pivot transform.
func (s *sampler) project(p mathutil.Vec2) mathutil.Vec2 {
	uv := p.Div(s.size)
	uv.Y *= s.aspect
	return s.transform.Apply(uv, s.aspect)
}

func (s *sampler) appendUVs(dst []mathutil.Vec2, x, y int) []mathutil.Vec2 {
	switch s.mode {
	case SSAA:
		inv := 1 / float64(s.level)
		for subY := 0; subY < s.level; subY++ {
			for subX := 0; subX < s.level; subX++ {
				p := mathutil.Vec2{
					X: float64(x*s.level+subX) + 0.5,
					Y: float64(y*s.level+subY) + 0.5,
				}
				dst = append(dst, s.project(p.Scale(inv)))
			}
		}
	case MSAA:
		for i := 0; i < s.level; i++ {
			off := msaaOffsets[i]
			p := mathutil.Vec2{
				X: float64(x) + 0.5 + off.X,
				Y: float64(y) + 0.5 + off.Y,
			}
			dst = append(dst, s.project(p))
		}
	default:
		dst = append(dst, s.project(mathutil.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}))
	}
	return dst
}

// SampleUVs returns the pattern coordinates evaluated for pixel (x, y), in
// evaluation order.
func SampleUVs(o Options, x, y int) []mathutil.Vec2 {
	s := newSampler(o)
	return s.appendUVs(make([]mathutil.Vec2, 0, o.SampleCount()), x, y)
}

// Resolve evaluates p for every pixel and averages each pixel's samples.
// It fails only with ErrInvalidDimension, before allocating anything.
func Resolve(o Options, p pattern.Evaluator) (*Buffer, error) {
	buf, err := NewBuffer(o.Size.X, o.Size.Y)
	if err != nil {
		return nil, err
	}

	s := newSampler(o)
	d := o.Domain()
	n := o.SampleCount()

	ForEachBand(buf.Height, o.Workers, func(y0, y1 int) {
		uvs := make([]mathutil.Vec2, 0, n)
		for y := y0; y < y1; y++ {
			for x := 0; x < buf.Width; x++ {
				uvs = s.appendUVs(uvs[:0], x, y)
				var sum mathutil.Vec3
				for _, uv := range uvs {
					sum = sum.Add(p.Evaluate(uv, d))
				}
				buf.pix[buf.Index(x, y)] = sum.DivScalar(float64(len(uvs)))
			}
		}
	})

	return buf, nil
}
