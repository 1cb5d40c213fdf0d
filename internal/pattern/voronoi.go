package pattern

import (
	"math"
	"math/rand/v2"

	"pattern-renderer/internal/mathutil"
)

// voronoi colors each cell by the position of its nearest site.
// Sites live in output pixels and are scaled to the sampling domain so a
// given seed draws the same cells at every sampling density.
type voronoi struct {
	size  mathutil.Vec2i
	sites []mathutil.Vec2
}

func newVoronoi(size mathutil.Vec2i, n int, seed uint64) *voronoi {
	v := &voronoi{size: size}
	if n <= 0 || size.X <= 0 || size.Y <= 0 {
		return v
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	v.sites = make([]mathutil.Vec2, n)
	for i := range v.sites {
		v.sites[i] = mathutil.Vec2{
			X: float64(rng.IntN(size.X)),
			Y: float64(rng.IntN(size.Y)),
		}
	}
	return v
}

func (v *voronoi) Evaluate(uv mathutil.Vec2, d Domain) mathutil.Vec3 {
	if len(v.sites) == 0 {
		return mathutil.Zero3
	}

	s := scale(d)
	pos := toDomain(uv, d)

	closest := v.sites[0]
	minDist := math.MaxFloat64
	for _, p := range v.sites {
		dist := pos.Sub(p.Scale(s)).Len()
		if dist < minDist {
			minDist = dist
			closest = p
		}
	}

	return mathutil.Vec3{
		X: closest.X / float64(v.size.X),
		Y: closest.Y / float64(v.size.Y),
	}
}
