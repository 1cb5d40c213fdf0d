package pattern

import (
	"math"

	"pattern-renderer/internal/mathutil"
)

// circles draws concentric rings around the canvas center: black bands of
// thickness px separated by white gaps.
type circles struct {
	thickness float64
	gap       float64
}

func (c circles) Evaluate(uv mathutil.Vec2, d Domain) mathutil.Vec3 {
	s := scale(d)
	period := (c.thickness + c.gap) * s
	if period <= 0 {
		return mathutil.Zero3
	}

	center := d.Size.Float().Scale(0.5)
	dist := toDomain(uv, d).Sub(center).Len()
	if math.Mod(dist, period) > c.thickness*s {
		return mathutil.One3
	}
	return mathutil.Zero3
}
