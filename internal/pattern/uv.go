package pattern

import "pattern-renderer/internal/mathutil"

// uvPattern writes the coordinate itself into red and green.
type uvPattern struct{}

func (uvPattern) Evaluate(uv mathutil.Vec2, _ Domain) mathutil.Vec3 {
	return mathutil.Vec3{X: uv.X, Y: uv.Y}
}
