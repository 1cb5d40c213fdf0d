package raster

import "pattern-renderer/internal/mathutil"

// Transform rotates sample coordinates about a pivot before evaluation.
// The zero value is the identity.
type Transform struct {
	Enabled  bool
	Rotation mathutil.Mat2
	Pivot    mathutil.Vec2
}

// Rotate builds a Transform turning by angleDeg degrees about pivot.
// Pivot is in normalized, not aspect-corrected, UV.
func Rotate(angleDeg float64, pivot mathutil.Vec2) Transform {
	return Transform{
		Enabled:  true,
		Rotation: mathutil.Rotation2(mathutil.Deg2Rad(angleDeg)),
		Pivot:    pivot,
	}
}

// Apply maps an aspect-corrected uv. The pivot is aspect-corrected on the way
// in and the raw pivot is added back on the way out.
func (t Transform) Apply(uv mathutil.Vec2, aspect float64) mathutil.Vec2 {
	if !t.Enabled {
		return uv
	}
	uv = uv.Sub(mathutil.Vec2{X: t.Pivot.X, Y: t.Pivot.Y * aspect})
	uv = t.Rotation.MulVec(uv)
	return uv.Add(t.Pivot)
}
