package pattern

import (
	"math"

	"pattern-renderer/internal/mathutil"
)

const defaultTileSize = 10.0

type checkerboard struct {
	tile float64
}

func newCheckerboard(tile float64) checkerboard {
	if tile <= 0 {
		tile = defaultTileSize
	}
	return checkerboard{tile: tile}
}

// Evaluate returns white on odd cells and black on even ones.
func (c checkerboard) Evaluate(uv mathutil.Vec2, d Domain) mathutil.Vec3 {
	step := c.tile * scale(d)
	pos := toDomain(uv, d)

	cx := int(math.Floor(pos.X / step))
	cy := int(math.Floor(pos.Y / step))
	if (cx+cy)&1 == 1 {
		return mathutil.One3
	}
	return mathutil.Zero3
}
