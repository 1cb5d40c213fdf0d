package raster

import "pattern-renderer/internal/mathutil"

// msaaOffsets is the fixed sub-pixel pattern shared by every MSAA level.
// Level k uses the first k entries.
var msaaOffsets = [MaxLevel]mathutil.Vec2{
	{X: -0.3125, Y: -0.4375}, {X: 0.1875, Y: -0.3125},
	{X: 0.4375, Y: -0.0625}, {X: 0.0625, Y: 0.1875},
	{X: -0.4375, Y: 0.0625}, {X: -0.0625, Y: 0.3125},
	{X: -0.1875, Y: 0.4375}, {X: 0.3125, Y: 0.0625},
}

// MSAAOffset returns table entry i, relative to the pixel center.
// i must be in [0, MaxLevel).
func MSAAOffset(i int) mathutil.Vec2 {
	return msaaOffsets[i]
}
