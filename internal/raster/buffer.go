package raster

import (
	"errors"
	"fmt"

	"pattern-renderer/internal/mathutil"
)

// ErrInvalidDimension reports a non-positive width or height.
var ErrInvalidDimension = errors.New("raster: invalid dimension")

// Buffer holds width×height colors as one flat row-major slice.
// All index arithmetic goes through Index.
type Buffer struct {
	Width  int
	Height int
	pix    []mathutil.Vec3
}

// CheckSize returns ErrInvalidDimension unless both sides are positive.
func CheckSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, w, h)
	}
	return nil
}

// NewBuffer allocates a black buffer. No allocation happens for invalid sizes.
func NewBuffer(w, h int) (*Buffer, error) {
	if err := CheckSize(w, h); err != nil {
		return nil, err
	}
	return &Buffer{
		Width:  w,
		Height: h,
		pix:    make([]mathutil.Vec3, w*h),
	}, nil
}

// Index returns y*Width + x. Callers check bounds with InBounds.
func (b *Buffer) Index(x, y int) int {
	return y*b.Width + x
}

func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// At returns black for out-of-range coordinates.
func (b *Buffer) At(x, y int) mathutil.Vec3 {
	if !b.InBounds(x, y) {
		return mathutil.Zero3
	}
	return b.pix[b.Index(x, y)]
}

// Set ignores out-of-range coordinates.
func (b *Buffer) Set(x, y int, c mathutil.Vec3) {
	if !b.InBounds(x, y) {
		return
	}
	b.pix[b.Index(x, y)] = c
}

func (b *Buffer) Size() mathutil.Vec2i {
	return mathutil.Vec2i{X: b.Width, Y: b.Height}
}

// Len is always Width*Height.
func (b *Buffer) Len() int {
	return len(b.pix)
}

// Pixels returns a copy of the colors in row-major order.
func (b *Buffer) Pixels() []mathutil.Vec3 {
	return append([]mathutil.Vec3(nil), b.pix...)
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c mathutil.Vec3) {
	for i := range b.pix {
		b.pix[i] = c
	}
}

func (b *Buffer) Clone() *Buffer {
	return &Buffer{Width: b.Width, Height: b.Height, pix: b.Pixels()}
}

// Equal reports whether both buffers have the same size and colors.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Width != o.Width || b.Height != o.Height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}
