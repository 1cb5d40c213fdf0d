package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Thumbnail scales img so its longer side is maxSide pixels, keeping the
// aspect ratio. Images that already fit are returned as is.
func Thumbnail(img *image.NRGBA, maxSide int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	tw, th := maxSide, maxSide
	if w >= h {
		th = max(1, h*maxSide/w)
	} else {
		tw = max(1, w*maxSide/h)
	}

	// Opaque input, so no premultiply pass is needed before filtering.
	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
