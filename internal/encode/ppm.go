package encode

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"
)

// WritePPM writes the RGB channels of img as a binary P6 or, with ascii, a
// plain P3 Netpbm file with maxval 255.
func WritePPM(w io.Writer, img *image.NRGBA, ascii bool) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("encode: empty image %dx%d", width, height)
	}

	bw := bufio.NewWriter(w)
	magic := "P6"
	if ascii {
		magic = "P3"
	}
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, width, height)

	var num []byte
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < width; x++ {
			px := row[x*4 : x*4+3]
			if !ascii {
				bw.Write(px)
				continue
			}
			for _, v := range px {
				num = strconv.AppendUint(num[:0], uint64(v), 10)
				num = append(num, ' ')
				bw.Write(num)
			}
		}
	}
	return bw.Flush()
}
