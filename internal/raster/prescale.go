package raster

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Prescale returns img resampled so that, stretched over an anchorW×anchorH
// area, no pixel is smaller than pixelSize on either axis, plus the final
// per-axis pixel sizes. When the smaller axis falls short it is grown to
// pixelSize and the other axis grows proportionally. An image that already
// meets the minimum is returned as is.
//
// smooth selects Catmull-Rom resampling; otherwise nearest neighbor keeps
// colors exact.
func Prescale(img image.Image, anchorW, anchorH, pixelSize float64, smooth bool) (out image.Image, sx, sy float64) {
	b := img.Bounds()
	if b.Empty() {
		return img, 0, 0
	}
	sx = anchorW / float64(b.Dx())
	sy = anchorH / float64(b.Dy())

	smallest := math.Min(sx, sy)
	if smallest >= pixelSize || smallest <= 0 {
		return img, sx, sy
	}

	if sx <= sy {
		sy *= pixelSize / smallest
		sx = pixelSize
	} else {
		sx *= pixelSize / smallest
		sy = pixelSize
	}

	w := max(1, int(math.Round(anchorW/sx)))
	h := max(1, int(math.Round(anchorH/sy)))

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if smooth {
		scaler = xdraw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)

	return dst, anchorW / float64(w), anchorH / float64(h)
}
