// Package raster turns pixel grids into solid-colored rectangles or traced
// regions.
//
// Three strategies share one quantized grid:
//   - Pixelate emits color runs as axis-aligned rectangles.
//   - Merge unions the rectangles of each color into one region.
//   - Vectorize traces each color's outline into curves.
//
// Prescale shrinks an image beforehand so that no pixel maps to less than
// the configured minimum size, which bounds the number of output shapes.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/flatpaint/internal/parallel"
	"github.com/gogpu/flatpaint/internal/trace"
)

// ExtraWidth is added to every side of an emitted rectangle so that
// neighbors overlap instead of leaving hairline seams.
const ExtraWidth = 0.0075

// MinVisibleAlpha is the alpha at or below which a pixel is skipped.
const MinVisibleAlpha = 2.55

// Grid is the quantized pixel grid every strategy consumes.
type Grid = trace.Grid

// Placement maps grid cells into level space: cell (x, y) covers
// [TX + x*SX, TX + (x+1)*SX] × [TY + y*SY, TY + (y+1)*SY].
type Placement struct {
	TX, TY float64
	SX, SY float64
}

// Rect is an axis-aligned rectangle in level space.
type Rect struct {
	X, Y, W, H float64
}

// Visible reports whether c is opaque enough to emit.
func Visible(c color.NRGBA) bool {
	return float64(c.A) > MinVisibleAlpha
}

// Quantize reduces each color channel to n steps; alpha is kept.
// n = 256 leaves every channel unchanged.
func Quantize(c color.NRGBA, n int) color.NRGBA {
	if n <= 0 {
		return c
	}
	q := func(v uint8) uint8 {
		step := math.Round(float64(v) / 255 * float64(n))
		return uint8(math.Round(step / float64(n) * 255))
	}
	return color.NRGBA{R: q(c.R), G: q(c.G), B: q(c.B), A: c.A}
}

// QuantizeImage converts img to a grid of quantized colors. Rows are
// processed in parallel on pool when it is non-nil; every row lands in its
// own slot, so the grid is in row order either way.
func QuantizeImage(img image.Image, colorCount int, pool *parallel.WorkerPool) *Grid {
	b := img.Bounds()
	g := trace.NewGrid(b.Dx(), b.Dy())

	rows := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < g.Width; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				g.Set(x, y, Quantize(c, colorCount))
			}
		}
	}

	if pool == nil {
		rows(0, g.Height)
	} else {
		pool.Rows(g.Height, rows)
	}
	return g
}
