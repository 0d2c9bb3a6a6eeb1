package raster

import "image/color"

// Pixelate scans g in row-major order and emits every run of equal visible
// colors as up to three rectangles: the partial row the run starts in, one
// tall rectangle for the full rows it spans and the partial row it ends in.
// Invisible pixels end the current run and are never emitted.
func Pixelate(g *Grid, pl Placement, emit func(Rect, color.NRGBA)) {
	var (
		runX, runY, runN int
		runColor         color.NRGBA
	)
	flush := func() {
		if runN > 0 {
			emitRun(g.Width, pl, runX, runY, runN, runColor, emit)
			runN = 0
		}
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			switch {
			case !Visible(c):
				flush()
			case runN > 0 && c == runColor:
				runN++
			default:
				flush()
				runX, runY, runN, runColor = x, y, 1, c
			}
		}
	}
	flush()
}

// emitRun splits a run of n cells starting at (x, y) on a grid w cells wide.
func emitRun(w int, pl Placement, x, y, n int, c color.NRGBA, emit func(Rect, color.NRGBA)) {
	cells := func(cx, cy, cw, ch int) {
		emit(Rect{
			X: pl.TX + float64(cx)*pl.SX - ExtraWidth,
			Y: pl.TY + float64(cy)*pl.SY - ExtraWidth,
			W: float64(cw)*pl.SX + 2*ExtraWidth,
			H: float64(ch)*pl.SY + 2*ExtraWidth,
		}, c)
	}

	if x != 0 || n < w {
		k := min(n, w-x)
		cells(x, y, k, 1)
		n -= k
		y++
	}
	if lines := n / w; lines > 0 {
		cells(0, y, w, lines)
		n -= lines * w
		y += lines
	}
	if n > 0 {
		cells(0, y, n, 1)
	}
}

// Region is the merged shape of one color.
type Region[T any] struct {
	Color color.NRGBA
	Shape T
}

// Merge pixelates g and folds the rectangles of each color into one shape
// with union. leaf converts a rectangle into the shape type. Regions come
// in order of first appearance of their color.
func Merge[T any](g *Grid, pl Placement, leaf func(Rect) T, union func(T, T) T) []Region[T] {
	index := make(map[color.NRGBA]int)
	var regions []Region[T]

	Pixelate(g, pl, func(r Rect, c color.NRGBA) {
		shape := leaf(r)
		i, ok := index[c]
		if !ok {
			index[c] = len(regions)
			regions = append(regions, Region[T]{Color: c, Shape: shape})
			return
		}
		regions[i].Shape = union(regions[i].Shape, shape)
	})
	return regions
}
