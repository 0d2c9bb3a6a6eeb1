package raster

import (
	"image/color"
	"math"

	"github.com/gogpu/flatpaint/internal/trace"
)

// roundCoords is the number of decimals kept in traced coordinates.
const roundCoords = 5

// Vectorize traces every visible color of g and maps the contours into
// level space with pl. It returns one layer per color; later layers are
// painted over earlier ones.
func Vectorize(g *Grid, pl Placement) ([]trace.Layer, error) {
	opts := trace.DefaultOptions()
	opts.SkipColor = func(c color.NRGBA) bool { return !Visible(c) }

	layers, err := trace.Trace(g, opts)
	if err != nil {
		return nil, err
	}

	scale := math.Pow(10, roundCoords)
	place := func(p trace.Point) trace.Point {
		return trace.Point{
			X: math.Round((p.X*pl.SX+pl.TX)*scale) / scale,
			Y: math.Round((p.Y*pl.SY+pl.TY)*scale) / scale,
		}
	}
	for _, l := range layers {
		for ci := range l.Contours {
			c := &l.Contours[ci]
			c.Start = place(c.Start)
			for si := range c.Segments {
				s := &c.Segments[si]
				s.End = place(s.End)
				if s.Kind == trace.Cubic {
					s.C1, s.C2 = place(s.C1), place(s.C2)
				}
			}
		}
	}
	return layers, nil
}
