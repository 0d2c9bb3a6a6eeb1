// Package trace converts a color grid into outline contours, one layer per
// distinct color, using potrace.
//
// Layers are stacked: the mask of a color covers its own pixels and those of
// every color after it, so painting the layers in order leaves no seams
// where smoothed outlines of neighboring colors would otherwise disagree.
// Coordinates are in grid units with pixel (x, y) covering
// [x, x+1] × [y, y+1].
package trace

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/dennwc/gotrace"
)

// Grid is a row-major pixel grid.
type Grid struct {
	Width, Height int
	Pix           []color.NRGBA
}

// NewGrid allocates a transparent grid.
func NewGrid(w, h int) *Grid {
	return &Grid{Width: w, Height: h, Pix: make([]color.NRGBA, w*h)}
}

// At returns the pixel at (x, y).
func (g *Grid) At(x, y int) color.NRGBA {
	return g.Pix[y*g.Width+x]
}

// Set stores the pixel at (x, y).
func (g *Grid) Set(x, y int, c color.NRGBA) {
	g.Pix[y*g.Width+x] = c
}

// Point is a traced coordinate.
type Point struct {
	X, Y float64
}

// SegmentKind tells straight segments from curved ones.
type SegmentKind int

const (
	Line SegmentKind = iota
	Cubic
)

// Segment continues a contour to End. C1 and C2 are set for Cubic segments
// only.
type Segment struct {
	Kind   SegmentKind
	C1, C2 Point
	End    Point
}

// Contour is a closed outline; the last segment ends at Start.
type Contour struct {
	Start    Point
	Segments []Segment
}

// Layer holds every contour of one color. Holes are separate contours and
// the layer is filled even-odd.
type Layer struct {
	Color    color.NRGBA
	Contours []Contour
}

// Options tune the tracer.
type Options struct {
	// TurdSize drops contours enclosing at most this many pixels.
	TurdSize int

	// AlphaMax is potrace's corner threshold; 0 keeps every corner sharp.
	AlphaMax float64

	// OptTolerance bounds curve merging; negative disables it.
	OptTolerance float64

	// SkipColor reports colors that get no layer, such as invisible ones.
	SkipColor func(color.NRGBA) bool
}

// DefaultOptions returns the options used for raster vectorization.
func DefaultOptions() Options {
	return Options{
		TurdSize:     0,
		AlphaMax:     gotrace.Defaults.AlphaMax,
		OptTolerance: gotrace.Defaults.OptTolerance,
	}
}

// maxColors is the number of palette entries the index image can hold.
const maxColors = math.MaxUint16 - 1

// Trace outlines every color of g. Layers come in first-appearance order of
// their color in row-major scan; colors whose contours are all dropped get
// no layer. Colors past maxColors are traced with the last palette entry.
func Trace(g *Grid, opts Options) ([]Layer, error) {
	if g == nil || g.Width <= 0 || g.Height <= 0 {
		return nil, nil
	}

	index, colors := paletteIndex(g, opts.SkipColor)

	params := gotrace.Defaults
	params.TurdSize = opts.TurdSize
	params.AlphaMax = opts.AlphaMax
	params.OptiCurve = opts.OptTolerance >= 0
	params.OptTolerance = max(0, opts.OptTolerance)

	var layers []Layer
	for k, c := range colors {
		bm := gotrace.NewBitmapFromImage(index, func(_, _ int, v color.Color) bool {
			r, _, _, _ := v.RGBA()
			return int(r) > k
		})
		paths, err := gotrace.Trace(bm, &params)
		if err != nil {
			return nil, fmt.Errorf("trace color %v: %w", c, err)
		}
		contours := collect(paths, nil, map[pathKey]bool{})
		if len(contours) > 0 {
			layers = append(layers, Layer{Color: c, Contours: contours})
		}
	}
	return layers, nil
}

// paletteIndex maps every pixel to 1 + the index of its color in
// first-appearance order, or 0 when the color is skipped.
func paletteIndex(g *Grid, skip func(color.NRGBA) bool) (*image.Gray16, []color.NRGBA) {
	index := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	seen := map[color.NRGBA]int{}
	var colors []color.NRGBA
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			if skip != nil && skip(c) {
				continue
			}
			i, ok := seen[c]
			if !ok {
				i = min(len(colors), maxColors-1)
				if len(colors) < maxColors {
					colors = append(colors, c)
				}
				seen[c] = i
			}
			index.SetGray16(x, y, color.Gray16{Y: uint16(i + 1)})
		}
	}
	return index, colors
}

// pathKey identifies a traced path independent of where the tree lists it.
type pathKey struct {
	sign, n int
	start   gotrace.Point
}

// collect flattens the path tree into contours. Children are walked too; a
// path reached twice is kept once.
func collect(paths []gotrace.Path, out []Contour, seen map[pathKey]bool) []Contour {
	for _, p := range paths {
		if n := len(p.Curve); n > 0 {
			key := pathKey{sign: p.Sign, n: n, start: p.Curve[n-1].Pnt[2]}
			if !seen[key] {
				seen[key] = true
				out = append(out, contour(p.Curve))
			}
		}
		out = collect(p.Childs, out, seen)
	}
	return out
}

func contour(curve []gotrace.Segment) Contour {
	pt := func(p gotrace.Point) Point { return Point{X: p.X, Y: p.Y} }
	c := Contour{
		Start:    pt(curve[len(curve)-1].Pnt[2]),
		Segments: make([]Segment, 0, len(curve)),
	}
	for _, s := range curve {
		switch s.Type {
		case gotrace.TypeCorner:
			c.Segments = append(c.Segments,
				Segment{Kind: Line, End: pt(s.Pnt[1])},
				Segment{Kind: Line, End: pt(s.Pnt[2])})
		default:
			c.Segments = append(c.Segments, Segment{Kind: Cubic, C1: pt(s.Pnt[0]), C2: pt(s.Pnt[1]), End: pt(s.Pnt[2])})
		}
	}
	return c
}
