package flatpaint

import "math"

// Bounds is an axis-aligned rectangle given by its top-left corner and size.
// Width and height are never negative; zero-area bounds are valid and mark
// degenerate geometry.
type Bounds struct {
	X, Y, W, H float64
}

// BoundsAround returns bounds of size w×h centered on c.
func BoundsAround(c Point, w, h float64) Bounds {
	return Bounds{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (b Bounds) Left() float64   { return b.X }
func (b Bounds) Right() float64  { return b.X + b.W }
func (b Bounds) Top() float64    { return b.Y }
func (b Bounds) Bottom() float64 { return b.Y + b.H }

// Center returns the center point.
func (b Bounds) Center() Point {
	return Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Area returns W*H.
func (b Bounds) Area() float64 {
	return b.W * b.H
}

// IsEmpty reports whether the bounds enclose no area.
func (b Bounds) IsEmpty() bool {
	return b.W <= 0 || b.H <= 0
}

// Overlaps reports whether the two rectangles share interior area.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.X < o.Right() && o.X < b.Right() &&
		b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Union returns the smallest bounds containing both.
func (b Bounds) Union(o Bounds) Bounds {
	x0 := math.Min(b.X, o.X)
	y0 := math.Min(b.Y, o.Y)
	x1 := math.Max(b.Right(), o.Right())
	y1 := math.Max(b.Bottom(), o.Bottom())
	return Bounds{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Intersect returns the shared area, or zero bounds if they are disjoint.
func (b Bounds) Intersect(o Bounds) Bounds {
	x0 := math.Max(b.X, o.X)
	y0 := math.Max(b.Y, o.Y)
	x1 := math.Min(b.Right(), o.Right())
	y1 := math.Min(b.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Bounds{}
	}
	return Bounds{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ContainsBounds reports whether o lies inside b, within nearEpsilon.
func (b Bounds) ContainsBounds(o Bounds) bool {
	return o.X >= b.X-nearEpsilon && o.Y >= b.Y-nearEpsilon &&
		o.Right() <= b.Right()+nearEpsilon && o.Bottom() <= b.Bottom()+nearEpsilon
}
