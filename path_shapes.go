package flatpaint

import "math"

// kappa is the control point distance for approximating a quarter circle
// with a cubic Bezier: 4/3 * (sqrt(2) - 1).
const kappa = 0.5522847498307936

// Rect returns a closed clockwise rectangle path.
func Rect(b Bounds) *Path {
	return NewPath().
		MoveTo(b.Left(), b.Top()).
		LineTo(b.Right(), b.Top()).
		LineTo(b.Right(), b.Bottom()).
		LineTo(b.Left(), b.Bottom()).
		Close()
}

// Circle returns a closed clockwise circle made of four cubic arcs.
func Circle(c Point, r float64) *Path {
	p := NewPath()
	appendCircle(p, c, r)
	return p
}

func appendCircle(p *Path, c Point, r float64) {
	k := kappa * r
	p.MoveTo(c.X+r, c.Y)
	p.CubicTo(c.X+r, c.Y+k, c.X+k, c.Y+r, c.X, c.Y+r)
	p.CubicTo(c.X-k, c.Y+r, c.X-r, c.Y+k, c.X-r, c.Y)
	p.CubicTo(c.X-r, c.Y-k, c.X-k, c.Y-r, c.X, c.Y-r)
	p.CubicTo(c.X+k, c.Y-r, c.X+r, c.Y-k, c.X+r, c.Y)
	p.Close()
}

// Ring returns an annulus: the outer circle followed by the inner circle
// wound the opposite way. An inner radius of zero yields a plain circle.
func Ring(c Point, outer, inner float64) *Path {
	p := Circle(c, outer)
	if inner > 0 {
		p.Append(Circle(c, inner).Reversed())
	}
	return p
}

// IsoscelesTriangle returns the triangle inscribed in b with its apex at
// the top center and its base along the bottom edge.
func IsoscelesTriangle(b Bounds) *Path {
	return NewPath().
		MoveTo(b.Left(), b.Bottom()).
		LineTo(b.Center().X, b.Top()).
		LineTo(b.Right(), b.Bottom()).
		Close()
}

// TruncRingSector returns the four-vertex trapezoid spanning angles start
// to end (radians) between the outer and inner radius around c. Its long
// edges are chords, not arcs.
func TruncRingSector(c Point, outer, inner, start, end float64) *Path {
	s0, c0 := math.Sincos(start)
	s1, c1 := math.Sincos(end)
	return NewPath().
		MoveTo(c.X+outer*c0, c.Y+outer*s0).
		LineTo(c.X+outer*c1, c.Y+outer*s1).
		LineTo(c.X+inner*c1, c.Y+inner*s1).
		LineTo(c.X+inner*c0, c.Y+inner*s0).
		Close()
}
