package flatpaint

import "math"

// Path operations for area, orientation, bounds, flattening and reversal.

// Area returns the signed area enclosed by the path.
// Positive for clockwise paths (y axis pointing down), negative for
// counter-clockwise. Open sub-contours are closed implicitly.
func (p *Path) Area() float64 {
	var area float64
	var current, start Point
	open := false

	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			if open {
				area += lineArea(current, start)
			}
			start = e.Point
			current = e.Point
			open = true
		case LineTo:
			area += lineArea(current, e.Point)
			current = e.Point
		case QuadTo:
			area += quadArea(current, e.Control, e.Point)
			current = e.Point
		case CubicTo:
			area += cubicArea(current, e.Control1, e.Control2, e.Point)
			current = e.Point
		case Close:
			area += lineArea(current, start)
			current = start
			open = false
		}
	}
	if open {
		area += lineArea(current, start)
	}

	return area
}

// lineArea is the shoelace term 0.5 * (x0*y1 - x1*y0).
func lineArea(p0, p1 Point) float64 {
	return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
}

// quadArea integrates x*dy along a quadratic Bezier.
func quadArea(p0, p1, p2 Point) float64 {
	return (p0.X*(2*p1.Y+p2.Y) + p1.X*(-p0.Y+p2.Y) + p2.X*(-2*p1.Y-p0.Y)) / 6.0
}

// cubicArea integrates x*dy along a cubic Bezier (Green's theorem).
func cubicArea(p0, p1, p2, p3 Point) float64 {
	return (p0.X*(6*p1.Y+3*p2.Y+p3.Y) +
		3*p1.X*(-2*p0.Y+p2.Y+p3.Y) +
		3*p2.X*(-p0.Y-p1.Y+2*p3.Y) +
		p3.X*(-p0.Y-3*p1.Y-6*p2.Y)) / 20.0
}

// IsClockwise reports whether the path winds clockwise on screen.
func (p *Path) IsClockwise() bool {
	return p.Area() > 0
}

// Bounds returns the axis-aligned bounds of every coordinate in the path,
// curve control points included. The result is conservative for curves.
func (p *Path) Bounds() Bounds {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(pt Point) {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}

	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			grow(e.Point)
		case LineTo:
			grow(e.Point)
		case QuadTo:
			grow(e.Control)
			grow(e.Point)
		case CubicTo:
			grow(e.Control1)
			grow(e.Control2)
			grow(e.Point)
		}
	}

	if math.IsInf(minX, 1) {
		return Bounds{}
	}
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Flatten returns a copy of the path with every curve replaced by line
// segments deviating at most tolerance from it. Sub-contour structure and
// Close elements are kept.
func (p *Path) Flatten(tolerance float64) *Path {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	tolSq := tolerance * tolerance
	result := NewPath()
	line := func(pt Point) { result.LineTo(pt.X, pt.Y) }

	var current Point
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			result.MoveTo(e.Point.X, e.Point.Y)
			current = e.Point
		case LineTo:
			line(e.Point)
			current = e.Point
		case QuadTo:
			flattenQuad(QuadBez{P0: current, P1: e.Control, P2: e.Point}, tolSq, 0, line)
			current = e.Point
		case CubicTo:
			flattenCubic(CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}, tolSq, 0, line)
			current = e.Point
		case Close:
			result.Close()
			current = result.current
		}
	}
	return result
}

// Contours flattens the path and returns one polyline per sub-contour.
// Every contour is implicitly closed; contours with fewer than three
// points are skipped.
func (p *Path) Contours(tolerance float64) [][]Point {
	var contours [][]Point
	var cur []Point
	flush := func() {
		if len(cur) > 1 && cur[0].Near(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}
		if len(cur) >= 3 {
			contours = append(contours, cur)
		}
		cur = nil
	}

	for _, elem := range p.Flatten(tolerance).Elements() {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			cur = append(cur, e.Point)
		case LineTo:
			if len(cur) == 0 || !cur[len(cur)-1].Near(e.Point) {
				cur = append(cur, e.Point)
			}
		case Close:
			flush()
		}
	}
	flush()
	return contours
}

// PathFromContours builds a closed path from polylines.
func PathFromContours(contours [][]Point) *Path {
	p := NewPath()
	for _, c := range contours {
		if len(c) < 3 {
			continue
		}
		p.MoveTo(c[0].X, c[0].Y)
		for _, pt := range c[1:] {
			p.LineTo(pt.X, pt.Y)
		}
		p.Close()
	}
	return p
}

// Contains tests if a point is inside the path using the even-odd fill
// rule, the rule boolean results are expressed in.
func (p *Path) Contains(pt Point) bool {
	inside := false
	for _, c := range p.Contours(0.1) {
		for i := range c {
			a, b := c[i], c[(i+1)%len(c)]
			if (a.Y > pt.Y) != (b.Y > pt.Y) &&
				pt.X < a.X+(pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y) {
				inside = !inside
			}
		}
	}
	return inside
}

// Reversed returns a new path with reversed direction.
// Each subpath is reversed independently.
func (p *Path) Reversed() *Path {
	result := NewPath()
	for _, sp := range p.collectSubpaths() {
		reverseSubpath(sp, result)
	}
	return result
}

// subpath represents a single subpath with its elements and closure state.
type subpath struct {
	elements []PathElement
	closed   bool
}

// collectSubpaths splits the path into separate subpaths.
func (p *Path) collectSubpaths() []subpath {
	var subpaths []subpath
	var current subpath

	for _, elem := range p.Elements() {
		switch elem.(type) {
		case MoveTo:
			if len(current.elements) > 0 {
				subpaths = append(subpaths, current)
			}
			current = subpath{elements: []PathElement{elem}}
		case Close:
			current.closed = true
			subpaths = append(subpaths, current)
			current = subpath{}
		default:
			current.elements = append(current.elements, elem)
		}
	}

	if len(current.elements) > 0 {
		subpaths = append(subpaths, current)
	}

	return subpaths
}

// reverseSubpath reverses a single subpath and appends to result.
func reverseSubpath(sp subpath, result *Path) {
	if len(sp.elements) == 0 {
		return
	}

	end := endPoint(sp.elements[len(sp.elements)-1])
	result.MoveTo(end.X, end.Y)

	for i := len(sp.elements) - 1; i >= 1; i-- {
		prev := endPoint(sp.elements[i-1])

		switch e := sp.elements[i].(type) {
		case LineTo:
			result.LineTo(prev.X, prev.Y)
		case QuadTo:
			result.QuadraticTo(e.Control.X, e.Control.Y, prev.X, prev.Y)
		case CubicTo:
			result.CubicTo(e.Control2.X, e.Control2.Y, e.Control1.X, e.Control1.Y, prev.X, prev.Y)
		}
	}

	if sp.closed {
		result.Close()
	}
}

// endPoint returns the on-curve point an element ends at.
func endPoint(elem PathElement) Point {
	switch e := elem.(type) {
	case MoveTo:
		return e.Point
	case LineTo:
		return e.Point
	case QuadTo:
		return e.Point
	case CubicTo:
		return e.Point
	}
	return Point{}
}
