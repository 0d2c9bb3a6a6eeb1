package flatpaint

import (
	polyclip "github.com/akavel/polyclip-go"
)

// BooleanTolerance is the flattening tolerance applied to curves before a
// boolean operation.
const BooleanTolerance = 0.1

// Intersect returns the region covered by both a and b. Disjoint or
// degenerate inputs yield an empty path, never an error.
//
// Results are polygonal: curves are flattened with BooleanTolerance and the
// result follows the even-odd rule.
func Intersect(a, b *Path) *Path {
	if a.IsDegenerate() || b.IsDegenerate() {
		return NewPath()
	}
	if !a.Bounds().Overlaps(b.Bounds()) {
		return NewPath()
	}
	return construct(polyclip.INTERSECTION, a, b)
}

// Union returns the region covered by a or b. A degenerate operand is
// ignored; the other one is returned unchanged.
func Union(a, b *Path) *Path {
	switch {
	case a.IsDegenerate() && b.IsDegenerate():
		return NewPath()
	case a.IsDegenerate():
		return b.Clone()
	case b.IsDegenerate():
		return a.Clone()
	}
	return construct(polyclip.UNION, a, b)
}

// UnionAll folds Union over paths in order.
func UnionAll(paths []*Path) *Path {
	acc := NewPath()
	for _, p := range paths {
		acc = Union(acc, p)
	}
	return acc
}

func construct(op polyclip.Op, a, b *Path) *Path {
	result := toPolygon(a).Construct(op, toPolygon(b))
	contours := make([][]Point, 0, len(result))
	for _, c := range result {
		pts := make([]Point, len(c))
		for i, pt := range c {
			pts[i] = Point{X: pt.X, Y: pt.Y}
		}
		contours = append(contours, pts)
	}
	return PathFromContours(contours)
}

func toPolygon(p *Path) polyclip.Polygon {
	contours := p.Contours(BooleanTolerance)
	poly := make(polyclip.Polygon, 0, len(contours))
	for _, c := range contours {
		contour := make(polyclip.Contour, len(c))
		for i, pt := range c {
			contour[i] = polyclip.Point{X: pt.X, Y: pt.Y}
		}
		poly = append(poly, contour)
	}
	return poly
}
