package flatpaint

import "math"

// ArcTo appends an elliptical arc from the current point to (x, y), with
// the endpoint parameterization SVG path data uses. rotation is the angle
// of the ellipse x axis in radians. Radii too small to reach the endpoint
// are scaled up; a zero radius draws a line.
func (p *Path) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) *Path {
	x0, y0 := p.current.X, p.current.Y
	if near(x0, x) && near(y0, y) {
		return p
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return p.LineTo(x, y)
	}

	sinPhi, cosPhi := math.Sincos(rotation)
	dx2, dy2 := (x0-x)/2, (y0-y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den > 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	cx := cosPhi*cxp - sinPhi*cyp + (x0+x)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y0+y)/2

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta := vectorAngle(1, 0, ux, uy)
	delta := vectorAngle(ux, uy, vx, vy)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	// Split into segments of at most 90 degrees.
	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	step := delta / float64(n)
	alpha := math.Sin(step) * (math.Sqrt(4+3*math.Tan(step/2)*math.Tan(step/2)) - 1) / 3

	toPath := func(u, v float64) Point {
		return Point{
			X: cx + cosPhi*rx*u - sinPhi*ry*v,
			Y: cy + sinPhi*rx*u + cosPhi*ry*v,
		}
	}
	for i := 0; i < n; i++ {
		a1 := theta + float64(i)*step
		a2 := a1 + step
		s1, c1 := math.Sincos(a1)
		s2, c2 := math.Sincos(a2)
		ctrl1 := toPath(c1-alpha*s1, s1+alpha*c1)
		ctrl2 := toPath(c2+alpha*s2, s2-alpha*c2)
		end := toPath(c2, s2)
		if i == n-1 {
			end = Point{X: x, Y: y}
		}
		p.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, end.X, end.Y)
	}
	return p
}

// vectorAngle returns the signed angle from u to v.
func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}

// Current returns the point the next segment starts from.
func (p *Path) Current() Point {
	if p == nil {
		return Point{}
	}
	return p.current
}

// RoundedRect returns a closed rectangle whose corners are elliptical arcs
// of radii rx and ry, clamped to half the side lengths.
func RoundedRect(b Bounds, rx, ry float64) *Path {
	rx = math.Min(math.Abs(rx), b.W/2)
	ry = math.Min(math.Abs(ry), b.H/2)
	if rx == 0 || ry == 0 {
		return Rect(b)
	}
	return NewPath().
		MoveTo(b.Left()+rx, b.Top()).
		LineTo(b.Right()-rx, b.Top()).
		ArcTo(rx, ry, 0, false, true, b.Right(), b.Top()+ry).
		LineTo(b.Right(), b.Bottom()-ry).
		ArcTo(rx, ry, 0, false, true, b.Right()-rx, b.Bottom()).
		LineTo(b.Left()+rx, b.Bottom()).
		ArcTo(rx, ry, 0, false, true, b.Left(), b.Bottom()-ry).
		LineTo(b.Left(), b.Top()+ry).
		ArcTo(rx, ry, 0, false, true, b.Left()+rx, b.Top()).
		Close()
}

// Ellipse returns a closed ellipse centered on c.
func Ellipse(c Point, rx, ry float64) *Path {
	return Circle(Point{}, 1).Transform(Translate(c.X, c.Y).Multiply(Scale(rx, ry)))
}
