package flatpaint

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// TransformKind classifies a matrix by the cheapest shape encoding that
// survives it.
type TransformKind int

const (
	// TransformIdentity leaves every point in place.
	TransformIdentity TransformKind = iota
	// TransformTranslate only moves points.
	TransformTranslate
	// TransformScaleTranslate scales each axis by a positive factor and moves.
	TransformScaleTranslate
	// TransformRotateTranslate rotates about the origin and moves, without scaling.
	TransformRotateTranslate
	// TransformGeneral is anything else: shear, reflection, rotation with scale.
	TransformGeneral
)

// String returns the kind name.
func (k TransformKind) String() string {
	switch k {
	case TransformIdentity:
		return "identity"
	case TransformTranslate:
		return "translate"
	case TransformScaleTranslate:
		return "scale+translate"
	case TransformRotateTranslate:
		return "rotate+translate"
	default:
		return "general"
	}
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// RotateAbout creates a rotation by angle radians around (cx, cy).
func RotateAbout(angle, cx, cy float64) Matrix {
	return Translate(cx, cy).Multiply(Rotate(angle)).Multiply(Translate(-cx, -cy))
}

// Shear creates a shear matrix.
func Shear(x, y float64) Matrix {
	return Matrix{A: 1, B: x, D: y, E: 1}
}

// Multiply returns m*other: the result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// ScaleFactors returns the lengths of the transformed unit axes.
func (m Matrix) ScaleFactors() (sx, sy float64) {
	return math.Hypot(m.A, m.D), math.Hypot(m.B, m.E)
}

// RotationDegrees returns the rotation of the x axis in degrees.
func (m Matrix) RotationDegrees() float64 {
	return math.Atan2(m.D, m.A) * 180 / math.Pi
}

// Classify reports which primitive-preserving family m belongs to.
//
// Negative scale factors are classified as general: a reflected triangle
// can not be re-expressed by bounds alone.
func (m Matrix) Classify() TransformKind {
	if near(m.B, 0) && near(m.D, 0) {
		if near(m.A, 1) && near(m.E, 1) {
			if near(m.C, 0) && near(m.F, 0) {
				return TransformIdentity
			}
			return TransformTranslate
		}
		if m.A > 0 && m.E > 0 {
			return TransformScaleTranslate
		}
	}
	if near(m.A*m.A+m.D*m.D, 1) && near(m.A, m.E) && near(m.B, -m.D) {
		return TransformRotateTranslate
	}
	return TransformGeneral
}

// FitRect returns the transform mapping src onto dst, scaling each axis
// independently.
func FitRect(src, dst Bounds) Matrix {
	sx, sy := 1.0, 1.0
	if src.W != 0 {
		sx = dst.W / src.W
	}
	if src.H != 0 {
		sy = dst.H / src.H
	}
	return Translate(dst.X, dst.Y).Multiply(Scale(sx, sy)).Multiply(Translate(-src.X, -src.Y))
}
