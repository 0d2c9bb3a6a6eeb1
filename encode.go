package flatpaint

import (
	"fmt"
	"math"
	"strings"
)

const (
	// minEncodedArea is the bounds area below which a path is scaled up
	// about its center before encoding; the game discards smaller paths.
	minEncodedArea = 20.0

	// minVertexDistSq is the squared distance a vertex must keep from the
	// previous one.
	minVertexDistSq = 0.005
)

// Vertex is one node of an encoded path. Left and Right are absolute
// Bezier handles for the incoming and outgoing segment; nil means the
// segment is straight at this end.
type Vertex struct {
	Point Point
	Left  *Point
	Right *Point
}

// IsStraight reports whether neither handle bends a segment.
func (v Vertex) IsStraight() bool {
	return (v.Left == nil || v.Left.Near(v.Point)) && (v.Right == nil || v.Right.Near(v.Point))
}

// EncodedPath is a path in the vertex/node form levels store: one closed
// loop of vertices with optional handles.
//
// Bounds covers the on-curve points of the source path and is what the
// shape is placed and filtered by. Vertices are stored absolute; they are
// written relative to the bounds center.
type EncodedPath struct {
	Bounds   Bounds
	Vertices []Vertex
}

// EncodePath converts p into vertex form. Sub-contours after the first are
// joined to it by a bridge back to the first point.
func EncodePath(p *Path) *EncodedPath {
	b := onCurveBounds(p)
	src := p
	if area := b.Area(); area > 0 && area <= minEncodedArea {
		c := b.Center()
		k := minEncodedArea / area
		src = p.Transform(Translate(c.X, c.Y).Multiply(Scale(k, k)).Multiply(Translate(-c.X, -c.Y)))
	}

	var enc encoder
	for _, elem := range src.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			if enc.started {
				enc.close()
				enc.closed = false
			} else {
				enc.first = e.Point
				enc.started = true
			}
			enc.lastMove = e.Point
			enc.add(e.Point)
		case LineTo:
			enc.add(e.Point)
		case QuadTo:
			enc.setRight(e.Control)
			enc.add(e.Point)
		case CubicTo:
			enc.setRight(e.Control1)
			enc.add(e.Point)
			c2 := e.Control2
			enc.nodes[len(enc.nodes)-1].Left = &c2
		case Close:
			enc.close()
		}
	}
	if enc.started {
		enc.close()
	}

	nodes := enc.nodes
	if n := len(nodes); n > 1 && nodes[n-1].Point.Near(nodes[0].Point) {
		if nodes[0].Left == nil {
			nodes[0].Left = nodes[n-1].Left
		}
		nodes = nodes[:n-1]
	}
	for i := range nodes {
		v := &nodes[i]
		if v.Left != nil && v.Left.Near(v.Point) {
			v.Left = nil
		}
		if v.Right != nil && v.Right.Near(v.Point) {
			v.Right = nil
		}
	}

	return &EncodedPath{Bounds: b, Vertices: nodes}
}

type encoder struct {
	nodes    []Vertex
	first    Point
	lastMove Point
	started  bool
	closed   bool
}

func (e *encoder) add(pt Point) {
	if n := len(e.nodes); n == 0 || e.nodes[n-1].Point.DistanceSquared(pt) > minVertexDistSq {
		e.nodes = append(e.nodes, Vertex{Point: pt})
	}
}

func (e *encoder) setRight(ctrl Point) {
	if n := len(e.nodes); n > 0 {
		e.nodes[n-1].Right = &ctrl
	}
}

// close returns to the current sub-contour's start and then to the first
// point of the path, once per sub-contour.
func (e *encoder) close() {
	if !e.closed {
		e.add(e.lastMove)
		e.add(e.first)
	}
	e.closed = true
}

// onCurveBounds returns the bounds of the points segments end at; curve
// handles are not included.
func onCurveBounds(p *Path) Bounds {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, elem := range p.Elements() {
		if _, ok := elem.(Close); ok {
			continue
		}
		pt := endPoint(elem)
		minX, minY = math.Min(minX, pt.X), math.Min(minY, pt.Y)
		maxX, maxY = math.Max(maxX, pt.X), math.Max(maxY, pt.Y)
	}
	if math.IsInf(minX, 1) {
		return Bounds{}
	}
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Path rebuilds a closed path from the vertices. A segment is a cubic
// when either of its ends has a handle, a line otherwise.
func (e *EncodedPath) Path() *Path {
	p := NewPath()
	if len(e.Vertices) == 0 {
		return p
	}
	segment := func(a, b Vertex) {
		if a.Right == nil && b.Left == nil {
			p.LineTo(b.Point.X, b.Point.Y)
			return
		}
		c1, c2 := a.Point, b.Point
		if a.Right != nil {
			c1 = *a.Right
		}
		if b.Left != nil {
			c2 = *b.Left
		}
		p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, b.Point.X, b.Point.Y)
	}

	vs := e.Vertices
	p.MoveTo(vs[0].Point.X, vs[0].Point.Y)
	for i := 1; i < len(vs); i++ {
		segment(vs[i-1], vs[i])
	}
	segment(vs[len(vs)-1], vs[0])
	return p.Close()
}

// Format returns the vertex strings of the level format: "x_y" for a
// straight vertex, "x_y_lx_ly_rx_ry" otherwise. Points are relative to
// the bounds center and handles relative to their point.
func (e *EncodedPath) Format() []string {
	c := e.Bounds.Center()
	out := make([]string, len(e.Vertices))
	for i, v := range e.Vertices {
		p := v.Point.Sub(c)
		if v.IsStraight() {
			out[i] = formatCoords(p.X, p.Y)
			continue
		}
		var l, r Point
		if v.Left != nil {
			l = v.Left.Sub(v.Point)
		}
		if v.Right != nil {
			r = v.Right.Sub(v.Point)
		}
		out[i] = formatCoords(p.X, p.Y, l.X, l.Y, r.X, r.Y)
	}
	return out
}

// formatCoords joins values printed with three decimals by underscores.
func formatCoords(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, "_")
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
