package svg

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/flatpaint"
)

// flattenTolerance is used to measure geometry for objectBoundingBox units.
const flattenTolerance = 0.1

// maxUseDepth bounds nested <use> references.
const maxUseDepth = 16

// state is the inherited rendering state of an element.
type state struct {
	fill        string
	fillOpacity float64
	opacity     float64
	color       string
	transform   flatpaint.Matrix
	clip        *flatpaint.Path
	uses        int
}

func rootState(vb flatpaint.Bounds) state {
	return state{
		fill:        "black",
		fillOpacity: 1,
		opacity:     1,
		color:       "black",
		transform:   flatpaint.Identity(),
		clip:        flatpaint.Rect(vb),
	}
}

// Render walks the document and reports every filled shape to c in
// document order. Coordinates reach the canvas in the document's user
// space; the viewBox clips everything.
func (d *Document) Render(c *flatpaint.Canvas) error {
	return d.walk(c, d.root, rootState(d.ViewBox))
}

// Picture renders the SVG document read from r into l, mapping its
// viewBox onto bounds. A nil bounds keeps the document's own coordinates.
func Picture(l *flatpaint.Layer, r io.Reader, bounds *flatpaint.Bounds) error {
	doc, err := Parse(r)
	if err != nil {
		return err
	}
	dst := doc.ViewBox
	if bounds != nil {
		dst = *bounds
	}
	return doc.Render(flatpaint.NewCanvas(l.Transform(flatpaint.FitRect(doc.ViewBox, dst))))
}

func (d *Document) walk(c *flatpaint.Canvas, n *node, st state) error {
	props := properties(n)
	if props["display"] == "none" {
		return nil
	}

	st, err := d.inherit(n, props, st)
	if err != nil {
		return err
	}

	switch n.XMLName.Local {
	case "svg", "g", "a", "switch":
		for _, child := range n.Children {
			if err := d.walk(c, child, st); err != nil {
				return err
			}
		}
		return nil

	case "use":
		return d.use(c, n, st)

	case "path", "rect", "circle", "ellipse", "polygon", "polyline":
		return d.shape(c, n, props, st)

	case "defs", "clipPath", "mask", "pattern", "symbol", "marker", "filter",
		"linearGradient", "radialGradient", "style", "title", "desc", "metadata", "line":
		return nil
	}

	flatpaint.Logger().Debug("svg: skipping element", "element", n.XMLName.Local)
	return nil
}

// inherit applies the properties of n to the state its children see.
func (d *Document) inherit(n *node, props map[string]string, st state) (state, error) {
	if s, ok := props["transform"]; ok {
		m, err := ParseTransform(s)
		if err != nil {
			return st, fmt.Errorf("<%s>: %w", n.XMLName.Local, err)
		}
		st.transform = st.transform.Multiply(m)
	}
	if v, ok := props["fill"]; ok && v != "inherit" {
		st.fill = v
	}
	if v, ok := props["color"]; ok && v != "inherit" && v != "currentColor" {
		st.color = v
	}
	if v, ok := props["fill-opacity"]; ok && v != "inherit" {
		o, err := fraction(v)
		if err != nil {
			return st, err
		}
		st.fillOpacity = o
	}
	if v, ok := props["opacity"]; ok {
		o, err := fraction(v)
		if err != nil {
			return st, err
		}
		st.opacity *= o
	}
	if v, ok := props["clip-path"]; ok && v != "none" {
		clip, err := d.clipPath(n, v, st.transform)
		if err != nil {
			return st, err
		}
		if clip != nil {
			if st.clip != nil {
				clip = flatpaint.Intersect(st.clip, clip)
			}
			st.clip = clip
		}
	}
	return st, nil
}

func (d *Document) shape(c *flatpaint.Canvas, n *node, props map[string]string, st state) error {
	geom, err := geometry(n)
	if err != nil {
		return fmt.Errorf("<%s>: %w", n.XMLName.Local, err)
	}
	if geom == nil || geom.IsEmpty() {
		return nil
	}
	if v, ok := props["visibility"]; ok && (v == "hidden" || v == "collapse") {
		return nil
	}

	bbox := geom.Flatten(flattenTolerance).Bounds()
	p, err := d.paint(st.fill, st.color, st.fillOpacity*st.opacity, bbox)
	if err != nil {
		return fmt.Errorf("<%s>: %w", n.XMLName.Local, err)
	}
	if p == nil {
		return nil
	}
	return c.Fill(geom, p, st.transform, st.clip)
}

// use renders the element an href points at, moved by x and y.
func (d *Document) use(c *flatpaint.Canvas, n *node, st state) error {
	ref, _ := n.attr("href")
	target := d.lookup(ref)
	if target == nil || st.uses >= maxUseDepth {
		flatpaint.Logger().Debug("svg: unresolved use", "href", ref)
		return nil
	}
	x, err := length(n, "x")
	if err != nil {
		return err
	}
	y, err := length(n, "y")
	if err != nil {
		return err
	}
	st.transform = st.transform.Multiply(flatpaint.Translate(x, y))
	st.uses++
	if target.XMLName.Local != "symbol" {
		return d.walk(c, target, st)
	}

	// Symbols are only drawn through use; walk skips them otherwise.
	st, err = d.inherit(target, properties(target), st)
	if err != nil {
		return err
	}
	for _, child := range target.Children {
		if err := d.walk(c, child, st); err != nil {
			return err
		}
	}
	return nil
}

// clipPath resolves a clip-path reference into canvas space. el is the
// element referencing the clip; m maps its user space to the canvas.
func (d *Document) clipPath(el *node, ref string, m flatpaint.Matrix) (*flatpaint.Path, error) {
	cp := d.lookup(ref)
	if cp == nil || cp.XMLName.Local != "clipPath" {
		flatpaint.Logger().Debug("svg: unresolved clip-path", "ref", ref)
		return nil, nil
	}

	if s, ok := cp.attr("transform"); ok {
		t, err := ParseTransform(s)
		if err != nil {
			return nil, err
		}
		m = m.Multiply(t)
	}
	if units, _ := cp.attr("clipPathUnits"); units == "objectBoundingBox" {
		bb, err := extent(el, flatpaint.Identity())
		if err != nil {
			return nil, err
		}
		m = m.Multiply(flatpaint.Translate(bb.X, bb.Y)).Multiply(flatpaint.Scale(bb.W, bb.H))
	}

	var parts []*flatpaint.Path
	for _, child := range cp.Children {
		props := properties(child)
		if props["display"] == "none" {
			continue
		}
		geom, err := geometry(child)
		if err != nil {
			return nil, fmt.Errorf("<clipPath>: %w", err)
		}
		if geom == nil {
			continue
		}
		cm := m
		if s, ok := props["transform"]; ok {
			t, err := ParseTransform(s)
			if err != nil {
				return nil, err
			}
			cm = cm.Multiply(t)
		}
		parts = append(parts, geom.Transform(cm))
	}
	if len(parts) == 0 {
		// An empty clip path clips everything away.
		return flatpaint.NewPath(), nil
	}
	return flatpaint.UnionAll(parts), nil
}

// extent returns the bounds of the geometry below n in the space m maps
// n's user space to.
func extent(n *node, m flatpaint.Matrix) (flatpaint.Bounds, error) {
	geom, err := geometry(n)
	if err != nil {
		return flatpaint.Bounds{}, err
	}
	if geom != nil {
		return geom.Transform(m).Flatten(flattenTolerance).Bounds(), nil
	}

	var out flatpaint.Bounds
	for _, child := range n.Children {
		cm := m
		if s, ok := child.attr("transform"); ok {
			t, err := ParseTransform(s)
			if err != nil {
				return flatpaint.Bounds{}, err
			}
			cm = cm.Multiply(t)
		}
		b, err := extent(child, cm)
		if err != nil {
			return flatpaint.Bounds{}, err
		}
		if b.IsEmpty() {
			continue
		}
		if out.IsEmpty() {
			out = b
		} else {
			out = out.Union(b)
		}
	}
	return out, nil
}

// geometry returns the outline of a basic shape or path element, nil for
// any other element or a shape without area.
func geometry(n *node) (*flatpaint.Path, error) {
	switch n.XMLName.Local {
	case "path":
		s, _ := n.attr("d")
		if s == "" {
			return nil, nil
		}
		return ParsePathData(s)

	case "rect":
		v, err := lengths(n, "x", "y", "width", "height")
		if err != nil {
			return nil, err
		}
		if v[2] <= 0 || v[3] <= 0 {
			return nil, nil
		}
		rx, err := length(n, "rx")
		if err != nil {
			return nil, err
		}
		ry, err := length(n, "ry")
		if err != nil {
			return nil, err
		}
		if _, ok := n.attr("rx"); !ok {
			rx = ry
		}
		if _, ok := n.attr("ry"); !ok {
			ry = rx
		}
		b := flatpaint.Bounds{X: v[0], Y: v[1], W: v[2], H: v[3]}
		rx, ry = math.Min(rx, b.W/2), math.Min(ry, b.H/2)
		if rx > 0 && ry > 0 {
			return flatpaint.RoundedRect(b, rx, ry), nil
		}
		return flatpaint.Rect(b), nil

	case "circle":
		v, err := lengths(n, "cx", "cy", "r")
		if err != nil {
			return nil, err
		}
		if v[2] <= 0 {
			return nil, nil
		}
		return flatpaint.Circle(flatpaint.Pt(v[0], v[1]), v[2]), nil

	case "ellipse":
		v, err := lengths(n, "cx", "cy", "rx", "ry")
		if err != nil {
			return nil, err
		}
		if v[2] <= 0 || v[3] <= 0 {
			return nil, nil
		}
		return flatpaint.Ellipse(flatpaint.Pt(v[0], v[1]), v[2], v[3]), nil

	case "polygon", "polyline":
		s, _ := n.attr("points")
		v, err := numbers("points", s)
		if err != nil {
			return nil, err
		}
		if len(v) < 6 {
			return nil, nil
		}
		p := flatpaint.NewPath().MoveTo(v[0], v[1])
		for i := 2; i+1 < len(v); i += 2 {
			p.LineTo(v[i], v[i+1])
		}
		return p.Close(), nil
	}
	return nil, nil
}

func lengths(n *node, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := length(n, name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
