package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/flatpaint"
)

// ParseColor parses a CSS color: "#rgb", "#rrggbb", "rgb(r, g, b)",
// "rgba(r, g, b, a)", "transparent" or a named color. Channels given in
// rgb() may be percentages.
func ParseColor(s string) (flatpaint.Color, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(s, "#"):
		h := s[1:]
		if (len(h) != 3 && len(h) != 6) || strings.Trim(h, "0123456789abcdefABCDEF") != "" {
			return flatpaint.Color{}, fmt.Errorf("%w: color %q", ErrSyntax, s)
		}
		return flatpaint.Hex(h), nil
	case strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba("):
		return parseRGB(s)
	case lower == "transparent":
		return flatpaint.Transparent, nil
	}

	if c, ok := colornames.Map[lower]; ok {
		return flatpaint.RGB(c.R, c.G, c.B), nil
	}
	return flatpaint.Color{}, fmt.Errorf("%w: unknown color %q", ErrSyntax, s)
}

func parseRGB(s string) (flatpaint.Color, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return flatpaint.Color{}, fmt.Errorf("%w: color %q", ErrSyntax, s)
	}
	parts := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '/'
	})
	if len(parts) != 3 && len(parts) != 4 {
		return flatpaint.Color{}, fmt.Errorf("%w: color %q", ErrSyntax, s)
	}

	var ch [4]uint8
	ch[3] = 255
	for i, p := range parts {
		scale := 1.0
		if i == 3 {
			scale = 255
		}
		if strings.HasSuffix(p, "%") {
			p = p[:len(p)-1]
			scale = 2.55
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return flatpaint.Color{}, fmt.Errorf("%w: color %q", ErrSyntax, s)
		}
		ch[i] = channel(v * scale)
	}
	return flatpaint.Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

// withAlpha multiplies the alpha of c by a.
func withAlpha(c flatpaint.Color, a float64) flatpaint.Color {
	c.A = channel(float64(c.A) * a)
	return c
}

// properties merges presentation attributes with the declarations of the
// style attribute; style wins.
func properties(n *node) map[string]string {
	props := make(map[string]string, len(n.Attrs))
	for _, a := range n.Attrs {
		if a.Name.Space == "" {
			props[a.Name.Local] = strings.TrimSpace(a.Value)
		}
	}
	if style, ok := props["style"]; ok {
		for _, decl := range strings.Split(style, ";") {
			k, v, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
			props[strings.TrimSpace(k)] = v
		}
	}
	return props
}

// fraction parses an opacity or offset given as a number or percentage and
// clamps it to [0, 1].
func fraction(s string) (float64, error) {
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = s[:len(s)-1]
		scale = 0.01
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad fraction %q", ErrSyntax, s)
	}
	return math.Max(0, math.Min(1, v*scale)), nil
}

// paint resolves a fill value. bbox is the bounding box of the filled
// geometry in user space; alpha is the accumulated fill opacity. A nil
// paint means nothing is drawn.
func (d *Document) paint(fill, current string, alpha float64, bbox flatpaint.Bounds) (flatpaint.Paint, error) {
	switch fill {
	case "none", "":
		return nil, nil
	case "currentColor":
		fill = current
	}

	if strings.HasPrefix(fill, "url(") {
		ref := fill
		fallback := ""
		if i := strings.IndexByte(fill, ')'); i >= 0 {
			ref, fallback = fill[:i+1], strings.TrimSpace(fill[i+1:])
		}
		n := d.lookup(ref)
		if n == nil {
			if fallback != "" {
				return d.paint(fallback, current, alpha, bbox)
			}
			flatpaint.Logger().Debug("svg: unresolved paint reference", "ref", ref)
			return nil, nil
		}
		return d.gradient(n, alpha, bbox)
	}

	c, err := ParseColor(fill)
	if err != nil {
		return nil, err
	}
	c = withAlpha(c, alpha)
	if !c.Visible() {
		return nil, nil
	}
	return flatpaint.Solid{Color: c}, nil
}

// gradientMaxDepth bounds href chains.
const gradientMaxDepth = 16

// gradient builds a linear or radial gradient paint from n, following
// href references for missing attributes and stops.
func (d *Document) gradient(n *node, alpha float64, bbox flatpaint.Bounds) (flatpaint.Paint, error) {
	chain := d.hrefChain(n)
	kind := n.XMLName.Local
	if kind != "linearGradient" && kind != "radialGradient" {
		flatpaint.Logger().Debug("svg: unsupported paint server", "element", kind)
		return nil, nil
	}

	get := func(name string) (string, bool) {
		for _, g := range chain {
			if v, ok := g.attr(name); ok {
				return v, true
			}
		}
		return "", false
	}

	stops, err := gradientStops(chain, alpha)
	if err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return nil, nil
	}

	cycle := flatpaint.CycleNone
	if s, ok := get("spreadMethod"); ok {
		switch s {
		case "pad":
		case "reflect":
			cycle = flatpaint.CycleReflect
		case "repeat":
			cycle = flatpaint.CycleRepeat
		default:
			return nil, fmt.Errorf("%w: spreadMethod %q", ErrSyntax, s)
		}
	}

	gt := flatpaint.Identity()
	if s, ok := get("gradientTransform"); ok {
		if gt, err = ParseTransform(s); err != nil {
			return nil, err
		}
	}

	units, _ := get("gradientUnits")
	bboxUnits := units != "userSpaceOnUse"
	var m flatpaint.Matrix
	if bboxUnits {
		if bbox.W <= 0 || bbox.H <= 0 {
			return nil, nil
		}
		m = flatpaint.Translate(bbox.X, bbox.Y).
			Multiply(flatpaint.Scale(bbox.W, bbox.H)).
			Multiply(gt)
	} else {
		m = gt
	}

	// coord reads a coordinate relative to ref when given as a percentage.
	vb := d.ViewBox
	coord := func(name, def string, ref float64) (float64, error) {
		s, ok := get(name)
		if !ok {
			s = def
		}
		if strings.HasSuffix(s, "%") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %s %q", ErrSyntax, name, s)
			}
			if bboxUnits {
				return v / 100, nil
			}
			return v / 100 * ref, nil
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q", ErrSyntax, name, s)
		}
		return v, nil
	}
	diag := math.Sqrt((vb.W*vb.W + vb.H*vb.H) / 2)

	if kind == "linearGradient" {
		var v [4]float64
		for i, a := range []struct {
			name, def string
			ref       float64
		}{
			{"x1", "0%", vb.W}, {"y1", "0%", vb.H}, {"x2", "100%", vb.W}, {"y2", "0%", vb.H},
		} {
			if v[i], err = coord(a.name, a.def, a.ref); err != nil {
				return nil, err
			}
		}
		g := flatpaint.NewLinearGradient(v[0], v[1], v[2], v[3])
		g.Stops, g.Cycle, g.Transform = stops, cycle, m
		return g, nil
	}

	cx, err := coord("cx", "50%", vb.W)
	if err != nil {
		return nil, err
	}
	cy, err := coord("cy", "50%", vb.H)
	if err != nil {
		return nil, err
	}
	r, err := coord("r", "50%", diag)
	if err != nil {
		return nil, err
	}
	fx, fy := cx, cy
	if _, ok := get("fx"); ok {
		if fx, err = coord("fx", "", vb.W); err != nil {
			return nil, err
		}
	}
	if _, ok := get("fy"); ok {
		if fy, err = coord("fy", "", vb.H); err != nil {
			return nil, err
		}
	}
	g := flatpaint.NewRadialGradient(cx, cy, r).SetFocus(fx, fy)
	g.Stops, g.Cycle, g.Transform = stops, cycle, m
	return g, nil
}

// hrefChain returns n followed by the gradients it references.
func (d *Document) hrefChain(n *node) []*node {
	chain := []*node{n}
	seen := map[*node]bool{n: true}
	for len(chain) < gradientMaxDepth {
		ref, ok := chain[len(chain)-1].attr("href")
		if !ok {
			break
		}
		next := d.lookup(ref)
		if next == nil || seen[next] {
			break
		}
		seen[next] = true
		chain = append(chain, next)
	}
	return chain
}

// gradientStops reads the stops of the first gradient in chain that has
// any. Offsets are clamped to [0, 1] and never decrease.
func gradientStops(chain []*node, alpha float64) ([]flatpaint.GradientStop, error) {
	for _, g := range chain {
		var stops []flatpaint.GradientStop
		last := 0.0
		for _, s := range g.Children {
			if s.XMLName.Local != "stop" {
				continue
			}
			props := properties(s)

			off := 0.0
			if v, ok := props["offset"]; ok {
				var err error
				if off, err = fraction(v); err != nil {
					return nil, err
				}
			}
			off = math.Max(off, last)
			last = off

			c := flatpaint.Black
			if v, ok := props["stop-color"]; ok {
				var err error
				if c, err = ParseColor(v); err != nil {
					return nil, err
				}
			}
			a := alpha
			if v, ok := props["stop-opacity"]; ok {
				o, err := fraction(v)
				if err != nil {
					return nil, err
				}
				a *= o
			}
			stops = append(stops, flatpaint.GradientStop{Offset: off, Color: withAlpha(c, a)})
		}
		if len(stops) > 0 {
			return stops, nil
		}
	}
	return nil, nil
}
