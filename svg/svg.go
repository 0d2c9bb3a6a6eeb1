// Package svg walks SVG documents and reports their filled regions to a
// flatpaint.Canvas.
//
// Supported are the svg, g, path, rect, circle, ellipse, polygon and
// polyline elements, solid fills as hex, rgb() or named colors, linear and
// radial gradients referenced with url(#id), transform lists and
// clip-path references. Strokes, text, filters and masks are ignored.
package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/flatpaint"
)

var (
	// ErrSyntax is returned for malformed attribute values such as path
	// data, transform lists and colors.
	ErrSyntax = errors.New("svg: syntax error")

	// ErrInvalidDocument is returned when the input is not an SVG document.
	ErrInvalidDocument = errors.New("svg: invalid document")
)

// node is a generic element. Character data is dropped.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []*node    `xml:",any"`
}

// attr returns the value of the attribute with the given local name.
func (n *node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value), true
		}
	}
	return "", false
}

// Document is a parsed SVG document.
type Document struct {
	// ViewBox is the user-space rectangle the document draws into.
	ViewBox flatpaint.Bounds

	root *node
	ids  map[string]*node
}

// Parse reads an SVG document.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	root := new(node)
	if err := dec.Decode(root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if root.XMLName.Local != "svg" {
		return nil, fmt.Errorf("%w: root element is <%s>", ErrInvalidDocument, root.XMLName.Local)
	}

	vb, err := viewBox(root)
	if err != nil {
		return nil, err
	}

	doc := &Document{ViewBox: vb, root: root, ids: make(map[string]*node)}
	doc.index(root)
	return doc, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) index(n *node) {
	if id, ok := n.attr("id"); ok && id != "" {
		if _, dup := d.ids[id]; !dup {
			d.ids[id] = n
		}
	}
	for _, c := range n.Children {
		d.index(c)
	}
}

// lookup resolves a "#id" or "url(#id)" reference.
func (d *Document) lookup(ref string) *node {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "url(") && strings.HasSuffix(ref, ")") {
		ref = strings.TrimSpace(ref[4 : len(ref)-1])
		ref = strings.Trim(ref, `'"`)
	}
	if !strings.HasPrefix(ref, "#") {
		return nil
	}
	return d.ids[ref[1:]]
}

// viewBox returns the viewBox attribute, falling back to width and height.
func viewBox(root *node) (flatpaint.Bounds, error) {
	if s, ok := root.attr("viewBox"); ok {
		v, err := numbers("viewBox", s)
		if err != nil {
			return flatpaint.Bounds{}, err
		}
		if len(v) != 4 || v[2] <= 0 || v[3] <= 0 {
			return flatpaint.Bounds{}, fmt.Errorf("%w: viewBox %q", ErrInvalidDocument, s)
		}
		return flatpaint.Bounds{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
	}

	w, werr := length(root, "width")
	h, herr := length(root, "height")
	if werr != nil || herr != nil || w <= 0 || h <= 0 {
		return flatpaint.Bounds{}, fmt.Errorf("%w: no viewBox and no usable width and height", ErrInvalidDocument)
	}
	return flatpaint.Bounds{W: w, H: h}, nil
}

// length reads a numeric attribute, accepting a "px" suffix. A missing
// attribute is zero.
func length(n *node, name string) (float64, error) {
	s, ok := n.attr(name)
	if !ok || s == "" {
		return 0, nil
	}
	s = strings.TrimSuffix(s, "px")
	v, err := numbers(name, s)
	if err != nil {
		return 0, err
	}
	if len(v) != 1 {
		return 0, fmt.Errorf("%w: %s %q", ErrSyntax, name, s)
	}
	return v[0], nil
}
