package flatpaint

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
)

type xmlLevel struct {
	XMLName xml.Name   `xml:"levelXML"`
	Info    xmlElement `xml:"info"`
	Shapes  xmlShapes  `xml:"shapes"`
	Groups  *xmlGroups `xml:"groups,omitempty"`
}

type xmlShapes struct {
	Shapes []xmlElement `xml:"sh"`
}

type xmlGroups struct {
	Groups []xmlGroup `xml:"g"`
}

type xmlGroup struct {
	Attrs  []xml.Attr   `xml:",any,attr"`
	Shapes []xmlElement `xml:"sh"`
}

// xmlElement is an element with ordered attributes and an optional path.
type xmlElement struct {
	Attrs []xml.Attr  `xml:",any,attr"`
	Path  *xmlElement `xml:"v,omitempty"`
}

type attrs []xml.Attr

func (a *attrs) add(name, value string) {
	*a = append(*a, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

func boolAttr(b bool) string {
	if b {
		return "t"
	}
	return "f"
}

// WriteXML writes the level in the game's import format. Every shape is
// validated first; nothing is written when one is invalid.
func (l *Level) WriteXML(w io.Writer) error {
	for i, s := range l.Shapes {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	for i, g := range l.Groups {
		if g.Opacity < 0 || g.Opacity > 100 {
			return fmt.Errorf("group %d: %w: opacity %d outside [0, 100]", i, ErrInvalidShape, g.Opacity)
		}
		for j, s := range g.Shapes {
			if err := s.Validate(); err != nil {
				return fmt.Errorf("group %d shape %d: %w", i, j, err)
			}
		}
	}

	doc := xmlLevel{Info: infoElement(l.Info)}
	nextID := 1
	for _, s := range l.Shapes {
		doc.Shapes.Shapes = append(doc.Shapes.Shapes, shapeElement(s, &nextID))
	}
	if len(l.Groups) > 0 {
		doc.Groups = &xmlGroups{}
		for _, g := range l.Groups {
			doc.Groups.Groups = append(doc.Groups.Groups, groupElement(g, &nextID))
		}
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("flatpaint: write level: %w", err)
	}
	return enc.Flush()
}

func infoElement(info Info) xmlElement {
	var a attrs
	a.add("v", info.Version)
	a.add("x", formatFloat(info.CharacterPosition.X))
	a.add("y", formatFloat(info.CharacterPosition.Y))
	a.add("c", strconv.Itoa(int(info.Character)))
	a.add("f", boolAttr(info.ForceCharacter))
	a.add("h", boolAttr(info.HideVehicle))
	a.add("bg", strconv.Itoa(int(info.BackgroundType)))
	a.add("bgc", strconv.Itoa(info.BackgroundColor.Decimal()))
	a.add("e", "1")
	return xmlElement{Attrs: a}
}

// shapeElement writes one shape. Paths get ids in emission order.
func shapeElement(s Shape, nextID *int) xmlElement {
	b := s.ShapeBounds()
	if s.Type == ShapeTriangle {
		// The game draws triangles shifted by a sixth of their height
		// along the rotated vertical axis.
		r := float64(s.Rotation) * math.Pi / 180
		b.Y += b.H / 6 * math.Cos(r)
		b.X -= b.H / 6 * math.Sin(r)
	}
	c := b.Center()

	var a attrs
	a.add("t", strconv.Itoa(int(s.Type)))
	if s.Type != ShapePolygon {
		a.add("i", boolAttr(s.Interactive))
	}
	a.add("p0", formatFloat(c.X))
	a.add("p1", formatFloat(c.Y))
	a.add("p2", formatFloat(b.W))
	a.add("p3", formatFloat(b.H))
	a.add("p4", strconv.Itoa(s.Rotation))
	a.add("p5", boolAttr(s.Fixed))
	a.add("p6", boolAttr(s.Sleeping))
	a.add("p7", strconv.FormatFloat(s.Density, 'f', -1, 64))
	a.add("p8", strconv.Itoa(s.Color.Decimal()))
	if s.Outline != nil {
		a.add("p9", strconv.Itoa(s.Outline.Decimal()))
	}
	a.add("p10", strconv.Itoa(s.Color.Opacity()))
	a.add("p11", strconv.Itoa(int(s.Collision)))
	if s.Type == ShapeCircle {
		a.add("p12", strconv.FormatFloat(s.InnerCutout, 'f', -1, 64))
	}

	el := xmlElement{Attrs: a}
	if s.Path != nil {
		el.Path = pathElement(s.Path, *nextID)
		*nextID++
	}
	return el
}

func pathElement(p *EncodedPath, id int) *xmlElement {
	var a attrs
	a.add("f", "t")
	a.add("id", strconv.Itoa(id))
	a.add("n", strconv.Itoa(len(p.Vertices)))
	for i, v := range p.Format() {
		a.add("v"+strconv.Itoa(i), v)
	}
	return &xmlElement{Attrs: a}
}

func groupElement(g Group, nextID *int) xmlGroup {
	c := g.Bounds().Center()
	var a attrs
	a.add("x", formatFloat(c.X))
	a.add("y", formatFloat(c.Y))
	a.add("r", "0")
	a.add("ox", formatFloat(-c.X))
	a.add("oy", formatFloat(-c.Y))
	a.add("f", boolAttr(g.Foreground))
	a.add("o", strconv.Itoa(g.Opacity))
	a.add("s", boolAttr(g.Sleeping))
	a.add("im", boolAttr(g.Fixed))
	a.add("fr", boolAttr(g.FixedAngle))

	xg := xmlGroup{Attrs: a}
	for _, s := range g.Shapes {
		xg.Shapes = append(xg.Shapes, shapeElement(s, nextID))
	}
	return xg
}
