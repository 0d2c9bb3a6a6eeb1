package svg

import (
	"fmt"
	"math"

	gl "github.com/rustyoz/genericlexer"

	"github.com/gogpu/flatpaint"
)

// pathItem is a command letter or a number of path data.
type pathItem struct {
	cmd byte
	num string
}

type pathParser struct {
	items []pathItem
	pos   int

	path     *flatpaint.Path
	cur      flatpaint.Point
	start    flatpaint.Point
	lastCtrl flatpaint.Point
	lastCmd  byte
}

// ParsePathData parses the d attribute of a path element. Relative and
// shorthand commands are resolved; arcs become cubic curves.
func ParsePathData(d string) (*flatpaint.Path, error) {
	toks, err := tokenize("d", d)
	if err != nil {
		return nil, err
	}

	var items []pathItem
	for _, t := range toks {
		switch t.kind {
		case gl.ItemNumber:
			items = append(items, pathItem{num: t.value})
		case gl.ItemLetter, gl.ItemWord:
			// The lexer joins adjacent letters ("zM") into one item.
			for i := 0; i < len(t.value); i++ {
				items = append(items, pathItem{cmd: t.value[i]})
			}
		default:
			return nil, fmt.Errorf("%w: path data: unexpected %q", ErrSyntax, t.value)
		}
	}

	p := &pathParser{items: items, path: flatpaint.NewPath()}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.path, nil
}

func (p *pathParser) parse() error {
	if len(p.items) > 0 && p.items[0].cmd != 'M' && p.items[0].cmd != 'm' {
		return fmt.Errorf("%w: path data must start with a moveto", ErrSyntax)
	}
	var cmd byte
	for p.pos < len(p.items) {
		it := p.items[p.pos]
		if it.cmd != 0 {
			cmd = it.cmd
			p.pos++
		} else if cmd == 0 {
			return fmt.Errorf("%w: path data: number after closepath", ErrSyntax)
		}
		if err := p.command(cmd); err != nil {
			return err
		}
		p.lastCmd = cmd
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		case 'Z', 'z':
			cmd = 0
		}
	}
	return nil
}

func (p *pathParser) command(cmd byte) error {
	rel := cmd >= 'a' && cmd <= 'z'
	abs := func(x, y float64) flatpaint.Point {
		if rel {
			return flatpaint.Pt(p.cur.X+x, p.cur.Y+y)
		}
		return flatpaint.Pt(x, y)
	}

	switch cmd {
	case 'M', 'm':
		v, err := p.floats(2)
		if err != nil {
			return err
		}
		pt := abs(v[0], v[1])
		p.path.MoveTo(pt.X, pt.Y)
		p.cur, p.start = pt, pt
	case 'L', 'l':
		v, err := p.floats(2)
		if err != nil {
			return err
		}
		p.lineTo(abs(v[0], v[1]))
	case 'H', 'h':
		v, err := p.floats(1)
		if err != nil {
			return err
		}
		x := v[0]
		if rel {
			x += p.cur.X
		}
		p.lineTo(flatpaint.Pt(x, p.cur.Y))
	case 'V', 'v':
		v, err := p.floats(1)
		if err != nil {
			return err
		}
		y := v[0]
		if rel {
			y += p.cur.Y
		}
		p.lineTo(flatpaint.Pt(p.cur.X, y))
	case 'C', 'c':
		v, err := p.floats(6)
		if err != nil {
			return err
		}
		p.cubicTo(abs(v[0], v[1]), abs(v[2], v[3]), abs(v[4], v[5]))
	case 'S', 's':
		v, err := p.floats(4)
		if err != nil {
			return err
		}
		c1 := p.cur
		if isCubic(p.lastCmd) {
			c1 = reflect(p.lastCtrl, p.cur)
		}
		p.cubicTo(c1, abs(v[0], v[1]), abs(v[2], v[3]))
	case 'Q', 'q':
		v, err := p.floats(4)
		if err != nil {
			return err
		}
		p.quadTo(abs(v[0], v[1]), abs(v[2], v[3]))
	case 'T', 't':
		v, err := p.floats(2)
		if err != nil {
			return err
		}
		c := p.cur
		if isQuad(p.lastCmd) {
			c = reflect(p.lastCtrl, p.cur)
		}
		p.quadTo(c, abs(v[0], v[1]))
	case 'A', 'a':
		return p.arc(abs)
	case 'Z', 'z':
		p.path.Close()
		p.cur = p.start
	default:
		return fmt.Errorf("%w: unknown path command %q", ErrSyntax, cmd)
	}
	return nil
}

func (p *pathParser) arc(abs func(x, y float64) flatpaint.Point) error {
	r, err := p.floats(3)
	if err != nil {
		return err
	}
	large, err := p.flag()
	if err != nil {
		return err
	}
	sweep, err := p.flag()
	if err != nil {
		return err
	}
	v, err := p.floats(2)
	if err != nil {
		return err
	}
	end := abs(v[0], v[1])
	p.path.ArcTo(r[0], r[1], r[2]*math.Pi/180, large, sweep, end.X, end.Y)
	p.cur = end
	return nil
}

func (p *pathParser) lineTo(pt flatpaint.Point) {
	p.path.LineTo(pt.X, pt.Y)
	p.cur = pt
}

func (p *pathParser) cubicTo(c1, c2, pt flatpaint.Point) {
	p.path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
	p.lastCtrl = c2
	p.cur = pt
}

func (p *pathParser) quadTo(c, pt flatpaint.Point) {
	p.path.QuadraticTo(c.X, c.Y, pt.X, pt.Y)
	p.lastCtrl = c
	p.cur = pt
}

// floats reads n numbers.
func (p *pathParser) floats(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		if p.pos >= len(p.items) || p.items[p.pos].cmd != 0 {
			return nil, fmt.Errorf("%w: path data: expected %d numbers", ErrSyntax, n)
		}
		v, err := token{kind: gl.ItemNumber, value: p.items[p.pos].num}.float()
		if err != nil {
			return nil, err
		}
		out[i] = v
		p.pos++
	}
	return out, nil
}

// flag reads an arc flag. Flags may be written without separators
// ("a1 1 0 0110 10"), so a longer number is split after its first digit.
func (p *pathParser) flag() (bool, error) {
	if p.pos >= len(p.items) || p.items[p.pos].cmd != 0 {
		return false, fmt.Errorf("%w: path data: expected arc flag", ErrSyntax)
	}
	s := p.items[p.pos].num
	var f bool
	switch s[0] {
	case '0':
	case '1':
		f = true
	default:
		return false, fmt.Errorf("%w: path data: bad arc flag %q", ErrSyntax, s)
	}
	if len(s) > 1 {
		p.items[p.pos].num = s[1:]
	} else {
		p.pos++
	}
	return f, nil
}

func isCubic(cmd byte) bool {
	switch cmd {
	case 'C', 'c', 'S', 's':
		return true
	}
	return false
}

func isQuad(cmd byte) bool {
	switch cmd {
	case 'Q', 'q', 'T', 't':
		return true
	}
	return false
}

// reflect mirrors ctrl about pt.
func reflect(ctrl, pt flatpaint.Point) flatpaint.Point {
	return flatpaint.Pt(2*pt.X-ctrl.X, 2*pt.Y-ctrl.Y)
}
