package svg

import (
	"fmt"
	"math"
	"strings"

	gl "github.com/rustyoz/genericlexer"
	mt "github.com/rustyoz/Mtransform"

	"github.com/gogpu/flatpaint"
)

// ParseTransform parses an SVG transform list such as
// "translate(10 20) rotate(45, 5, 5) scale(2)". Functions apply right to
// left, so the last one listed acts on the element first. An empty list is
// the identity.
func ParseTransform(s string) (flatpaint.Matrix, error) {
	if strings.TrimSpace(s) == "" {
		return flatpaint.Identity(), nil
	}
	toks, err := tokenize("transform", s)
	if err != nil {
		return flatpaint.Matrix{}, err
	}

	t := mt.Identity()
	for i := 0; i < len(toks); {
		name := toks[i]
		if name.kind != gl.ItemWord && name.kind != gl.ItemLetter {
			return flatpaint.Matrix{}, fmt.Errorf("%w: transform: expected function name, got %q", ErrSyntax, name.value)
		}
		i++
		if i >= len(toks) || toks[i].value != "(" {
			return flatpaint.Matrix{}, fmt.Errorf("%w: transform: %s: missing '('", ErrSyntax, name.value)
		}
		i++

		var args []float64
		for i < len(toks) && toks[i].value != ")" {
			v, err := toks[i].float()
			if err != nil {
				return flatpaint.Matrix{}, err
			}
			args = append(args, v)
			i++
		}
		if i >= len(toks) {
			return flatpaint.Matrix{}, fmt.Errorf("%w: transform: %s: missing ')'", ErrSyntax, name.value)
		}
		i++

		if err := apply(&t, name.value, args); err != nil {
			return flatpaint.Matrix{}, err
		}
	}
	return fromTransform(t), nil
}

// apply post-multiplies one transform function onto t.
func apply(t *mt.Transform, name string, args []float64) error {
	bad := func() error {
		return fmt.Errorf("%w: transform: %s takes %s arguments, got %d", ErrSyntax, name, arity[name], len(args))
	}
	switch name {
	case "matrix":
		if len(args) != 6 {
			return bad()
		}
		t.MultiplyWith(mt.Transform{
			{args[0], args[2], args[4]},
			{args[1], args[3], args[5]},
			{0, 0, 1},
		})
	case "translate":
		switch len(args) {
		case 1:
			t.Translate(args[0], 0)
		case 2:
			t.Translate(args[0], args[1])
		default:
			return bad()
		}
	case "scale":
		switch len(args) {
		case 1:
			t.Scale(args[0], args[0])
		case 2:
			t.Scale(args[0], args[1])
		default:
			return bad()
		}
	case "rotate":
		switch len(args) {
		case 1:
			t.RotateOrigin(radians(args[0]))
		case 3:
			t.Translate(args[1], args[2])
			t.RotateOrigin(radians(args[0]))
			t.Translate(-args[1], -args[2])
		default:
			return bad()
		}
	case "skewX":
		if len(args) != 1 {
			return bad()
		}
		t.SkewX(radians(args[0]))
	case "skewY":
		if len(args) != 1 {
			return bad()
		}
		t.SkewY(radians(args[0]))
	default:
		return fmt.Errorf("%w: unknown transform function %q", ErrSyntax, name)
	}
	return nil
}

var arity = map[string]string{
	"matrix":    "6",
	"translate": "1 or 2",
	"scale":     "1 or 2",
	"rotate":    "1 or 3",
	"skewX":     "1",
	"skewY":     "1",
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func fromTransform(t mt.Transform) flatpaint.Matrix {
	return flatpaint.Matrix{
		A: t[0][0], B: t[0][1], C: t[0][2],
		D: t[1][0], E: t[1][1], F: t[1][2],
	}
}
