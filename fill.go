package flatpaint

import "fmt"

// LevelBounds is the playable area of a level. A fill without a target
// covers it.
var LevelBounds = Bounds{X: 0, Y: 0, W: 20000, H: 10000}

// Region is an area filled with one color.
type Region struct {
	Path  *Path
	Color Color
}

// DoFill decomposes paint into solid regions clipped to target.
//
// Every check runs before any decomposition, so an error never comes with
// partial output. A nil target stands for the whole level. Solid paint
// yields exactly one region, the target itself; other paints yield their
// decomposition intersected with the target, with empty results dropped.
func DoFill(paint Paint, prefs Preferences, target *Path) ([]Region, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	if err := checkPaint(paint); err != nil {
		return nil, err
	}

	var regions []Region
	switch p := paint.(type) {
	case Solid:
		if target == nil {
			target = Rect(LevelBounds)
		}
		return []Region{{Path: target, Color: p.Color}}, nil
	case *Solid:
		return DoFill(*p, prefs, target)
	case LinearGradient:
		regions = p.regions(prefs)
	case *LinearGradient:
		regions = p.regions(prefs)
	case RadialGradient:
		regions = p.regions(prefs)
	case *RadialGradient:
		regions = p.regions(prefs)
	case Texture:
		var err error
		if regions, err = p.regions(prefs, fillBounds(p, target)); err != nil {
			return nil, err
		}
	case *Texture:
		return DoFill(*p, prefs, target)
	}

	if target == nil {
		return regions, nil
	}
	clipped := regions[:0]
	for _, r := range regions {
		r.Path = Intersect(r.Path, target)
		if r.Path.IsDegenerate() {
			continue
		}
		clipped = append(clipped, r)
	}
	return clipped, nil
}

// checkPaint rejects paints that can not be decomposed.
func checkPaint(paint Paint) error {
	switch p := paint.(type) {
	case Solid, *Solid:
		return nil
	case LinearGradient:
		return checkGradient(p.Stops, p.Cycle)
	case *LinearGradient:
		return checkGradient(p.Stops, p.Cycle)
	case RadialGradient:
		return checkGradient(p.Stops, p.Cycle)
	case *RadialGradient:
		return checkGradient(p.Stops, p.Cycle)
	case Texture:
		return p.check()
	case *Texture:
		return p.check()
	case nil:
		return fmt.Errorf("%w: nil paint", ErrUnsupported)
	default:
		return fmt.Errorf("%w: paint %T", ErrUnsupported, paint)
	}
}

func fillBounds(t Texture, target *Path) Bounds {
	if target == nil {
		return t.Anchor
	}
	return target.Bounds()
}
