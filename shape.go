package flatpaint

import (
	"fmt"
	"math"
)

// ShapeType is the kind of a level shape. The values are the numbers the
// level format uses.
type ShapeType int

const (
	ShapeRectangle ShapeType = 0
	ShapeCircle    ShapeType = 1
	ShapeTriangle  ShapeType = 2
	ShapePolygon   ShapeType = 3
	ShapeArt       ShapeType = 4
)

// String returns the shape type name.
func (t ShapeType) String() string {
	switch t {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapeTriangle:
		return "triangle"
	case ShapePolygon:
		return "polygon"
	case ShapeArt:
		return "art"
	default:
		return fmt.Sprintf("ShapeType(%d)", int(t))
	}
}

// IsPrimitive reports whether the shape is described by bounds and
// rotation rather than by a path.
func (t ShapeType) IsPrimitive() bool {
	return t == ShapeRectangle || t == ShapeCircle || t == ShapeTriangle
}

// Collision determines what a shape collides with.
type Collision int

const (
	// CollisionEverything collides with everything.
	CollisionEverything Collision = iota + 1
	// CollisionNotCharacter collides with everything but characters.
	CollisionNotCharacter
	// CollisionNothing collides with nothing; mostly for joints.
	CollisionNothing
	// CollisionNotThis collides with everything except shapes sharing this value.
	CollisionNotThis
	// CollisionFixed collides only with fixed shapes.
	CollisionFixed
	// CollisionFixedAndThis collides with fixed shapes and shapes sharing this value.
	CollisionFixedAndThis
	// CollisionCharacter collides only with characters.
	CollisionCharacter
)

// Valid reports whether c is one of the seven collision modes.
func (c Collision) Valid() bool {
	return c >= CollisionEverything && c <= CollisionCharacter
}

// MinVisibleArea is the bounds area below which a shape is not emitted.
const MinVisibleArea = 2.0

// Shape is one record of a level: a primitive with bounds and rotation, or
// a polygon or art shape with an encoded path. All fields are resolved;
// no paint or transform is left to apply.
type Shape struct {
	Type ShapeType

	// Bounds holds a primitive's unrotated bounds in level space.
	Bounds Bounds
	// Path holds a polygon's or art shape's outline.
	Path *EncodedPath

	// Rotation is applied about the bounds center, in degrees.
	Rotation int

	Color   Color
	Outline *Color

	Interactive bool
	Fixed       bool
	Sleeping    bool
	Density     float64
	Collision   Collision

	// InnerCutout is the percentage of a circle's radius cut out of it.
	InnerCutout float64
}

// ShapeBounds returns the area the shape covers before rotation.
func (s Shape) ShapeBounds() Bounds {
	if s.Path != nil {
		return s.Path.Bounds
	}
	return s.Bounds
}

// Validate checks that the shape can be written to a level.
func (s Shape) Validate() error {
	switch {
	case s.Type.IsPrimitive() && s.Path != nil:
		return fmt.Errorf("%w: %s with a path", ErrInvalidShape, s.Type)
	case !s.Type.IsPrimitive() && s.Path == nil:
		return fmt.Errorf("%w: %s without a path", ErrInvalidShape, s.Type)
	case !s.Type.IsPrimitive() && s.Rotation != 0:
		return fmt.Errorf("%w: rotated %s, transform its path instead", ErrInvalidShape, s.Type)
	case s.Type == ShapeCircle && !near(s.Bounds.W, s.Bounds.H):
		return fmt.Errorf("%w: can't draw ellipse, only circles", ErrInvalidShape)
	}
	return nil
}

// Style is the set of per-shape attributes a Layer hands down to every
// shape submitted through it.
type Style struct {
	Color       Color
	Outline     *Color
	Rotation    int
	Interactive bool
	Fixed       bool
	Sleeping    bool
	Density     float64
	Collision   Collision
	InnerCutout float64
}

// DefaultStyle returns the style of a fresh layer: blue, interactive,
// fixed, density 1, colliding with everything.
func DefaultStyle() Style {
	return Style{
		Color:       DefaultColor,
		Interactive: true,
		Fixed:       true,
		Density:     1,
		Collision:   CollisionEverything,
	}
}

// ShapeOption overrides one Style attribute for a shape or a layer.
type ShapeOption func(*Style)

// WithColor sets the fill color.
func WithColor(c Color) ShapeOption {
	return func(s *Style) { s.Color = c }
}

// WithOutline sets the outline color; nil removes the outline.
func WithOutline(c *Color) ShapeOption {
	return func(s *Style) { s.Outline = c }
}

// WithRotation sets the rotation in degrees.
func WithRotation(deg int) ShapeOption {
	return func(s *Style) { s.Rotation = deg }
}

// WithInteractive sets whether shapes take part in physics.
func WithInteractive(interactive bool) ShapeOption {
	return func(s *Style) { s.Interactive = interactive }
}

// WithFixed sets whether shapes are pinned in place.
func WithFixed(fixed bool) ShapeOption {
	return func(s *Style) { s.Fixed = fixed }
}

// WithSleeping sets whether shapes start asleep.
func WithSleeping(sleeping bool) ShapeOption {
	return func(s *Style) { s.Sleeping = sleeping }
}

// WithDensity sets the density, from 0.1 to 100.
func WithDensity(density float64) ShapeOption {
	return func(s *Style) { s.Density = density }
}

// WithCollision sets the collision mode.
func WithCollision(c Collision) ShapeOption {
	return func(s *Style) { s.Collision = c }
}

// WithInnerCutout sets the percentage cut out of circles, from 0 to 100.
func WithInnerCutout(percent float64) ShapeOption {
	return func(s *Style) { s.InnerCutout = percent }
}

func (s Style) with(opts []ShapeOption) Style {
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s Style) validate() error {
	switch {
	case math.IsNaN(s.Density) || s.Density < 0.1 || s.Density > 100:
		return fmt.Errorf("%w: density %v outside [0.1, 100]", ErrInvalidShape, s.Density)
	case math.IsNaN(s.InnerCutout) || s.InnerCutout < 0 || s.InnerCutout > 100:
		return fmt.Errorf("%w: inner cutout %v outside [0, 100]", ErrInvalidShape, s.InnerCutout)
	case !s.Collision.Valid():
		return fmt.Errorf("%w: collision %d outside 1..7", ErrInvalidShape, int(s.Collision))
	}
	return nil
}

// primitive builds a primitive shape record from the style.
func (s Style) primitive(t ShapeType, b Bounds, rotation int) Shape {
	sh := Shape{
		Type:        t,
		Bounds:      b,
		Rotation:    rotation,
		Color:       s.Color,
		Outline:     s.Outline,
		Interactive: s.Interactive,
		Fixed:       s.Fixed,
		Sleeping:    s.Sleeping,
		Density:     s.Density,
		Collision:   s.Collision,
	}
	if t == ShapeCircle {
		sh.InnerCutout = s.InnerCutout
	}
	return sh
}

// custom builds a polygon or art record. Art shapes never take part in
// physics, so their physical attributes are reset.
func (s Style) custom(t ShapeType, p *EncodedPath) Shape {
	if t == ShapeArt {
		return Shape{
			Type:      ShapeArt,
			Path:      p,
			Color:     s.Color,
			Outline:   s.Outline,
			Density:   1,
			Collision: CollisionEverything,
		}
	}
	return Shape{
		Type:        ShapePolygon,
		Path:        p,
		Color:       s.Color,
		Outline:     s.Outline,
		Interactive: true,
		Fixed:       s.Fixed,
		Sleeping:    s.Sleeping,
		Density:     s.Density,
		Collision:   s.Collision,
	}
}
