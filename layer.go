package flatpaint

import (
	"fmt"
	"image"
	"math"
)

// Sink receives the shapes and groups a Layer emits. Level implements it.
type Sink interface {
	AddShape(s Shape)
	AddGroup(g Group)
}

// Layer is an immutable drawing scope: a transform from user space to
// level space, an optional clip in level space, the style handed to every
// shape and the decomposition preferences.
//
// Scopes nest with Nested and the helpers built on it. A nested scope
// composes its transform after the parent's and can only shrink the clip.
//
// A Layer and its Sink are written by one goroutine at a time.
type Layer struct {
	sink       Sink
	style      Style
	transform  Matrix
	clip       *Path
	clipBounds Bounds
	prefs      Preferences
}

// LayerOption configures a nested scope.
type LayerOption func(*layerConfig)

type layerConfig struct {
	transform *Matrix
	clip      *Path
	prefs     *Preferences
	style     []ShapeOption
	reset     bool
}

// WithTransform composes m into the scope; it is applied before the
// parent's transform.
func WithTransform(m Matrix) LayerOption {
	return func(c *layerConfig) {
		c.transform = &m
	}
}

// WithClip restricts the scope to p, given in the scope's user space.
func WithClip(p *Path) LayerOption {
	return func(c *layerConfig) {
		c.clip = p
	}
}

// WithPreferences replaces the decomposition preferences.
func WithPreferences(p Preferences) LayerOption {
	return func(c *layerConfig) {
		c.prefs = &p
	}
}

// WithStyle overrides style attributes for every shape of the scope.
func WithStyle(opts ...ShapeOption) LayerOption {
	return func(c *layerConfig) {
		c.style = append(c.style, opts...)
	}
}

// WithReset starts an independent scope: identity transform, no clip and
// the default style. Preferences are kept unless replaced.
func WithReset() LayerOption {
	return func(c *layerConfig) {
		c.reset = true
	}
}

// NewLayer creates the root scope writing to sink: identity transform, no
// clip, DefaultStyle and DefaultPreferences.
func NewLayer(sink Sink, opts ...LayerOption) *Layer {
	root := &Layer{
		sink:      sink,
		style:     DefaultStyle(),
		transform: Identity(),
		prefs:     DefaultPreferences(),
	}
	if len(opts) == 0 {
		return root
	}
	return root.Nested(opts...)
}

// Nested returns a child scope of l.
func (l *Layer) Nested(opts ...LayerOption) *Layer {
	var cfg layerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	child := &Layer{
		sink:      l.sink,
		style:     l.style,
		transform: l.transform,
		clip:      l.clip,
		prefs:     l.prefs,
	}
	if cfg.reset {
		child.style = DefaultStyle()
		child.transform = Identity()
		child.clip = nil
	}
	if cfg.transform != nil {
		child.transform = child.transform.Multiply(*cfg.transform)
	}
	if cfg.clip != nil {
		clip := cfg.clip.Transform(child.transform)
		if child.clip != nil {
			clip = Intersect(child.clip, clip)
		}
		child.clip = clip
	}
	if child.clip != nil {
		child.clipBounds = child.clip.Bounds()
	}
	if cfg.prefs != nil {
		child.prefs = *cfg.prefs
	}
	child.style = child.style.with(cfg.style)
	return child
}

// Translate returns a scope moved by (x, y).
func (l *Layer) Translate(x, y float64) *Layer {
	return l.Nested(WithTransform(Translate(x, y)))
}

// Scale returns a scope scaled by (x, y) about the origin.
func (l *Layer) Scale(x, y float64) *Layer {
	return l.Nested(WithTransform(Scale(x, y)))
}

// Rotate returns a scope rotated by angle radians about center.
func (l *Layer) Rotate(angle float64, center Point) *Layer {
	return l.Nested(WithTransform(RotateAbout(angle, center.X, center.Y)))
}

// Transform returns a scope with m composed into it.
func (l *Layer) Transform(m Matrix) *Layer {
	return l.Nested(WithTransform(m))
}

// Clip returns a scope restricted to p.
func (l *Layer) Clip(p *Path) *Layer {
	return l.Nested(WithClip(p))
}

// ClipBounds returns a scope restricted to b.
func (l *Layer) ClipBounds(b Bounds) *Layer {
	return l.Nested(WithClip(Rect(b)))
}

// Matrix returns the transform from the scope's user space to level space.
func (l *Layer) Matrix() Matrix { return l.transform }

// ClipPath returns the clip in level space, or nil.
func (l *Layer) ClipPath() *Path { return l.clip }

// Style returns the style shapes of this scope get.
func (l *Layer) Style() Style { return l.style }

// Preferences returns the decomposition preferences.
func (l *Layer) Preferences() Preferences { return l.prefs }

// Rectangle submits a rectangle.
func (l *Layer) Rectangle(b Bounds, opts ...ShapeOption) error {
	return l.primitive(ShapeRectangle, b, l.style.with(opts))
}

// Circle submits a circle; b must be square. A non-zero inner cutout makes
// a ring.
func (l *Layer) Circle(b Bounds, opts ...ShapeOption) error {
	return l.primitive(ShapeCircle, b, l.style.with(opts))
}

// Triangle submits the isosceles triangle inscribed in b, apex up.
func (l *Layer) Triangle(b Bounds, opts ...ShapeOption) error {
	return l.primitive(ShapeTriangle, b, l.style.with(opts))
}

// Polygon submits an interactive custom shape.
func (l *Layer) Polygon(p *Path, opts ...ShapeOption) error {
	s := l.style.with(opts)
	if err := s.validate(); err != nil {
		return err
	}
	l.emitPath(ShapePolygon, l.toDevice(p), s)
	return nil
}

// Art submits a decorative custom shape.
func (l *Layer) Art(p *Path, opts ...ShapeOption) error {
	s := l.style.with(opts)
	if err := s.validate(); err != nil {
		return err
	}
	l.emitPath(ShapeArt, l.toDevice(p), s)
	return nil
}

// toDevice maps a user-space path into level space and clips it.
func (l *Layer) toDevice(p *Path) *Path {
	if p.Len() <= 2 {
		return NewPath()
	}
	d := p.Transform(l.transform)
	if l.clip != nil {
		d = Intersect(l.clip, d)
	}
	return d
}

// primitive emits a rectangle, circle or triangle. Transforms that keep
// the primitive a primitive adjust its bounds and rotation; anything else,
// or a clip that cuts through it, turns it into polygons or art. Interactive
// rings and circles stretched into ellipses always take the path route.
func (l *Layer) primitive(t ShapeType, b Bounds, s Style) error {
	if err := s.validate(); err != nil {
		return err
	}
	if t == ShapeCircle && !near(b.W, b.H) {
		return fmt.Errorf("%w: can't draw ellipse, only circles", ErrInvalidShape)
	}

	m := l.transform
	if s.Rotation != 0 {
		c := b.Center()
		m = m.Multiply(RotateAbout(float64(s.Rotation)*math.Pi/180, c.X, c.Y))
	}

	kind := m.Classify()
	if t == ShapeCircle && s.Interactive && s.InnerCutout != 0 {
		kind = TransformGeneral
	}
	if sx, sy := m.ScaleFactors(); kind == TransformScaleTranslate && t == ShapeCircle && !near(sx, sy) {
		kind = TransformGeneral
	}

	switch kind {
	case TransformIdentity, TransformTranslate, TransformScaleTranslate:
		sx, sy := m.ScaleFactors()
		nb := BoundsAround(m.TransformPoint(b.Center()), b.W*sx, b.H*sy)
		if l.clip != nil && !l.clipBounds.Overlaps(nb) {
			Logger().Debug("shape outside clip", "type", t)
			return nil
		}
		if l.clip == nil {
			l.emitPrimitive(t, nb, 0, s)
			return nil
		}
	case TransformRotateTranslate:
		nb := BoundsAround(m.TransformPoint(b.Center()), b.W, b.H)
		if l.clip != nil && !l.clipBounds.Overlaps(nb) {
			Logger().Debug("shape outside clip", "type", t)
			return nil
		}
		if l.clip == nil {
			rot := int(math.Round(m.RotationDegrees()))
			l.emitPrimitive(t, nb, rot, s)
			return nil
		}
	}

	for _, part := range primitiveParts(t, b, s, l.prefs) {
		d := part.Transform(m)
		if l.clip != nil {
			d = Intersect(l.clip, d)
		}
		if s.Interactive {
			l.emitPath(ShapePolygon, d, s)
		} else {
			l.emitPath(ShapeArt, d, s)
		}
	}
	return nil
}

// primitiveParts returns the outline of a primitive in user space. An
// interactive ring can only be expressed as a fan of wedges.
func primitiveParts(t ShapeType, b Bounds, s Style, prefs Preferences) []*Path {
	switch t {
	case ShapeRectangle:
		return []*Path{Rect(b)}
	case ShapeTriangle:
		return []*Path{IsoscelesTriangle(b)}
	}

	c := b.Center()
	r := b.W / 2
	if s.InnerCutout == 0 {
		return []*Path{Circle(c, r)}
	}
	inner := ringInnerRadius(r, s.InnerCutout)
	if !s.Interactive {
		return []*Path{Ring(c, r, inner)}
	}

	count := max(3, int(math.Ceil(2*math.Pi*r/(prefs.MinCurveLength-0.5))))
	Logger().Debug("ring wedges", "radius", r, "count", count)
	step := 2 * math.Pi / float64(count)
	parts := make([]*Path, count)
	for i := range parts {
		parts[i] = TruncRingSector(c, r, inner, float64(i)*step, float64(i+1)*step)
	}
	return parts
}

// ringInnerRadius shrinks the cutout slightly to match how the game draws
// cut-out circles.
func ringInnerRadius(r, cutout float64) float64 {
	return cutout / 100 * (1 - 0.015) * r
}

func (l *Layer) emitPrimitive(t ShapeType, b Bounds, rotation int, s Style) {
	if b.Area() < MinVisibleArea {
		Logger().Debug("shape below visible area", "type", t, "area", b.Area())
		return
	}
	l.sink.AddShape(s.primitive(t, b, rotation))
}

// emitPath encodes a level-space path as a polygon or art shape. Paths of
// two or fewer commands and shapes below MinVisibleArea are dropped.
func (l *Layer) emitPath(t ShapeType, p *Path, s Style) {
	if p.Len() <= 2 {
		Logger().Debug("degenerate path dropped", "type", t, "commands", p.Len())
		return
	}
	if t == ShapePolygon {
		p = p.Flatten(polygonTolerance)
		if p.IsClockwise() {
			p = p.Reversed()
		}
	}
	enc := EncodePath(p)
	if enc.Bounds.Area() < MinVisibleArea {
		Logger().Debug("shape below visible area", "type", t, "area", enc.Bounds.Area())
		return
	}
	l.sink.AddShape(s.custom(t, enc))
}

// polygonTolerance is the flattening tolerance for polygons; the game
// only accepts straight polygon edges.
const polygonTolerance = 0.5

// FillRectangle fills b with paint. Every solid region becomes a polygon
// when the style is interactive, art otherwise.
func (l *Layer) FillRectangle(b Bounds, paint Paint, opts ...ShapeOption) error {
	return l.fill(Rect(b), paint, l.style.with(opts))
}

// FillCircle fills the circle inscribed in the square b with paint. A
// ring can only be filled as art.
func (l *Layer) FillCircle(b Bounds, paint Paint, opts ...ShapeOption) error {
	s := l.style.with(opts)
	if !near(b.W, b.H) {
		return fmt.Errorf("%w: can't draw ellipse, only circles", ErrInvalidShape)
	}
	if s.Interactive && s.InnerCutout != 0 {
		return fmt.Errorf("%w: can't draw interactive ring", ErrInvalidShape)
	}
	r := b.W / 2
	target := Circle(b.Center(), r)
	if s.InnerCutout != 0 {
		target = Ring(b.Center(), r, ringInnerRadius(r, s.InnerCutout))
	}
	return l.fill(target, paint, s)
}

// FillTriangle fills the isosceles triangle inscribed in b with paint.
func (l *Layer) FillTriangle(b Bounds, paint Paint, opts ...ShapeOption) error {
	return l.fill(IsoscelesTriangle(b), paint, l.style.with(opts))
}

// FillPolygon fills p with paint as interactive polygons.
func (l *Layer) FillPolygon(p *Path, paint Paint, opts ...ShapeOption) error {
	s := l.style.with(opts)
	s.Interactive = true
	return l.fill(p, paint, s)
}

// FillArt fills p with paint as art.
func (l *Layer) FillArt(p *Path, paint Paint, opts ...ShapeOption) error {
	s := l.style.with(opts)
	s.Interactive = false
	return l.fill(p, paint, s)
}

func (l *Layer) fill(target *Path, paint Paint, s Style) error {
	if err := s.validate(); err != nil {
		return err
	}
	regions, err := DoFill(paint, l.prefs, target)
	if err != nil {
		return err
	}
	t := ShapeArt
	if s.Interactive {
		t = ShapePolygon
	}
	for _, r := range regions {
		rs := s
		rs.Color = r.Color
		rs.Outline = nil
		l.emitPath(t, l.toDevice(r.Path), rs)
	}
	return nil
}

// Picture draws img as art. The image covers anchor, or its own pixel
// bounds when anchor is nil.
func (l *Layer) Picture(img image.Image, anchor *Bounds) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrUnsupported)
	}
	tex := NewTexture(img)
	if anchor != nil {
		tex.Anchor = *anchor
	}
	regions, err := DoFill(tex, l.prefs, nil)
	if err != nil {
		return err
	}
	s := l.style
	s.Outline = nil
	for _, r := range regions {
		s.Color = r.Color
		l.emitPath(ShapeArt, l.toDevice(r.Path), s)
	}
	return nil
}
