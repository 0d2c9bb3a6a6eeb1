package flatpaint

import "fmt"

// Group is a set of shapes the game moves as one body.
type Group struct {
	Shapes     []Shape
	Sleeping   bool
	Foreground bool
	Opacity    int
	Fixed      bool
	FixedAngle bool
}

// GroupOptions are the flags of a group. The zero Opacity hides the group;
// start from DefaultGroupOptions.
type GroupOptions struct {
	Sleeping   bool
	Foreground bool
	Opacity    int
	Fixed      bool
	FixedAngle bool
}

// DefaultGroupOptions returns a fully opaque, movable group.
func DefaultGroupOptions() GroupOptions {
	return GroupOptions{Opacity: 100}
}

// Bounds returns the union of the bounds of every shape.
func (g Group) Bounds() Bounds {
	if len(g.Shapes) == 0 {
		return Bounds{}
	}
	b := g.Shapes[0].ShapeBounds()
	for _, s := range g.Shapes[1:] {
		b = b.Union(s.ShapeBounds())
	}
	return b
}

// groupSink collects shapes into a group. Groups submitted inside a group
// are held back and handed to the parent sink, ahead of the group itself,
// once the group completes.
type groupSink struct {
	group  *Group
	nested []Group
}

func (g *groupSink) AddShape(s Shape)  { g.group.Shapes = append(g.group.Shapes, s) }
func (g *groupSink) AddGroup(gr Group) { g.nested = append(g.nested, gr) }

// Group runs fn on a child scope whose shapes are collected into one group,
// then emits the group. An empty group is not emitted. When fn fails
// nothing it drew is emitted and the error is returned.
func (l *Layer) Group(opts GroupOptions, fn func(*Layer) error) error {
	if opts.Opacity < 0 || opts.Opacity > 100 {
		return fmt.Errorf("%w: group opacity %d outside [0, 100]", ErrInvalidShape, opts.Opacity)
	}

	g := &Group{
		Sleeping:   opts.Sleeping,
		Foreground: opts.Foreground,
		Opacity:    opts.Opacity,
		Fixed:      opts.Fixed,
		FixedAngle: opts.FixedAngle,
	}
	sink := &groupSink{group: g}
	child := l.Nested()
	child.sink = sink
	if err := fn(child); err != nil {
		return fmt.Errorf("group: %w", err)
	}

	for _, nested := range sink.nested {
		l.sink.AddGroup(nested)
	}
	if len(g.Shapes) == 0 {
		Logger().Debug("empty group dropped")
		return nil
	}
	l.sink.AddGroup(*g)
	return nil
}
