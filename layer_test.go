package flatpaint

import (
	"errors"
	"math"
	"testing"
)

func TestLayerSolidRectangleFill(t *testing.T) {
	level := NewLevel()
	b := Bounds{X: 0, Y: 0, W: 100, H: 100}

	if err := level.Layer().FillRectangle(b, Solid{Color: Red}); err != nil {
		t.Fatalf("FillRectangle() error = %v", err)
	}
	if len(level.Shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(level.Shapes))
	}
	s := level.Shapes[0]
	if s.Type != ShapePolygon {
		t.Errorf("type = %v, want polygon", s.Type)
	}
	if s.Color != Red {
		t.Errorf("color = %v, want red", s.Color)
	}
	if s.Path.Bounds != b {
		t.Errorf("bounds = %+v, want %+v", s.Path.Bounds, b)
	}
	if len(s.Path.Vertices) != 4 {
		t.Errorf("got %d vertices, want 4", len(s.Path.Vertices))
	}
}

func TestLayerGradientFillAsArt(t *testing.T) {
	level := NewLevel()
	g := NewLinearGradient(0, 0, 100, 0).
		AddColorStop(0, White).
		AddColorStop(1, Black)

	err := level.Layer().FillRectangle(Bounds{W: 100, H: 100}, g, WithInteractive(false))
	if err != nil {
		t.Fatalf("FillRectangle() error = %v", err)
	}
	if len(level.Shapes) <= 3 {
		t.Fatalf("got %d shapes, want bands", len(level.Shapes))
	}
	grown := Bounds{X: anchor.X - 1, Y: anchor.Y - 1, W: anchor.W + 2, H: anchor.H + 2}
	for i, s := range level.Shapes {
		if s.Type != ShapeArt {
			t.Errorf("shape %d type = %v, want art", i, s.Type)
		}
		if s.Outline != nil {
			t.Errorf("shape %d has an outline", i)
		}
		if i > 0 && s.Color.R > level.Shapes[i-1].Color.R {
			t.Errorf("shape %d lighter than shape %d", i, i-1)
		}
	}
}

func TestLayerInteractiveRingWedges(t *testing.T) {
	level := NewLevel()
	prefs := NewPreferences(WithMinCurveLength(10))
	l := level.Layer(WithPreferences(prefs))

	err := l.Circle(Bounds{X: -100, Y: -100, W: 200, H: 200}, WithInnerCutout(50))
	if err != nil {
		t.Fatalf("Circle() error = %v", err)
	}

	want := int(math.Ceil(2 * math.Pi * 100 / 9.5))
	if len(level.Shapes) != want {
		t.Fatalf("got %d wedges, want %d", len(level.Shapes), want)
	}
	for i, s := range level.Shapes {
		if s.Type != ShapePolygon {
			t.Errorf("wedge %d type = %v, want polygon", i, s.Type)
		}
		if n := len(s.Path.Vertices); n != 4 {
			t.Errorf("wedge %d has %d vertices, want 4", i, n)
		}
	}
}

func TestLayerCoarserWedges(t *testing.T) {
	fine, coarse := NewLevel(), NewLevel()
	b := Bounds{W: 200, H: 200}
	_ = fine.Layer(WithPreferences(NewPreferences(WithMinCurveLength(10)))).Circle(b, WithInnerCutout(50))
	_ = coarse.Layer(WithPreferences(NewPreferences(WithMinCurveLength(40)))).Circle(b, WithInnerCutout(50))

	if len(coarse.Shapes) >= len(fine.Shapes) {
		t.Errorf("min curve length 40 gave %d wedges, 10 gave %d", len(coarse.Shapes), len(fine.Shapes))
	}
}

func TestLayerDecorativeRingStaysCircle(t *testing.T) {
	level := NewLevel()
	err := level.Layer().Circle(Bounds{W: 50, H: 50}, WithInnerCutout(30), WithInteractive(false))
	if err != nil {
		t.Fatalf("Circle() error = %v", err)
	}
	if len(level.Shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(level.Shapes))
	}
	if s := level.Shapes[0]; s.Type != ShapeCircle || s.InnerCutout != 30 {
		t.Errorf("shape = %v with cutout %v, want circle with cutout 30", s.Type, s.InnerCutout)
	}
}

func TestLayerPrimitiveFastPaths(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want Bounds
	}{
		{"identity", Identity(), Bounds{X: 0, Y: 0, W: 10, H: 10}},
		{"translate", Translate(5, -5), Bounds{X: 5, Y: -5, W: 10, H: 10}},
		{"scale", Scale(2, 3), Bounds{X: 0, Y: 0, W: 20, H: 30}},
		{"translate then scale", Translate(10, 20).Multiply(Scale(2, 3)), Bounds{X: 10, Y: 20, W: 20, H: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := NewLevel()
			l := level.Layer().Transform(tt.m)
			if err := l.Rectangle(Bounds{W: 10, H: 10}); err != nil {
				t.Fatalf("Rectangle() error = %v", err)
			}
			if err := l.Triangle(Bounds{W: 10, H: 10}); err != nil {
				t.Fatalf("Triangle() error = %v", err)
			}
			if len(level.Shapes) != 2 {
				t.Fatalf("got %d shapes, want 2", len(level.Shapes))
			}
			for i, want := range []ShapeType{ShapeRectangle, ShapeTriangle} {
				s := level.Shapes[i]
				if s.Type != want {
					t.Errorf("shape %d type = %v, want %v", i, s.Type, want)
				}
				if !boundsNear(s.Bounds, tt.want, 1e-9) {
					t.Errorf("shape %d bounds = %+v, want %+v", i, s.Bounds, tt.want)
				}
			}
		})
	}
}

func TestLayerUniformScaleKeepsCircle(t *testing.T) {
	level := NewLevel()
	if err := level.Layer().Scale(3, 3).Circle(Bounds{W: 10, H: 10}); err != nil {
		t.Fatalf("Circle() error = %v", err)
	}
	s := level.Shapes[0]
	if s.Type != ShapeCircle {
		t.Fatalf("type = %v, want circle", s.Type)
	}
	if want := (Bounds{W: 30, H: 30}); !boundsNear(s.Bounds, want, 1e-9) {
		t.Errorf("bounds = %+v, want %+v", s.Bounds, want)
	}
}

func TestLayerRotation(t *testing.T) {
	level := NewLevel()
	l := level.Layer().Rotate(math.Pi/2, Pt(0, 0))
	if err := l.Rectangle(Bounds{W: 10, H: 20}); err != nil {
		t.Fatalf("Rectangle() error = %v", err)
	}

	s := level.Shapes[0]
	if s.Type != ShapeRectangle {
		t.Fatalf("type = %v, want rectangle", s.Type)
	}
	if s.Rotation != 90 {
		t.Errorf("rotation = %d, want 90", s.Rotation)
	}
	// The center (5, 10) turns to (-10, 5); the size is unrotated.
	if want := (Bounds{X: -15, Y: -5, W: 10, H: 20}); !boundsNear(s.Bounds, want, 1e-9) {
		t.Errorf("bounds = %+v, want %+v", s.Bounds, want)
	}
}

func TestLayerStyleRotationComposes(t *testing.T) {
	level := NewLevel()
	l := level.Layer().Rotate(math.Pi/6, Pt(0, 0))
	if err := l.Rectangle(Bounds{W: 10, H: 10}, WithRotation(15)); err != nil {
		t.Fatalf("Rectangle() error = %v", err)
	}
	if got := level.Shapes[0].Rotation; got != 45 {
		t.Errorf("rotation = %d, want 45", got)
	}
}

func TestLayerGeneralTransformFallsBackToPath(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		draw func(*Layer) error
	}{
		{"mirrored triangle", Scale(-1, 1), func(l *Layer) error { return l.Triangle(Bounds{W: 10, H: 10}) }},
		{"sheared rectangle", Shear(0.5, 0), func(l *Layer) error { return l.Rectangle(Bounds{W: 10, H: 10}) }},
		{"stretched circle", Scale(2, 1), func(l *Layer) error { return l.Circle(Bounds{W: 10, H: 10}) }},
		{"scaled and rotated", Rotate(math.Pi / 4).Multiply(Scale(2, 2)), func(l *Layer) error { return l.Rectangle(Bounds{W: 10, H: 10}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := NewLevel()
			if err := tt.draw(level.Layer().Transform(tt.m)); err != nil {
				t.Fatalf("draw error = %v", err)
			}
			if len(level.Shapes) != 1 {
				t.Fatalf("got %d shapes, want 1", len(level.Shapes))
			}
			if s := level.Shapes[0]; s.Type != ShapePolygon || s.Path == nil {
				t.Errorf("shape = %v, want an encoded polygon", s.Type)
			}
		})
	}

	t.Run("stretched circle bounds", func(t *testing.T) {
		level := NewLevel()
		_ = level.Layer().Scale(2, 1).Circle(Bounds{W: 10, H: 10})
		want := Bounds{X: 0, Y: 0, W: 20, H: 10}
		if got := level.Shapes[0].Path.Bounds; !boundsNear(got, want, 1e-9) {
			t.Errorf("bounds = %+v, want %+v", got, want)
		}
	})
}

func TestLayerClip(t *testing.T) {
	t.Run("nested clips shrink", func(t *testing.T) {
		l := NewLevel().Layer().
			ClipBounds(Bounds{W: 50, H: 50}).
			ClipBounds(Bounds{X: 25, Y: 25, W: 50, H: 50})
		want := Bounds{X: 25, Y: 25, W: 25, H: 25}
		if got := l.ClipPath().Bounds(); !boundsNear(got, want, 1e-9) {
			t.Errorf("clip bounds = %+v, want %+v", got, want)
		}
	})

	t.Run("clip is kept in level space", func(t *testing.T) {
		l := NewLevel().Layer().Translate(100, 0).ClipBounds(Bounds{W: 10, H: 10})
		want := Bounds{X: 100, Y: 0, W: 10, H: 10}
		if got := l.ClipPath().Bounds(); !boundsNear(got, want, 1e-9) {
			t.Errorf("clip bounds = %+v, want %+v", got, want)
		}
	})

	t.Run("cut primitive becomes polygon", func(t *testing.T) {
		level := NewLevel()
		l := level.Layer().ClipBounds(Bounds{W: 50, H: 50})
		if err := l.Rectangle(Bounds{X: 25, Y: 25, W: 50, H: 50}); err != nil {
			t.Fatalf("Rectangle() error = %v", err)
		}
		if len(level.Shapes) != 1 {
			t.Fatalf("got %d shapes, want 1", len(level.Shapes))
		}
		s := level.Shapes[0]
		if s.Type != ShapePolygon {
			t.Errorf("type = %v, want polygon", s.Type)
		}
		if want := (Bounds{X: 25, Y: 25, W: 25, H: 25}); !boundsNear(s.Path.Bounds, want, 1e-9) {
			t.Errorf("bounds = %+v, want %+v", s.Path.Bounds, want)
		}
	})

	t.Run("shape outside clip dropped", func(t *testing.T) {
		level := NewLevel()
		l := level.Layer().ClipBounds(Bounds{W: 50, H: 50})
		if err := l.Rectangle(Bounds{X: 100, Y: 100, W: 10, H: 10}); err != nil {
			t.Fatalf("Rectangle() error = %v", err)
		}
		if err := l.Art(Rect(Bounds{X: 100, Y: 100, W: 10, H: 10})); err != nil {
			t.Fatalf("Art() error = %v", err)
		}
		if len(level.Shapes) != 0 {
			t.Errorf("got %d shapes, want none", len(level.Shapes))
		}
	})

	t.Run("reset drops clip and transform", func(t *testing.T) {
		l := NewLevel().Layer().Translate(5, 5).ClipBounds(Bounds{W: 1, H: 1}).Nested(WithReset())
		if l.ClipPath() != nil {
			t.Error("reset scope kept the clip")
		}
		if !l.Matrix().IsIdentity() {
			t.Errorf("reset scope matrix = %+v, want identity", l.Matrix())
		}
	})
}

func TestLayerDropsInvisibleArea(t *testing.T) {
	level := NewLevel()
	l := level.Layer()

	if err := l.Rectangle(Bounds{W: 1, H: 1}); err != nil {
		t.Fatalf("Rectangle() error = %v", err)
	}
	if err := l.Art(NewPath().MoveTo(0, 0).LineTo(1, 0).LineTo(0, 1).Close()); err != nil {
		t.Fatalf("Art() error = %v", err)
	}
	if err := l.Polygon(NewPath().MoveTo(0, 0).LineTo(5, 5)); err != nil {
		t.Fatalf("Polygon() error = %v", err)
	}
	if len(level.Shapes) != 0 {
		t.Errorf("got %d shapes, want tiny and degenerate shapes dropped", len(level.Shapes))
	}
}

func TestLayerPolygonIsStraightAndCounterClockwise(t *testing.T) {
	level := NewLevel()
	if err := level.Layer().Polygon(Circle(Pt(50, 50), 20)); err != nil {
		t.Fatalf("Polygon() error = %v", err)
	}
	enc := level.Shapes[0].Path
	for i, v := range enc.Vertices {
		if !v.IsStraight() {
			t.Errorf("vertex %d has handles", i)
		}
	}
	if enc.Path().IsClockwise() {
		t.Error("polygon winds clockwise")
	}
}

func TestLayerArtKeepsCurvesAndResetsPhysics(t *testing.T) {
	level := NewLevel()
	err := level.Layer().Art(Circle(Pt(50, 50), 20), WithFixed(false), WithDensity(5), WithCollision(CollisionNothing))
	if err != nil {
		t.Fatalf("Art() error = %v", err)
	}
	s := level.Shapes[0]
	if s.Type != ShapeArt {
		t.Fatalf("type = %v, want art", s.Type)
	}
	if len(s.Path.Vertices) != 4 || s.Path.Vertices[0].IsStraight() {
		t.Errorf("art circle should keep 4 curved vertices, got %+v", s.Path.Vertices)
	}
	if s.Interactive || s.Fixed || s.Density != 1 || s.Collision != CollisionEverything {
		t.Errorf("art physics = %+v, want defaults", s)
	}
}

func TestLayerStyleInheritance(t *testing.T) {
	level := NewLevel()
	l := level.Layer().Nested(WithStyle(WithColor(Red), WithFixed(false)))

	if err := l.Rectangle(Bounds{W: 10, H: 10}, WithDensity(3)); err != nil {
		t.Fatalf("Rectangle() error = %v", err)
	}
	if err := l.Nested(WithReset()).Rectangle(Bounds{W: 10, H: 10}); err != nil {
		t.Fatalf("Rectangle() error = %v", err)
	}

	got := level.Shapes[0]
	if got.Color != Red || got.Fixed || got.Density != 3 || !got.Interactive {
		t.Errorf("styled shape = %+v", got)
	}
	if reset := level.Shapes[1]; reset.Color != DefaultColor || !reset.Fixed || reset.Density != 1 {
		t.Errorf("reset shape = %+v, want the default style", reset)
	}
}

func TestLayerValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		draw func(*Layer) error
	}{
		{"ellipse", func(l *Layer) error { return l.Circle(Bounds{W: 10, H: 20}) }},
		{"ellipse fill", func(l *Layer) error { return l.FillCircle(Bounds{W: 10, H: 20}, Solid{Color: Red}) }},
		{"interactive ring fill", func(l *Layer) error {
			return l.FillCircle(Bounds{W: 10, H: 10}, Solid{Color: Red}, WithInnerCutout(50))
		}},
		{"density too low", func(l *Layer) error { return l.Rectangle(Bounds{W: 10, H: 10}, WithDensity(0.05)) }},
		{"density too high", func(l *Layer) error { return l.Art(Rect(Bounds{W: 10, H: 10}), WithDensity(101)) }},
		{"negative cutout", func(l *Layer) error { return l.Circle(Bounds{W: 10, H: 10}, WithInnerCutout(-1)) }},
		{"cutout over 100", func(l *Layer) error { return l.Circle(Bounds{W: 10, H: 10}, WithInnerCutout(101)) }},
		{"unknown collision", func(l *Layer) error { return l.Polygon(Rect(Bounds{W: 10, H: 10}), WithCollision(8)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := NewLevel()
			err := tt.draw(level.Layer())
			if !errors.Is(err, ErrInvalidShape) {
				t.Errorf("error = %v, want ErrInvalidShape", err)
			}
			if len(level.Shapes) != 0 {
				t.Errorf("got %d shapes after an error", len(level.Shapes))
			}
		})
	}
}

func TestLayerFillErrorsEmitNothing(t *testing.T) {
	level := NewLevel()
	g := NewLinearGradient(0, 0, 10, 0).AddColorStop(0, Red)
	g.Cycle = CycleReflect

	err := level.Layer().FillRectangle(Bounds{W: 10, H: 10}, g)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("error = %v, want ErrUnsupported", err)
	}
	if len(level.Shapes) != 0 {
		t.Errorf("got %d shapes after an error", len(level.Shapes))
	}
}

func TestLayerPicture(t *testing.T) {
	level := NewLevel()
	prefs := NewPreferences(WithVectorizing(false))
	anchor := Bounds{X: 100, Y: 100, W: 40, H: 40}

	if err := level.Layer(WithPreferences(prefs)).Picture(quadrants(), &anchor); err != nil {
		t.Fatalf("Picture() error = %v", err)
	}
	if len(level.Shapes) != 4 {
		t.Fatalf("got %d shapes, want 4", len(level.Shapes))
	}
	grown := Bounds{X: anchor.X - 1, Y: anchor.Y - 1, W: anchor.W + 2, H: anchor.H + 2}
	for i, s := range level.Shapes {
		if s.Type != ShapeArt {
			t.Errorf("shape %d type = %v, want art", i, s.Type)
		}
		if !grown.ContainsBounds(s.Path.Bounds) {
			t.Errorf("shape %d bounds %+v outside the anchor", i, s.Path.Bounds)
		}
	}

	if err := level.Layer().Picture(nil, nil); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Picture(nil) error = %v, want ErrUnsupported", err)
	}
}
