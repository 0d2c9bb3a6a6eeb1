package flatpaint

import (
	"reflect"
	"testing"
)

func TestEncodePathRectangle(t *testing.T) {
	enc := EncodePath(Rect(Bounds{X: 0, Y: 0, W: 10, H: 10}))

	if want := (Bounds{X: 0, Y: 0, W: 10, H: 10}); enc.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", enc.Bounds, want)
	}
	want := []string{"-5.000_-5.000", "5.000_-5.000", "5.000_5.000", "-5.000_5.000"}
	if got := enc.Format(); !reflect.DeepEqual(got, want) {
		t.Errorf("Format() = %v, want %v", got, want)
	}
}

func TestEncodePathCurveHandles(t *testing.T) {
	p := NewPath().
		MoveTo(0, 0).
		CubicTo(0, -10, 20, -10, 20, 0).
		LineTo(20, 20).
		LineTo(0, 20).
		Close()
	enc := EncodePath(p)

	if len(enc.Vertices) != 4 {
		t.Fatalf("got %d vertices, want 4", len(enc.Vertices))
	}
	first, second := enc.Vertices[0], enc.Vertices[1]
	if first.Right == nil || *first.Right != Pt(0, -10) {
		t.Errorf("first vertex right handle = %v, want (0, -10)", first.Right)
	}
	if second.Left == nil || *second.Left != Pt(20, -10) {
		t.Errorf("second vertex left handle = %v, want (20, -10)", second.Left)
	}
	if !enc.Vertices[2].IsStraight() {
		t.Error("third vertex should be straight")
	}

	// Bounds ignore the handles.
	if want := (Bounds{X: 0, Y: 0, W: 20, H: 20}); enc.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", enc.Bounds, want)
	}

	// Handles are written relative to their vertex; points relative to
	// the bounds center.
	got := enc.Format()
	if got[0] != "-10.000_-10.000_0.000_0.000_0.000_-10.000" {
		t.Errorf("Format()[0] = %q", got[0])
	}
	if got[1] != "10.000_-10.000_0.000_-10.000_0.000_0.000" {
		t.Errorf("Format()[1] = %q", got[1])
	}
}

func vertexEqual(a, b Vertex) bool {
	handle := func(p, q *Point) bool {
		if p == nil || q == nil {
			return p == q
		}
		return p.Near(*q)
	}
	return a.Point.Near(b.Point) && handle(a.Left, b.Left) && handle(a.Right, b.Right)
}

func TestEncodePathIdempotent(t *testing.T) {
	tests := []struct {
		name string
		path *Path
	}{
		{"rectangle", Rect(Bounds{X: 10, Y: 20, W: 30, H: 40})},
		{"circle", Circle(Pt(50, 50), 25)},
		{"triangle", IsoscelesTriangle(Bounds{W: 60, H: 30})},
		{"quad", NewPath().MoveTo(0, 0).QuadraticTo(15, -20, 30, 0).LineTo(15, 30).Close()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := EncodePath(tt.path)
			twice := EncodePath(once.Path())

			if len(once.Vertices) != len(twice.Vertices) {
				t.Fatalf("re-encoding changed vertex count: %d -> %d", len(once.Vertices), len(twice.Vertices))
			}
			for i := range once.Vertices {
				if !vertexEqual(once.Vertices[i], twice.Vertices[i]) {
					t.Errorf("vertex %d: %+v -> %+v", i, once.Vertices[i], twice.Vertices[i])
				}
			}
			if !reflect.DeepEqual(once.Format(), twice.Format()) {
				t.Errorf("Format() changed:\n%v\n%v", once.Format(), twice.Format())
			}
		})
	}
}

func TestEncodePathDropsNearDuplicates(t *testing.T) {
	p := NewPath().
		MoveTo(0, 0).
		LineTo(0.01, 0).
		LineTo(10, 0).
		LineTo(10, 10).
		LineTo(10, 10.02).
		LineTo(0, 10).
		Close()
	if got := len(EncodePath(p).Vertices); got != 4 {
		t.Errorf("got %d vertices, want 4", got)
	}
}

func TestEncodePathSmallAreaScaledUp(t *testing.T) {
	enc := EncodePath(Rect(Bounds{X: 0, Y: 0, W: 2, H: 2}))

	// The bounds stay those of the source path.
	if want := (Bounds{X: 0, Y: 0, W: 2, H: 2}); enc.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", enc.Bounds, want)
	}
	// Area 4 is scaled by 20/4 about the center.
	want := []string{"-5.000_-5.000", "5.000_-5.000", "5.000_5.000", "-5.000_5.000"}
	if got := enc.Format(); !reflect.DeepEqual(got, want) {
		t.Errorf("Format() = %v, want %v", got, want)
	}
}

func TestEncodePathJoinsSubContours(t *testing.T) {
	p := Rect(Bounds{X: 0, Y: 0, W: 10, H: 10})
	p.Append(Rect(Bounds{X: 20, Y: 0, W: 10, H: 10}))
	enc := EncodePath(p)

	// Four corners and a bridge back to the first point per rectangle;
	// the final bridge is the dropped closing vertex.
	if len(enc.Vertices) != 10 {
		t.Fatalf("got %d vertices, want 10", len(enc.Vertices))
	}
	if got := enc.Vertices[4].Point; got != Pt(0, 0) {
		t.Errorf("bridge vertex = %v, want (0, 0)", got)
	}
	if got := enc.Vertices[5].Point; got != Pt(20, 0) {
		t.Errorf("second contour starts at %v, want (20, 0)", got)
	}
	if want := (Bounds{X: 0, Y: 0, W: 30, H: 10}); enc.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", enc.Bounds, want)
	}
}

func TestEncodePathEmpty(t *testing.T) {
	enc := EncodePath(NewPath())
	if len(enc.Vertices) != 0 {
		t.Errorf("got %d vertices, want none", len(enc.Vertices))
	}
	if enc.Bounds != (Bounds{}) {
		t.Errorf("Bounds = %+v, want zero", enc.Bounds)
	}
	if !enc.Path().IsEmpty() {
		t.Error("Path() of an empty encoding is not empty")
	}
}

func TestFormatFloatRounds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.000"},
		{1.23456, "1.235"},
		{-0.0004, "-0.000"},
		{1e6, "1000000.000"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
