package trace

import (
	"image/color"
	"math/rand/v2"
	"testing"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

// gridFrom builds a grid from rows of runes; '.' is transparent, 'r' red,
// 'g' green, 'b' blue.
func gridFrom(rows ...string) *Grid {
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			switch ch {
			case 'r':
				g.Set(x, y, red)
			case 'g':
				g.Set(x, y, green)
			case 'b':
				g.Set(x, y, blue)
			}
		}
	}
	return g
}

func visibleOnly() Options {
	opts := DefaultOptions()
	opts.SkipColor = func(c color.NRGBA) bool { return c.A == 0 }
	return opts
}

func mustTrace(t *testing.T, g *Grid, opts Options) []Layer {
	t.Helper()
	layers, err := Trace(g, opts)
	if err != nil {
		t.Fatalf("Trace() error = %v", err)
	}
	return layers
}

// polyline samples a contour, curves included, into a closed polyline.
func polyline(c Contour) []Point {
	const steps = 16
	pts := []Point{c.Start}
	prev := c.Start
	for _, s := range c.Segments {
		if s.Kind == Cubic {
			for i := 1; i < steps; i++ {
				u := float64(i) / steps
				v := 1 - u
				a, b, cc, d := v*v*v, 3*v*v*u, 3*v*u*u, u*u*u
				pts = append(pts, Point{
					X: a*prev.X + b*s.C1.X + cc*s.C2.X + d*s.End.X,
					Y: a*prev.Y + b*s.C1.Y + cc*s.C2.Y + d*s.End.Y,
				})
			}
		}
		pts = append(pts, s.End)
		prev = s.End
	}
	return pts
}

// covers reports whether p lies inside l under the even-odd rule.
func covers(l Layer, p Point) bool {
	inside := false
	for _, c := range l.Contours {
		pts := polyline(c)
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a.Y > p.Y) != (b.Y > p.Y) && p.X < a.X+(p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y) {
				inside = !inside
			}
		}
	}
	return inside
}

// topmost returns the color of the last layer covering p.
func topmost(layers []Layer, p Point) (color.NRGBA, bool) {
	for i := len(layers) - 1; i >= 0; i-- {
		if covers(layers[i], p) {
			return layers[i].Color, true
		}
	}
	return color.NRGBA{}, false
}

func center(x, y int) Point {
	return Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

func TestTraceLayerOrder(t *testing.T) {
	g := gridFrom(
		"rrrrbbbb",
		"rrrrbbbb",
		"rrrrbbbb",
		"rrrrbbbb",
		"bbbbrrrr",
		"bbbbrrrr",
		"bbbbrrrr",
		"bbbbrrrr",
	)
	layers := mustTrace(t, g, DefaultOptions())
	if len(layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(layers))
	}
	if layers[0].Color != red || layers[1].Color != blue {
		t.Errorf("layer order = %v, %v; want red then blue", layers[0].Color, layers[1].Color)
	}
	// Block interiors keep their color when the layers are painted in order.
	for _, tt := range []struct {
		x, y int
		want color.NRGBA
	}{
		{1, 1, red}, {2, 2, red}, {5, 5, red},
		{5, 1, blue}, {6, 2, blue}, {1, 6, blue},
	} {
		if got, ok := topmost(layers, center(tt.x, tt.y)); !ok || got != tt.want {
			t.Errorf("pixel (%d, %d) = %v (covered %v), want %v", tt.x, tt.y, got, ok, tt.want)
		}
	}
}

func TestTraceLeavesNoSeams(t *testing.T) {
	palette := []color.NRGBA{red, green, blue}
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := range 5 {
		g := NewGrid(12, 9)
		for i := range g.Pix {
			g.Pix[i] = palette[rng.IntN(len(palette))]
		}
		layers := mustTrace(t, g, DefaultOptions())
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if _, ok := topmost(layers, center(x, y)); !ok {
					t.Errorf("trial %d: pixel (%d, %d) is not covered by any layer", trial, x, y)
				}
			}
		}
	}
}

func TestTraceHole(t *testing.T) {
	g := gridFrom(
		"rrrrr",
		"r...r",
		"r...r",
		"r...r",
		"rrrrr",
	)
	layers := mustTrace(t, g, visibleOnly())
	if len(layers) != 1 {
		t.Fatalf("got %d layers, want 1", len(layers))
	}
	ring := layers[0]
	if len(ring.Contours) != 2 {
		t.Fatalf("ring has %d contours, want outer and hole", len(ring.Contours))
	}
	if covers(ring, center(2, 2)) {
		t.Error("hole is filled")
	}
	if !covers(ring, center(0, 2)) || !covers(ring, center(2, 4)) {
		t.Error("ring body not covered")
	}
}

func TestTraceTurdSize(t *testing.T) {
	g := gridFrom("...", ".r.", "...")

	opts := visibleOnly()
	layers := mustTrace(t, g, opts)
	if len(layers) != 1 || !covers(layers[0], center(1, 1)) {
		t.Errorf("single pixel not traced: %v", layers)
	}

	opts.TurdSize = 2
	if got := mustTrace(t, g, opts); len(got) != 0 {
		t.Errorf("got %d layers, want the speck dropped", len(got))
	}
}

func TestTraceSkipColor(t *testing.T) {
	opts := DefaultOptions()
	opts.SkipColor = func(c color.NRGBA) bool { return c == red }
	if got := mustTrace(t, gridFrom("rr", "rr"), opts); len(got) != 0 {
		t.Errorf("got %d layers, want none", len(got))
	}
}

func TestTraceEmpty(t *testing.T) {
	for _, g := range []*Grid{nil, NewGrid(0, 0)} {
		if got := mustTrace(t, g, DefaultOptions()); got != nil {
			t.Errorf("Trace(%v) = %v, want nil", g, got)
		}
	}
}
