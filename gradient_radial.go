package flatpaint

// RadialGradient varies color from Focus outwards to the circle of Radius
// around Center. Band circles are centered between Focus and Center,
// moving from the focus to the center as the offset grows.
//
// Example:
//
//	// Simple radial gradient (focus = center)
//	gradient := flatpaint.NewRadialGradient(50, 50, 50).
//	    AddColorStop(0, flatpaint.White).
//	    AddColorStop(1, flatpaint.Black)
type RadialGradient struct {
	Center    Point          // Center of the end circle
	Focus     Point          // Focal point, the center of the start circle
	Radius    float64        // Radius of the end circle
	Stops     []GradientStop // Color stops defining the gradient
	Cycle     CycleMode      // How the gradient continues past its ends
	Transform Matrix         // Gradient space to paint space; zero means identity
}

// NewRadialGradient creates a radial gradient with its focus at the center.
func NewRadialGradient(cx, cy, r float64) *RadialGradient {
	return &RadialGradient{
		Center: Point{X: cx, Y: cy},
		Focus:  Point{X: cx, Y: cy},
		Radius: r,
	}
}

// AddColorStop adds a color stop at the specified offset.
// Returns the gradient for method chaining.
func (g *RadialGradient) AddColorStop(offset float64, c Color) *RadialGradient {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

// SetFocus moves the focal point.
// Returns the gradient for method chaining.
func (g *RadialGradient) SetFocus(x, y float64) *RadialGradient {
	g.Focus = Point{X: x, Y: y}
	return g
}

func (RadialGradient) paintMarker() {}

// regions maps every band onto an annulus. The outer circle grows and the
// inner circle shrinks by AdditionalPartSize; the inner radius never goes
// below zero, so the first band is a full disc. Band sizes are measured in
// paint space along the longer axis of the transformed circle.
func (g RadialGradient) regions(prefs Preferences) []Region {
	m := g.Transform.orIdentity()
	sx, sy := m.ScaleFactors()
	k := max(sx, sy)
	size := g.Radius * k
	if g.Radius < zeroExtent || size < zeroExtent {
		return universe(lastStopColor(g.Stops))
	}

	pad := prefs.AdditionalPartSize / k
	var out []Region
	for _, b := range gradientBands(g.Stops, size, prefs) {
		outerC := g.Focus.Lerp(g.Center, clamp01(b.End))
		innerC := g.Focus.Lerp(g.Center, clamp01(b.Start))
		outerR := g.Radius*b.End + pad
		innerR := max(0, g.Radius*b.Start-pad)

		ring := Circle(outerC, outerR)
		if innerR > 0 {
			ring.Append(Circle(innerC, innerR).Reversed())
		}
		out = append(out, Region{Path: ring.Transform(m), Color: FromColor(b.Color)})
	}
	return out
}
