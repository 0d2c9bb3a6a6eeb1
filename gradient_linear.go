package flatpaint

import (
	"math"

	"github.com/gogpu/flatpaint/internal/band"
)

// LinearGradient varies color along the axis from Start to End. Lines
// perpendicular to the axis share one color.
//
// Example:
//
//	gradient := flatpaint.NewLinearGradient(0, 0, 100, 0).
//	    AddColorStop(0, flatpaint.Red).
//	    AddColorStop(1, flatpaint.Blue)
type LinearGradient struct {
	Start     Point          // Start point of the gradient
	End       Point          // End point of the gradient
	Stops     []GradientStop // Color stops defining the gradient
	Cycle     CycleMode      // How the gradient continues past its ends
	Transform Matrix         // Gradient space to paint space; zero means identity
}

// NewLinearGradient creates a new linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{
		Start: Point{X: x0, Y: y0},
		End:   Point{X: x1, Y: y1},
	}
}

// AddColorStop adds a color stop at the specified offset.
// Returns the gradient for method chaining.
func (g *LinearGradient) AddColorStop(offset float64, c Color) *LinearGradient {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

func (LinearGradient) paintMarker() {}

// regions maps every band onto a strip perpendicular to the gradient axis.
// Strips are padded by AdditionalPartSize on both sides and reach far
// enough across the axis to cover the level. Band sizes are measured along
// the axis in paint space, after Transform.
func (g LinearGradient) regions(prefs Preferences) []Region {
	t := g.Transform.orIdentity()
	d := g.End.Sub(g.Start)
	length := d.Length()
	size := t.TransformPoint(g.End).Sub(t.TransformPoint(g.Start)).Length()
	if length < zeroExtent || size < zeroExtent {
		return universe(lastStopColor(g.Stops))
	}

	m := t.Multiply(Translate(g.Start.X, g.Start.Y)).
		Multiply(Rotate(math.Atan2(d.Y, d.X)))

	// Paint-space distances in gradient units.
	unit := length / size
	pad := prefs.AdditionalPartSize * unit
	reach := band.Margin
	if _, sy := m.ScaleFactors(); sy > zeroExtent && sy < 1 {
		reach /= sy
	}

	var out []Region
	for _, b := range gradientBands(g.Stops, size, prefs) {
		left := length*b.Start - pad
		right := length*b.End + pad
		strip := Rect(Bounds{X: left, Y: -reach, W: right - left, H: 2 * reach})
		out = append(out, Region{Path: strip.Transform(m), Color: FromColor(b.Color)})
	}
	return out
}
