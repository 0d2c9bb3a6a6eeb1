package flatpaint

import (
	"fmt"
	"math"
	"sort"

	"github.com/gogpu/flatpaint/internal/band"
)

// GradientStop is a color at a position along a gradient.
type GradientStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  Color   // Color at this position
}

// zeroExtent is the gradient length or radius below which a gradient is
// painted as its last color.
const zeroExtent = 1e-9

// sortStops returns a copy of stops sorted by offset. Stops sharing an
// offset keep their order.
func sortStops(stops []GradientStop) []GradientStop {
	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// checkGradient rejects gradients that can not be decomposed.
func checkGradient(stops []GradientStop, cycle CycleMode) error {
	if cycle != CycleNone {
		return fmt.Errorf("%w: gradient cycle mode %s", ErrUnsupported, cycle)
	}
	if len(stops) == 0 {
		return ErrNoStops
	}
	return nil
}

// gradientBands sorts the stops and decomposes them over size units,
// keeping only visible bands.
func gradientBands(stops []GradientStop, size float64, prefs Preferences) []band.Band {
	sorted := sortStops(stops)
	bs := make([]band.Stop, len(sorted))
	for i, s := range sorted {
		bs[i] = band.Stop{Offset: s.Offset, Color: s.Color.NRGBA()}
	}

	all := band.Decompose(bs, size, band.Params{
		MinColorDifference: prefs.MinColorDifference,
		MinPartSize:        prefs.MinGradientPartSize,
	})
	visible := band.Visible(all)
	if dropped := len(all) - len(visible); dropped > 0 {
		Logger().Debug("dropped invisible gradient bands", "count", dropped)
	}
	return visible
}

// lastStopColor returns the color of the highest-offset stop.
func lastStopColor(stops []GradientStop) Color {
	sorted := sortStops(stops)
	return sorted[len(sorted)-1].Color
}

// universe returns the single region a degenerate gradient collapses to.
func universe(c Color) []Region {
	if !c.Visible() {
		return nil
	}
	return []Region{{Path: Rect(LevelBounds), Color: c}}
}

// orIdentity treats the zero matrix as the identity.
func (m Matrix) orIdentity() Matrix {
	if m == (Matrix{}) {
		return Identity()
	}
	return m
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
