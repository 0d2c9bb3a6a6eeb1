// Package band splits a one-dimensional color ramp into discrete solid bands.
//
// The ramp is sampled at a fixed step with cosine easing between the two
// bracketing stops. A band closes once the color has drifted far enough from
// the band's start color and the band is physically large enough. Two
// margin bands extend the ramp far beyond [0, 1] so that geometry error
// never exposes empty space at the gradient's extremes.
package band

import (
	"image/color"
	"math"
)

const (
	// Step is the sampling interval over the [0, 1] ramp.
	Step = 0.0005

	// Margin is the extent of the bands before 0 and after 1.
	Margin = 10000.0

	// MinVisibleAlpha is the alpha at or below which a band is dropped.
	MinVisibleAlpha = 2.55
)

// Stop is a color at an offset in [0, 1]. Stops must be sorted by offset.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Band is the solid color covering [Start, End] of the ramp.
type Band struct {
	Start, End float64
	Color      color.NRGBA
}

// Params are the tunables of Decompose.
type Params struct {
	// MinColorDifference is the summed absolute channel difference, on the
	// 0..1 scale, a band must accumulate before it may close.
	MinColorDifference float64

	// MinPartSize is the minimum physical band size: size * (end - start).
	MinPartSize float64
}

// Decompose splits the ramp of stops, stretched over size units, into bands.
//
// The result always starts with the band [-Margin, 0] and ends with
// [1, 1+Margin]; consecutive bands share their boundary, so the sequence
// is gapless and ordered. Decompose returns nil for no stops.
func Decompose(stops []Stop, size float64, p Params) []Band {
	if len(stops) == 0 {
		return nil
	}

	startColor := ColorAt(stops, 0)
	endColor := ColorAt(stops, 1)
	bands := []Band{{Start: -Margin, End: 0, Color: startColor}}

	prevProgress := 0.0
	prevColor := startColor
	// Integer stepping avoids accumulating floating point drift.
	for i := 1; float64(i)*Step < 1; i++ {
		progress := float64(i) * Step
		c := ColorAt(stops, progress)
		if Difference(prevColor, c) >= p.MinColorDifference &&
			size*(progress-prevProgress) >= p.MinPartSize {
			bands = append(bands, Band{Start: prevProgress, End: progress, Color: c})
			prevProgress = progress
			prevColor = c
		}
	}

	return append(bands,
		Band{Start: prevProgress, End: 1, Color: endColor},
		Band{Start: 1, End: 1 + Margin, Color: endColor},
	)
}

// Visible returns the bands whose alpha is above MinVisibleAlpha.
func Visible(bands []Band) []Band {
	out := make([]Band, 0, len(bands))
	for _, b := range bands {
		if float64(b.Color.A) > MinVisibleAlpha {
			out = append(out, b)
		}
	}
	return out
}

// ColorAt returns the eased color of the ramp at progress.
//
// The left stop is the last one strictly before progress, the right stop the
// first one strictly after it; outside the stop range the nearest end stop
// is used on both sides.
func ColorAt(stops []Stop, progress float64) color.NRGBA {
	left, right := stops[0], stops[len(stops)-1]
	for _, s := range stops {
		if s.Offset < progress {
			left = s
		}
	}
	for i := len(stops) - 1; i >= 0; i-- {
		if stops[i].Offset > progress {
			right = stops[i]
		}
	}

	span := right.Offset - left.Offset
	if span <= 0 {
		if progress < left.Offset {
			return left.Color
		}
		return right.Color
	}
	t := math.Max(0, math.Min(1, (progress-left.Offset)/span))
	return Ease(left.Color, right.Color, t)
}

// Ease interpolates between a and b with cosine easing,
// f = (1 - cos(pi*t)) / 2, rounding every channel.
func Ease(a, b color.NRGBA, t float64) color.NRGBA {
	f := (1 - math.Cos(t*math.Pi)) * 0.5
	mix := func(x, y uint8) uint8 {
		v := math.Round(float64(x)*(1-f) + float64(y)*f)
		return uint8(math.Max(0, math.Min(255, v)))
	}
	return color.NRGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: mix(a.A, b.A),
	}
}

// Difference returns the sum of the absolute channel differences of a and b,
// alpha included, on the 0..1 scale.
func Difference(a, b color.NRGBA) float64 {
	d := func(x, y uint8) float64 {
		return math.Abs(float64(x)-float64(y)) / 255
	}
	return d(a.R, b.R) + d(a.G, b.G) + d(a.B, b.B) + d(a.A, b.A)
}
