package flatpaint

import "fmt"

// Preferences tune how paints are decomposed into solid regions.
//
// Build them with NewPreferences and functional options:
//
//	prefs := flatpaint.NewPreferences(
//	    flatpaint.WithPixelSize(10),
//	    flatpaint.WithMergePixels(true),
//	)
type Preferences struct {
	// MinColorDifference is the summed channel difference (0..1 scale per
	// channel) a gradient band must reach before it closes.
	MinColorDifference float64
	// MinGradientPartSize is the minimum band width in paint units.
	MinGradientPartSize float64
	// ColorCount is the number of levels per channel textures are
	// quantized to, from 2 to 256.
	ColorCount int
	// AdditionalPartSize pads every band so neighbours overlap.
	AdditionalPartSize float64
	// PixelSize is the smallest edge of a texture pixel in paint units.
	PixelSize float64
	// MinCurveLength is the arc length of one wedge of an interactive ring.
	MinCurveLength float64
	// MergePixels unions same-colored texture pixels.
	MergePixels bool
	// DoVectorizing traces textures into curved color layers. It takes
	// priority over MergePixels.
	DoVectorizing bool
	// SmoothScaling resamples textures with Catmull-Rom instead of
	// nearest-neighbor.
	SmoothScaling bool
}

// PreferenceOption configures Preferences.
type PreferenceOption func(*Preferences)

// DefaultPreferences returns the default decomposition preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		MinColorDifference:  0.05,
		MinGradientPartSize: 2.5,
		ColorCount:          256,
		AdditionalPartSize:  0.1,
		PixelSize:           5,
		MinCurveLength:      10,
		MergePixels:         false,
		DoVectorizing:       true,
		SmoothScaling:       true,
	}
}

// NewPreferences returns the defaults with opts applied in order.
func NewPreferences(opts ...PreferenceOption) Preferences {
	p := DefaultPreferences()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithMinColorDifference sets Preferences.MinColorDifference.
func WithMinColorDifference(d float64) PreferenceOption {
	return func(p *Preferences) {
		p.MinColorDifference = d
	}
}

// WithMinGradientPartSize sets Preferences.MinGradientPartSize.
func WithMinGradientPartSize(size float64) PreferenceOption {
	return func(p *Preferences) {
		p.MinGradientPartSize = size
	}
}

// WithColorCount sets Preferences.ColorCount.
func WithColorCount(n int) PreferenceOption {
	return func(p *Preferences) {
		p.ColorCount = n
	}
}

// WithAdditionalPartSize sets Preferences.AdditionalPartSize.
func WithAdditionalPartSize(size float64) PreferenceOption {
	return func(p *Preferences) {
		p.AdditionalPartSize = size
	}
}

// WithPixelSize sets Preferences.PixelSize.
func WithPixelSize(size float64) PreferenceOption {
	return func(p *Preferences) {
		p.PixelSize = size
	}
}

// WithMinCurveLength sets Preferences.MinCurveLength.
func WithMinCurveLength(length float64) PreferenceOption {
	return func(p *Preferences) {
		p.MinCurveLength = length
	}
}

// WithMergePixels sets Preferences.MergePixels.
func WithMergePixels(merge bool) PreferenceOption {
	return func(p *Preferences) {
		p.MergePixels = merge
	}
}

// WithVectorizing sets Preferences.DoVectorizing.
func WithVectorizing(vectorize bool) PreferenceOption {
	return func(p *Preferences) {
		p.DoVectorizing = vectorize
	}
}

// WithSmoothScaling sets Preferences.SmoothScaling.
func WithSmoothScaling(smooth bool) PreferenceOption {
	return func(p *Preferences) {
		p.SmoothScaling = smooth
	}
}

// Validate reports the first out-of-range field, wrapping
// ErrInvalidPreferences.
func (p Preferences) Validate() error {
	switch {
	case p.MinColorDifference < 0:
		return fmt.Errorf("%w: min color difference %v is negative", ErrInvalidPreferences, p.MinColorDifference)
	case p.MinGradientPartSize < 0:
		return fmt.Errorf("%w: min gradient part size %v is negative", ErrInvalidPreferences, p.MinGradientPartSize)
	case p.ColorCount < 2 || p.ColorCount > 256:
		return fmt.Errorf("%w: color count %d outside [2, 256]", ErrInvalidPreferences, p.ColorCount)
	case p.AdditionalPartSize < 0:
		return fmt.Errorf("%w: additional part size %v is negative", ErrInvalidPreferences, p.AdditionalPartSize)
	case p.PixelSize <= 0:
		return fmt.Errorf("%w: pixel size %v must be positive", ErrInvalidPreferences, p.PixelSize)
	case p.MinCurveLength <= 0.5:
		return fmt.Errorf("%w: min curve length %v must exceed 0.5", ErrInvalidPreferences, p.MinCurveLength)
	}
	return nil
}
