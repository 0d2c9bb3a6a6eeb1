package flatpaint

import "errors"

// Sentinel errors. Callers test them with errors.Is; returned errors wrap
// them with detail.
var (
	// ErrInvalidShape is returned for shape configuration that can never be
	// encoded, such as an ellipse submitted as a circle or a density out of range.
	ErrInvalidShape = errors.New("flatpaint: invalid shape")

	// ErrInvalidPreferences is returned by Preferences.Validate.
	ErrInvalidPreferences = errors.New("flatpaint: invalid preferences")

	// ErrUnsupported is returned for paint features that can not be
	// decomposed into solid regions, such as repeating gradients.
	ErrUnsupported = errors.New("flatpaint: unsupported paint feature")

	// ErrNoStops is returned for a gradient without color stops.
	ErrNoStops = errors.New("flatpaint: gradient has no stops")
)
