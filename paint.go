package flatpaint

// Paint describes how a region is filled.
// This is a sealed interface - only types in this package implement it.
//
// Supported paints:
//   - Solid: a single color
//   - LinearGradient: colors along an axis
//   - RadialGradient: colors along the radius of a focal circle
//   - Texture: a raster image tiled over an anchor rectangle
//
// Paint values are immutable once handed to a Layer. Emitted shapes never
// reference them; they carry resolved colors only.
//
// Example:
//
//	layer.FillRectangle(bounds, flatpaint.Solid{Color: flatpaint.Red})
//
//	sky := flatpaint.NewLinearGradient(0, 0, 0, 500).
//	    AddColorStop(0, flatpaint.Hex("#0B3D91")).
//	    AddColorStop(1, flatpaint.White)
//	layer.FillRectangle(bounds, sky)
type Paint interface {
	// paintMarker is an unexported method that seals this interface.
	paintMarker()
}

// Solid paints one color.
type Solid struct {
	Color Color
}

func (Solid) paintMarker() {}

// CycleMode defines how a gradient continues beyond its stops.
// Only CycleNone can be decomposed; the others are rejected with
// ErrUnsupported.
type CycleMode int

const (
	// CycleNone extends the end colors.
	CycleNone CycleMode = iota
	// CycleRepeat repeats the gradient.
	CycleRepeat
	// CycleReflect mirrors the gradient.
	CycleReflect
)

// String returns the cycle mode name.
func (c CycleMode) String() string {
	switch c {
	case CycleNone:
		return "none"
	case CycleRepeat:
		return "repeat"
	case CycleReflect:
		return "reflect"
	default:
		return "unknown"
	}
}
