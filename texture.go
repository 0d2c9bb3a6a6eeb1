package flatpaint

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/flatpaint/internal/parallel"
	"github.com/gogpu/flatpaint/internal/raster"
	"github.com/gogpu/flatpaint/internal/trace"
)

// Texture tiles Source over the plane. One copy of the image covers Anchor;
// copies repeat edge to edge in both directions.
type Texture struct {
	Anchor Bounds
	Source image.Image
}

// NewTexture anchors img at its own pixel bounds.
func NewTexture(img image.Image) Texture {
	b := img.Bounds()
	return Texture{
		Anchor: Bounds{X: float64(b.Min.X), Y: float64(b.Min.Y), W: float64(b.Dx()), H: float64(b.Dy())},
		Source: img,
	}
}

func (Texture) paintMarker() {}

const (
	// maxSamplePixels caps the raster a multi-tile texture is sampled into.
	maxSamplePixels = 4 << 20

	// parallelMinRows is the image height from which quantization runs on
	// a worker pool.
	parallelMinRows = 64
)

func (t Texture) check() error {
	if t.Source == nil || t.Source.Bounds().Empty() {
		return fmt.Errorf("%w: texture has no pixels", ErrUnsupported)
	}
	if t.Anchor.IsEmpty() {
		return fmt.Errorf("%w: texture anchor %v is empty", ErrUnsupported, t.Anchor)
	}
	return nil
}

// regions decomposes the part of the texture under fill into solid
// regions, with the strategy chosen by prefs.
func (t Texture) regions(prefs Preferences, fill Bounds) ([]Region, error) {
	img, area := t.raster(fill)

	out, sx, sy := raster.Prescale(img, area.W, area.H, prefs.PixelSize, prefs.SmoothScaling)

	var pool *parallel.WorkerPool
	if out.Bounds().Dy() >= parallelMinRows {
		pool = parallel.NewWorkerPool(0)
		defer pool.Close()
	}
	grid := raster.QuantizeImage(out, prefs.ColorCount, pool)
	pl := raster.Placement{TX: area.X, TY: area.Y, SX: sx, SY: sy}

	switch {
	case prefs.DoVectorizing:
		layers, err := raster.Vectorize(grid, pl)
		if err != nil {
			return nil, fmt.Errorf("vectorize texture: %w", err)
		}
		Logger().Debug("texture strategy", "strategy", "vectorize",
			"width", grid.Width, "height", grid.Height, "colors", len(layers))
		return layerRegions(layers), nil
	case prefs.MergePixels:
		merged := raster.Merge(grid, pl, rectPath, Union)
		Logger().Debug("texture strategy", "strategy", "merge",
			"width", grid.Width, "height", grid.Height, "colors", len(merged))
		regions := make([]Region, 0, len(merged))
		for _, m := range merged {
			regions = append(regions, Region{Path: m.Shape, Color: FromColor(m.Color)})
		}
		return regions, nil
	default:
		var regions []Region
		raster.Pixelate(grid, pl, func(r raster.Rect, c color.NRGBA) {
			regions = append(regions, Region{Path: rectPath(r), Color: FromColor(c)})
		})
		Logger().Debug("texture strategy", "strategy", "pixelate",
			"width", grid.Width, "height", grid.Height, "rects", len(regions))
		return regions, nil
	}
}

// raster returns the pixels covering fill and the paint-space rectangle
// they span. When fill lies inside one tile, that is the source itself;
// otherwise the tiling is sampled nearest-neighbor over fill.
func (t Texture) raster(fill Bounds) (image.Image, Bounds) {
	a := t.Anchor
	tileX := a.X + math.Floor((fill.X-a.X)/a.W)*a.W
	tileY := a.Y + math.Floor((fill.Y-a.Y)/a.H)*a.H
	tile := Bounds{X: tileX, Y: tileY, W: a.W, H: a.H}
	if fill.IsEmpty() || tile.ContainsBounds(fill) {
		return t.Source, tile
	}

	unit := 1.0
	if px := fill.W * fill.H; px > maxSamplePixels {
		unit = math.Sqrt(px / maxSamplePixels)
	}
	w := max(1, int(math.Ceil(fill.W/unit)))
	h := max(1, int(math.Ceil(fill.H/unit)))

	src := t.Source.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for j := 0; j < h; j++ {
		y := fill.Y + (float64(j)+0.5)*unit
		v := wrap((y-a.Y)/a.H) * float64(src.Dy())
		sy := src.Min.Y + min(src.Dy()-1, int(v))
		for i := 0; i < w; i++ {
			x := fill.X + (float64(i)+0.5)*unit
			u := wrap((x-a.X)/a.W) * float64(src.Dx())
			sx := src.Min.X + min(src.Dx()-1, int(u))
			dst.Set(i, j, t.Source.At(sx, sy))
		}
	}
	return dst, Bounds{X: fill.X, Y: fill.Y, W: float64(w) * unit, H: float64(h) * unit}
}

// wrap returns the fractional part of v in [0, 1).
func wrap(v float64) float64 {
	return v - math.Floor(v)
}

func rectPath(r raster.Rect) *Path {
	return Rect(Bounds{X: r.X, Y: r.Y, W: r.W, H: r.H})
}

// layerRegions turns traced color layers into one path per color, holes
// included as separate sub-contours. Order is kept: each layer covers the
// ones after it.
func layerRegions(layers []trace.Layer) []Region {
	regions := make([]Region, 0, len(layers))
	for _, l := range layers {
		p := NewPath()
		for _, c := range l.Contours {
			p.MoveTo(c.Start.X, c.Start.Y)
			for _, s := range c.Segments {
				if s.Kind == trace.Cubic {
					p.CubicTo(s.C1.X, s.C1.Y, s.C2.X, s.C2.Y, s.End.X, s.End.Y)
				} else {
					p.LineTo(s.End.X, s.End.Y)
				}
			}
			p.Close()
		}
		if p.IsDegenerate() {
			continue
		}
		regions = append(regions, Region{Path: p, Color: FromColor(l.Color)})
	}
	return regions
}
