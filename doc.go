// Package flatpaint turns vector drawings into Happy Wheels levels.
//
// # Overview
//
// A level only knows solid shapes: rectangles, circles, isosceles
// triangles, polygons and "art" paths, each with one color. flatpaint
// decomposes everything richer than that into such shapes:
//
//   - linear and radial gradients become overlapping solid bands
//   - textures become pixel rectangles, merged pixel regions or traced
//     color layers
//   - transforms that would deform a primitive turn it into a path
//   - clips are applied with boolean intersection
//
// # Quick Start
//
//	level := flatpaint.NewLevel()
//	layer := level.Layer()
//
//	// A primitive
//	_ = layer.Rectangle(flatpaint.Bounds{X: 0, Y: 500, W: 2000, H: 40})
//
//	// A gradient sky, as art
//	sky := flatpaint.NewLinearGradient(0, 0, 0, 500).
//	    AddColorStop(0, flatpaint.Hex("#0B3D91")).
//	    AddColorStop(1, flatpaint.White)
//	_ = layer.FillArt(flatpaint.Rect(flatpaint.Bounds{W: 2000, H: 500}), sky)
//
//	_ = level.WriteXML(os.Stdout)
//
// # Architecture
//
// The library is organized into:
//   - Geometry: Path, Matrix, Bounds, Intersect and Union
//   - Paint: Solid, LinearGradient, RadialGradient, Texture and DoFill
//   - Compositor: Layer scopes emitting Shape records to a Sink
//   - Output: EncodedPath and Level.WriteXML
//   - Internal: band (gradients), raster and trace (textures), parallel
//
// The svg package renders SVG documents through a Canvas.
//
// # Coordinate System
//
// Uses level coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Matrix angles in radians, shape rotations in degrees
package flatpaint
