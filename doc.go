// Package sierpinski renders an infinitely detailed Sierpinski triangle in
// a pannable, zoomable viewport.
//
// # Overview
//
// Every frame recomputes only the triangles visible at the current zoom and
// pan state. The subdivision stops once a triangle's on-screen side drops
// to the granularity floor, and whole subtrees outside the viewport are
// culled, so a frame stays cheap at any zoom level up to the configured
// maximum.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gg"
//	    "github.com/gogpu/sierpinski"
//	    "github.com/gogpu/sierpinski/integration/ggsurface"
//	)
//
//	dc := gg.NewContext(800, 600)
//	fc := sierpinski.NewFrameController()
//	fc.Resize(800, 600)
//	fc.Zoom(sierpinski.ZoomIn, true)
//
//	surface := ggsurface.NewContext(dc)
//	for fc.NeedsRedraw() {
//	    stats, err := fc.Frame(surface)
//	    ...
//	}
//	dc.SavePNG("sierpinski.png")
//
// # Architecture
//
// The package is organized into three layers:
//   - ViewState: zoom, origin and their animation targets
//   - Renderer: recursive subdivision with viewport culling onto a Surface
//   - FrameController: dirty-flag scheduling of animation steps and renders
//
// Drawing goes through the Surface interface. integration/ggsurface adapts
// gg's raster Context and its recording.Recorder.
//
// # Coordinate System
//
// Surface coordinates follow gg: origin at the top-left, y increasing
// downward. A view's origin is the offset of the fractal's logical origin
// from the viewport's top-left, in unzoomed units, so a pan covers the
// same on-screen distance at every zoom level.
package sierpinski
