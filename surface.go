package sierpinski

import "github.com/gogpu/gg"

// Surface is the drawing target of a render pass.
//
// It mirrors the subset of a canvas-style API the renderer needs: filled
// triangles plus a save/restore transform stack. Coordinates passed to
// FillTriangle are in the surface's current (translated, scaled) space.
//
// The integration/ggsurface package adapts *gg.Context and
// *recording.Recorder to this interface.
type Surface interface {
	FillTriangle(a, b, c gg.Point, col gg.RGBA) error
	Translate(dx, dy float64)
	Scale(s float64)
	Save()
	Restore()
}

// Clearer is implemented by surfaces that can be filled with a solid color
// before a pass. Surfaces that do not implement it keep their content.
type Clearer interface {
	Clear(col gg.RGBA)
}
