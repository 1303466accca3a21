package sierpinski

import (
	"time"

	"github.com/gogpu/gg"
)

// FrameStats describes the outcome of one FrameController.Frame call.
type FrameStats struct {
	RenderStats

	// Rendered is false when the frame was skipped because nothing changed.
	Rendered bool

	// Start and End bracket the frame, including the animation step.
	Start, End time.Time

	// Zoom and Origin are the view values the frame was drawn with.
	Zoom   float64
	Origin gg.Point
}

// FrameController drives rendering one tick at a time.
//
// Hosts forward normalized input commands to it and call Frame from their
// display callback. Frames are only rendered while the controller is
// dirty: after an input command, a resize, or while an animation is still
// converging. Idle ticks return immediately.
//
// FrameController is not safe for concurrent use; hosts call it from the
// goroutine that owns the display loop.
type FrameController struct {
	view     *ViewState
	renderer *Renderer
	clock    func() time.Time

	viewport  Viewport
	dirty     bool
	skipClick bool
	last      FrameStats
}

// NewFrameController creates a controller with a fresh view and renderer
// sharing the same options. The first Frame after Resize renders.
func NewFrameController(opts ...Option) *FrameController {
	o := buildOptions(opts)
	return &FrameController{
		view:     NewViewState(opts...),
		renderer: NewRenderer(opts...),
		clock:    o.clock,
		dirty:    true,
	}
}

// View returns the controlled view state.
func (fc *FrameController) View() *ViewState { return fc.view }

// Renderer returns the renderer used for each frame.
func (fc *FrameController) Renderer() *Renderer { return fc.renderer }

// Viewport returns the current viewport.
func (fc *FrameController) Viewport() Viewport { return fc.viewport }

// NeedsRedraw reports whether the next Frame call will render.
func (fc *FrameController) NeedsRedraw() bool { return fc.dirty }

// LastFrame returns statistics of the most recent rendered frame.
func (fc *FrameController) LastFrame() FrameStats { return fc.last }

// Invalidate forces the next Frame to render.
func (fc *FrameController) Invalidate() { fc.dirty = true }

// Resize updates the viewport. A change in size schedules a redraw.
func (fc *FrameController) Resize(width, height float64) {
	vp := Viewport{Width: width, Height: height}
	if vp == fc.viewport {
		return
	}
	fc.viewport = vp
	fc.dirty = true
	Logger().Debug("viewport resized", "width", width, "height", height)
}

// Zoom starts a zoom step, optionally keeping the viewport center fixed.
func (fc *FrameController) Zoom(dir ZoomDirection, centered bool) {
	fc.view.SetZoomTarget(dir, centered, fc.viewport)
	fc.dirty = true
}

// Pan starts a discrete pan in dir.
func (fc *FrameController) Pan(dir PanDirection) {
	fc.view.SetPanTarget(dir)
	fc.dirty = true
}

// Reset animates back to the initial view.
func (fc *FrameController) Reset() {
	fc.view.Reset()
	fc.dirty = true
}

// PanStart begins a free-form pan with the pointer at (x, y).
func (fc *FrameController) PanStart(x, y float64) {
	fc.view.BeginDrag(x, y)
	fc.skipClick = false
}

// PanMove moves the pointer of an active free-form pan by (dx, dy).
func (fc *FrameController) PanMove(dx, dy float64) {
	if fc.view.DragBy(dx, dy) {
		fc.dirty = true
	}
}

// PanEnd finishes a free-form pan. It reports whether the pointer moved,
// in which case the next Click is ignored.
func (fc *FrameController) PanEnd() bool {
	moved := fc.view.EndDrag()
	fc.skipClick = moved
	return moved
}

// Click handles a pointer click: zoom in around the viewport center, or
// out when shift is held. A click that ends a moving drag is ignored.
// It reports whether a zoom was started.
func (fc *FrameController) Click(shift bool) bool {
	if fc.skipClick {
		fc.skipClick = false
		return false
	}
	dir := ZoomIn
	if shift {
		dir = ZoomOut
	}
	fc.Zoom(dir, true)
	return true
}

// Frame runs one tick. If no redraw is pending it returns at once with
// Rendered set to false. Otherwise it advances the view one easing step,
// renders it onto s, and keeps the controller dirty while the view is
// still animating or the render failed.
func (fc *FrameController) Frame(s Surface) (FrameStats, error) {
	if !fc.dirty {
		return FrameStats{}, nil
	}

	start := fc.clock()
	animating := fc.view.Advance()

	rs, err := fc.renderer.Render(s, fc.viewport, fc.view)
	stats := FrameStats{
		RenderStats: rs,
		Rendered:    true,
		Start:       start,
		End:         fc.clock(),
		Zoom:        fc.view.Zoom(),
		Origin:      fc.view.Origin(),
	}
	fc.last = stats
	fc.dirty = animating || err != nil
	return stats, err
}

// Settle renders frames until the view stops animating or maxFrames have
// been rendered, and returns the number of frames rendered. Headless hosts
// use it to reach the end state of a command sequence.
func (fc *FrameController) Settle(s Surface, maxFrames int) (int, error) {
	n := 0
	for fc.dirty && n < maxFrames {
		if _, err := fc.Frame(s); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
