package sierpinski

import (
	"math"

	"github.com/gogpu/gg"
)

// Snap thresholds for Advance. Once the remaining distance drops below
// them the value jumps to its target and the target is cleared.
const (
	zoomSnap   = 0.1
	originSnap = 1.0
)

// ZoomDirection selects zooming in or out.
type ZoomDirection uint8

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

// String returns "in" or "out".
func (d ZoomDirection) String() string {
	if d == ZoomOut {
		return "out"
	}
	return "in"
}

// PanDirection is a compass direction for discrete panning.
type PanDirection uint8

const (
	North PanDirection = iota
	South
	East
	West
)

var panDirectionNames = [...]string{
	North: "north",
	South: "south",
	East:  "east",
	West:  "west",
}

// String returns the lower-case compass name.
func (d PanDirection) String() string {
	if int(d) < len(panDirectionNames) {
		return panDirectionNames[d]
	}
	return "unknown"
}

// ViewState holds the zoom level and pan origin of a view and the targets
// they are animating toward.
//
// Each axis (zoom, origin) is a two-state machine: idle when its target is
// unset, animating otherwise. Commands set targets; Advance moves the
// current values one easing step per frame.
//
// ViewState is not safe for concurrent use.
type ViewState struct {
	cfg Config

	zoom   float64
	origin gg.Point

	targetZoom      float64
	hasTargetZoom   bool
	targetOrigin    gg.Point
	hasTargetOrigin bool

	drag dragState
}

// dragState tracks a free-form pan between BeginDrag and EndDrag.
type dragState struct {
	active  bool
	moved   bool
	start   gg.Point // pointer position at BeginDrag
	pointer gg.Point // pointer position after the latest DragBy
	origin  gg.Point // view origin at BeginDrag
}

// NewViewState returns an idle view at zoom 1 with the origin at {0,0}.
func NewViewState(opts ...Option) *ViewState {
	o := buildOptions(opts)
	return &ViewState{cfg: o.config, zoom: 1}
}

// Zoom returns the current zoom level, always in [1, MaxZoom].
func (v *ViewState) Zoom() float64 { return v.zoom }

// Origin returns the current offset of the fractal's logical origin from
// the viewport's top-left corner, in unzoomed units.
func (v *ViewState) Origin() gg.Point { return v.origin }

// TargetZoom returns the zoom target and whether one is set.
func (v *ViewState) TargetZoom() (float64, bool) { return v.targetZoom, v.hasTargetZoom }

// TargetOrigin returns the origin target and whether one is set.
func (v *ViewState) TargetOrigin() (gg.Point, bool) { return v.targetOrigin, v.hasTargetOrigin }

// Animating reports whether any target is still pending.
func (v *ViewState) Animating() bool {
	return v.hasTargetZoom || v.hasTargetOrigin
}

// Dragging reports whether a free-form pan is in progress.
func (v *ViewState) Dragging() bool { return v.drag.active }

// SetView jumps directly to zoom and origin, dropping any pending targets.
// Zoom is clamped to [1, MaxZoom].
func (v *ViewState) SetView(zoom float64, origin gg.Point) {
	v.zoom = v.clampZoom(zoom)
	v.origin = origin
	v.hasTargetZoom = false
	v.hasTargetOrigin = false
}

// SetZoomTarget starts a zoom step in dir. The target is rounded to one
// decimal so the easing in Advance always lands on it exactly.
//
// If centered is set, the origin target is chosen so the point at the
// center of vp stays there once both animations finish.
func (v *ViewState) SetZoomTarget(dir ZoomDirection, centered bool, vp Viewport) {
	factor := v.cfg.ZoomSpeed
	if dir == ZoomOut {
		factor = 1 / factor
	}
	target := v.clampZoom(math.Round(v.clampZoom(v.zoom*factor)*10) / 10)
	v.targetZoom = target
	v.hasTargetZoom = true

	if centered {
		c := vp.Center()
		v.targetOrigin = v.origin.Sub(c.Div(v.zoom)).Add(c.Div(target))
		v.hasTargetOrigin = true
	}
}

// SetPanTarget starts a discrete pan. The step is divided by the current
// zoom so it covers the same on-screen distance at every zoom level.
func (v *ViewState) SetPanTarget(dir PanDirection) {
	step := v.cfg.PanStep / v.zoom
	var d gg.Point
	switch dir {
	case North:
		d.Y = step
	case South:
		d.Y = -step
	case East:
		d.X = -step
	case West:
		d.X = step
	}
	v.targetOrigin = v.origin.Add(d)
	v.hasTargetOrigin = true
}

// Reset animates back to zoom 1 with the origin at {0,0}.
func (v *ViewState) Reset() {
	v.targetZoom = 1
	v.hasTargetZoom = true
	v.targetOrigin = gg.Point{}
	v.hasTargetOrigin = true
}

// Advance performs one easing step: every pending value moves halfway to
// its target, then snaps and clears the target once close enough.
// It reports whether a target is still pending afterward.
func (v *ViewState) Advance() bool {
	if v.hasTargetZoom {
		v.zoom = (v.zoom + v.targetZoom) / 2
		if math.Abs(v.zoom-v.targetZoom) < zoomSnap {
			v.zoom = v.targetZoom
			v.hasTargetZoom = false
			Logger().Debug("zoom target reached", "zoom", v.zoom)
		}
	}

	if v.hasTargetOrigin {
		v.origin = v.origin.Lerp(v.targetOrigin, 0.5)
		if math.Abs(v.origin.X-v.targetOrigin.X) < originSnap {
			v.origin.X = v.targetOrigin.X
		}
		if math.Abs(v.origin.Y-v.targetOrigin.Y) < originSnap {
			v.origin.Y = v.targetOrigin.Y
		}
		if v.origin == v.targetOrigin {
			v.hasTargetOrigin = false
			Logger().Debug("origin target reached", "x", v.origin.X, "y", v.origin.Y)
		}
	}

	return v.Animating()
}

// BeginDrag starts a free-form pan with the pointer at (x, y) in pixels.
// Any pending origin animation is dropped.
func (v *ViewState) BeginDrag(x, y float64) {
	p := gg.Pt(x, y)
	v.drag = dragState{
		active:  true,
		start:   p,
		pointer: p,
		origin:  v.origin,
	}
	v.hasTargetOrigin = false
}

// DragBy moves the pointer by (dx, dy) pixels. The origin follows the
// pointer's total displacement from the drag start, divided by the zoom.
// It reports whether the view changed.
func (v *ViewState) DragBy(dx, dy float64) bool {
	if !v.drag.active {
		return false
	}
	if dx == 0 && dy == 0 {
		return false
	}
	v.drag.pointer = v.drag.pointer.Add(gg.Pt(dx, dy))
	v.drag.moved = true
	v.origin = v.drag.origin.Add(v.drag.pointer.Sub(v.drag.start).Div(v.zoom))
	v.hasTargetOrigin = false
	return true
}

// EndDrag finishes a free-form pan and reports whether the pointer moved
// while it was active.
func (v *ViewState) EndDrag() bool {
	moved := v.drag.active && v.drag.moved
	v.drag = dragState{}
	return moved
}

func (v *ViewState) clampZoom(z float64) float64 {
	if math.IsNaN(z) || z < 1 {
		return 1
	}
	return math.Min(z, v.cfg.MaxZoom)
}
