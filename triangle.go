package sierpinski

import (
	"math"

	"github.com/gogpu/gg"
)

// Ratio is the height of an equilateral triangle with unit side (√3/2).
var Ratio = math.Sqrt(3) / 2

// Triangle is an upward equilateral triangle anchored at its bottom-left
// corner. X and Y are local to the parent triangle's anchor.
type Triangle struct {
	X, Y   float64
	Length float64
}

// Height returns the vertical extent of the triangle.
func (t Triangle) Height() float64 {
	return t.Length * Ratio
}

// Vertices returns the bottom-left, bottom-right and apex corners in the
// triangle's own frame (anchor at the origin, y growing downward).
func (t Triangle) Vertices() (a, b, c gg.Point) {
	return gg.Pt(0, 0), gg.Pt(t.Length, 0), gg.Pt(t.Length/2, -t.Height())
}

// Bounds returns the bounding box of the triangle once its anchor sits at p.
func (t Triangle) Bounds(p gg.Point) Rect {
	return Rect{
		Min: gg.Pt(p.X, p.Y-t.Height()),
		Max: gg.Pt(p.X+t.Length, p.Y),
	}
}

// Split divides t into the inverted middle hole and the three surviving
// corners (bottom-left, top, bottom-right), each of side Length/2.
// Offsets are local to t's anchor.
func (t Triangle) Split() (hole Triangle, corners [3]Triangle) {
	half := t.Length / 2
	h := t.Height()
	hole = Triangle{X: t.Length / 4, Y: -h / 2, Length: half}
	corners = [3]Triangle{
		{X: 0, Y: 0, Length: half},
		{X: t.Length / 4, Y: -h / 2, Length: half},
		{X: half, Y: 0, Length: half},
	}
	return hole, corners
}

// holeVertices returns the corners of an inverted triangle of the given
// side, anchored at its top-left corner.
func holeVertices(length float64) (a, b, c gg.Point) {
	return gg.Pt(0, 0), gg.Pt(length, 0), gg.Pt(length/2, length*Ratio)
}

// Rect is an axis-aligned box. Min holds the smaller coordinates.
type Rect struct {
	Min, Max gg.Point
}

// Overlaps reports whether r and o share any point, edges included.
func (r Rect) Overlaps(o Rect) bool {
	return r.Max.X >= o.Min.X && r.Min.X <= o.Max.X &&
		r.Max.Y >= o.Min.Y && r.Min.Y <= o.Max.Y
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Viewport is the pixel size of the drawing surface.
type Viewport struct {
	Width, Height float64
}

// Empty reports whether the viewport has no drawable area.
// Non-finite sizes are treated as empty.
func (v Viewport) Empty() bool {
	return !(v.Width > 0 && v.Height > 0) || math.IsInf(v.Width, 0) || math.IsInf(v.Height, 0)
}

// Center returns the middle of the viewport in pixels.
func (v Viewport) Center() gg.Point {
	return gg.Pt(v.Width/2, v.Height/2)
}

// MasterLength returns the side of the largest upward triangle that fits
// the viewport: min(width, height/(√3/2)).
func (v Viewport) MasterLength() float64 {
	if v.Empty() {
		return 0
	}
	return math.Min(v.Width, v.Height/Ratio)
}

// masterAnchor returns the zoom-1 position of the master triangle's
// bottom-left corner: horizontally centered, resting on the bottom edge.
func (v Viewport) masterAnchor() gg.Point {
	return gg.Pt((v.Width-v.MasterLength())/2, v.Height)
}
