package sierpinski

import "github.com/gogpu/gg"

// TransformStack mirrors a Surface's save/restore stack with an absolute
// coordinate tracker, so culling can work in logical landscape space while
// drawing happens in nested translated frames.
//
// Only translations are tracked. The global zoom scale is applied to the
// surface once per pass and never enters the tracker, which therefore
// stays in unzoomed logical units.
type TransformStack struct {
	surface Surface
	pos     gg.Point
	frames  []gg.Point

	saves    int
	restores int
}

// NewTransformStack returns a stack driving s.
func NewTransformStack(s Surface) *TransformStack {
	return &TransformStack{
		surface: s,
		frames:  make([]gg.Point, 0, 32),
	}
}

// Reset clears all frames and moves the tracker back to the origin.
// It does not touch the surface.
func (ts *TransformStack) Reset() {
	ts.pos = gg.Point{}
	ts.frames = ts.frames[:0]
	ts.saves = 0
	ts.restores = 0
}

// Translate moves the surface origin and the tracker by (x, y).
func (ts *TransformStack) Translate(x, y float64) {
	ts.surface.Translate(x, y)
	ts.pos = ts.pos.Add(gg.Pt(x, y))
}

// Save pushes the surface state and snapshots the tracker.
func (ts *TransformStack) Save() {
	ts.surface.Save()
	ts.frames = append(ts.frames, ts.pos)
	ts.saves++
}

// Restore pops the surface state and returns the tracker to the matching
// snapshot. An unbalanced Restore is ignored.
func (ts *TransformStack) Restore() {
	n := len(ts.frames)
	if n == 0 {
		return
	}
	ts.surface.Restore()
	ts.pos = ts.frames[n-1]
	ts.frames = ts.frames[:n-1]
	ts.restores++
}

// Position returns the tracker's absolute logical position.
func (ts *TransformStack) Position() gg.Point {
	return ts.pos
}

// Depth returns the number of open frames.
func (ts *TransformStack) Depth() int {
	return len(ts.frames)
}

// Balance returns the number of Save and Restore calls since Reset.
func (ts *TransformStack) Balance() (saves, restores int) {
	return ts.saves, ts.restores
}
