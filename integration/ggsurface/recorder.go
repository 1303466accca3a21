// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	"github.com/gogpu/sierpinski"
)

// Recorder captures render passes as recording commands.
type Recorder struct {
	rec   *recording.Recorder
	fills int
	depth int
	peak  int
}

// Compile-time interface checks.
var (
	_ sierpinski.Surface = (*Recorder)(nil)
	_ sierpinski.Clearer = (*Recorder)(nil)
)

// NewRecorder creates a recorder for a width x height surface.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{rec: recording.NewRecorder(width, height)}
}

// FillTriangle records a filled path for the triangle abc.
func (r *Recorder) FillTriangle(a, b, c gg.Point, col gg.RGBA) error {
	r.rec.SetFillRGBA(col.R, col.G, col.B, col.A)
	r.rec.MoveTo(a.X, a.Y)
	r.rec.LineTo(b.X, b.Y)
	r.rec.LineTo(c.X, c.Y)
	r.rec.ClosePath()
	r.rec.Fill()
	r.fills++
	return nil
}

// Translate records a translation.
func (r *Recorder) Translate(dx, dy float64) { r.rec.Translate(dx, dy) }

// Scale records a uniform scale.
func (r *Recorder) Scale(s float64) { r.rec.Scale(s, s) }

// Save records a state push.
func (r *Recorder) Save() {
	r.rec.Save()
	r.depth++
	if r.depth > r.peak {
		r.peak = r.depth
	}
}

// Restore records a state pop.
func (r *Recorder) Restore() {
	r.rec.Restore()
	if r.depth > 0 {
		r.depth--
	}
}

// Clear records a full-surface rectangle in col.
func (r *Recorder) Clear(col gg.RGBA) {
	r.rec.SetFillRGBA(col.R, col.G, col.B, col.A)
	r.rec.FillRectangle(0, 0, float64(r.rec.Width()), float64(r.rec.Height()))
}

// Fills returns the number of triangles recorded.
func (r *Recorder) Fills() int { return r.fills }

// Depth returns the number of unmatched Save calls.
func (r *Recorder) Depth() int { return r.depth }

// PeakDepth returns the deepest state nesting seen.
func (r *Recorder) PeakDepth() int { return r.peak }

// Finish returns the captured recording. The Recorder must not be used
// afterwards.
func (r *Recorder) Finish() *recording.Recording {
	return r.rec.FinishRecording()
}
