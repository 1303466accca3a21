// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"testing"

	"github.com/gogpu/gg/recording"
	"github.com/gogpu/sierpinski"
)

func TestRecorderCapturesPass(t *testing.T) {
	rec := NewRecorder(800, 600)
	stats, err := sierpinski.NewRenderer().Render(rec, sierpinski.Viewport{Width: 800, Height: 600}, sierpinski.NewViewState())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if rec.Fills() != stats.Triangles {
		t.Errorf("Fills() = %d, want %d", rec.Fills(), stats.Triangles)
	}
	if rec.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", rec.Depth())
	}
	if rec.PeakDepth() < 2 {
		t.Errorf("PeakDepth() = %d, want nested frames", rec.PeakDepth())
	}

	r := rec.Finish()
	if r.Width() != 800 || r.Height() != 600 {
		t.Errorf("recording size = %dx%d, want 800x600", r.Width(), r.Height())
	}

	var paths, rects int
	for _, cmd := range r.Commands() {
		switch cmd.Type() {
		case recording.CmdFillPath:
			paths++
		case recording.CmdFillRect:
			rects++
		}
	}
	if paths != stats.Triangles {
		t.Errorf("FillPath commands = %d, want %d", paths, stats.Triangles)
	}
	if rects != 1 {
		t.Errorf("FillRect commands = %d, want 1 (background)", rects)
	}
}

func TestRecorderSaveRestoreDepth(t *testing.T) {
	rec := NewRecorder(10, 10)
	rec.Save()
	rec.Save()
	rec.Restore()
	if rec.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", rec.Depth())
	}
	rec.Restore()
	rec.Restore()
	if rec.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0 after extra Restore", rec.Depth())
	}
	if rec.PeakDepth() != 2 {
		t.Errorf("PeakDepth() = %d, want 2", rec.PeakDepth())
	}
}
