// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggsurface adapts gg drawing targets to the sierpinski.Surface
// interface.
//
// Two adapters are provided:
//
//   - Context draws into a *gg.Context, rasterizing every triangle with
//     the software (or registered GPU) renderer.
//   - Recorder captures the pass into a *recording.Recorder as typed
//     commands, for inspection or playback to another backend.
//
// # Usage
//
//	dc := gg.NewContext(800, 600)
//	surface := ggsurface.NewContext(dc)
//
//	fc := sierpinski.NewFrameController()
//	fc.Resize(800, 600)
//	if _, err := fc.Frame(surface); err != nil {
//	    return err
//	}
//	return dc.SavePNG("frame.png")
//
// # Thread Safety
//
// Adapters are NOT safe for concurrent use, matching the gg types they wrap.
package ggsurface
