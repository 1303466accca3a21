// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggsurface

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/sierpinski"
)

// Context draws render passes into a gg.Context.
type Context struct {
	dc    *gg.Context
	fills int
}

// Compile-time interface checks.
var (
	_ sierpinski.Surface = (*Context)(nil)
	_ sierpinski.Clearer = (*Context)(nil)
)

// NewContext wraps dc. The context's transform is used as the base of
// every pass, so callers normally hand in an identity-transformed context.
func NewContext(dc *gg.Context) *Context {
	return &Context{dc: dc}
}

// GG returns the wrapped gg.Context.
func (c *Context) GG() *gg.Context {
	return c.dc
}

// Fills returns the number of triangles filled so far.
func (c *Context) Fills() int {
	return c.fills
}

// FillTriangle fills the triangle p0 p1 p2 with col.
func (c *Context) FillTriangle(p0, p1, p2 gg.Point, col gg.RGBA) error {
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
	c.dc.MoveTo(p0.X, p0.Y)
	c.dc.LineTo(p1.X, p1.Y)
	c.dc.LineTo(p2.X, p2.Y)
	c.dc.ClosePath()
	if err := c.dc.Fill(); err != nil {
		return err
	}
	c.fills++
	return nil
}

// Translate moves the context origin.
func (c *Context) Translate(dx, dy float64) { c.dc.Translate(dx, dy) }

// Scale applies a uniform scale.
func (c *Context) Scale(s float64) { c.dc.Scale(s, s) }

// Save pushes the context state.
func (c *Context) Save() { c.dc.Push() }

// Restore pops the context state.
func (c *Context) Restore() { c.dc.Pop() }

// Clear fills the whole pixmap with col, ignoring the transform.
func (c *Context) Clear(col gg.RGBA) {
	c.dc.ClearWithColor(col)
}
