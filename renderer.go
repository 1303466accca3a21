package sierpinski

import (
	"fmt"
	"time"

	"github.com/gogpu/gg"
)

// RenderStats describes one render pass.
type RenderStats struct {
	// Triangles is the number of filled triangles: the master plus every hole.
	Triangles int

	// Culled is the number of subtrees skipped by the viewport hit test.
	Culled int

	// MaxDepth is the deepest subdivision level reached (0 = master only).
	MaxDepth int

	// Duration is the wall time of the pass.
	Duration time.Duration
}

// Renderer draws the visible part of the fractal for a view.
//
// A render pass fills the master triangle in the solid color, then walks
// the subdivision tree: every visible triangle larger than the granularity
// floor gets its inverted middle filled in the hole color and its three
// corners visited in turn. Subtrees whose bounding box misses the viewport
// are skipped together with all their descendants.
//
// Renderer holds no per-pass state and can be reused across frames.
type Renderer struct {
	cfg   Config
	clock func() time.Time
}

// NewRenderer creates a renderer.
//
//	r := sierpinski.NewRenderer(sierpinski.WithMinLength(4))
//	stats, err := r.Render(surface, vp, view)
func NewRenderer(opts ...Option) *Renderer {
	o := buildOptions(opts)
	return &Renderer{cfg: o.config, clock: o.clock}
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Render draws v onto s for a viewport of size vp and returns statistics
// about the pass. An empty viewport draws nothing.
//
// The surface's transform stack is balanced on return, including when a
// fill fails part way through.
func (r *Renderer) Render(s Surface, vp Viewport, v *ViewState) (RenderStats, error) {
	start := r.clock()
	if vp.Empty() {
		return RenderStats{}, nil
	}

	p := &pass{
		cfg:    r.cfg,
		stack:  NewTransformStack(s),
		zoom:   v.Zoom(),
		origin: v.Origin(),
		vp:     vp,
	}
	p.stack.Reset()

	if c, ok := s.(Clearer); ok {
		c.Clear(r.cfg.Palette.Background)
	}

	err := p.run(s)
	p.stats.Duration = r.clock().Sub(start)

	Logger().Debug("render pass",
		"triangles", p.stats.Triangles,
		"culled", p.stats.Culled,
		"depth", p.stats.MaxDepth,
		"zoom", p.zoom,
		"duration", p.stats.Duration)

	return p.stats, err
}

// HitTest reports whether triangle t, with its anchor at the absolute
// logical position pos, may be visible in vp for the view v.
//
// Both boxes are compared in landscape coordinates (pos minus origin,
// unzoomed). The test is conservative: touching edges count as a hit.
func HitTest(pos gg.Point, t Triangle, vp Viewport, v *ViewState) bool {
	if !(t.Length > 0) || vp.Empty() {
		return false
	}
	return hitTest(pos, t, vp, v.Zoom(), v.Origin())
}

func hitTest(pos gg.Point, t Triangle, vp Viewport, zoom float64, origin gg.Point) bool {
	tri := t.Bounds(pos.Sub(origin))
	view := Rect{
		Min: origin.Mul(-1),
		Max: origin.Mul(-1).Add(gg.Pt(vp.Width/zoom, vp.Height/zoom)),
	}
	return tri.Overlaps(view)
}

// pass is the state of a single Render call.
type pass struct {
	cfg    Config
	stack  *TransformStack
	zoom   float64
	origin gg.Point
	vp     Viewport
	stats  RenderStats
}

func (p *pass) run(s Surface) error {
	p.stack.Save()
	defer p.stack.Restore()

	s.Scale(p.zoom)

	anchor := p.vp.masterAnchor()
	p.stack.Translate(p.origin.X+anchor.X, p.origin.Y+anchor.Y)

	master := Triangle{Length: p.vp.MasterLength()}
	a, b, c := master.Vertices()
	if err := s.FillTriangle(a, b, c, p.cfg.Palette.Solid); err != nil {
		return fmt.Errorf("sierpinski: fill master triangle: %w", err)
	}
	p.stats.Triangles++

	return p.recurse(s, []Triangle{master}, 1)
}

// recurse visits each triangle in tris, which are positioned relative to
// the current stack frame.
func (p *pass) recurse(s Surface, tris []Triangle, depth int) error {
	for _, t := range tris {
		if !(t.Length > 0) || t.Length*p.zoom <= p.cfg.MinLength {
			continue
		}
		if err := p.visit(s, t, depth); err != nil {
			return err
		}
	}
	return nil
}

// visit opens a frame at t's anchor and, if t is visible, splits it and
// descends into its corners. The frame is closed on every path.
func (p *pass) visit(s Surface, t Triangle, depth int) error {
	p.stack.Save()
	defer p.stack.Restore()

	p.stack.Translate(t.X, t.Y)
	if !hitTest(p.stack.Position(), t, p.vp, p.zoom, p.origin) {
		p.stats.Culled++
		return nil
	}

	corners, err := p.split(s, t)
	if err != nil {
		return err
	}
	if depth > p.stats.MaxDepth {
		p.stats.MaxDepth = depth
	}
	return p.recurse(s, corners[:], depth+1)
}

// split fills the inverted middle of t and returns its three corners.
func (p *pass) split(s Surface, t Triangle) ([3]Triangle, error) {
	hole, corners := t.Split()

	p.stack.Save()
	defer p.stack.Restore()

	p.stack.Translate(hole.X, hole.Y)
	a, b, c := holeVertices(hole.Length)
	if err := s.FillTriangle(a, b, c, p.cfg.Palette.Hole); err != nil {
		return corners, fmt.Errorf("sierpinski: fill hole (side %g): %w", hole.Length, err)
	}
	p.stats.Triangles++
	return corners, nil
}
