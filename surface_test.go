package sierpinski

import (
	"errors"

	"github.com/gogpu/gg"
)

var errFillFailed = errors.New("fill failed")

// fakeFill is one recorded FillTriangle call in device space.
type fakeFill struct {
	a, b, c gg.Point
	col     gg.RGBA
}

// fakeSurface records draw calls and tracks the transform like gg.Context.
type fakeSurface struct {
	matrix   gg.Matrix
	stack    []gg.Matrix
	fills    []fakeFill
	saves    int
	restores int
	maxDepth int
	scales   []float64
	cleared  []gg.RGBA

	// failAfter makes the n-th fill (1-based) and every later one fail.
	failAfter int
}

func (f *fakeSurface) init() {
	if f.stack == nil {
		f.matrix = gg.Identity()
		f.stack = []gg.Matrix{}
	}
}

func (f *fakeSurface) FillTriangle(a, b, c gg.Point, col gg.RGBA) error {
	f.init()
	if f.failAfter > 0 && len(f.fills)+1 >= f.failAfter {
		return errFillFailed
	}
	f.fills = append(f.fills, fakeFill{
		a:   f.matrix.TransformPoint(a),
		b:   f.matrix.TransformPoint(b),
		c:   f.matrix.TransformPoint(c),
		col: col,
	})
	return nil
}

func (f *fakeSurface) Translate(dx, dy float64) {
	f.init()
	f.matrix = f.matrix.Multiply(gg.Translate(dx, dy))
}

func (f *fakeSurface) Scale(s float64) {
	f.init()
	f.scales = append(f.scales, s)
	f.matrix = f.matrix.Multiply(gg.Scale(s, s))
}

func (f *fakeSurface) Save() {
	f.init()
	f.stack = append(f.stack, f.matrix)
	f.saves++
	if len(f.stack) > f.maxDepth {
		f.maxDepth = len(f.stack)
	}
}

func (f *fakeSurface) Restore() {
	f.init()
	if len(f.stack) == 0 {
		return
	}
	f.matrix = f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	f.restores++
}

// clearingSurface adds Clearer to fakeSurface.
type clearingSurface struct {
	fakeSurface
}

func (c *clearingSurface) Clear(col gg.RGBA) {
	c.cleared = append(c.cleared, col)
}

// count returns the number of fills with the given color.
func (f *fakeSurface) count(col gg.RGBA) int {
	n := 0
	for _, fl := range f.fills {
		if fl.col == col {
			n++
		}
	}
	return n
}

var (
	_ Surface = (*fakeSurface)(nil)
	_ Clearer = (*clearingSurface)(nil)
)
