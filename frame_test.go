package sierpinski

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gg"
)

func newTestController(opts ...Option) *FrameController {
	fc := NewFrameController(opts...)
	fc.Resize(800, 600)
	return fc
}

func TestFrameControllerFirstFrameRenders(t *testing.T) {
	fc := newTestController()
	if !fc.NeedsRedraw() {
		t.Fatal("NeedsRedraw() = false before first frame")
	}
	stats, err := fc.Frame(&fakeSurface{})
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if !stats.Rendered {
		t.Error("Rendered = false on first frame")
	}
	if stats.Triangles != 1094 {
		t.Errorf("Triangles = %d, want 1094", stats.Triangles)
	}
	if fc.NeedsRedraw() {
		t.Error("NeedsRedraw() = true after a static frame")
	}
	if fc.LastFrame().Triangles != stats.Triangles {
		t.Errorf("LastFrame().Triangles = %d, want %d", fc.LastFrame().Triangles, stats.Triangles)
	}
}

func TestFrameControllerIdleSkips(t *testing.T) {
	fc := newTestController()
	if _, err := fc.Frame(&fakeSurface{}); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	s := &fakeSurface{}
	for i := 0; i < 5; i++ {
		stats, err := fc.Frame(s)
		if err != nil {
			t.Fatalf("idle Frame() error = %v", err)
		}
		if stats.Rendered {
			t.Fatalf("idle frame %d rendered", i)
		}
	}
	if len(s.fills) != 0 || s.saves != 0 {
		t.Errorf("idle frames touched the surface: %d fills, %d saves", len(s.fills), s.saves)
	}
}

func TestFrameControllerAnimationKeepsDirty(t *testing.T) {
	fc := newTestController()
	fc.Frame(&fakeSurface{})

	fc.Pan(West)
	if !fc.NeedsRedraw() {
		t.Fatal("NeedsRedraw() = false after Pan")
	}

	frames := 0
	for fc.NeedsRedraw() {
		stats, err := fc.Frame(&fakeSurface{})
		if err != nil {
			t.Fatalf("Frame() error = %v", err)
		}
		if !stats.Rendered {
			t.Fatal("dirty frame was not rendered")
		}
		frames++
		if frames > 20 {
			t.Fatal("animation did not settle")
		}
	}
	// 50 → 25, 12.5, 6.25, 3.125, 1.5625, then snap: 6 frames.
	if frames != 6 {
		t.Errorf("frames = %d, want 6", frames)
	}
	if got := fc.View().Origin(); got != gg.Pt(50, 0) {
		t.Errorf("Origin() = %v, want (50,0)", got)
	}
}

func TestFrameControllerZoomOneFrame(t *testing.T) {
	fc := newTestController()
	fc.Frame(&fakeSurface{})

	fc.Zoom(ZoomIn, false)
	stats, err := fc.Frame(&fakeSurface{})
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if stats.Zoom != 1.1 {
		t.Errorf("Zoom = %v, want 1.1", stats.Zoom)
	}
	if fc.NeedsRedraw() {
		t.Error("NeedsRedraw() = true after zoom converged")
	}
}

func TestFrameControllerResize(t *testing.T) {
	fc := newTestController()
	fc.Frame(&fakeSurface{})

	fc.Resize(800, 600)
	if fc.NeedsRedraw() {
		t.Error("same-size Resize should not schedule a redraw")
	}
	fc.Resize(1024, 768)
	if !fc.NeedsRedraw() {
		t.Error("Resize should schedule a redraw")
	}
	if fc.Viewport() != (Viewport{1024, 768}) {
		t.Errorf("Viewport() = %+v, want 1024x768", fc.Viewport())
	}
}

func TestFrameControllerZeroViewport(t *testing.T) {
	fc := NewFrameController()
	stats, err := fc.Frame(&fakeSurface{})
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if !stats.Rendered || stats.Triangles != 0 {
		t.Errorf("stats = %+v, want rendered with 0 triangles", stats)
	}
}

func TestFrameControllerDrag(t *testing.T) {
	fc := newTestController()
	fc.Frame(&fakeSurface{})

	fc.PanStart(10, 10)
	if fc.NeedsRedraw() {
		t.Error("PanStart alone should not schedule a redraw")
	}
	fc.PanMove(30, -20)
	if !fc.NeedsRedraw() {
		t.Fatal("PanMove should schedule a redraw")
	}
	stats, _ := fc.Frame(&fakeSurface{})
	if stats.Origin != gg.Pt(30, -20) {
		t.Errorf("Origin = %v, want (30,-20)", stats.Origin)
	}
	if !fc.PanEnd() {
		t.Error("PanEnd() = false after movement")
	}

	// The click that ends a drag does not zoom; the next one does.
	if fc.Click(false) {
		t.Error("Click after drag = true, want false")
	}
	if fc.NeedsRedraw() {
		t.Error("suppressed click scheduled a redraw")
	}
	if !fc.Click(false) {
		t.Error("second Click = false, want true")
	}
	if z, ok := fc.View().TargetZoom(); !ok || z != 1.1 {
		t.Errorf("TargetZoom() = %v, %v, want 1.1, true", z, ok)
	}
}

func TestFrameControllerClickShiftZoomsOut(t *testing.T) {
	fc := newTestController()
	fc.View().SetView(2, gg.Point{})
	if !fc.Click(true) {
		t.Fatal("Click(true) = false")
	}
	if z, _ := fc.View().TargetZoom(); z != 1.8 {
		t.Errorf("TargetZoom() = %v, want 1.8", z)
	}
	if _, ok := fc.View().TargetOrigin(); !ok {
		t.Error("click zoom should be centered")
	}
}

func TestFrameControllerReset(t *testing.T) {
	fc := newTestController()
	for i := 0; i < 10; i++ {
		fc.Zoom(ZoomIn, true)
		fc.Pan(North)
		if _, err := fc.Settle(&fakeSurface{}, 100); err != nil {
			t.Fatalf("Settle() error = %v", err)
		}
	}
	fc.Reset()
	n, err := fc.Settle(&fakeSurface{}, 100)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if n == 0 || fc.NeedsRedraw() {
		t.Errorf("Settle() = %d, NeedsRedraw() = %v", n, fc.NeedsRedraw())
	}
	if fc.View().Zoom() != 1 || fc.View().Origin() != (gg.Point{}) {
		t.Errorf("view = %v @ %v, want origin @ 1", fc.View().Origin(), fc.View().Zoom())
	}
}

func TestFrameControllerSettleLimit(t *testing.T) {
	fc := newTestController()
	fc.View().SetView(DefaultMaxZoom, gg.Point{})
	fc.Reset()
	n, err := fc.Settle(&fakeSurface{}, 3)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Settle() = %d, want 3", n)
	}
	if !fc.NeedsRedraw() {
		t.Error("NeedsRedraw() = false while still animating")
	}
}

func TestFrameControllerErrorKeepsDirty(t *testing.T) {
	fc := newTestController()
	_, err := fc.Frame(&fakeSurface{failAfter: 1})
	if !errors.Is(err, errFillFailed) {
		t.Fatalf("Frame() error = %v, want errFillFailed", err)
	}
	if !fc.NeedsRedraw() {
		t.Error("NeedsRedraw() = false after failed frame")
	}
	if _, err := fc.Settle(&fakeSurface{failAfter: 1}, 5); err == nil {
		t.Error("Settle() should report the fill error")
	}
}

func TestFrameControllerTiming(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}
	fc := newTestController(WithClock(clock))
	stats, err := fc.Frame(&fakeSurface{})
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	// Frame start, render start, render end, frame end.
	if !stats.Start.Equal(base.Add(time.Millisecond)) {
		t.Errorf("Start = %v, want +1ms", stats.Start)
	}
	if !stats.End.Equal(base.Add(4 * time.Millisecond)) {
		t.Errorf("End = %v, want +4ms", stats.End)
	}
	if stats.Duration != time.Millisecond {
		t.Errorf("Duration = %v, want 1ms", stats.Duration)
	}
}

func TestFrameControllerInvalidate(t *testing.T) {
	fc := newTestController()
	fc.Frame(&fakeSurface{})
	fc.Invalidate()
	stats, _ := fc.Frame(&fakeSurface{})
	if !stats.Rendered {
		t.Error("Invalidate did not force a render")
	}
}

func TestFrameControllerSharesOptions(t *testing.T) {
	fc := newTestController(WithMinLength(100), WithPanStep(10))
	if fc.Renderer().Config().MinLength != 100 {
		t.Errorf("renderer MinLength = %v, want 100", fc.Renderer().Config().MinLength)
	}
	fc.Pan(West)
	if got, _ := fc.View().TargetOrigin(); got != gg.Pt(10, 0) {
		t.Errorf("TargetOrigin() = %v, want (10,0)", got)
	}
}
