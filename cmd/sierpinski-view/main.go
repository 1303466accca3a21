// Command sierpinski-view is an interactive Sierpinski triangle explorer.
//
// Controls:
//
//	+ / -          zoom in / out around the window center
//	0              animate back to the initial view
//	arrow keys     pan
//	click          zoom in (shift+click zooms out)
//	drag           pan freely
//	mouse wheel    zoom
//	Tab            toggle the statistics overlay
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/gg"
	"github.com/gogpu/sierpinski"
	"github.com/gogpu/sierpinski/integration/ggsurface"
	"github.com/gogpu/sierpinski/internal/config"
)

func main() {
	var (
		width   = flag.Int("width", 800, "initial window width")
		height  = flag.Int("height", 600, "initial window height")
		cfgPath = flag.String("config", "", "YAML config file")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		sierpinski.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	v := newViewer(cfg, *width, *height)
	ebiten.SetWindowTitle("Sierpinski")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatalf("run: %v", err)
	}
}

// viewer implements ebiten.Game around a FrameController.
type viewer struct {
	fc      *sierpinski.FrameController
	dc      *gg.Context
	surface *ggsurface.Context
	frame   *ebiten.Image

	width, height int
	cursorX       int
	cursorY       int
	hud           bool
	err           error
}

func newViewer(cfg sierpinski.Config, width, height int) *viewer {
	dc := gg.NewContext(width, height)
	fc := sierpinski.NewFrameController(sierpinski.WithConfig(cfg))
	fc.Resize(float64(width), float64(height))
	return &viewer{
		fc:      fc,
		dc:      dc,
		surface: ggsurface.NewContext(dc),
		width:   width,
		height:  height,
		hud:     true,
	}
}

var keyPans = []struct {
	key ebiten.Key
	dir sierpinski.PanDirection
}{
	{ebiten.KeyArrowLeft, sierpinski.West},
	{ebiten.KeyArrowRight, sierpinski.East},
	{ebiten.KeyArrowUp, sierpinski.North},
	{ebiten.KeyArrowDown, sierpinski.South},
}

func shiftPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
}

func (v *viewer) Update() error {
	if v.err != nil {
		return v.err
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		v.fc.Zoom(sierpinski.ZoomIn, true)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		v.fc.Zoom(sierpinski.ZoomOut, true)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit0), inpututil.IsKeyJustPressed(ebiten.KeyNumpad0):
		v.fc.Reset()
	}
	for _, kp := range keyPans {
		if inpututil.IsKeyJustPressed(kp.key) {
			v.fc.Pan(kp.dir)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.hud = !v.hud
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		v.fc.PanStart(float64(x), float64(y))
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		v.fc.PanMove(float64(x-v.cursorX), float64(y-v.cursorY))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		v.fc.PanEnd()
		v.fc.Click(shiftPressed())
	}
	v.cursorX, v.cursorY = x, y

	if _, dy := ebiten.Wheel(); dy > 0 {
		v.fc.Zoom(sierpinski.ZoomIn, true)
	} else if dy < 0 {
		v.fc.Zoom(sierpinski.ZoomOut, true)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.frame == nil {
		v.frame = ebiten.NewImage(v.width, v.height)
		v.fc.Invalidate()
	}

	if v.fc.NeedsRedraw() {
		if _, err := v.fc.Frame(v.surface); err != nil {
			v.err = fmt.Errorf("render: %w", err)
			return
		}
		v.frame.WritePixels(v.dc.ResizeTarget().Data())
	}
	screen.DrawImage(v.frame, nil)

	if v.hud {
		last := v.fc.LastFrame()
		view := v.fc.View()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"zoom %.1f  origin (%.1f, %.1f)\ntriangles %d  culled %d  depth %d\nrender %.2f ms  tps %.0f",
			view.Zoom(), view.Origin().X, view.Origin().Y,
			last.Triangles, last.Culled, last.MaxDepth,
			float64(last.Duration.Microseconds())/1000, ebiten.ActualTPS(),
		))
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < 1 || outsideHeight < 1 {
		return v.width, v.height
	}
	if outsideWidth != v.width || outsideHeight != v.height {
		if err := v.dc.Resize(outsideWidth, outsideHeight); err != nil {
			v.err = err
			return v.width, v.height
		}
		v.width, v.height = outsideWidth, outsideHeight
		v.fc.Resize(float64(outsideWidth), float64(outsideHeight))
		if v.frame != nil {
			v.frame.Deallocate()
			v.frame = nil
		}
	}
	return v.width, v.height
}
