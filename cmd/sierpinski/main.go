// Command sierpinski renders the Sierpinski triangle to image files.
//
// Usage:
//
//	sierpinski [flags]
//
// A still is rendered after playing the optional -script to convergence.
// With -frames-dir every frame of the scripted animation is written as a
// numbered image instead.
//
// Examples:
//
//	sierpinski -output tri.png
//	sierpinski -script "in in in e e" -format jpeg -output zoomed.jpg
//	sierpinski -script "in in in, w, reset" -frames-dir frames
//	sierpinski -dry-run -width 1920 -height 1080
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/gogpu/gg"
	"github.com/gogpu/sierpinski"
	"github.com/gogpu/sierpinski/integration/ggsurface"
	"github.com/gogpu/sierpinski/internal/config"
	"github.com/gogpu/sierpinski/internal/script"
)

type options struct {
	width     int
	height    int
	config    string
	output    string
	format    string
	script    string
	framesDir string
	maxFrames int
	dryRun    bool
	verbose   bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("sierpinski", flag.ContinueOnError)
	fs.IntVar(&o.width, "width", 800, "image width")
	fs.IntVar(&o.height, "height", 600, "image height")
	fs.StringVar(&o.config, "config", "", "YAML config file")
	fs.StringVar(&o.output, "output", "sierpinski.png", "output file")
	fs.StringVar(&o.format, "format", "", "image format: png, jpeg, bmp or tiff (default from -output)")
	fs.StringVar(&o.script, "script", "", "navigation commands, or @file to read them from a file")
	fs.StringVar(&o.framesDir, "frames-dir", "", "write every animation frame into this directory")
	fs.IntVar(&o.maxFrames, "max-frames", 200, "frame limit per script command")
	fs.BoolVar(&o.dryRun, "dry-run", false, "record the render instead of rasterizing it")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.width < 1 || o.height < 1 {
		return nil, fmt.Errorf("invalid size %dx%d", o.width, o.height)
	}
	if o.maxFrames < 1 {
		return nil, fmt.Errorf("-max-frames must be positive")
	}
	return o, nil
}

func loadScript(src string) ([]script.Command, error) {
	if len(src) > 0 && src[0] == '@' {
		data, err := os.ReadFile(src[1:])
		if err != nil {
			return nil, fmt.Errorf("read script: %w", err)
		}
		src = string(data)
	}
	return script.Parse(src)
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	sierpinski.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(o.config)
	if err != nil {
		return err
	}
	cmds, err := loadScript(o.script)
	if err != nil {
		return err
	}

	fc := sierpinski.NewFrameController(sierpinski.WithConfig(cfg))
	fc.Resize(float64(o.width), float64(o.height))

	if o.dryRun {
		return dryRun(fc, cmds, o)
	}

	format, enc, err := lookupEncoder(o.format, o.output)
	if err != nil {
		return err
	}

	dc := gg.NewContext(o.width, o.height)
	defer func() { _ = dc.Close() }()
	surface := ggsurface.NewContext(dc)

	if o.framesDir != "" {
		return renderFrames(fc, surface, cmds, o, format, enc)
	}

	if _, err := script.Play(fc, surface, cmds, o.maxFrames, nil); err != nil {
		return err
	}
	// An empty script still needs the initial frame.
	if _, err := fc.Settle(surface, o.maxFrames); err != nil {
		return err
	}
	if err := writeImage(o.output, enc, dc); err != nil {
		return err
	}

	last := fc.LastFrame()
	fmt.Printf("saved %s (%dx%d): %d triangles, depth %d, zoom %g, origin (%g, %g), %v\n",
		o.output, o.width, o.height, last.Triangles, last.MaxDepth,
		last.Zoom, last.Origin.X, last.Origin.Y, last.Duration)
	return nil
}

func renderFrames(fc *sierpinski.FrameController, surface *ggsurface.Context, cmds []script.Command, o *options, format string, enc encoder) error {
	if err := os.MkdirAll(o.framesDir, 0o755); err != nil {
		return fmt.Errorf("create frames dir: %w", err)
	}

	var bar *progressbar.ProgressBar
	if term.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.Default(-1, "frames")
		defer bar.Close()
	}

	n := 0
	write := func(cmd script.Command, stats sierpinski.FrameStats) error {
		path := filepath.Join(o.framesDir, fmt.Sprintf("frame_%05d.%s", n, format))
		n++
		if err := writeImage(path, enc, surface.GG()); err != nil {
			return err
		}
		sierpinski.Logger().Debug("frame written", "path", path, "cmd", cmd.String(),
			"triangles", stats.Triangles, "zoom", stats.Zoom)
		if bar != nil {
			_ = bar.Add(1)
		}
		return nil
	}

	// The initial view is frame zero.
	stats, err := fc.Frame(surface)
	if err != nil {
		return err
	}
	if err := write(script.Command{Op: script.OpWait}, stats); err != nil {
		return err
	}
	if _, err := script.Play(fc, surface, cmds, o.maxFrames, write); err != nil {
		return err
	}

	fmt.Printf("wrote %d frames to %s\n", n, o.framesDir)
	return nil
}

func dryRun(fc *sierpinski.FrameController, cmds []script.Command, o *options) error {
	// Navigate without drawing, then record the final frame only.
	rec := ggsurface.NewRecorder(o.width, o.height)
	frames, err := script.Play(fc, rec, cmds, o.maxFrames, nil)
	if err != nil {
		return err
	}

	final := ggsurface.NewRecorder(o.width, o.height)
	fc.Invalidate()
	stats, err := fc.Frame(final)
	if err != nil {
		return err
	}
	recording := final.Finish()

	fmt.Printf("viewport:  %dx%d\n", o.width, o.height)
	fmt.Printf("script:    %d commands, %d frames\n", len(cmds), frames)
	fmt.Printf("view:      zoom %g, origin (%g, %g)\n", stats.Zoom, stats.Origin.X, stats.Origin.Y)
	fmt.Printf("triangles: %d (culled %d, depth %d)\n", stats.Triangles, stats.Culled, stats.MaxDepth)
	fmt.Printf("commands:  %d (peak state depth %d)\n", len(recording.Commands()), final.PeakDepth())
	fmt.Printf("duration:  %v\n", stats.Duration)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "sierpinski: %v\n", err)
		os.Exit(1)
	}
}
