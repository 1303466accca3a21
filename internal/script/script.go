// Package script parses and plays back navigation command sequences.
//
// A script is a list of commands separated by commas, semicolons or
// whitespace. Lines starting with '#' are comments.
//
//	in in in, e e, drag:-40:25, wait, out!, reset
//
// Commands:
//
//	in, out      zoom one step around the viewport center
//	in!, out!    zoom one step without moving the origin
//	n, s, e, w   pan one step
//	click        zoom in as a pointer click would
//	shift-click  zoom out as a shift-click would
//	drag:dx:dy   drag the pointer by (dx, dy) screen pixels
//	reset        return to the initial view
//	wait         render one frame without changing the view
package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/sierpinski"
)

// ErrSyntax is returned by Parse for unknown or malformed commands.
var ErrSyntax = errors.New("script: syntax error")

// Op identifies a command.
type Op int

// Command ops.
const (
	OpZoomIn Op = iota
	OpZoomOut
	OpZoomInFixed
	OpZoomOutFixed
	OpPanNorth
	OpPanSouth
	OpPanEast
	OpPanWest
	OpClick
	OpShiftClick
	OpDrag
	OpReset
	OpWait
)

var keywords = map[string]Op{
	"in":          OpZoomIn,
	"out":         OpZoomOut,
	"in!":         OpZoomInFixed,
	"out!":        OpZoomOutFixed,
	"n":           OpPanNorth,
	"s":           OpPanSouth,
	"e":           OpPanEast,
	"w":           OpPanWest,
	"click":       OpClick,
	"shift-click": OpShiftClick,
	"reset":       OpReset,
	"wait":        OpWait,
}

// Command is one parsed script step. DX and DY are only used by OpDrag.
type Command struct {
	Op     Op
	DX, DY float64
}

// String returns the command in script syntax.
func (c Command) String() string {
	if c.Op == OpDrag {
		return "drag:" + strconv.FormatFloat(c.DX, 'g', -1, 64) + ":" + strconv.FormatFloat(c.DY, 'g', -1, 64)
	}
	for k, op := range keywords {
		if op == c.Op {
			return k
		}
	}
	return fmt.Sprintf("Op(%d)", int(c.Op))
}

// Parse splits src into commands.
func Parse(src string) ([]Command, error) {
	var cmds []Command
	for lineNo, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\r'
		})
		for _, f := range fields {
			cmd, err := parseCommand(strings.ToLower(f))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
			}
			cmds = append(cmds, cmd)
		}
	}
	return cmds, nil
}

func parseCommand(tok string) (Command, error) {
	if op, ok := keywords[tok]; ok {
		return Command{Op: op}, nil
	}
	rest, ok := strings.CutPrefix(tok, "drag:")
	if !ok {
		return Command{}, fmt.Errorf("%w: unknown command %q", ErrSyntax, tok)
	}
	xs, ys, ok := strings.Cut(rest, ":")
	if !ok {
		return Command{}, fmt.Errorf("%w: %q: want drag:dx:dy", ErrSyntax, tok)
	}
	dx, errX := strconv.ParseFloat(xs, 64)
	dy, errY := strconv.ParseFloat(ys, 64)
	if err := errors.Join(errX, errY); err != nil {
		return Command{}, fmt.Errorf("%w: %q: %w", ErrSyntax, tok, err)
	}
	return Command{Op: OpDrag, DX: dx, DY: dy}, nil
}

// Apply issues the command to fc. Drags are delivered as a full
// press-move-release gesture starting at the viewport center.
func (c Command) Apply(fc *sierpinski.FrameController) {
	switch c.Op {
	case OpZoomIn:
		fc.Zoom(sierpinski.ZoomIn, true)
	case OpZoomOut:
		fc.Zoom(sierpinski.ZoomOut, true)
	case OpZoomInFixed:
		fc.Zoom(sierpinski.ZoomIn, false)
	case OpZoomOutFixed:
		fc.Zoom(sierpinski.ZoomOut, false)
	case OpPanNorth:
		fc.Pan(sierpinski.North)
	case OpPanSouth:
		fc.Pan(sierpinski.South)
	case OpPanEast:
		fc.Pan(sierpinski.East)
	case OpPanWest:
		fc.Pan(sierpinski.West)
	case OpClick:
		fc.Click(false)
	case OpShiftClick:
		fc.Click(true)
	case OpDrag:
		c0 := fc.Viewport().Center()
		fc.PanStart(c0.X, c0.Y)
		fc.PanMove(c.DX, c.DY)
		if fc.PanEnd() {
			// The release of a moving drag is followed by a click that
			// the controller swallows.
			fc.Click(false)
		}
	case OpReset:
		fc.Reset()
	case OpWait:
		fc.Invalidate()
	}
}

// FrameFunc is called after every rendered frame of a playback.
type FrameFunc func(cmd Command, stats sierpinski.FrameStats) error

// Play applies each command in turn and renders onto s until the view
// settles, calling fn after every rendered frame. At most maxFrames frames
// are rendered per command. Play returns the total number of frames.
func Play(fc *sierpinski.FrameController, s sierpinski.Surface, cmds []Command, maxFrames int, fn FrameFunc) (int, error) {
	total := 0
	for _, cmd := range cmds {
		cmd.Apply(fc)
		for n := 0; fc.NeedsRedraw() && n < maxFrames; n++ {
			stats, err := fc.Frame(s)
			if err != nil {
				return total, fmt.Errorf("script: %s: %w", cmd, err)
			}
			total++
			if fn != nil {
				if err := fn(cmd, stats); err != nil {
					return total, err
				}
			}
		}
		sierpinski.Logger().Debug("script step", "cmd", cmd.String(),
			"zoom", fc.View().Zoom(), "x", fc.View().Origin().X, "y", fc.View().Origin().Y)
	}
	return total, nil
}
