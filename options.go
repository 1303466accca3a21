package sierpinski

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gg"
)

// Default navigation and granularity settings.
const (
	// DefaultMinLength is the on-screen side length, in pixels, at or below
	// which a triangle is no longer subdivided.
	DefaultMinLength = 8

	// DefaultMaxZoom is the deepest zoom level a view can reach.
	DefaultMaxZoom = 1000000

	// DefaultZoomSpeed is the factor applied per zoom step.
	DefaultZoomSpeed = 1.1

	// DefaultPanStep is the logical distance covered by one discrete pan.
	DefaultPanStep = 50
)

// ErrInvalidConfig is returned by Config.Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("sierpinski: invalid config")

// Palette holds the three colors a render pass uses.
type Palette struct {
	// Background fills the surface before each pass (if it is a Clearer).
	Background gg.RGBA

	// Solid is the color of the master triangle and every surviving corner.
	Solid gg.RGBA

	// Hole is the color of the inverted middle triangles.
	Hole gg.RGBA
}

// DefaultPalette returns light grey background, black triangle, white holes.
func DefaultPalette() Palette {
	return Palette{
		Background: gg.Hex("#ccc"),
		Solid:      gg.Black,
		Hole:       gg.White,
	}
}

// Config holds the tunable parameters shared by ViewState and Renderer.
type Config struct {
	MinLength float64
	MaxZoom   float64
	ZoomSpeed float64
	PanStep   float64
	Palette   Palette
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MinLength: DefaultMinLength,
		MaxZoom:   DefaultMaxZoom,
		ZoomSpeed: DefaultZoomSpeed,
		PanStep:   DefaultPanStep,
		Palette:   DefaultPalette(),
	}
}

// Validate reports whether the configuration can drive a renderer.
// MinLength must be positive or recursion would never terminate.
func (c Config) Validate() error {
	switch {
	case c.MinLength <= 0:
		return fmt.Errorf("%w: min length %v must be > 0", ErrInvalidConfig, c.MinLength)
	case c.MaxZoom < 1:
		return fmt.Errorf("%w: max zoom %v must be >= 1", ErrInvalidConfig, c.MaxZoom)
	case c.ZoomSpeed <= 1:
		return fmt.Errorf("%w: zoom speed %v must be > 1", ErrInvalidConfig, c.ZoomSpeed)
	case c.PanStep <= 0:
		return fmt.Errorf("%w: pan step %v must be > 0", ErrInvalidConfig, c.PanStep)
	}
	return nil
}

// Option configures a ViewState, Renderer or FrameController during creation.
//
// Example:
//
//	fc := sierpinski.NewFrameController(
//	    sierpinski.WithMinLength(4),
//	    sierpinski.WithZoomSpeed(1.25),
//	)
type Option func(*options)

// options holds optional configuration for component creation.
type options struct {
	config Config
	clock  func() time.Time
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		config: DefaultConfig(),
		clock:  time.Now,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithConfig replaces the whole configuration. Fields that would fail
// Validate, and a zero Palette, keep their default values.
// Later options override individual fields.
func WithConfig(c Config) Option {
	return func(o *options) {
		o.config = DefaultConfig()
		WithMinLength(c.MinLength)(o)
		WithMaxZoom(c.MaxZoom)(o)
		WithZoomSpeed(c.ZoomSpeed)(o)
		WithPanStep(c.PanStep)(o)
		if c.Palette != (Palette{}) {
			o.config.Palette = c.Palette
		}
	}
}

// WithMinLength sets the on-screen granularity floor.
// Non-positive values are ignored.
func WithMinLength(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.config.MinLength = px
		}
	}
}

// WithMaxZoom sets the zoom ceiling. Values below 1 are ignored.
func WithMaxZoom(z float64) Option {
	return func(o *options) {
		if z >= 1 {
			o.config.MaxZoom = z
		}
	}
}

// WithZoomSpeed sets the per-step zoom factor. Values <= 1 are ignored.
func WithZoomSpeed(s float64) Option {
	return func(o *options) {
		if s > 1 {
			o.config.ZoomSpeed = s
		}
	}
}

// WithPanStep sets the logical distance of one discrete pan.
func WithPanStep(step float64) Option {
	return func(o *options) {
		if step > 0 {
			o.config.PanStep = step
		}
	}
}

// WithPalette sets the render colors.
func WithPalette(p Palette) Option {
	return func(o *options) {
		o.config.Palette = p
	}
}

// WithClock overrides the time source used for frame timing.
// Tests use it to make FrameStats deterministic.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}
