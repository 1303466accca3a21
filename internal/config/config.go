// Package config loads sierpinski settings from YAML files.
//
// A file only needs the keys it overrides; everything else keeps the
// library defaults:
//
//	min_length: 4
//	zoom_speed: 1.25
//	palette:
//	  background: "#202020"
//	  solid: "#f0c000"
//	  hole: "#000"
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/gg"
	"github.com/gogpu/sierpinski"
)

// maxFileSize bounds the config file read.
const maxFileSize = 1 << 20

// ErrBadColor is returned for palette entries that are not hex colors.
var ErrBadColor = errors.New("config: bad color")

// File mirrors the YAML layout. Pointer fields distinguish "unset" from
// an explicit zero so Validate can reject the latter.
type File struct {
	MinLength *float64    `yaml:"min_length"`
	MaxZoom   *float64    `yaml:"max_zoom"`
	ZoomSpeed *float64    `yaml:"zoom_speed"`
	PanStep   *float64    `yaml:"pan_step"`
	Palette   PaletteFile `yaml:"palette"`
}

// PaletteFile holds hex color strings ("#rgb", "#rrggbb", with optional alpha).
type PaletteFile struct {
	Background string `yaml:"background"`
	Solid      string `yaml:"solid"`
	Hole       string `yaml:"hole"`
}

// Load reads path and merges it over sierpinski.DefaultConfig.
// An empty path returns the defaults.
func Load(path string) (sierpinski.Config, error) {
	if path == "" {
		return sierpinski.DefaultConfig(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return sierpinski.Config{}, fmt.Errorf("config: %w", err)
	}
	if info.Size() > maxFileSize {
		return sierpinski.Config{}, fmt.Errorf("config: %s is too large (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return sierpinski.Config{}, fmt.Errorf("config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return sierpinski.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	sierpinski.Logger().Info("loaded config", "path", path, "size", info.Size())
	return cfg, nil
}

// Parse decodes YAML data and merges it over sierpinski.DefaultConfig.
func Parse(data []byte) (sierpinski.Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return sierpinski.Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return f.Apply(sierpinski.DefaultConfig())
}

// Apply overlays the set fields of f onto base and validates the result.
func (f File) Apply(base sierpinski.Config) (sierpinski.Config, error) {
	cfg := base
	if f.MinLength != nil {
		cfg.MinLength = *f.MinLength
	}
	if f.MaxZoom != nil {
		cfg.MaxZoom = *f.MaxZoom
	}
	if f.ZoomSpeed != nil {
		cfg.ZoomSpeed = *f.ZoomSpeed
	}
	if f.PanStep != nil {
		cfg.PanStep = *f.PanStep
	}

	colors := []struct {
		name string
		hex  string
		dst  *gg.RGBA
	}{
		{"background", f.Palette.Background, &cfg.Palette.Background},
		{"solid", f.Palette.Solid, &cfg.Palette.Solid},
		{"hole", f.Palette.Hole, &cfg.Palette.Hole},
	}
	for _, c := range colors {
		if c.hex == "" {
			continue
		}
		col, err := ParseColor(c.hex)
		if err != nil {
			return sierpinski.Config{}, fmt.Errorf("palette.%s: %w", c.name, err)
		}
		*c.dst = col
	}

	if err := cfg.Validate(); err != nil {
		return sierpinski.Config{}, err
	}
	return cfg, nil
}

// ParseColor parses a hex color. gg.Hex maps malformed input to black, so
// the digits are checked here first.
func ParseColor(s string) (gg.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return gg.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
	}
	return gg.Hex(hex), nil
}
