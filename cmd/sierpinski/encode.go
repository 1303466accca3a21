package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/gg"
)

// jpegQuality is used for -format jpeg.
const jpegQuality = 90

// encoder writes the context's pixels in one image format.
type encoder func(w io.Writer, dc *gg.Context) error

var encoders = map[string]encoder{
	"png": func(w io.Writer, dc *gg.Context) error {
		return dc.EncodePNG(w)
	},
	"jpeg": func(w io.Writer, dc *gg.Context) error {
		return dc.EncodeJPEG(w, jpegQuality)
	},
	"bmp": func(w io.Writer, dc *gg.Context) error {
		return bmp.Encode(w, dc.Image())
	},
	"tiff": func(w io.Writer, dc *gg.Context) error {
		return tiff.Encode(w, dc.Image(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	},
}

// lookupEncoder resolves a format name. "jpg" and "tif" are accepted as
// aliases, and an empty name falls back to the extension of path.
func lookupEncoder(format, path string) (string, encoder, error) {
	name := strings.ToLower(format)
	if name == "" {
		if i := strings.LastIndexByte(path, '.'); i >= 0 {
			name = strings.ToLower(path[i+1:])
		}
	}
	switch name {
	case "jpg":
		name = "jpeg"
	case "tif":
		name = "tiff"
	case "":
		name = "png"
	}
	enc, ok := encoders[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown image format %q (want png, jpeg, bmp or tiff)", name)
	}
	return name, enc, nil
}

// writeImage encodes dc into a new file at path.
func writeImage(path string, enc encoder, dc *gg.Context) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := enc(f, dc); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
