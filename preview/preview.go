// Package preview rasterises sampled grids for quick inspection.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/pthm-cable/heightgen/terrain"
)

// Render modes.
const (
	ModeColor  = "color"  // biome color per sample
	ModeHeight = "height" // grayscale, -1 black to 1 white
)

// ErrUnknownFormat is returned for unsupported file extensions.
var ErrUnknownFormat = errors.New("unknown image format")

// Render draws one pixel per sample, row 0 at the top.
func Render(g *terrain.Grid, mode string) (*image.RGBA, error) {
	r := g.Region
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Depth))

	for row := 0; row < r.Depth; row++ {
		for col := 0; col < r.Width; col++ {
			s := g.At(col, row)
			var c color.RGBA
			switch mode {
			case "", ModeColor:
				cr, cg, cb := s.Color.RGBA8()
				c = color.RGBA{R: cr, G: cg, B: cb, A: 255}
			case ModeHeight:
				v := uint8(float64((s.Height+1)*127.5) + 0.5)
				c = color.RGBA{R: v, G: v, B: v, A: 255}
			default:
				return nil, fmt.Errorf("unknown preview mode %q", mode)
			}
			img.SetRGBA(col, row, c)
		}
	}
	return img, nil
}

// Encode writes img in the named format (png, bmp or tiff).
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile renders g and writes it to path, picking the encoder from the
// file extension.
func WriteFile(path string, g *terrain.Grid, mode string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	img, err := Render(g, mode)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating preview: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encoding preview: %w", err)
	}
	return f.Close()
}
