// Package raster provides an in-memory render.Surface backed by the
// tfriedel6/canvas software rasterizer. It is used for headless snapshots
// and as the pixel source of the terminal view.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
)

// Surface is a fixed-size RGBA drawing surface.
type Surface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
}

// New allocates a w x h surface. Non-positive sizes are raised to one pixel.
func New(w, h int) *Surface {
	w, h = max(w, 1), max(h, 1)
	b := softwarebackend.New(w, h)
	cv := canvas.New(b)
	cv.SetLineWidth(1)
	return &Surface{backend: b, cv: cv}
}

func (s *Surface) SetStrokeStyle(c color.RGBA) { s.cv.SetStrokeStyle(c) }
func (s *Surface) SetFillStyle(c color.RGBA)   { s.cv.SetFillStyle(c) }
func (s *Surface) BeginPath()                  { s.cv.BeginPath() }
func (s *Surface) MoveTo(x, y float64)         { s.cv.MoveTo(x, y) }
func (s *Surface) LineTo(x, y float64)         { s.cv.LineTo(x, y) }
func (s *Surface) Stroke()                     { s.cv.Stroke() }

func (s *Surface) FillRect(x, y, w, h float64) { s.cv.FillRect(x, y, w, h) }

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.backend.Image.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.backend.Image.Bounds().Dy() }

// Image returns the backing image. It is overwritten by later draws.
func (s *Surface) Image() *image.RGBA { return s.backend.Image }

// At returns the pixel at (x, y), or transparent black outside the surface.
func (s *Surface) At(x, y int) color.RGBA {
	if !image.Pt(x, y).In(s.backend.Image.Bounds()) {
		return color.RGBA{}
	}
	return s.backend.Image.RGBAAt(x, y)
}

// Luminance returns the relative luminance of c in [0, 1] using Rec. 709
// weights, scaled by alpha.
func Luminance(c color.RGBA) float64 {
	l := 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
	return l / 255 * float64(c.A) / 255
}

// Lit reports whether the pixel at (x, y) is brighter than threshold.
func (s *Surface) Lit(x, y int, threshold float64) bool {
	return Luminance(s.At(x, y)) > threshold
}

// WritePNG encodes the surface as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.backend.Image)
}

// SavePNG writes the surface to path, creating parent directories.
func (s *Surface) SavePNG(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := s.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}
