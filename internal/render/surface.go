// Package render draws an engine's grid onto a 2D immediate-mode surface.
package render

import "image/color"

// Surface is the subset of a 2D drawing context the renderer needs.
// Coordinates are in backing-store pixels.
type Surface interface {
	SetStrokeStyle(c color.RGBA)
	SetFillStyle(c color.RGBA)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	FillRect(x, y, w, h float64)
}

// SurfaceSize returns the backing-store length needed for dim cells of the
// given size, including the one-pixel lattice on both edges.
func SurfaceSize(cellSize int, dim uint32) int {
	return (cellSize+1)*int(dim) + 1
}
