// Package pointer maps pointer positions on a displayed surface to cells.
package pointer

import "math"

// Rect is the on-screen bounding box of a surface, in display units.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Contains reports whether (x, y) lies inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Cell is a (row, column) position in the grid.
type Cell struct {
	Row, Col uint32
}

// Index returns the row-major index of c in a grid of the given width.
func (c Cell) Index(width uint32) int {
	return int(c.Row)*int(width) + int(c.Col)
}

// MapToCell converts a pointer position into the cell under it. The display
// rect may be scaled relative to the surface's backing store of
// surfaceW x surfaceH pixels. The result is always within a width x height
// grid, even for positions on the lattice border or outside the rect.
func MapToCell(px, py float64, r Rect, surfaceW, surfaceH float64, cellSize int, width, height uint32) Cell {
	scaleX, scaleY := 1.0, 1.0
	if r.Width > 0 {
		scaleX = surfaceW / r.Width
	}
	if r.Height > 0 {
		scaleY = surfaceH / r.Height
	}

	pitch := float64(cellSize + 1)
	x := (px - r.Left) * scaleX
	y := (py - r.Top) * scaleY

	return Cell{
		Row: clamp(math.Floor(y/pitch), height),
		Col: clamp(math.Floor(x/pitch), width),
	}
}

func clamp(v float64, dim uint32) uint32 {
	if dim == 0 || v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > float64(dim-1) {
		return dim - 1
	}
	return uint32(v)
}
