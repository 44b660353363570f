package render

import (
	"github.com/san-kum/cellview/internal/bitset"
	"github.com/san-kum/cellview/internal/engine"
)

// Renderer paints gridlines and cells at a fixed pixel pitch of CellSize+1.
type Renderer struct {
	CellSize int
	Palette  Palette
}

// New returns a renderer using the default palette.
func New(cellSize int) *Renderer {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Renderer{CellSize: cellSize, Palette: DefaultPalette}
}

func (r *Renderer) pitch() float64 { return float64(r.CellSize + 1) }

// Draw paints the lattice and every cell of e using a freshly borrowed view.
func (r *Renderer) Draw(e engine.Engine, v bitset.View, s Surface) {
	r.DrawGrid(e.Width(), e.Height(), s)
	r.DrawCells(e.Width(), e.Height(), v, s)
}

// DrawGrid strokes width+1 vertical and height+1 horizontal lines.
func (r *Renderer) DrawGrid(width, height uint32, s Surface) {
	p := r.pitch()
	right := p*float64(width) + 1
	bottom := p*float64(height) + 1

	s.BeginPath()
	s.SetStrokeStyle(r.Palette.Grid)

	for i := uint32(0); i <= width; i++ {
		x := float64(i)*p + 1
		s.MoveTo(x, 0)
		s.LineTo(x, bottom)
	}
	for j := uint32(0); j <= height; j++ {
		y := float64(j)*p + 1
		s.MoveTo(0, y)
		s.LineTo(right, y)
	}

	s.Stroke()
}

// DrawCells fills one CellSize square per cell, colored by its bit in v.
// v must hold at least width*height bits.
func (r *Renderer) DrawCells(width, height uint32, v bitset.View, s Surface) {
	p := r.pitch()
	size := float64(r.CellSize)

	first := true
	var current bool
	for row := uint32(0); row < height; row++ {
		for col := uint32(0); col < width; col++ {
			set := v.IsSet(int(row)*int(width) + int(col))
			if first || set != current {
				if set {
					s.SetFillStyle(r.Palette.Set)
				} else {
					s.SetFillStyle(r.Palette.Unset)
				}
				current, first = set, false
			}
			s.FillRect(float64(col)*p+1, float64(row)*p+1, size, size)
		}
	}
}
