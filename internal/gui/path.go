package gui

import "github.com/san-kum/cellview/internal/pointer"

const (
	margin    = 16
	hudHeight = 56
)

type segment struct {
	x0, y0, x1, y1 float64
}

// path collects line segments between BeginPath and Stroke.
type path struct {
	segs   []segment
	cx, cy float64
}

func (p *path) BeginPath() { p.segs = p.segs[:0] }

func (p *path) MoveTo(x, y float64) { p.cx, p.cy = x, y }

func (p *path) LineTo(x, y float64) {
	p.segs = append(p.segs, segment{p.cx, p.cy, x, y})
	p.cx, p.cy = x, y
}

// layout returns the window size for a w x h surface shown at zoom, and
// where the surface lands in the window.
func layout(w, h int, zoom float64) (winW, winH int, dest pointer.Rect) {
	if zoom <= 0 {
		zoom = 1
	}
	dest = pointer.Rect{
		Left:   margin,
		Top:    margin + hudHeight,
		Width:  float64(w) * zoom,
		Height: float64(h) * zoom,
	}
	winW = int(dest.Right()) + margin
	winH = int(dest.Bottom()) + margin
	return winW, winH, dest
}
