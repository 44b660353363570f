// Package export writes drawings as SVG documents.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/san-kum/cellview/internal/render"
)

// SVG is a render.Surface that records drawing calls as SVG elements.
type SVG struct {
	width, height int
	stroke, fill  color.RGBA
	path          strings.Builder
	body          strings.Builder
}

// NewSVG returns an empty w x h document.
func NewSVG(w, h int) *SVG {
	return &SVG{width: w, height: h}
}

func (s *SVG) SetStrokeStyle(c color.RGBA) { s.stroke = c }
func (s *SVG) SetFillStyle(c color.RGBA)   { s.fill = c }
func (s *SVG) BeginPath()                  { s.path.Reset() }

func (s *SVG) MoveTo(x, y float64) { fmt.Fprintf(&s.path, "M%g,%g ", x, y) }
func (s *SVG) LineTo(x, y float64) { fmt.Fprintf(&s.path, "L%g,%g ", x, y) }

func (s *SVG) Stroke() {
	d := strings.TrimSpace(s.path.String())
	if d == "" {
		return
	}
	fmt.Fprintf(&s.body, `<path fill="none" stroke="%s"%s stroke-width="1" d="%s"/>
`, render.Hex(opaque(s.stroke)), opacity("stroke-opacity", s.stroke), d)
}

func (s *SVG) FillRect(x, y, w, h float64) {
	fmt.Fprintf(&s.body, `<rect x="%g" y="%g" width="%g" height="%g" fill="%s"%s/>
`, x, y, w, h, render.Hex(opaque(s.fill)), opacity("fill-opacity", s.fill))
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xFF
	return c
}

func opacity(attr string, c color.RGBA) string {
	if c.A == 0xFF {
		return ""
	}
	return fmt.Sprintf(` %s="%.3f"`, attr, float64(c.A)/255)
}

// Clear drops everything drawn so far.
func (s *SVG) Clear() {
	s.path.Reset()
	s.body.Reset()
}

// String returns the complete document.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">
`, s.width, s.height, s.width, s.height))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteTo writes the document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// Save writes the document to path.
func (s *SVG) Save(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0644)
}
