package export

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/cellview/internal/bitset"
	"github.com/san-kum/cellview/internal/engine/life"
	"github.com/san-kum/cellview/internal/render"
)

func TestSVGGrid(t *testing.T) {
	u := life.New(8, 8)
	u.ToggleCell(3, 3)

	size := render.SurfaceSize(5, 8)
	s := NewSVG(size, size)
	render.New(5).Draw(u, bitset.FromEngine(u), s)
	doc := s.String()

	if !strings.HasPrefix(doc, "<?xml") || !strings.HasSuffix(doc, "</svg>\n") {
		t.Error("document is not wrapped in svg")
	}
	if !strings.Contains(doc, `width="49" height="49"`) {
		t.Error("document size missing")
	}
	if n := strings.Count(doc, "<path"); n != 1 {
		t.Errorf("expected one lattice path, got %d", n)
	}
	if n := strings.Count(doc, "<rect"); n != 64 {
		t.Errorf("expected 64 cells, got %d", n)
	}
	if n := strings.Count(doc, `fill="#ffffff"`); n != 1 {
		t.Errorf("expected one set cell, got %d", n)
	}
	if !strings.Contains(doc, `<rect x="19" y="19" width="5" height="5" fill="#ffffff"/>`) {
		t.Error("set cell at wrong position")
	}
	if !strings.Contains(doc, "M1,0 L1,49") {
		t.Error("first vertical line missing")
	}
}

func TestSVGClear(t *testing.T) {
	s := NewSVG(4, 4)
	s.FillRect(0, 0, 1, 1)
	s.Clear()
	if strings.Contains(s.String(), "<rect") {
		t.Error("clear should drop elements")
	}
}

func TestSVGEmptyStroke(t *testing.T) {
	s := NewSVG(4, 4)
	s.BeginPath()
	s.Stroke()
	if strings.Contains(s.String(), "<path") {
		t.Error("empty path should not be written")
	}
}

func TestSVGOpacity(t *testing.T) {
	s := NewSVG(4, 4)
	s.SetFillStyle(color.RGBA{R: 0xFF, A: 0x80})
	s.FillRect(0, 0, 1, 1)
	if !strings.Contains(s.String(), `fill="#ff0000" fill-opacity="0.502"`) {
		t.Errorf("unexpected translucent rect: %s", s.String())
	}
}

func TestSVGWriteAndSave(t *testing.T) {
	s := NewSVG(2, 2)
	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	if err != nil || n != int64(buf.Len()) {
		t.Errorf("write failed: n=%d err=%v", n, err)
	}

	path := filepath.Join(t.TempDir(), "grid.svg")
	if err := s.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != buf.String() {
		t.Error("saved document differs")
	}
}
