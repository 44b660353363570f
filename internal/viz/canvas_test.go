package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != 0x2800|0x1|0x80 {
		t.Errorf("unexpected rune %U", c.Grid[0][0])
	}
	if !c.IsSet(1, 3) || c.IsSet(1, 2) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2800|0x80 {
		t.Errorf("unexpected rune after unset %U", c.Grid[0][0])
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Grid[0][1] != 0x2800 {
		t.Error("out-of-range set leaked into the grid")
	}
}

func TestCanvasFor(t *testing.T) {
	c := CanvasFor(17, 17)
	if c.Width != 9 || c.Height != 5 {
		t.Errorf("expected 9x5, got %dx%d", c.Width, c.Height)
	}
}

func TestCanvasFill(t *testing.T) {
	c := CanvasFor(4, 4)
	c.Set(3, 3)
	c.Fill(4, 4, func(x, y int) bool { return x == y })

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if c.IsSet(x, y) != (x == y) {
				t.Errorf("dot (%d,%d) = %v", x, y, c.IsSet(x, y))
			}
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(0, 0)
	s := c.String()

	lines := strings.Split(s, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if []rune(lines[0])[0] != 0x2801 {
		t.Errorf("unexpected first rune %U", []rune(lines[0])[0])
	}

	c.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != 0x2800 && r != '\n' }) {
		t.Error("clear left raised dots")
	}
}
