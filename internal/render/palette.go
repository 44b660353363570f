package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Palette holds the fixed colors used by the renderer. Cells are keyed by
// bit state rather than by liveness.
type Palette struct {
	Grid  color.RGBA
	Set   color.RGBA
	Unset color.RGBA
}

// DefaultPalette paints set bits white and unset bits black on a light grid.
var DefaultPalette = Palette{
	Grid:  color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF},
	Set:   color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	Unset: color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xFF}
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var err error
	switch len(hex) {
	case 3:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	case 6:
		_, err = fmt.Sscanf(hex, "%2x%2x%2x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(hex, "%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("unexpected length %d", len(hex))
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// Hex formats c as "#rrggbb", appending alpha only when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A != 0xFF {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
