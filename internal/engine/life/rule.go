package life

import (
	"fmt"
	"strings"

	"github.com/san-kum/cellview/internal/engine"
)

// Rule is a life-like transition rule in birth/survival form.
type Rule struct {
	Birth   [9]bool
	Survive [9]bool
}

// Conway is the standard B3/S23 rule.
var Conway = MustParseRule("B3/S23")

// ParseRule parses B/S notation such as "B3/S23" or "b36/s23".
func ParseRule(s string) (Rule, error) {
	var r Rule
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return r, fmt.Errorf("%w: %q", engine.ErrInvalidRule, s)
	}
	var seenB, seenS bool
	for _, part := range parts {
		if part == "" {
			return r, fmt.Errorf("%w: %q", engine.ErrInvalidRule, s)
		}
		var dst *[9]bool
		switch {
		case part[0] == 'B' && !seenB:
			dst, seenB = &r.Birth, true
		case part[0] == 'S' && !seenS:
			dst, seenS = &r.Survive, true
		default:
			return r, fmt.Errorf("%w: %q", engine.ErrInvalidRule, s)
		}
		for _, c := range part[1:] {
			if c < '0' || c > '8' {
				return r, fmt.Errorf("%w: %q", engine.ErrInvalidRule, s)
			}
			dst[c-'0'] = true
		}
	}
	return r, nil
}

// MustParseRule is like ParseRule but panics on error.
func MustParseRule(s string) Rule {
	r, err := ParseRule(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String formats the rule back into B/S notation.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for i, on := range r.Birth {
		if on {
			b.WriteByte(byte('0' + i))
		}
	}
	b.WriteString("/S")
	for i, on := range r.Survive {
		if on {
			b.WriteByte(byte('0' + i))
		}
	}
	return b.String()
}

func (r Rule) next(alive bool, neighbors int) bool {
	if alive {
		return r.Survive[neighbors]
	}
	return r.Birth[neighbors]
}
