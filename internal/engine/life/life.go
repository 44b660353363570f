// Package life is the reference engine: a bit-packed, toroidal life-like
// automaton whose cells live inside a linear memory arena.
package life

import (
	"math/rand"
	"strings"

	"github.com/san-kum/cellview/internal/bitset"
	"github.com/san-kum/cellview/internal/engine"
)

// headerSize reserves the start of the arena so the cell buffer never sits
// at offset zero.
const headerSize = 16

// Universe implements engine.Engine with two generation buffers in one arena.
type Universe struct {
	width, height uint32
	rule          Rule
	memory        []byte
	cur, nxt      uint32
}

// New returns an all-dead universe of the given size using Conway's rule.
func New(width, height uint32) *Universe {
	u := &Universe{rule: Conway}
	u.resize(width, height)
	return u
}

func init() {
	engine.Register("life", func(opts engine.Options) engine.Factory {
		return func() (engine.Engine, error) {
			rule := Conway
			if opts.Rule != "" {
				r, err := ParseRule(opts.Rule)
				if err != nil {
					return nil, err
				}
				rule = r
			}
			u := New(opts.Width, opts.Height)
			u.SetRule(rule)
			if opts.Density > 0 {
				u.Randomize(opts.Seed, opts.Density)
			}
			return u, nil
		}
	})
}

// resize reallocates the arena. All cells become dead and previously
// returned memory slices go stale.
func (u *Universe) resize(width, height uint32) {
	u.width, u.height = width, height
	n := bitset.ByteLen(int(width) * int(height))
	u.memory = make([]byte, headerSize+2*n)
	u.cur = headerSize
	u.nxt = headerSize + uint32(n)
}

func (u *Universe) size() int { return int(u.width) * int(u.height) }

func (u *Universe) cells() []byte {
	n := uint32(bitset.ByteLen(u.size()))
	return u.memory[u.cur : u.cur+n]
}

// Width returns the number of columns.
func (u *Universe) Width() uint32 { return u.width }

// Height returns the number of rows.
func (u *Universe) Height() uint32 { return u.height }

// Rule returns the active transition rule.
func (u *Universe) Rule() Rule { return u.rule }

// SetRule replaces the transition rule.
func (u *Universe) SetRule(r Rule) { u.rule = r }

// CellsPointer returns the offset of the current generation in Memory.
func (u *Universe) CellsPointer() uint32 { return u.cur }

// Memory returns the arena.
func (u *Universe) Memory() []byte { return u.memory }

// SetWidth changes the width and resets all cells to dead.
func (u *Universe) SetWidth(width uint32) { u.resize(width, u.height) }

// SetHeight changes the height and resets all cells to dead.
func (u *Universe) SetHeight(height uint32) { u.resize(u.width, height) }

// Randomize fills the grid so that roughly density of the cells are set.
func (u *Universe) Randomize(seed int64, density float64) {
	rng := rand.New(rand.NewSource(seed))
	cells := u.cells()
	for i := 0; i < u.size(); i++ {
		bitset.Set(cells, i, rng.Float64() < density)
	}
}

// SetCells marks each (row, col) pair as set.
func (u *Universe) SetCells(cells [][2]uint32) {
	buf := u.cells()
	for _, rc := range cells {
		bitset.Set(buf, u.index(rc[0], rc[1]), true)
	}
}

// Cells returns a copy of the current generation.
func (u *Universe) Cells() []byte {
	out := make([]byte, len(u.cells()))
	copy(out, u.cells())
	return out
}

// Alive reports whether the cell at (row, col) is set.
func (u *Universe) Alive(row, col uint32) bool {
	return bitset.Get(u.cells(), u.index(row, col))
}

// ToggleCell flips one cell.
func (u *Universe) ToggleCell(row, col uint32) {
	bitset.Toggle(u.cells(), u.index(row, col))
}

func (u *Universe) index(row, col uint32) int {
	return int(row)*int(u.width) + int(col)
}

func (u *Universe) liveNeighbors(cur []byte, row, col uint32) int {
	count := 0
	for _, dr := range [3]uint32{u.height - 1, 0, 1} {
		for _, dc := range [3]uint32{u.width - 1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}
			r := (row + dr) % u.height
			c := (col + dc) % u.width
			if bitset.Get(cur, u.index(r, c)) {
				count++
			}
		}
	}
	return count
}

// Tick advances one generation and swaps the generation buffers, so the
// cell pointer moves on every tick.
func (u *Universe) Tick() {
	n := uint32(bitset.ByteLen(u.size()))
	cur := u.memory[u.cur : u.cur+n]
	nxt := u.memory[u.nxt : u.nxt+n]

	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			idx := u.index(row, col)
			alive := bitset.Get(cur, idx)
			bitset.Set(nxt, idx, u.rule.next(alive, u.liveNeighbors(cur, row, col)))
		}
	}
	u.cur, u.nxt = u.nxt, u.cur
}

// RenderText draws set cells as ◼ and unset cells as ◻.
func (u *Universe) RenderText() string {
	var b strings.Builder
	cells := u.cells()
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			if bitset.Get(cells, u.index(row, col)) {
				b.WriteRune('◼')
			} else {
				b.WriteRune('◻')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
