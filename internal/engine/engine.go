package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Engine is the narrow contract a simulation exposes to the viewer.
type Engine interface {
	Width() uint32
	Height() uint32

	// Tick advances the simulation by one generation.
	Tick()

	// ToggleCell flips the state of a single cell.
	ToggleCell(row, col uint32)

	// CellsPointer returns the byte offset of the packed cell buffer in Memory.
	CellsPointer() uint32

	// Memory returns the shared linear memory region holding the cell buffer.
	Memory() []byte

	// RenderText returns a textual rendering of the grid, one line per row.
	RenderText() string
}

// Factory creates a new engine handle.
type Factory func() (Engine, error)

// Builder constructs a Factory from engine options.
type Builder func(opts Options) Factory

// Options are the engine-independent construction parameters.
type Options struct {
	Width   uint32
	Height  uint32
	Seed    int64
	Density float64
	Rule    string
}

var (
	mu       sync.RWMutex
	builders = map[string]Builder{}
)

// Register adds an engine builder under the provided name.
func Register(name string, b Builder) {
	if name == "" || b == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	builders[name] = b
}

// Lookup returns a Factory for the named engine.
func Lookup(name string, opts Options) (Factory, error) {
	mu.RLock()
	b, ok := builders[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	if opts.Width == 0 || opts.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	return b(opts), nil
}

// Names lists registered engines in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Index returns the row-major linear index of (row, col).
func Index(e Engine, row, col uint32) int {
	return int(row)*int(e.Width()) + int(col)
}
