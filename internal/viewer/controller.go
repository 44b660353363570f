// Package viewer is the composition root of the render loop. A Controller
// owns one engine handle and one drawing surface for its mounted lifetime
// and turns discrete input events (mount, pause toggle, click, step, reset)
// into explicit state transitions.
package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/cellview/internal/bitset"
	"github.com/san-kum/cellview/internal/engine"
	"github.com/san-kum/cellview/internal/frame"
	"github.com/san-kum/cellview/internal/logging"
	"github.com/san-kum/cellview/internal/pointer"
	"github.com/san-kum/cellview/internal/render"
	"github.com/san-kum/cellview/internal/telemetry"
)

var (
	// ErrNoSurface indicates Mount was called without a drawing surface.
	ErrNoSurface = errors.New("viewer: no drawing surface")

	// ErrNotMounted indicates an operation that needs an engine and surface.
	ErrNotMounted = errors.New("viewer: not mounted")
)

// Controller wires engine, renderer, scheduler, telemetry and pointer
// mapping together.
type Controller struct {
	factory  engine.Factory
	host     frame.Host
	engine   engine.Engine
	surface  render.Surface
	renderer *render.Renderer
	sched    *frame.Scheduler
	fps      *telemetry.Monitor

	cellSize  int
	palette   render.Palette
	fpsWindow int
	clock     func() time.Time
	onFault   func(error)
	log       *slog.Logger
	gen       uint64
	resetErr  error
}

// Option configures a Controller.
type Option func(*Controller)

// WithCellSize sets the cell size in pixels, excluding the lattice.
func WithCellSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.cellSize = n
		}
	}
}

// WithPalette replaces the default palette.
func WithPalette(p render.Palette) Option {
	return func(c *Controller) { c.palette = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithFPSWindow sets how many frame samples telemetry keeps.
func WithFPSWindow(n int) Option {
	return func(c *Controller) { c.fpsWindow = n }
}

// WithClock replaces time.Now for telemetry.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.clock = now }
}

// WithFaultHandler is called when a frame faults and the loop stops.
func WithFaultHandler(fn func(error)) Option {
	return func(c *Controller) { c.onFault = fn }
}

// New returns an unmounted controller. Frames are requested from host.
func New(factory engine.Factory, host frame.Host, opts ...Option) *Controller {
	c := &Controller{
		factory:  factory,
		host:     host,
		cellSize: 5,
		palette:  render.DefaultPalette,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.renderer = &render.Renderer{CellSize: c.cellSize, Palette: c.palette}
	c.sched = frame.New(host, frame.WithLogger(c.log), frame.WithFaultHandler(c.fault))
	c.fps = telemetry.New(telemetry.WithClock(c.clock), telemetry.WithCapacity(c.fpsWindow))
	return c
}

// Size returns the engine created on first use, without mounting a surface.
// It lets front-ends size their backing store before Mount.
func (c *Controller) Size() (w, h int, err error) {
	if err := c.ensureEngine(); err != nil {
		return 0, 0, err
	}
	return render.SurfaceSize(c.cellSize, c.engine.Width()),
		render.SurfaceSize(c.cellSize, c.engine.Height()), nil
}

func (c *Controller) ensureEngine() error {
	if c.engine != nil {
		return nil
	}
	e, err := c.factory()
	if err != nil {
		return err
	}
	c.engine = e
	c.log.Info("engine created", "width", e.Width(), "height", e.Height())
	return nil
}

// Mount attaches the drawing surface, creating the engine if needed, and
// paints the initial state. It returns the backing-store size the surface
// must have.
func (c *Controller) Mount(s render.Surface) (w, h int, err error) {
	if s == nil {
		return 0, 0, ErrNoSurface
	}
	if w, h, err = c.Size(); err != nil {
		return 0, 0, err
	}
	c.surface = s
	c.fps.Reset()
	c.Redraw()
	return w, h, nil
}

func (c *Controller) ready() bool { return c.engine != nil && c.surface != nil }

// Resume starts the continuous loop. It does nothing until both the engine
// and the surface exist, or while the loop is already running.
func (c *Controller) Resume() bool {
	if !c.ready() {
		return false
	}
	if !c.sched.Start(c.frame) {
		return false
	}
	c.fps.Rebase()
	c.log.Debug("resumed")
	return true
}

// Pause stops the loop after the frame in flight, if any.
func (c *Controller) Pause() {
	c.sched.Stop()
}

// TogglePause flips between paused and running and reports whether the
// controller is now paused.
func (c *Controller) TogglePause() bool {
	if c.sched.Running() {
		c.Pause()
	} else {
		c.Resume()
	}
	return c.Paused()
}

// Paused reports whether the loop is not running.
func (c *Controller) Paused() bool { return !c.sched.Running() }

// Running reports whether the loop is active.
func (c *Controller) Running() bool { return c.sched.Running() }

func (c *Controller) frame(time.Time) error {
	c.fps.Record()
	c.engine.Tick()
	c.gen++
	c.draw()
	return nil
}

func (c *Controller) draw() {
	c.renderer.Draw(c.engine, bitset.FromEngine(c.engine), c.surface)
}

// Redraw paints the current state once, outside the loop.
func (c *Controller) Redraw() {
	if !c.ready() {
		return
	}
	c.draw()
}

// Click toggles the cell under a pointer position given in the coordinates
// of r, the surface's on-screen rect, and redraws immediately.
func (c *Controller) Click(px, py float64, r pointer.Rect) (pointer.Cell, bool) {
	if !c.ready() {
		return pointer.Cell{}, false
	}
	w, h, _ := c.Size()
	cell := pointer.MapToCell(px, py, r, float64(w), float64(h), c.cellSize, c.engine.Width(), c.engine.Height())
	c.engine.ToggleCell(cell.Row, cell.Col)
	c.log.Debug("cell toggled", "row", cell.Row, "col", cell.Col)
	c.Redraw()
	return cell, true
}

// Step advances a paused simulation by one generation and redraws.
func (c *Controller) Step() error {
	if !c.ready() {
		c.log.Warn("step ignored", "error", ErrNotMounted)
		return ErrNotMounted
	}
	if c.sched.Running() {
		return nil
	}
	c.engine.Tick()
	c.gen++
	c.draw()
	return nil
}

// Reset replaces the engine with a fresh one from the factory and redraws.
// A running loop keeps running against the new engine. On failure the old
// engine stays and Err reports the cause until the next successful reset.
func (c *Controller) Reset() error {
	e, err := c.factory()
	if err != nil {
		c.resetErr = fmt.Errorf("reset: %w", err)
		c.log.Error("engine reset failed", "error", err)
		return c.resetErr
	}
	c.resetErr = nil
	c.engine = e
	c.gen = 0
	c.fps.Reset()
	c.log.Info("engine reset", "width", e.Width(), "height", e.Height())
	c.Redraw()
	return nil
}

// Unmount stops the loop and drops the engine and surface.
func (c *Controller) Unmount() {
	c.sched.Stop()
	c.engine = nil
	c.surface = nil
	c.gen = 0
	c.fps.Reset()
}

func (c *Controller) fault(err error) {
	if c.onFault != nil {
		c.onFault(err)
	}
}

// FPS returns the latest frame-rate report.
func (c *Controller) FPS() telemetry.Report { return c.fps.Report() }

// Telemetry exposes the frame-rate monitor.
func (c *Controller) Telemetry() *telemetry.Monitor { return c.fps }

// Engine returns the current engine handle, or nil before mount.
func (c *Controller) Engine() engine.Engine { return c.engine }

// Generation returns the number of generations advanced since mount or reset.
func (c *Controller) Generation() uint64 { return c.gen }

// Population returns the number of set cells.
func (c *Controller) Population() int {
	if c.engine == nil {
		return 0
	}
	return bitset.FromEngine(c.engine).Count()
}

// CellSize returns the configured cell size.
func (c *Controller) CellSize() int { return c.cellSize }

// Err returns the fault that stopped the loop or, failing that, the last
// failed reset.
func (c *Controller) Err() error {
	if err := c.sched.Err(); err != nil {
		return err
	}
	return c.resetErr
}
