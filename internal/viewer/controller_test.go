package viewer

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/san-kum/cellview/internal/engine"
	"github.com/san-kum/cellview/internal/engine/life"
	"github.com/san-kum/cellview/internal/frame"
	"github.com/san-kum/cellview/internal/pointer"
	"github.com/san-kum/cellview/internal/render"
)

type fill struct {
	x, y float64
	c    color.RGBA
}

// canvas records fills and counts strokes.
type canvas struct {
	style   color.RGBA
	fills   []fill
	strokes int
}

func (c *canvas) SetStrokeStyle(color.RGBA)   {}
func (c *canvas) SetFillStyle(col color.RGBA) { c.style = col }
func (c *canvas) BeginPath()                  {}
func (c *canvas) MoveTo(_, _ float64)         {}
func (c *canvas) LineTo(_, _ float64)         {}
func (c *canvas) Stroke()                     { c.strokes++ }
func (c *canvas) FillRect(x, y, _, _ float64) { c.fills = append(c.fills, fill{x, y, c.style}) }
func (c *canvas) reset()                      { c.fills, c.strokes = nil, 0 }
func (c *canvas) set() (out []fill) {
	for _, f := range c.fills {
		if f.c == render.DefaultPalette.Set {
			out = append(out, f)
		}
	}
	return out
}

// countingEngine wraps a universe and counts ticks.
type countingEngine struct {
	*life.Universe
	ticks int
	panic bool
}

func (e *countingEngine) Tick() {
	if e.panic {
		panic("engine fault")
	}
	e.ticks++
	e.Universe.Tick()
}

func lifeFactory(w, h uint32) engine.Factory {
	return func() (engine.Engine, error) { return life.New(w, h), nil }
}

type harness struct {
	q     *frame.Queue
	c     *Controller
	s     *canvas
	clock time.Time
}

func newHarness(t *testing.T, factory engine.Factory, opts ...Option) *harness {
	t.Helper()
	h := &harness{q: frame.NewQueue(), s: &canvas{}, clock: time.Unix(0, 0)}
	opts = append([]Option{WithClock(func() time.Time { return h.clock })}, opts...)
	h.c = New(factory, h.q, opts...)
	return h
}

func (h *harness) flush(n int) {
	for i := 0; i < n; i++ {
		h.clock = h.clock.Add(16 * time.Millisecond)
		h.q.Flush(h.clock)
	}
}

func TestMountSizesSurface(t *testing.T) {
	h := newHarness(t, lifeFactory(64, 32))
	w, ht, err := h.c.Mount(h.s)
	if err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	if w != 6*64+1 || ht != 6*32+1 {
		t.Errorf("unexpected surface size %dx%d", w, ht)
	}
	if h.s.strokes != 1 || len(h.s.fills) != 64*32 {
		t.Errorf("mount should paint once, got %d strokes and %d fills", h.s.strokes, len(h.s.fills))
	}
	if h.c.Running() {
		t.Error("mount should not start the loop")
	}
}

func TestMountWithoutSurface(t *testing.T) {
	h := newHarness(t, lifeFactory(8, 8))
	if _, _, err := h.c.Mount(nil); !errors.Is(err, ErrNoSurface) {
		t.Errorf("expected ErrNoSurface, got %v", err)
	}
}

func TestMountFactoryError(t *testing.T) {
	boom := errors.New("boom")
	h := newHarness(t, func() (engine.Engine, error) { return nil, boom })
	if _, _, err := h.c.Mount(h.s); !errors.Is(err, boom) {
		t.Errorf("expected factory error, got %v", err)
	}
}

func TestResumeBeforeMountIsNoop(t *testing.T) {
	h := newHarness(t, lifeFactory(8, 8))
	if h.c.Resume() {
		t.Error("resume should be rejected before mount")
	}
	if h.q.Pending() != 0 {
		t.Error("nothing should be scheduled before mount")
	}
	if _, ok := h.c.Click(1, 1, pointer.Rect{}); ok {
		t.Error("click should be ignored before mount")
	}
	if err := h.c.Step(); !errors.Is(err, ErrNotMounted) {
		t.Errorf("expected ErrNotMounted, got %v", err)
	}
}

func TestToggleAndRedrawScenario(t *testing.T) {
	h := newHarness(t, lifeFactory(8, 8))
	w, ht, _ := h.c.Mount(h.s)
	h.s.reset()

	// one backing pixel per display unit
	rect := pointer.Rect{Width: float64(w), Height: float64(ht)}
	cell, ok := h.c.Click(3*6+3, 3*6+3, rect)
	if !ok || cell != (pointer.Cell{Row: 3, Col: 3}) {
		t.Fatalf("click mapped to %+v", cell)
	}
	if cell.Index(8) != 27 {
		t.Fatalf("expected index 27, got %d", cell.Index(8))
	}

	e := h.c.Engine()
	if got := e.Memory()[e.CellsPointer()+3]; got != 0b00001000 {
		t.Fatalf("expected byte 3 = 0b00001000, got %08b", got)
	}

	set := h.s.set()
	if len(set) != 1 {
		t.Fatalf("expected one painted set cell, got %d", len(set))
	}
	if set[0].x != 19 || set[0].y != 19 {
		t.Errorf("set cell painted at (%v,%v)", set[0].x, set[0].y)
	}
	if h.c.Running() {
		t.Error("click must not start the loop")
	}
	if h.c.Population() != 1 {
		t.Errorf("expected population 1, got %d", h.c.Population())
	}
}

func TestClickOutsideClamps(t *testing.T) {
	h := newHarness(t, lifeFactory(8, 6))
	w, ht, _ := h.c.Mount(h.s)
	rect := pointer.Rect{Left: 10, Top: 10, Width: float64(w) * 2, Height: float64(ht) * 2}

	cell, _ := h.c.Click(rect.Right()+50, rect.Bottom()+50, rect)
	if cell != (pointer.Cell{Row: 5, Col: 7}) {
		t.Errorf("expected (5,7), got %+v", cell)
	}
	cell, _ = h.c.Click(rect.Left-50, rect.Top-50, rect)
	if cell != (pointer.Cell{}) {
		t.Errorf("expected (0,0), got %+v", cell)
	}
}

func TestThreeFramesThenStop(t *testing.T) {
	eng := &countingEngine{Universe: life.New(8, 8)}
	h := newHarness(t, func() (engine.Engine, error) { return eng, nil })
	h.c.Mount(h.s)
	h.s.reset()

	if !h.c.Resume() {
		t.Fatal("resume failed")
	}
	h.flush(3)
	h.c.Pause()
	h.flush(3)

	if eng.ticks != 3 {
		t.Errorf("expected 3 ticks, got %d", eng.ticks)
	}
	if h.s.strokes != 3 {
		t.Errorf("expected 3 draws, got %d", h.s.strokes)
	}
	if h.c.Generation() != 3 {
		t.Errorf("expected generation 3, got %d", h.c.Generation())
	}
	if h.c.Telemetry().Len() != 3 {
		t.Errorf("expected 3 telemetry samples, got %d", h.c.Telemetry().Len())
	}
	if h.c.FPS().Latest != 63 {
		t.Errorf("expected latest 63 at 16ms frames, got %d", h.c.FPS().Latest)
	}
}

func TestResumeTwiceKeepsOneLoop(t *testing.T) {
	h := newHarness(t, lifeFactory(8, 8))
	h.c.Mount(h.s)

	h.c.Resume()
	if h.c.Resume() {
		t.Error("second resume should be rejected")
	}
	if h.q.Pending() != 1 {
		t.Errorf("expected one pending frame, got %d", h.q.Pending())
	}
}

func TestTogglePause(t *testing.T) {
	h := newHarness(t, lifeFactory(8, 8))
	h.c.Mount(h.s)

	if paused := h.c.TogglePause(); paused {
		t.Error("first toggle should resume")
	}
	if paused := h.c.TogglePause(); !paused {
		t.Error("second toggle should pause")
	}
	if h.q.Pending() != 0 {
		t.Error("pause should cancel the pending frame")
	}
}

func TestClickWhileRunningKeepsLoop(t *testing.T) {
	eng := &countingEngine{Universe: life.New(8, 8)}
	h := newHarness(t, func() (engine.Engine, error) { return eng, nil })
	w, ht, _ := h.c.Mount(h.s)
	h.c.Resume()
	h.flush(1)

	h.c.Click(1, 1, pointer.Rect{Width: float64(w), Height: float64(ht)})
	if h.q.Pending() != 1 {
		t.Errorf("click should not disturb the loop, pending=%d", h.q.Pending())
	}
	h.flush(1)
	if eng.ticks != 2 {
		t.Errorf("expected 2 ticks, got %d", eng.ticks)
	}
}

func TestFaultStopsLoop(t *testing.T) {
	eng := &countingEngine{Universe: life.New(8, 8)}
	var faults []error
	h := newHarness(t, func() (engine.Engine, error) { return eng, nil },
		WithFaultHandler(func(err error) { faults = append(faults, err) }))
	h.c.Mount(h.s)
	h.c.Resume()
	h.flush(2)

	eng.panic = true
	h.flush(3)

	if h.c.Running() {
		t.Error("fault should stop the loop")
	}
	if len(faults) != 1 {
		t.Fatalf("expected one fault, got %d", len(faults))
	}
	if !errors.Is(h.c.Err(), frame.ErrFrameFault) {
		t.Errorf("expected ErrFrameFault, got %v", h.c.Err())
	}
	if eng.ticks != 2 {
		t.Errorf("faulted frame must not be retried, ticks=%d", eng.ticks)
	}
}

func TestStepWhilePaused(t *testing.T) {
	eng := &countingEngine{Universe: life.New(8, 8)}
	h := newHarness(t, func() (engine.Engine, error) { return eng, nil })
	h.c.Mount(h.s)
	h.s.reset()

	if err := h.c.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if eng.ticks != 1 || h.s.strokes != 1 {
		t.Errorf("expected one tick and draw, got %d/%d", eng.ticks, h.s.strokes)
	}

	h.c.Resume()
	h.c.Step()
	if eng.ticks != 1 {
		t.Error("step should be ignored while running")
	}
}

func TestResetReplacesEngine(t *testing.T) {
	h := newHarness(t, lifeFactory(8, 8))
	w, ht, _ := h.c.Mount(h.s)
	h.c.Click(1, 1, pointer.Rect{Width: float64(w), Height: float64(ht)})
	before := h.c.Engine()

	if err := h.c.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if h.c.Engine() == before {
		t.Error("reset should create a new engine")
	}
	if h.c.Population() != 0 || h.c.Generation() != 0 {
		t.Error("reset engine should start empty")
	}
}

func TestResetFailureKeepsEngine(t *testing.T) {
	calls := 0
	factory := func() (engine.Engine, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("out of memory")
		}
		return life.New(8, 8), nil
	}
	h := newHarness(t, factory)
	h.c.Mount(h.s)
	before := h.c.Engine()

	if err := h.c.Reset(); err == nil {
		t.Fatal("expected reset error")
	}
	if h.c.Engine() != before {
		t.Error("failed reset should keep the old engine")
	}
	if h.c.Err() == nil {
		t.Error("failed reset should be reported by Err")
	}

	calls = 0
	if err := h.c.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if h.c.Err() != nil {
		t.Errorf("successful reset should clear the error, got %v", h.c.Err())
	}
}

func TestResumeSkipsPause(t *testing.T) {
	h := newHarness(t, lifeFactory(8, 8))
	h.c.Mount(h.s)
	h.c.Resume()
	h.flush(2)
	h.c.Pause()

	h.clock = h.clock.Add(5 * time.Second)
	h.c.Resume()
	h.flush(1)

	r := h.c.FPS()
	if h.c.Telemetry().Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", h.c.Telemetry().Len())
	}
	if r.Min != 63 || r.Max != 63 {
		t.Errorf("pause should not count as a frame, got %+v", r)
	}
}

func TestFPSWindowOption(t *testing.T) {
	h := newHarness(t, lifeFactory(4, 4), WithFPSWindow(10))
	if got := h.c.Telemetry().Capacity(); got != 10 {
		t.Errorf("expected capacity 10, got %d", got)
	}

	h = newHarness(t, lifeFactory(4, 4), WithFPSWindow(0))
	if got := h.c.Telemetry().Capacity(); got != 100 {
		t.Errorf("expected default capacity 100, got %d", got)
	}
}

func TestUnmount(t *testing.T) {
	h := newHarness(t, lifeFactory(8, 8))
	h.c.Mount(h.s)
	h.c.Resume()
	h.flush(2)
	h.c.Unmount()

	if h.c.Telemetry().Len() != 0 || h.c.Generation() != 0 {
		t.Error("unmount should reset telemetry and generation")
	}
	if h.c.Running() || h.q.Pending() != 0 {
		t.Error("unmount should stop the loop")
	}
	if h.c.Engine() != nil {
		t.Error("unmount should drop the engine")
	}
	if h.c.Resume() {
		t.Error("resume after unmount should be rejected")
	}
}

func TestCellSizeOption(t *testing.T) {
	h := newHarness(t, lifeFactory(4, 4), WithCellSize(1), WithCellSize(-3))
	w, ht, _ := h.c.Mount(h.s)
	if w != 9 || ht != 9 || h.c.CellSize() != 1 {
		t.Errorf("unexpected size %dx%d (cell %d)", w, ht, h.c.CellSize())
	}
}
