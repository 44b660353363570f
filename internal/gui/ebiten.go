//go:build ebiten

package gui

import (
	"errors"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/cellview/internal/frame"
	"github.com/san-kum/cellview/internal/pointer"
	"github.com/san-kum/cellview/internal/viewer"
)

// EbitenAvailable reports whether this build includes the ebiten window.
const EbitenAvailable = true

// ebitenSurface draws into an offscreen image at backing-store size.
type ebitenSurface struct {
	path
	dst          *ebiten.Image
	stroke, fill color.RGBA
}

func (s *ebitenSurface) SetStrokeStyle(c color.RGBA) { s.stroke = c }
func (s *ebitenSurface) SetFillStyle(c color.RGBA)   { s.fill = c }

func (s *ebitenSurface) Stroke() {
	for _, seg := range s.segs {
		vector.StrokeLine(s.dst, float32(seg.x0), float32(seg.y0), float32(seg.x1), float32(seg.y1), 1, s.stroke, false)
	}
}

func (s *ebitenSurface) FillRect(x, y, w, h float64) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), s.fill, false)
}

// Game adapts a controller to the ebiten.Game interface.
type Game struct {
	ctrl       *viewer.Controller
	queue      *frame.Queue
	opts       Options
	offscreen  *ebiten.Image
	surface    *ebitenSurface
	dest       pointer.Rect
	winW, winH int
	mounted    bool
	showHUD    bool
	lastCell   *pointer.Cell
}

// RunEbiten opens an ebiten window and blocks until it is closed.
func RunEbiten(ctrl *viewer.Controller, queue *frame.Queue, opts Options) error {
	opts = opts.withDefaults()
	w, h, err := ctrl.Size()
	if err != nil {
		return err
	}

	g := &Game{ctrl: ctrl, queue: queue, opts: opts, showHUD: true}
	g.winW, g.winH, g.dest = layout(w, h, opts.Zoom)
	g.offscreen = ebiten.NewImage(w, h)
	g.surface = &ebitenSurface{dst: g.offscreen}
	defer ctrl.Unmount()

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(g.winW, g.winH)
	ebiten.SetTPS(opts.FrameRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update handles input and flushes one frame.
func (g *Game) Update() error {
	if !g.mounted {
		if _, _, err := g.ctrl.Mount(g.surface); err != nil {
			return err
		}
		g.mounted = true
		g.ctrl.Resume()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.ctrl.Reset(); err == nil {
			g.lastCell = nil
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		x, y := float64(cx), float64(cy)
		if g.dest.Contains(x, y) {
			if cell, ok := g.ctrl.Click(x, y, g.dest); ok {
				g.lastCell = &cell
			}
		}
	}

	g.queue.Flush(time.Now())
	return nil
}

// Draw blits the offscreen grid scaled by the zoom factor.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 10, A: 255})

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.opts.Zoom, g.opts.Zoom)
	op.GeoM.Translate(g.dest.Left, g.dest.Top)
	screen.DrawImage(g.offscreen, op)

	if g.showHUD {
		ebitenutil.DebugPrintAt(screen, strings.Join(hudLines(g.ctrl, g.lastCell), "\n"), margin, margin)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.winW, g.winH
}
