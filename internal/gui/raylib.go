package gui

import (
	"image/color"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/cellview/internal/frame"
	"github.com/san-kum/cellview/internal/pointer"
	"github.com/san-kum/cellview/internal/viewer"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(180, 180, 180, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
	ColFault   = rl.NewColor(230, 70, 70, 255)
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

// rlSurface draws into whatever raylib target is active.
type rlSurface struct {
	path
	stroke, fill color.RGBA
	line         func(a, b rl.Vector2, c rl.Color)
	rect         func(r rl.Rectangle, c rl.Color)
}

func newRLSurface() *rlSurface {
	return &rlSurface{line: rl.DrawLineV, rect: rl.DrawRectangleRec}
}

func toRL(c color.RGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }

func (s *rlSurface) SetStrokeStyle(c color.RGBA) { s.stroke = c }
func (s *rlSurface) SetFillStyle(c color.RGBA)   { s.fill = c }

func (s *rlSurface) Stroke() {
	col := toRL(s.stroke)
	for _, seg := range s.segs {
		s.line(rl.NewVector2(float32(seg.x0), float32(seg.y0)), rl.NewVector2(float32(seg.x1), float32(seg.y1)), col)
	}
}

func (s *rlSurface) FillRect(x, y, w, h float64) {
	s.rect(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), toRL(s.fill))
}

// App is a raylib window bound to one controller.
type App struct {
	ctrl     *viewer.Controller
	queue    *frame.Queue
	opts     Options
	surface  *rlSurface
	target   rl.RenderTexture2D
	font     rl.Font
	dest     pointer.Rect
	w, h     int
	showHUD  bool
	quit     bool
	lastCell *pointer.Cell
}

// loadFont loads the monospace UI font, falling back to raylib's default.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// Run opens the window and blocks until it is closed. ctrl must have been
// created with queue as its frame host.
func Run(ctrl *viewer.Controller, queue *frame.Queue, opts Options) error {
	opts = opts.withDefaults()
	w, h, err := ctrl.Size()
	if err != nil {
		return err
	}
	winW, winH, dest := layout(w, h, opts.Zoom)

	rl.InitWindow(int32(winW), int32(winH), opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.FrameRate))
	rl.SetExitKey(0)

	a := &App{
		ctrl:    ctrl,
		queue:   queue,
		opts:    opts,
		surface: newRLSurface(),
		target:  rl.LoadRenderTexture(int32(w), int32(h)),
		font:    loadFont(),
		dest:    dest,
		w:       w,
		h:       h,
		showHUD: true,
	}
	defer rl.UnloadRenderTexture(a.target)
	rl.SetTextureFilter(a.target.Texture, rl.FilterPoint)

	rl.BeginTextureMode(a.target)
	_, _, err = ctrl.Mount(a.surface)
	rl.EndTextureMode()
	if err != nil {
		return err
	}
	defer ctrl.Unmount()

	ctrl.Resume()
	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		// input and frames may both repaint the grid
		rl.BeginTextureMode(a.target)
		a.Update()
		a.queue.Flush(time.Now())
		rl.EndTextureMode()

		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.ctrl.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyN) {
		a.ctrl.Step()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.ctrl.Reset(); err == nil {
			a.lastCell = nil
		}
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		pos := rl.GetMousePosition()
		x, y := float64(pos.X), float64(pos.Y)
		if a.dest.Contains(x, y) {
			if cell, ok := a.ctrl.Click(x, y, a.dest); ok {
				a.lastCell = &cell
			}
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	// render textures are stored bottom-up
	src := rl.NewRectangle(0, 0, float32(a.w), -float32(a.h))
	dst := rl.NewRectangle(float32(a.dest.Left), float32(a.dest.Top), float32(a.dest.Width), float32(a.dest.Height))
	rl.DrawTexturePro(a.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)

	if a.showHUD {
		for i, line := range hudLines(a.ctrl, a.lastCell) {
			col := ColText
			switch {
			case i == 0 && a.ctrl.Err() != nil:
				col = ColFault
			case i == 2:
				col = ColTextDim
			}
			a.drawText(line, margin, margin+i*16, 14, col)
		}
	}

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
