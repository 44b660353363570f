package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cellview/internal/frame"
	"github.com/san-kum/cellview/internal/pointer"
	"github.com/san-kum/cellview/internal/raster"
	"github.com/san-kum/cellview/internal/viewer"
)

const (
	DefaultFrameRate = 60
	DefaultThreshold = 0.5
)

type TickMsg time.Time

// Options tunes a Model.
type Options struct {
	Title       string
	FrameRate   int
	Threshold   float64
	Theme       string
	StartPaused bool
}

// Model renders one viewer.Controller in the terminal. The controller must
// have been created with queue as its frame host.
type Model struct {
	ctrl     *viewer.Controller
	queue    *frame.Queue
	surface  *raster.Surface
	canvas   *Canvas
	keys     keyMap
	help     help.Model
	theme    Theme
	styles   styles
	title    string
	interval time.Duration
	thresh   float64
	lastCell *pointer.Cell
	width    int
	height   int
}

// NewModel mounts a raster surface on ctrl and returns the model.
func NewModel(ctrl *viewer.Controller, queue *frame.Queue, opts Options) (Model, error) {
	w, h, err := ctrl.Size()
	if err != nil {
		return Model{}, err
	}
	surface := raster.New(w, h)
	if _, _, err := ctrl.Mount(surface); err != nil {
		return Model{}, err
	}

	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultFrameRate
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Title == "" {
		opts.Title = "cellview"
	}

	theme := GetTheme(opts.Theme)
	m := Model{
		ctrl:     ctrl,
		queue:    queue,
		surface:  surface,
		canvas:   CanvasFor(w, h),
		keys:     defaultKeys(),
		help:     help.New(),
		theme:    theme,
		styles:   newStyles(theme),
		title:    opts.Title,
		interval: time.Second / time.Duration(opts.FrameRate),
		thresh:   opts.Threshold,
	}
	if !opts.StartPaused {
		ctrl.Resume()
	}
	m.refresh()
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and flushes the frame queue on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.ctrl.Pause()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.ctrl.TogglePause()
		case key.Matches(msg, m.keys.Step):
			m.ctrl.Step()
			m.refresh()
		case key.Matches(msg, m.keys.Reset):
			if err := m.ctrl.Reset(); err == nil {
				m.lastCell = nil
			}
			m.refresh()
		case key.Matches(msg, m.keys.Theme):
			m.theme = nextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if cell, ok := m.ctrl.Click(float64(msg.X)+0.5, float64(msg.Y)+0.5, m.canvasRect()); ok {
			m.lastCell = &cell
			m.refresh()
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case TickMsg:
		if m.queue.Flush(time.Time(msg)) > 0 {
			m.refresh()
		}
		return m, m.tick()
	}
	return m, nil
}

// canvasRect is the canvas area in terminal cells.
func (m Model) canvasRect() pointer.Rect {
	return pointer.Rect{
		Left:   canvasPadLeft,
		Top:    canvasPadTop,
		Width:  float64(m.surface.Width()) / 2,
		Height: float64(m.surface.Height()) / 4,
	}
}

func (m *Model) refresh() {
	m.canvas.Fill(m.surface.Width(), m.surface.Height(), func(x, y int) bool {
		return m.surface.Lit(x, y, m.thresh)
	})
}

func (m Model) status() string {
	switch {
	case m.ctrl.Err() != nil:
		return m.styles.fault.Render("FAULT: " + m.ctrl.Err().Error())
	case m.ctrl.Running():
		return m.styles.running.Render("RUNNING")
	default:
		return m.styles.paused.Render("PAUSED")
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := m.styles.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	fps := m.ctrl.FPS()
	row := func(label, value string) {
		s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
	}
	if e := m.ctrl.Engine(); e != nil {
		row("Grid", fmt.Sprintf("%dx%d", e.Width(), e.Height()))
	}
	row("Generation", fmt.Sprintf("%d", m.ctrl.Generation()))
	row("Population", fmt.Sprintf("%d", m.ctrl.Population()))
	row("FPS", fmt.Sprintf("%d", fps.Latest))
	row("Avg/Min/Max", fmt.Sprintf("%d / %d / %d", fps.Avg, fps.Min, fps.Max))
	if m.lastCell != nil {
		row("Toggled", fmt.Sprintf("(%d, %d)", m.lastCell.Row, m.lastCell.Col))
	}

	if rates := m.ctrl.Telemetry().Rates(); len(rates) > 1 {
		chart := asciigraph.Plot(rates, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("FPS"))
		s.WriteString(m.styles.graph.Render(chart) + "\n")
	}

	s.WriteString("\n" + m.styles.Separator(30) + "\n")
	s.WriteString(m.help.View(m.keys))

	statsView := m.styles.stats.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Controller returns the controller driven by the model.
func (m Model) Controller() *viewer.Controller { return m.ctrl }

// Canvas returns the braille canvas of the last refresh.
func (m Model) Canvas() *Canvas { return m.canvas }
