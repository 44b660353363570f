package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cellview/internal/config"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	stateMenu = iota
	stateSim
)

// Builder creates the live model for a chosen preset.
type Builder func(preset string) (Model, error)

// App shows the presets of one engine and opens the chosen one.
type App struct {
	state, cursor int
	engine        string
	presets       []string
	build         Builder
	live          Model
	err           error
	width, height int
}

func NewInteractiveApp(engineName string, build Builder) App {
	return App{
		state:   stateMenu,
		engine:  engineName,
		presets: config.ListPresets(engineName),
		build:   build,
		width:   80, height: 24,
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = ws.Width, ws.Height
	}
	if a.state == stateSim {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		return a.menuKey(k)
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.presets)-1 {
			a.cursor++
		}
	case "enter", " ":
		if len(a.presets) == 0 {
			return a, nil
		}
		live, err := a.build(a.presets[a.cursor])
		if err != nil {
			a.err = err
			return a, nil
		}
		a.live, a.err, a.state = live, nil, stateSim
		return a, a.live.Init()
	}
	return a, nil
}

// Selected returns the preset under the cursor.
func (a App) Selected() string {
	if len(a.presets) == 0 {
		return ""
	}
	return a.presets[a.cursor]
}

func (a App) View() string {
	if a.state == stateSim {
		return a.live.View()
	}

	var s strings.Builder
	s.WriteString(cyan.Bold(true).Render("cellview") + dim.Render(" · "+a.engine) + "\n\n")
	if len(a.presets) == 0 {
		s.WriteString(dim.Render("  no presets for this engine") + "\n")
	}
	for i, name := range a.presets {
		p := config.GetPreset(a.engine, name)
		info := fmt.Sprintf("%dx%d %s density %.2f", p.Width, p.Height, p.Rule, p.Density)
		if i == a.cursor {
			s.WriteString(magenta.Render("> "+name) + "  " + white.Render(info) + "\n")
		} else {
			s.WriteString("  " + dim.Render(name) + "  " + dim.Render(info) + "\n")
		}
	}
	if a.err != nil {
		s.WriteString("\n" + red.Render(a.err.Error()) + "\n")
	}
	s.WriteString("\n" + dim.Render("↑↓ select · enter open · q quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(s.String())
}
