package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cellview/internal/engine"
	"github.com/san-kum/cellview/internal/render"
	"github.com/san-kum/cellview/internal/telemetry"
)

const (
	DefaultEngine    = "life"
	DefaultWidth     = 64
	DefaultHeight    = 64
	DefaultDensity   = 0.5
	DefaultRule      = "B3/S23"
	DefaultCellSize  = 5
	DefaultFrameRate = 60
	DefaultZoom      = 2.0
	DefaultBackend   = "raylib"
	DefaultLogLevel  = "info"
	DefaultDataDir   = "runs"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Engine  EngineConfig `yaml:"engine"`
	View    ViewConfig   `yaml:"view"`
	Window  WindowConfig `yaml:"window"`
	Log     LogConfig    `yaml:"log"`
	DataDir string       `yaml:"data_dir"`
}

type EngineConfig struct {
	Name    string  `yaml:"name"`
	Width   uint32  `yaml:"width"`
	Height  uint32  `yaml:"height"`
	Seed    int64   `yaml:"seed"`
	Density float64 `yaml:"density"`
	Rule    string  `yaml:"rule"`
}

type ViewConfig struct {
	CellSize         int           `yaml:"cell_size"`
	TerminalCellSize int           `yaml:"terminal_cell_size"`
	FrameRate        int           `yaml:"frame_rate"`
	FPSWindow        int           `yaml:"fps_window"`
	Palette          PaletteConfig `yaml:"palette"`
	TerminalPalette  PaletteConfig `yaml:"terminal_palette"`
}

// PaletteConfig holds hex color strings.
type PaletteConfig struct {
	Grid  string `yaml:"grid"`
	Set   string `yaml:"set"`
	Unset string `yaml:"unset"`
}

type WindowConfig struct {
	Zoom    float64 `yaml:"zoom"`
	Backend string  `yaml:"backend"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Name:    DefaultEngine,
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			Density: DefaultDensity,
			Rule:    DefaultRule,
		},
		View: ViewConfig{
			CellSize:         DefaultCellSize,
			TerminalCellSize: 1,
			FrameRate:        DefaultFrameRate,
			FPSWindow:        telemetry.DefaultCapacity,
			Palette:          FromPalette(render.DefaultPalette),
			// the grid stays below the braille threshold
			TerminalPalette: PaletteConfig{Grid: "#202020", Set: "#ffffff", Unset: "#000000"},
		},
		Window: WindowConfig{
			Zoom:    DefaultZoom,
			Backend: DefaultBackend,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first field that cannot drive a view.
func (c *Config) Validate() error {
	switch {
	case c.Engine.Name == "":
		return fmt.Errorf("%w: engine name is empty", ErrInvalid)
	case c.Engine.Width == 0 || c.Engine.Height == 0:
		return fmt.Errorf("%w: grid size %dx%d", ErrInvalid, c.Engine.Width, c.Engine.Height)
	case c.Engine.Density < 0 || c.Engine.Density > 1:
		return fmt.Errorf("%w: density %v outside [0, 1]", ErrInvalid, c.Engine.Density)
	case c.View.CellSize < 1 || c.View.TerminalCellSize < 1:
		return fmt.Errorf("%w: cell size must be positive", ErrInvalid)
	case c.View.FrameRate < 1:
		return fmt.Errorf("%w: frame rate %d", ErrInvalid, c.View.FrameRate)
	case c.View.FPSWindow < 1:
		return fmt.Errorf("%w: fps window %d", ErrInvalid, c.View.FPSWindow)
	case c.Window.Zoom <= 0:
		return fmt.Errorf("%w: zoom %v", ErrInvalid, c.Window.Zoom)
	}
	if _, err := c.View.Palette.Parse(); err != nil {
		return fmt.Errorf("%w: palette: %v", ErrInvalid, err)
	}
	if _, err := c.View.TerminalPalette.Parse(); err != nil {
		return fmt.Errorf("%w: terminal palette: %v", ErrInvalid, err)
	}
	return nil
}

// Options converts the engine section for engine.Lookup.
func (e EngineConfig) Options() engine.Options {
	return engine.Options{
		Width:   e.Width,
		Height:  e.Height,
		Seed:    e.Seed,
		Density: e.Density,
		Rule:    e.Rule,
	}
}

// Parse converts hex strings to a render palette.
func (p PaletteConfig) Parse() (render.Palette, error) {
	var out render.Palette
	var err error
	if out.Grid, err = render.ParseHex(p.Grid); err != nil {
		return out, err
	}
	if out.Set, err = render.ParseHex(p.Set); err != nil {
		return out, err
	}
	if out.Unset, err = render.ParseHex(p.Unset); err != nil {
		return out, err
	}
	return out, nil
}

func FromPalette(p render.Palette) PaletteConfig {
	return PaletteConfig{
		Grid:  render.Hex(p.Grid),
		Set:   render.Hex(p.Set),
		Unset: render.Hex(p.Unset),
	}
}
