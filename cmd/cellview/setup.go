package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/cellview/internal/config"
	"github.com/san-kum/cellview/internal/engine"
	"github.com/san-kum/cellview/internal/frame"
	"github.com/san-kum/cellview/internal/logging"
	"github.com/san-kum/cellview/internal/render"
	"github.com/san-kum/cellview/internal/viewer"
)

const defaultConfigFile = "cellview.yaml"

// loadConfig reads the config file, applies the preset and then every flag
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if preset != "" {
		name := cfg.Engine.Name
		if engineName != "" {
			name = engineName
		}
		if !cfg.Apply(name, preset) {
			return nil, fmt.Errorf("unknown preset %q for engine %q", preset, name)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Engine.Name = engineName
	}
	if flags.Changed("width") {
		cfg.Engine.Width = width
	}
	if flags.Changed("height") {
		cfg.Engine.Height = height
	}
	if flags.Changed("seed") {
		cfg.Engine.Seed = seed
	}
	if flags.Changed("density") {
		cfg.Engine.Density = density
	}
	if flags.Changed("rule") {
		cfg.Engine.Rule = rule
	}
	if flags.Changed("cell-size") {
		cfg.View.CellSize = cellSize
		cfg.View.TerminalCellSize = cellSize
	}
	if flags.Changed("frame-rate") {
		cfg.View.FrameRate = frameRate
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("zoom") {
		cfg.Window.Zoom = zoom
	}
	if flags.Changed("backend") {
		cfg.Window.Backend = backend
	}

	if cfg.Engine.Seed == 0 {
		cfg.Engine.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger opens the configured log. Full-screen views pass fullScreen so
// that an unset log file goes to the data directory instead of the terminal.
func openLogger(cfg *config.Config, fullScreen bool) (*slog.Logger, io.Closer, error) {
	path := cfg.Log.File
	if path == "" && fullScreen {
		path = filepath.Join(cfg.DataDir, "cellview.log")
	}
	return logging.Open(path, cfg.Log.Level)
}

type view struct {
	cellSize int
	palette  render.Palette
}

func windowView(cfg *config.Config) (view, error) {
	p, err := cfg.View.Palette.Parse()
	return view{cellSize: cfg.View.CellSize, palette: p}, err
}

func terminalView(cfg *config.Config) (view, error) {
	p, err := cfg.View.TerminalPalette.Parse()
	return view{cellSize: cfg.View.TerminalCellSize, palette: p}, err
}

// newController builds a controller for the configured engine, bound to
// a fresh frame queue.
func newController(cfg *config.Config, v view, log *slog.Logger) (*viewer.Controller, *frame.Queue, error) {
	factory, err := engine.Lookup(cfg.Engine.Name, cfg.Engine.Options())
	if err != nil {
		return nil, nil, err
	}

	q := frame.NewQueue()
	ctrl := viewer.New(factory, q,
		viewer.WithCellSize(v.cellSize),
		viewer.WithPalette(v.palette),
		viewer.WithLogger(log),
		viewer.WithFPSWindow(cfg.View.FPSWindow),
	)
	return ctrl, q, nil
}
