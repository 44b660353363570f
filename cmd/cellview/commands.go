package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/cellview/internal/bitset"
	"github.com/san-kum/cellview/internal/config"
	"github.com/san-kum/cellview/internal/engine"
	"github.com/san-kum/cellview/internal/export"
	"github.com/san-kum/cellview/internal/gui"
	"github.com/san-kum/cellview/internal/raster"
	"github.com/san-kum/cellview/internal/render"
	"github.com/san-kum/cellview/internal/storage"
	"github.com/san-kum/cellview/internal/viewer"
	"github.com/san-kum/cellview/internal/viz"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := openLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	v, err := terminalView(cfg)
	if err != nil {
		return err
	}

	build := func(presetName string) (viz.Model, error) {
		c := *cfg
		if presetName != "" && !c.Apply(c.Engine.Name, presetName) {
			return viz.Model{}, fmt.Errorf("unknown preset %q", presetName)
		}
		ctrl, q, err := newController(&c, v, log)
		if err != nil {
			return viz.Model{}, err
		}
		return viz.NewModel(ctrl, q, viz.Options{
			Title:     fmt.Sprintf("%s %s", c.Engine.Name, c.Engine.Rule),
			FrameRate: c.View.FrameRate,
			Theme:     theme,
		})
	}

	var m tea.Model
	if pick {
		m = viz.NewInteractiveApp(cfg.Engine.Name, build)
	} else {
		live, err := build("")
		if err != nil {
			return err
		}
		m = live
	}

	log.Info("starting terminal view", "engine", cfg.Engine.Name, "width", cfg.Engine.Width, "height", cfg.Engine.Height)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := openLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	v, err := windowView(cfg)
	if err != nil {
		return err
	}
	ctrl, q, err := newController(cfg, v, log)
	if err != nil {
		return err
	}

	opts := gui.Options{
		Title:     fmt.Sprintf("cellview · %s %s", cfg.Engine.Name, cfg.Engine.Rule),
		Zoom:      cfg.Window.Zoom,
		FrameRate: cfg.View.FrameRate,
	}
	log.Info("opening window", "backend", cfg.Window.Backend, "zoom", cfg.Window.Zoom)
	switch cfg.Window.Backend {
	case "ebiten":
		return gui.RunEbiten(ctrl, q, opts)
	case "", "raylib":
		return gui.Run(ctrl, q, opts)
	default:
		return fmt.Errorf("unknown window backend %q", cfg.Window.Backend)
	}
}

// mountRaster mounts an in-memory surface on a paused controller.
func mountRaster(ctrl *viewer.Controller) (*raster.Surface, error) {
	w, h, err := ctrl.Size()
	if err != nil {
		return nil, err
	}
	s := raster.New(w, h)
	if _, _, err := ctrl.Mount(s); err != nil {
		return nil, err
	}
	return s, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := openLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	v, err := windowView(cfg)
	if err != nil {
		return err
	}
	ctrl, _, err := newController(cfg, v, log)
	if err != nil {
		return err
	}
	w, h, err := ctrl.Size()
	if err != nil {
		return err
	}

	var surface render.Surface
	var write func() error
	switch strings.ToLower(filepath.Ext(output)) {
	case ".svg":
		svg := export.NewSVG(w, h)
		surface = svg
		write = func() error {
			svg.Clear()
			ctrl.Redraw()
			return svg.Save(output)
		}
	default:
		img := raster.New(w, h)
		surface = img
		write = func() error { return img.SavePNG(output) }
	}

	if _, _, err := ctrl.Mount(surface); err != nil {
		return err
	}
	defer ctrl.Unmount()

	for i := 0; i < generations; i++ {
		if err := ctrl.Step(); err != nil {
			return err
		}
	}

	if err := write(); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d px)\n", output, w, h)
	fmt.Printf("generation: %d\n", ctrl.Generation())
	fmt.Printf("population: %d\n", ctrl.Population())
	return nil
}

func runText(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	factory, err := engine.Lookup(cfg.Engine.Name, cfg.Engine.Options())
	if err != nil {
		return err
	}
	e, err := factory()
	if err != nil {
		return err
	}

	for i := 0; i < generations; i++ {
		e.Tick()
	}
	fmt.Print(e.RenderText())
	fmt.Printf("generation %d, population %d\n", generations, bitset.FromEngine(e).Count())
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	if frames < 1 {
		return fmt.Errorf("--frames must be at least 1, got %d", frames)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := openLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	v, err := windowView(cfg)
	if err != nil {
		return err
	}
	ctrl, q, err := newController(cfg, v, log)
	if err != nil {
		return err
	}
	if _, err := mountRaster(ctrl); err != nil {
		return err
	}
	defer ctrl.Unmount()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.View.FrameRate))
	defer ticker.Stop()

	fmt.Printf("benchmarking %s %dx%d for %d frames at %d fps\n\n",
		cfg.Engine.Name, cfg.Engine.Width, cfg.Engine.Height, frames, cfg.View.FrameRate)

	start := time.Now()
	ctrl.Resume()
loop:
	for ctrl.Running() && ctrl.Generation() < uint64(frames) {
		select {
		case <-ctx.Done():
			break loop
		case now := <-ticker.C:
			q.Flush(now)
		}
	}
	ctrl.Pause()
	elapsed := time.Since(start)

	if err := ctrl.Err(); err != nil {
		return err
	}

	report := ctrl.FPS()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "frames\t%d\n", ctrl.Generation())
	fmt.Fprintf(w, "elapsed\t%v\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "population\t%d\n", ctrl.Population())
	fmt.Fprintf(w, "fps latest\t%d\n", report.Latest)
	fmt.Fprintf(w, "fps avg\t%d\n", report.Avg)
	fmt.Fprintf(w, "fps min\t%d\n", report.Min)
	fmt.Fprintf(w, "fps max\t%d\n", report.Max)
	if err := w.Flush(); err != nil {
		return err
	}

	if rates := ctrl.Telemetry().Rates(); len(rates) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(rates,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("fps, last %d frames", len(rates))),
		))
	}

	meta := storage.SessionMetadata{
		Engine:      cfg.Engine.Name,
		Width:       cfg.Engine.Width,
		Height:      cfg.Engine.Height,
		Rule:        cfg.Engine.Rule,
		Seed:        cfg.Engine.Seed,
		Frames:      ctrl.Generation(),
		Generations: ctrl.Generation(),
		Population:  ctrl.Population(),
		FPS:         report,
	}
	samples := ctrl.Telemetry().Samples()

	if save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(meta, samples)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", id)
	}
	if asJSON {
		return storage.ExportStdout(storage.NewExport(meta, samples))
	}
	return nil
}

func sessionStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := sessionStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tENGINE\tGRID\tTIME\tFRAMES\tAVG\tMIN\tMAX")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Engine,
			run.Width, run.Height,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.FPS.Avg,
			run.FPS.Min,
			run.FPS.Max,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := sessionStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("engine: %s %dx%d %s\n", meta.Engine, meta.Width, meta.Height, meta.Rule)
	fmt.Printf("%s\n", meta.FPS)
	fmt.Printf("samples: %d\n\n", len(samples))

	if len(samples) < 2 {
		return nil
	}
	rates := make([]float64, len(samples))
	for i, s := range samples {
		rates[i] = s.Rate
	}
	fmt.Println(asciigraph.Plot(rates,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("fps"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st, err := sessionStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	data := storage.NewExport(*meta, samples)
	if exportPath == "" {
		return storage.ExportStdout(data)
	}
	if err := storage.ExportJSON(exportPath, data); err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", meta.ID, exportPath)
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := defaultConfigFile
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
