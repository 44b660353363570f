package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/cellview/internal/config"
	"github.com/san-kum/cellview/internal/engine"
	_ "github.com/san-kum/cellview/internal/engine/life"
	"github.com/san-kum/cellview/internal/viz"
)

var (
	configFile string
	dataDir    string
	preset     string
	engineName string
	width      uint32
	height     uint32
	seed       int64
	density    float64
	rule       string
	cellSize   int
	frameRate  int
	logLevel   string
	logFile    string
	// window
	zoom    float64
	backend string
	// tui
	pick  bool
	theme string
	// headless
	generations int
	frames      int
	output      string
	exportPath  string
	save        bool
	asJSON      bool
)

// main runs the root command and exits with status 1 if it fails.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd registers every command. The terminal view runs when no
// subcommand is given.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cellview",
		Short:         "cellular automaton viewer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", "", "data directory for sessions and logs")
	pf.StringVar(&preset, "preset", "", "use preset engine configuration")
	pf.StringVar(&engineName, "engine", "", "engine name")
	pf.Uint32Var(&width, "width", 0, "grid width in cells")
	pf.Uint32Var(&height, "height", 0, "grid height in cells")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.Float64Var(&density, "density", 0, "initial fraction of set cells")
	pf.StringVar(&rule, "rule", "", "rule in B/S notation")
	pf.IntVar(&cellSize, "cell-size", 0, "cell size in pixels")
	pf.IntVar(&frameRate, "frame-rate", 0, "target frames per second")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&logFile, "log-file", "", "log file path")

	themeHelp := "terminal theme (" + strings.Join(viz.ThemeNames(), ", ") + ")"
	rootCmd.Flags().BoolVar(&pick, "pick", false, "choose a preset from a menu")
	rootCmd.Flags().StringVar(&theme, "theme", "", themeHelp)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the terminal view",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().BoolVar(&pick, "pick", false, "choose a preset from a menu")
	tuiCmd.Flags().StringVar(&theme, "theme", "", themeHelp)

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the desktop window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	windowCmd.Flags().Float64Var(&zoom, "zoom", 0, "window zoom factor")
	windowCmd.Flags().StringVar(&backend, "backend", "", "raylib or ebiten")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the grid to a png or svg",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVarP(&output, "output", "o", "cellview.png", "output file (.png or .svg)")
	snapshotCmd.Flags().IntVar(&generations, "generations", 0, "generations to advance first")

	textCmd := &cobra.Command{
		Use:   "text",
		Short: "print the grid as text",
		Args:  cobra.NoArgs,
		RunE:  runText,
	}
	textCmd.Flags().IntVar(&generations, "generations", 0, "generations to advance first")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the frame loop headless and report fps",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 300, "frames to run")
	benchCmd.Flags().BoolVar(&save, "save", false, "store the session")
	benchCmd.Flags().BoolVar(&asJSON, "json", false, "print the session as json")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored sessions",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored session",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored session as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "output file (stdout if empty)")

	presetsCmd := &cobra.Command{
		Use:   "presets [engine]",
		Short: "list available presets for an engine",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := config.DefaultEngine
			if len(args) > 0 {
				name = args[0]
			}
			presets := config.ListPresets(name)
			if len(presets) == 0 {
				fmt.Printf("no presets for engine: %s\n", name)
				return nil
			}
			fmt.Printf("presets for %s:\n", name)
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	enginesCmd := &cobra.Command{
		Use:   "engines",
		Short: "list registered engines",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range engine.Names() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "print the resolved config",
		Args:  cobra.NoArgs,
		RunE:  showConfig,
	}
	configCmd.AddCommand(configInitCmd, configShowCmd)

	rootCmd.AddCommand(tuiCmd, windowCmd, snapshotCmd, textCmd, benchCmd, runsCmd, showCmd, exportCmd, presetsCmd, enginesCmd, configCmd)
	return rootCmd
}
