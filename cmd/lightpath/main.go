// lightpath is a terminal light propagation puzzle.
//
// Usage:
//
//	lightpath                  - Start the mode picker
//	lightpath list             - List modes and their levels
//	lightpath play <mode>      - Play a mode directly
//	lightpath render <mode>    - Print a level without starting the TUI
//	lightpath progress         - Show solved levels and recent events
//	lightpath serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--db <path>        - Set database path (default: ~/.lightpath/progress.db)
//	--config <path>    - Lightpath config YAML
//	--levels <path>    - Level pack directory or world map file
//	--log-file <path>  - Write logs to a file
//	--no-color         - Disable colors
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/platform/tui"
	"github.com/vovakirdan/tui-lightpath/internal/storage"

	// Import the puzzle to register its modes
	_ "github.com/vovakirdan/tui-lightpath/internal/games/lightpath"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagConfig  string
	flagLevels  string
	flagLogFile string
	flagNoColor bool
)

// logger is configured in rootCmd's PersistentPreRunE.
var logger = log.New(io.Discard)

var logCloser io.Closer

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lightpath",
	Short: "Lightpath - guide the light in your terminal",
	Long: `Lightpath is a terminal puzzle about routing light. Light spreads from
its sources through conductive tiles, losing strength at every step.
Open valves and turn forks until the goal is lit.

Available commands:
  list      - Show modes and their levels
  play      - Play a mode directly
  render    - Print a level as text
  progress  - View solved levels
  serve     - Start SSH server for remote play

Examples:
  lightpath
  lightpath play lightpath --level 3
  lightpath play lightpath_world --levels ./world.txt --watch
  lightpath render lightpath --level 2 --click 3,2
  lightpath serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.StringVar(&flagDBPath, "db", "~/.lightpath/progress.db", "Path to progress database")
	pf.StringVar(&flagConfig, "config", "", "Path to a lightpath config YAML")
	pf.StringVar(&flagLevels, "levels", "", "Level pack directory or world map file")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colors")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup configures logging and colors for every command.
func setup(cmd *cobra.Command, _ []string) error {
	if flagNoColor {
		tui.SetTheme(tui.MonochromeTheme())
		color.Disable()
	}

	if flagLogFile == "" {
		// The TUI owns the terminal; only serve logs to stderr by default.
		if cmd == serveCmd {
			logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
		}
		return nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logCloser = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return nil
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.ConfigPath = flagConfig
	cfg.LevelsPath = flagLevels
	return cfg
}

// openStore opens the progress database. Gameplay continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		logger.Warn("progress database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	return tui.RunSession(store, runtimeConfig(), logger)
}
