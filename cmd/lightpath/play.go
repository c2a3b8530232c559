package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lightpath/internal/config"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/levels"
	"github.com/vovakirdan/tui-lightpath/internal/platform/tui"
	"github.com/vovakirdan/tui-lightpath/internal/registry"
	"github.com/vovakirdan/tui-lightpath/internal/storage"
)

var (
	flagLevel int
	flagWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Arrows/WASD  - Move the cursor (pushing past the edge scrolls in world and chain)
  Space/Enter  - Use the tile under the cursor
  Mouse click  - Use a tile
  N/P          - Next/previous level
  R            - Restart the level
  Esc          - Back (menu only)
  Q/Ctrl+C     - Quit

With --watch, the level pack (or the config's world map) is reloaded
whenever a file under it changes. The current level is kept.

Examples:
  lightpath play lightpath
  lightpath play lightpath --level 4
  lightpath play lightpath_chain --levels ./rooms
  lightpath play lightpath_world --levels ./world.txt --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start from (1-indexed)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload levels when files change")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q; run 'lightpath list' to see available modes", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	if sl, ok := game.(registry.StartLevelSetter); ok && flagLevel > 0 {
		sl.SetStartLevel(flagLevel)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	model := tui.NewModel(game, runtimeConfig(), tui.ModelOptions{
		Reporter: storage.NewRecorder(store, gameID, logger),
		Logger:   logger,
	})
	p := tui.NewProgram(model)

	if flagWatch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := startWatcher(ctx, func() { p.Send(tui.ReloadMsg{}) }); err != nil {
			return err
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// watchTarget returns the path --watch observes.
func watchTarget() string {
	if flagLevels != "" {
		return flagLevels
	}
	cfg, err := config.LoadLightpath(flagConfig)
	if err == nil && cfg.World.Map != "" {
		return cfg.World.Map
	}
	return ""
}

// startWatcher runs a level watcher until ctx is cancelled.
func startWatcher(ctx context.Context, onChange func()) error {
	target := watchTarget()
	if target == "" {
		return errors.New("--watch needs --levels or a world map in the config")
	}

	w, err := levels.NewWatcher(target, 0)
	if err != nil {
		return err
	}
	logger.Info("watching levels", "path", target)

	go func() {
		defer w.Close()
		w.Run(ctx, onChange, func(err error) {
			logger.Warn("watch error", "err", err)
		})
	}()
	return nil
}
