package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lightpath/internal/core"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath"
	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath/board"
	"github.com/vovakirdan/tui-lightpath/internal/registry"
)

var (
	flagClicks []string
	flagRegion string
	flagCoords bool
)

var renderCmd = &cobra.Command{
	Use:   "render <mode>",
	Short: "Print a level as text",
	Long: `Load a level headlessly, apply clicks, and print the lit board.

Clicks are canvas positions, as a player would click them. The world map is
printed whole unless --region x,y,w,h selects a window of it.

Glyphs: upper case is lit, lower case unlit. '|' is a closed valve, '!' a
closed powered valve, box corners are forks, '.' is a wall.

Examples:
  lightpath render lightpath --level 3
  lightpath render lightpath --click 3,2 --click 4,5
  lightpath render lightpath_world --region 0,24,12,12 --coords`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to render (1-indexed)")
	renderCmd.Flags().StringArrayVar(&flagClicks, "click", nil, "Canvas position x,y to click (repeatable)")
	renderCmd.Flags().StringVar(&flagRegion, "region", "", "Window x,y,w,h of the board to print")
	renderCmd.Flags().BoolVar(&flagCoords, "coords", false, "Print coordinate axes")
}

// parseInts parses n comma separated integers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: want %d comma separated numbers", s, n)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

func runRender(_ *cobra.Command, args []string) error {
	created, err := registry.Create(args[0])
	if err != nil {
		return err
	}
	game, ok := created.(*lightpath.Game)
	if !ok {
		return fmt.Errorf("mode %q cannot be rendered", args[0])
	}
	game.SetLogger(logger)
	game.SetStartLevel(flagLevel)

	rc := runtimeConfig()
	game.Reset(rc)
	if err := game.Err(); err != nil {
		return err
	}

	mgr := game.Manager()
	for _, c := range flagClicks {
		xy, err := parseInts(c, 2)
		if err != nil {
			return fmt.Errorf("--click %w", err)
		}
		mgr.HandleClick(board.C(xy[0], xy[1]))
	}
	mgr.Recheck()

	grid := mgr.Grid()
	origin := board.C(0, 0)
	if flagRegion != "" {
		r, err := parseInts(flagRegion, 4)
		if err != nil {
			return fmt.Errorf("--region %w", err)
		}
		origin = board.C(r[0], r[1])
		grid = grid.Sub(origin, r[2], r[3])
	}

	theme := lightpath.ThemeFromPalette(game.Palette())
	goal, hasGoal := mgr.Goal()
	strength := game.MaxStrength()

	opts := board.DefaultRenderOptions()
	opts.ShowCoords = flagCoords
	opts.Decorate = func(c board.Coord, t *board.Tile, glyph rune) string {
		style := rgb(board.Decorate(t, theme.Board, strength).Color)
		if hasGoal && c.AddCoord(origin) == goal {
			return color.New(color.OpBold).Sprint(style.Sprint(string(glyph)))
		}
		return style.Sprint(string(glyph))
	}

	state := game.State()
	fmt.Printf("%s | %s\n", game.Title(), state.Level)
	fmt.Println(board.RenderASCII(grid, opts))
	fmt.Println()

	status := color.Gray.Sprint("unsolved")
	if state.Solved {
		status = color.Green.Sprint("solved")
	}
	fmt.Printf("Lit: %d  Status: %s\n", mgr.LastResult().Lit, status)
	return nil
}

// rgb converts a core color to a terminal style.
func rgb(c core.RGB) color.RGBColor {
	r, g, b := c.Channels()
	return color.RGB(r, g, b)
}
