package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lightpath/internal/games/lightpath"
	"github.com/vovakirdan/tui-lightpath/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modes and their levels",
	Long: `Shows every registered mode and the levels it plays.
Honors --levels and --config, so it can be used to check a custom pack.`,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return nil
	}

	rc := runtimeConfig()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Mode", "#", "Level", "Name")
	if !flagNoColor {
		header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		cell := lipgloss.NewStyle().Padding(0, 1)
		t.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	}

	for _, g := range modes {
		infos, err := lightpath.ListLevels(g.ID, rc)
		switch {
		case err != nil:
			t.Row(g.ID, "", "", "levels unavailable: "+err.Error())
		case len(infos) == 0:
			t.Row(g.ID, "", "", g.Title+" (single map)")
		}
		for i, info := range infos {
			mode := ""
			if i == 0 {
				mode = g.ID
			}
			t.Row(mode, strconv.Itoa(i+1), info.ID, info.Name)
		}
	}

	fmt.Println(t.Render())
	fmt.Println()
	fmt.Println("Run 'lightpath play <mode>' to play a mode.")
	return nil
}
