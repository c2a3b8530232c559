package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lightpath/internal/registry"
	"github.com/vovakirdan/tui-lightpath/internal/storage"
)

var (
	flagEvents int
	flagReset  bool
)

var progressCmd = &cobra.Command{
	Use:   "progress [mode]",
	Short: "Show solved levels",
	Long: `Display per-mode totals, or the solved levels of one mode.

Examples:
  lightpath progress
  lightpath progress lightpath
  lightpath progress lightpath --events 20
  lightpath progress lightpath_chain --reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().IntVar(&flagEvents, "events", 0, "Also show this many recent events")
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Forget the progress of the given mode")
}

func runProgress(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening progress database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagReset {
			return errors.New("--reset needs a mode")
		}
		if err := printTotals(store); err != nil {
			return err
		}
		return printEvents(store, "")
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q; run 'lightpath list' to see available modes", gameID)
	}

	if flagReset {
		if err := store.ClearProgress(gameID); err != nil {
			return fmt.Errorf("clearing progress: %w", err)
		}
		fmt.Printf("Progress of %s cleared.\n", gameID)
		return nil
	}

	if err := printLevels(store, gameID); err != nil {
		return err
	}
	return printEvents(store, gameID)
}

func printTotals(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	if len(all) == 0 {
		fmt.Println("Nothing solved yet.")
		fmt.Println()
		fmt.Println("Play 'lightpath play lightpath' to light the first path!")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %-6s  %-6s  %-8s  %s\n", "Mode", "Runs", "Solved", "Finished", "Last played")
	fmt.Printf("  %-16s  %-6s  %-6s  %-8s  %s\n", "----", "----", "------", "--------", "-----------")
	for _, id := range ids {
		st := all[id]
		last := "-"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-16s  %-6d  %-6d  %-8d  %s\n", id, st.Runs, st.Solved, st.Finished, last)
	}
	return nil
}

func printLevels(store *storage.Store, gameID string) error {
	rows, err := store.Progress(gameID)
	if err != nil {
		return fmt.Errorf("retrieving progress: %w", err)
	}

	fmt.Printf("Progress - %s\n", gameID)
	fmt.Println()

	if len(rows) == 0 {
		fmt.Println("No levels solved yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-6s  %-16s  %s\n", "Level", "Solves", "First", "Last")
	fmt.Printf("  %-10s  %-6s  %-16s  %s\n", "-----", "------", "-----", "----")
	for _, r := range rows {
		fmt.Printf("  %-10s  %-6d  %-16s  %s\n", r.LevelID, r.Completions,
			r.FirstSolved.Local().Format("2006-01-02 15:04"),
			r.LastSolved.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printEvents(store *storage.Store, gameID string) error {
	if flagEvents <= 0 {
		return nil
	}
	events, err := store.RecentEvents(gameID, flagEvents)
	if err != nil {
		return fmt.Errorf("retrieving events: %w", err)
	}

	fmt.Println()
	fmt.Println("Recent events:")
	for _, e := range events {
		fmt.Printf("  %s  %-16s  %-14s  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.GameID, e.Name, e.Value)
	}
	return nil
}
