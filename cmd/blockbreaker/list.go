package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbreaker/internal/config"
	"github.com/vovakirdan/blockbreaker/internal/puzzles"
	"github.com/vovakirdan/blockbreaker/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board modes",
	Long:  `Shows every registered board mode with its default size and palette.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Board")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	for _, g := range games {
		cfg := config.Default(g.ID)
		board := fmt.Sprintf("%dx%d, %d colors", cfg.Board.Rows, cfg.Board.Cols, cfg.Board.Palette)
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, board)
	}

	fmt.Println()
	fmt.Println("Run 'blockbreaker play <id>' to play a mode.")

	all, err := puzzles.Builtin().LoadAll()
	if err != nil || len(all) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Puzzles:")
	fmt.Println()
	for _, pz := range all {
		fmt.Printf("  %-12s  %-14s  %dx%d, par %d\n", pz.ID, pz.Name, pz.Rows(), pz.Cols(), pz.Par)
	}
	fmt.Println()
	fmt.Println("Run 'blockbreaker play blockbreaker --puzzle <id>' to play a puzzle.")
}
