package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/blockbreaker/internal/puzzles"
	"github.com/vovakirdan/blockbreaker/internal/registry"
	"github.com/vovakirdan/blockbreaker/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode|puzzle:id]",
	Short: "Show high scores for a mode or puzzle",
	Long: `Display the top high scores for the specified mode, with the
blocks left on the board and the play time of each run.
Without an argument, print a summary line for every mode played so far.

Examples:
  blockbreaker scores
  blockbreaker scores blockbreaker
  blockbreaker scores blockbreaker_mini --limit 20
  blockbreaker scores puzzle:stairs
  blockbreaker scores blockbreaker --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		runScoresSummary()
		return
	}
	mode := args[0]

	title, err := scoresTitle(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'blockbreaker list' to see available modes and puzzles.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	if flagScoresClear {
		err := store.ClearScores(mode)
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("scores cleared", "mode", mode)
		fmt.Printf("Cleared all scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	p := message.NewPrinter(language.English)

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockbreaker play %s' to set the first high score!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-5s  %-7s  %s\n", "Rank", "Score", "Left", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-7s  %s\n", "----", "-----", "----", "----", "----")

	for i, run := range scores {
		left := fmt.Sprintf("%d", run.BlocksRemaining)
		if run.Cleared {
			left = "clear"
		}
		p.Printf("  %-4d  %-10d  %-5s  %-7s  %s\n",
			i+1, run.Score, left, run.Duration.Round(time.Second).String(), run.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(mode); err == nil && stats.GamesCount > 0 {
		p.Printf("Best: %d  |  Played: %d  |  Cleared: %d  |  Avg: %.0f\n",
			stats.HighScore, stats.GamesCount, stats.ClearedCount, stats.AvgScore)
	}
}

// runScoresSummary prints one line per mode or puzzle with recorded runs.
func runScoresSummary() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	p := message.NewPrinter(language.English)
	fmt.Printf("  %-24s  %-10s  %-6s  %-7s  %s\n", "Mode", "Best", "Played", "Cleared", "Last played")
	fmt.Printf("  %-24s  %-10s  %-6s  %-7s  %s\n", "----", "----", "------", "-------", "-----------")
	for _, id := range ids {
		st := all[id]
		p.Printf("  %-24s  %-10d  %-6d  %-7d  %s\n",
			id, st.HighScore, st.GamesCount, st.ClearedCount, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

// scoresTitle returns the display name of a mode or a "puzzle:<id>" key.
func scoresTitle(id string) (string, error) {
	if pid, ok := strings.CutPrefix(id, puzzles.IDPrefix); ok {
		// Puzzles loaded from files are not listed anywhere, so fall back to the ID
		if pz, err := puzzles.Builtin().LoadByID(pid); err == nil {
			return "Puzzle: " + pz.Name, nil
		}
		return "Puzzle: " + pid, nil
	}

	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown mode %q", id)
	}
	game, err := registry.Create(id)
	if err != nil {
		return "", err
	}
	return game.Title(), nil
}
