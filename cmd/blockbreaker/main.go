// blockbreaker is a tile-matching puzzle for the terminal: click a group of
// two or more same-colored blocks to clear it, watch the rest fall and slide
// left, and try to empty the board.
//
// Usage:
//
//	blockbreaker list              - List available board modes
//	blockbreaker play <mode>       - Play a mode
//	blockbreaker menu              - Start menu to pick modes interactively
//	blockbreaker serve             - Start SSH server for remote play
//	blockbreaker scores <mode>     - Show high scores for a mode
//	blockbreaker sim               - Play games headlessly with a strategy
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.blockbreaker/scores.db)
//	--log-level <level>   - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/blockbreaker/internal/games/blockbreaker"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockbreaker",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockbreaker",
	Short: "BlockBreaker - clear the board in your terminal",
	Long: `BlockBreaker is a terminal tile-matching puzzle.

Click a group of adjacent same-colored blocks to remove it. Blocks above
fall into the gap and empty columns close from the right. Bigger groups
score more; the game ends when the board is empty.

Available commands:
  list     - Show all board modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Play games headlessly and report statistics

Examples:
  blockbreaker list
  blockbreaker play blockbreaker
  blockbreaker menu
  blockbreaker serve --ssh :2222
  blockbreaker sim --games 1000 --strategy greedy`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockbreaker/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
