package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockbreaker/internal/config"
	"github.com/vovakirdan/blockbreaker/internal/core"
	"github.com/vovakirdan/blockbreaker/internal/games/blockbreaker"
	"github.com/vovakirdan/blockbreaker/internal/platform/tui"
	"github.com/vovakirdan/blockbreaker/internal/puzzles"
	"github.com/vovakirdan/blockbreaker/internal/registry"
	"github.com/vovakirdan/blockbreaker/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPuzzle     string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a board mode",
	Long: `Start playing the specified board mode.

Controls:
  Mouse click      - Clear the group under the pointer
  Arrows/hjkl      - Move the keyboard cursor
  Space/Enter      - Clear the group under the cursor
  P/Esc            - Pause
  R                - New board
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Fewer colors, larger groups
  normal - The mode's configured board
  hard   - More colors and a larger board

Examples:
  blockbreaker play blockbreaker
  blockbreaker play blockbreaker_mini --difficulty easy
  blockbreaker play blockbreaker --seed 42
  blockbreaker play blockbreaker --config ./my-board.yaml
  blockbreaker play blockbreaker --puzzle stairs
  blockbreaker play blockbreaker --puzzle ./my-puzzle.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagPuzzle, "puzzle", "", "Built-in puzzle ID or path to a puzzle YAML")
}

func runPlay(_ *cobra.Command, args []string) {
	mode := args[0]

	// Check if mode exists
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'blockbreaker list' to see available modes.")
		os.Exit(1)
	}

	if err := applyBoardFlags(mode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := createGame(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// applyBoardFlags validates --config and --difficulty for a mode and hands
// them to the game package before the game is created.
func applyBoardFlags(mode string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	cfg, err := config.Load(mode, flagConfig)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)
	logger.Debug("board config",
		"mode", mode,
		"source", cfg.Source,
		"rows", cfg.Board.Rows,
		"cols", cfg.Board.Cols,
		"palette", cfg.Board.Palette,
		"difficulty", preset,
	)

	blockbreaker.SetConfigPath(flagConfig)
	blockbreaker.SetDifficultyPreset(flagDifficulty)
	return nil
}

// createGame returns the registered mode, or a puzzle board on that mode
// when --puzzle is set.
func createGame(mode string) (registry.Game, error) {
	if flagPuzzle == "" {
		return registry.Create(mode)
	}

	pz, err := puzzles.Resolve(flagPuzzle)
	if err != nil {
		return nil, err
	}
	logger.Debug("puzzle board", "id", pz.ID, "rows", pz.Rows(), "cols", pz.Cols(), "par", pz.Par)
	return blockbreaker.NewPuzzle(mode, pz), nil
}

// runtimeConfig builds the frame loop settings from the terminal and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. The game still runs without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
