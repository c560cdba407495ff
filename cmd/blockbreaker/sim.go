package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbreaker/internal/config"
	"github.com/vovakirdan/blockbreaker/internal/registry"
	"github.com/vovakirdan/blockbreaker/internal/sim"
)

var (
	flagSimMode     string
	flagSimGames    int
	flagSimStrategy string
	flagSimDT       float64
	flagSimWorkers  int
	flagSimVerbose  bool
	flagSimProgress bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play games headlessly and report statistics",
	Long: `Play many boards without a terminal, clicking with a fixed strategy,
and print score statistics.

Strategies:
  ` + strings.Join(sim.StrategyNames(), ", ") + `

Examples:
  blockbreaker sim --games 1000
  blockbreaker sim --mode blockbreaker_mini --strategy random --seed 7
  blockbreaker sim --strategy lookahead --games 200 --verbose`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimMode, "mode", config.ModeClassic, "Board mode to simulate")
	simCmd.Flags().IntVar(&flagSimGames, "games", 100, "Number of games to play")
	simCmd.Flags().StringVar(&flagSimStrategy, "strategy", "greedy", "Click strategy: "+strings.Join(sim.StrategyNames(), ", "))
	simCmd.Flags().Float64Var(&flagSimDT, "dt", sim.DefaultDT, "Fixed frame step in seconds")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.NumCPU(), "Parallel workers")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Print every game")
	simCmd.Flags().BoolVar(&flagSimProgress, "progress", true, "Show a progress bar")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runSim(_ *cobra.Command, _ []string) {
	if !registry.Exists(flagSimMode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagSimMode)
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(flagSimMode, flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPreset(&cfg, preset)

	scoreFn, err := cfg.ScoreFunc()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	strategy, err := sim.StrategyByName(flagSimStrategy, scoreFn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("simulating",
		"mode", flagSimMode,
		"source", cfg.Source,
		"games", flagSimGames,
		"strategy", strategy.Name(),
		"seed", seed,
		"workers", flagSimWorkers,
	)

	report, err := sim.Run(sim.Options{
		Config:       cfg,
		Games:        flagSimGames,
		Workers:      flagSimWorkers,
		Seed:         seed,
		Strategy:     strategy,
		DT:           flagSimDT,
		ShowProgress: flagSimProgress,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Mode:            %s (seed %d)\n", flagSimMode, seed)
	report.WriteSummary(os.Stdout, flagSimVerbose)
}
