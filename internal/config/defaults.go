package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultFiles embed.FS

// Mode identifiers. Each has its own config file named <mode>.yaml.
const (
	ModeClassic = "blockbreaker"
	ModeMini    = "blockbreaker_mini"
	ModeWide    = "blockbreaker_wide"
)

// Modes returns the known mode identifiers.
func Modes() []string {
	return []string{ModeClassic, ModeMini, ModeWide}
}

// Default returns the hard-coded configuration for a mode.
// Unknown modes get the classic configuration.
func Default(mode string) BlockBreakerConfig {
	cfg := BlockBreakerConfig{
		Board: BoardConfig{
			Rows:    10,
			Cols:    10,
			Palette: 8,
		},
		Physics: PhysicsConfig{
			Gravity: 45,
			MaxDT:   0.1,
		},
		Scoring: ScoringConfig{
			Formula: "minus_one_squared",
		},
		Layout: LayoutConfig{
			Margin:  1,
			HUDRows: 2,
		},
		Source: "built-in",
	}

	switch mode {
	case ModeMini:
		cfg.Board = BoardConfig{Rows: 5, Cols: 5, Palette: 3}
		cfg.Physics.Gravity = 30
		cfg.Scoring.Formula = "squared"
	case ModeWide:
		cfg.Board = BoardConfig{Rows: 8, Cols: 16, Palette: 6}
		cfg.Scoring.Formula = "cubed"
	}

	return cfg
}
