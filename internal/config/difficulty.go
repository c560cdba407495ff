package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value into a preset.
// An empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts the board for a difficulty preset.
// Fewer block types make larger regions, so easy removes two types and
// hard adds two types and two rows and columns.
func ApplyPreset(cfg *BlockBreakerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Palette = max(2, cfg.Board.Palette-2)
	case DifficultyHard:
		cfg.Board.Palette = min(maxPalette, cfg.Board.Palette+2)
		cfg.Board.Rows = min(maxBoardSide, cfg.Board.Rows+2)
		cfg.Board.Cols = min(maxBoardSide, cfg.Board.Cols+2)
	}
}
