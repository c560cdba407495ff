// Package config provides YAML-based board configuration loading and
// difficulty presets for BlockBreaker modes.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/blockbreaker/internal/session"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid config")

const (
	maxBoardSide = 64
	maxPalette   = 8
)

// BlockBreakerConfig contains all configuration for one BlockBreaker mode.
type BlockBreakerConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Physics PhysicsConfig `yaml:"physics"`
	Scoring ScoringConfig `yaml:"scoring"`
	Layout  LayoutConfig  `yaml:"layout"`

	// Source is where the config was loaded from, for logging.
	Source string `yaml:"-"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Rows    int `yaml:"rows"`
	Cols    int `yaml:"cols"`
	Palette int `yaml:"palette"` // Number of block types
}

// PhysicsConfig defines the cascade animation.
type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"` // Block edges per second squared
	MaxDT   float64 `yaml:"max_dt"`  // Longest frame step in seconds
}

// ScoringConfig selects the scoring formula.
type ScoringConfig struct {
	Formula string `yaml:"formula"` // squared, cubed or minus_one_squared
}

// LayoutConfig defines how the board sits on the terminal.
type LayoutConfig struct {
	Margin  int `yaml:"margin"`   // Cells between the frame and the screen edge
	HUDRows int `yaml:"hud_rows"` // Rows reserved for the HUD below the board
}

// Validate checks the config for values the game cannot run with.
func (c BlockBreakerConfig) Validate() error {
	switch {
	case c.Board.Rows <= 0 || c.Board.Rows > maxBoardSide:
		return fmt.Errorf("%w: board.rows must be in 1..%d, got %d", ErrInvalidConfig, maxBoardSide, c.Board.Rows)
	case c.Board.Cols <= 0 || c.Board.Cols > maxBoardSide:
		return fmt.Errorf("%w: board.cols must be in 1..%d, got %d", ErrInvalidConfig, maxBoardSide, c.Board.Cols)
	case c.Board.Palette <= 0 || c.Board.Palette > maxPalette:
		return fmt.Errorf("%w: board.palette must be in 1..%d, got %d", ErrInvalidConfig, maxPalette, c.Board.Palette)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: physics.gravity must be positive, got %g", ErrInvalidConfig, c.Physics.Gravity)
	case c.Physics.MaxDT <= 0:
		return fmt.Errorf("%w: physics.max_dt must be positive, got %g", ErrInvalidConfig, c.Physics.MaxDT)
	case c.Layout.Margin < 0 || c.Layout.HUDRows < 0:
		return fmt.Errorf("%w: layout values must not be negative", ErrInvalidConfig)
	}

	if _, err := session.ScoreFuncByName(c.Scoring.Formula); err != nil {
		return fmt.Errorf("%w: scoring.formula: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ScoreFunc returns the configured scoring formula.
func (c BlockBreakerConfig) ScoreFunc() (session.ScoreFunc, error) {
	return session.ScoreFuncByName(c.Scoring.Formula)
}
