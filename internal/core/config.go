package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the platform
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score           int
	GameOver        bool
	Paused          bool
	Phase           string // Human-readable state machine phase
	BlocksRemaining int
	Clicks          int
}

// Cleared returns true when the game ended with an empty board.
func (s GameState) Cleared() bool {
	return s.GameOver && s.BlocksRemaining == 0
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State   GameState
	Removed int // Blocks removed by a click this frame
	Points  int // Points scored this frame
}
