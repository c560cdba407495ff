// Package blockbreaker registers the BlockBreaker modes with the game
// registry. It adapts terminal input to the session state machine and draws
// the board into a core.Screen.
package blockbreaker

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/blockbreaker/internal/board"
	"github.com/vovakirdan/blockbreaker/internal/config"
	"github.com/vovakirdan/blockbreaker/internal/core"
	"github.com/vovakirdan/blockbreaker/internal/puzzles"
	"github.com/vovakirdan/blockbreaker/internal/registry"
	"github.com/vovakirdan/blockbreaker/internal/session"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.DifficultyNormal

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
// Unknown names fall back to normal; the CLI validates them first.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

var titles = map[string]string{
	config.ModeClassic: "BlockBreaker",
	config.ModeMini:    "BlockBreaker Mini",
	config.ModeWide:    "BlockBreaker Wide",
}

func init() {
	for _, mode := range config.Modes() {
		registry.Register(mode, func() registry.Game {
			return New(mode)
		})
	}
}

// Game is one BlockBreaker mode.
type Game struct {
	mode   string
	cfg    config.BlockBreakerConfig
	puzzle *puzzles.Puzzle
	sess   *session.Session

	layout  layout
	screenW int
	screenH int

	pointer    r2.Vec
	hasPointer bool
	lastX      int
	lastY      int

	cursor       board.Coordinate
	cursorActive bool

	hovered    map[board.Coordinate]struct{}
	lastPoints int
	paused     bool
	elapsed    float64
}

// New creates a game for the given mode.
func New(mode string) *Game {
	return &Game{mode: mode}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(mode string, cfg config.BlockBreakerConfig) *Game {
	g := New(mode)
	g.cfg = cfg
	return g
}

// NewPuzzle creates a game that always starts from the puzzle's board.
// The mode still supplies physics, scoring and layout.
func NewPuzzle(mode string, pz puzzles.Puzzle) *Game {
	g := New(mode)
	g.puzzle = &pz
	return g
}

// ID returns the mode identifier, or the puzzle's score key on a puzzle board.
func (g *Game) ID() string {
	if g.puzzle != nil {
		return g.puzzle.GameID()
	}
	return g.mode
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.puzzle != nil {
		return "Puzzle: " + g.puzzle.Name
	}
	if t, ok := titles[g.mode]; ok {
		return t
	}
	return g.mode
}

// Reset deals a new board.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.cfg.Board.Rows == 0 {
		cfg, err := config.Load(g.mode, configPath)
		if err != nil {
			cfg = config.Default(g.mode)
		}
		config.ApplyPreset(&cfg, difficultyPreset)
		g.cfg = cfg
	}

	scoreFn, err := g.cfg.ScoreFunc()
	if err != nil {
		scoreFn = session.MinusOneSquared
	}

	if g.puzzle != nil {
		g.cfg.Board.Rows = g.puzzle.Rows()
		g.cfg.Board.Cols = g.puzzle.Cols()
		g.cfg.Board.Palette = g.puzzle.Palette()
	}

	rows, cols := g.cfg.Board.Rows, g.cfg.Board.Cols
	opts := session.Options{
		Rows:    rows,
		Cols:    cols,
		Palette: g.cfg.Board.Palette,
		Extent:  r2.Vec{X: float64(cols), Y: float64(rows)},
		Gravity: g.cfg.Physics.Gravity,
		Score:   scoreFn,
		Rand:    rand.New(rand.NewSource(runtime.Seed)),
	}
	if g.puzzle != nil {
		g.sess = session.NewWithBoard(g.puzzle.ToBoard(), opts)
	} else {
		g.sess = session.New(opts)
	}

	g.hasPointer = false
	g.cursor = board.C(rows-1, 0)
	g.cursorActive = false
	g.hovered = nil
	g.lastPoints = 0
	g.paused = false
	g.elapsed = 0

	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// Resize recomputes the screen layout. The board is kept.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.layout = computeLayout(width, height, g.cfg.Board.Rows, g.cfg.Board.Cols,
		g.cfg.Layout.Margin, g.cfg.Layout.HUDRows)
}

// Config returns the active configuration.
func (g *Game) Config() config.BlockBreakerConfig {
	return g.cfg
}

// Puzzle returns the fixed starting board, or nil for a random board.
func (g *Game) Puzzle() *puzzles.Puzzle {
	return g.puzzle
}

// Session exposes the underlying state machine.
func (g *Game) Session() *session.Session {
	return g.sess
}

// Elapsed returns the seconds of unpaused play.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	over := g.sess.State() == session.StateGameOver

	if in.Has(core.ActionPause) && !over {
		g.paused = !g.paused
	}
	if g.paused || !g.layout.fits {
		return core.StepResult{State: g.State()}
	}

	g.trackPointer(in)
	g.moveCursor(in)

	dt := core.ClampF(in.DT, 0, g.cfg.Physics.MaxDT)
	if !over {
		g.elapsed += dt
	}

	res := g.sess.Tick(session.Frame{
		Pointer:    g.pointer,
		HasPointer: g.hasPointer,
		Clicked:    in.Clicked || in.Has(core.ActionSelect),
		DT:         dt,
	})

	g.hovered = res.Hovered
	if res.Removed > 0 {
		g.lastPoints = res.Points
	}

	return core.StepResult{
		State:   g.State(),
		Removed: res.Removed,
		Points:  res.Points,
	}
}

// trackPointer follows the mouse. Mouse movement takes over from the keyboard cursor.
func (g *Game) trackPointer(in core.InputFrame) {
	if !in.HasPointer {
		return
	}
	moved := in.PointerX != g.lastX || in.PointerY != g.lastY
	g.lastX, g.lastY = in.PointerX, in.PointerY

	if g.cursorActive && !moved && !in.Clicked {
		return
	}
	g.cursorActive = false
	g.pointer = g.layout.toWorld(in.PointerX, in.PointerY)
	g.hasPointer = true
}

// moveCursor handles the arrow keys. The keyboard cursor points at a cell center.
func (g *Game) moveCursor(in core.InputFrame) {
	step := board.Coordinate{}
	switch {
	case in.Has(core.ActionUp):
		step.Row = -1
	case in.Has(core.ActionDown):
		step.Row = 1
	case in.Has(core.ActionLeft):
		step.Col = -1
	case in.Has(core.ActionRight):
		step.Col = 1
	}

	// Select without a pointer clicks at the cursor
	if step == (board.Coordinate{}) && (!in.Has(core.ActionSelect) || g.hasPointer) {
		return
	}

	b := g.sess.Board()
	next := g.cursor.Add(step)
	if b.InBounds(next) {
		g.cursor = next
	}
	g.cursorActive = true
	g.pointer = cellCenter(b, g.cursor)
	g.hasPointer = true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sess == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:           g.sess.Score(),
		GameOver:        g.sess.State() == session.StateGameOver,
		Paused:          g.paused || !g.layout.fits,
		Phase:           g.sess.State().String(),
		BlocksRemaining: g.sess.BlocksRemaining(),
		Clicks:          g.sess.Clicks(),
	}
}
