// Package session sequences one game of BlockBreaker: it owns the board and
// the physics engine and advances them once per frame tick.
package session

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/blockbreaker/internal/board"
	"github.com/vovakirdan/blockbreaker/internal/physics"
)

// State is the phase of the session state machine.
type State int

const (
	StatePlaying State = iota
	StateBlocksFalling
	StateColumnsShifting
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StateBlocksFalling:
		return "Falling"
	case StateColumnsShifting:
		return "Shifting"
	case StateGameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}

// DefaultGravity is the default acceleration in block edges per second squared.
const DefaultGravity = 45.0

// Options configures a new session.
type Options struct {
	Rows    int
	Cols    int
	Palette int
	Origin  r2.Vec // World position of the board's top-left corner
	Extent  r2.Vec // World size available to the board
	Gravity float64
	Score   ScoreFunc
	Rand    board.RandSource
}

// Frame is the external input for one tick.
type Frame struct {
	Pointer    r2.Vec  // Pointer position in world space
	HasPointer bool    // False when the pointer is outside the window
	Clicked    bool    // Primary click happened this frame
	DT         float64 // Elapsed seconds since the previous frame
}

// Result reports what happened during one tick.
type Result struct {
	State   State
	Removed int // Blocks removed by a click this tick
	Points  int // Points gained this tick
	Hovered map[board.Coordinate]struct{}
}

// Session is one game: a board, its animation engine, a state and a score.
type Session struct {
	board   *board.Board
	engine  *physics.Engine
	state   State
	score   int
	clicks  int
	gravity float64
	scoreFn ScoreFunc
}

// New creates a session with a freshly randomized board.
func New(opts Options) *Session {
	b := board.New(opts.Origin, opts.Extent, opts.Rows, opts.Cols, opts.Palette, opts.Rand)
	return NewWithBoard(b, opts)
}

// NewWithBoard creates a session around an existing board.
// Board dimensions and Rand in opts are ignored.
func NewWithBoard(b *board.Board, opts Options) *Session {
	gravity := opts.Gravity
	if gravity <= 0 {
		gravity = DefaultGravity
	}
	scoreFn := opts.Score
	if scoreFn == nil {
		scoreFn = MinusOneSquared
	}

	return &Session{
		board:   b,
		engine:  physics.NewEngine(),
		state:   StatePlaying,
		gravity: gravity,
		scoreFn: scoreFn,
	}
}

// Tick advances the state machine by one frame.
func (s *Session) Tick(f Frame) Result {
	dt := f.DT
	if dt < 0 {
		dt = 0
	}

	res := Result{}

	switch s.state {
	case StatePlaying:
		switch {
		case s.board.BlocksRemaining() == 0:
			s.state = StateGameOver
		case s.queueFalling():
		case s.queueShifting():
		default:
			res = s.acceptInput(f)
		}

	case StateBlocksFalling:
		if !s.engine.Advance(s.board, s.fallForce(), dt) {
			s.settle()
		}

	case StateColumnsShifting:
		if !s.engine.Advance(s.board, s.shiftForce(), dt) {
			s.settle()
		}

	case StateGameOver:
	}

	res.State = s.state
	return res
}

// acceptInput forwards a click and a hover query to the board.
func (s *Session) acceptInput(f Frame) Result {
	res := Result{}
	if !f.HasPointer {
		return res
	}

	if f.Clicked {
		removed := s.board.RemoveRegion(f.Pointer)
		if removed > 0 {
			res.Removed = removed
			res.Points = s.scoreFn(removed)
			if res.Points > 0 {
				s.score += res.Points
			}
			s.clicks++
		}
	}

	if pos, ok := s.board.WorldToGrid(f.Pointer); ok {
		res.Hovered = s.board.Region(pos)
	}
	return res
}

// settle runs after a batch completes: newly exposed gaps fall first,
// then empty columns close, otherwise play resumes.
func (s *Session) settle() {
	switch {
	case s.queueFalling():
	case s.queueShifting():
	default:
		s.state = StatePlaying
	}
}

func (s *Session) queueFalling() bool {
	moves := s.board.FindFallingBlocks()
	if moves == nil {
		return false
	}
	s.engine.QueueAll(moves)
	s.state = StateBlocksFalling
	return true
}

func (s *Session) queueShifting() bool {
	moves := s.board.FindShiftingBlocks()
	if moves == nil {
		return false
	}
	s.engine.QueueAll(moves)
	s.state = StateColumnsShifting
	return true
}

func (s *Session) fallForce() r2.Vec {
	return r2.Vec{X: 0, Y: s.gravity * s.board.BlockSize()}
}

func (s *Session) shiftForce() r2.Vec {
	return r2.Vec{X: -s.gravity * s.board.BlockSize(), Y: 0}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Clicks returns the number of clicks that removed blocks.
func (s *Session) Clicks() int { return s.clicks }

// BlocksRemaining returns the number of blocks left on the board.
func (s *Session) BlocksRemaining() int { return s.board.BlocksRemaining() }

// Board returns the session's board for read-only queries.
func (s *Session) Board() *board.Board { return s.board }

// Block returns the block at a coordinate for draw queries.
func (s *Session) Block(c board.Coordinate) (board.Block, bool) {
	return s.board.Block(c)
}

// Region returns the region under a coordinate for hover highlighting.
func (s *Session) Region(c board.Coordinate) map[board.Coordinate]struct{} {
	return s.board.Region(c)
}

// DrawPosition returns where the block at c should be drawn:
// its cell position plus any in-flight offset.
func (s *Session) DrawPosition(c board.Coordinate) (r2.Vec, bool) {
	if s.board.IsEmptyAt(c) {
		return r2.Vec{}, false
	}
	return r2.Add(s.board.GridToWorld(c), s.engine.Offset(c)), true
}

// OnlySingles returns true when the board is settled and every remaining
// region is a single block.
func (s *Session) OnlySingles() bool {
	return s.state == StatePlaying &&
		s.board.BlocksRemaining() > 0 &&
		!s.board.HasGaps() &&
		!s.board.ColumnsNeedShifting() &&
		!s.board.HasMoves()
}
