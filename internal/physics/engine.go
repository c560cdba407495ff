// Package physics animates block relocations on a board.
//
// All blocks queued for one phase (falling or shifting) share a single
// velocity, so gravity applies uniformly to the whole batch. Blocks keep
// occupying their origin slots while in flight; the grid only changes when
// the whole batch has arrived and is committed in one pass.
package physics

import (
	"fmt"

	"github.com/kamstrup/intmap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/blockbreaker/internal/board"
)

// flight is one queued block relocation.
type flight struct {
	from    board.Coordinate
	to      board.Coordinate
	started bool
	start   r2.Vec // World position of the origin cell
	dest    r2.Vec // World position of the destination cell
	pos     r2.Vec // Current world position
	done    bool
}

// Engine tracks in-flight blocks for one phase at a time.
type Engine struct {
	flights  *intmap.Map[uint64, *flight]
	velocity r2.Vec
}

// NewEngine creates an idle engine.
func NewEngine() *Engine {
	return &Engine{
		flights: intmap.New[uint64, *flight](64),
	}
}

// packKey packs a coordinate into a map key.
func packKey(c board.Coordinate) uint64 {
	return uint64(uint32(c.Row))<<32 | uint64(uint32(c.Col))
}

// Queue registers a block relocation from one cell to another.
// Queueing the same origin twice replaces the earlier move.
func (e *Engine) Queue(from, to board.Coordinate) {
	e.flights.Put(packKey(from), &flight{from: from, to: to})
}

// QueueAll registers every move in the list.
func (e *Engine) QueueAll(moves []board.Move) {
	for _, m := range moves {
		e.Queue(m.From, m.To)
	}
}

// Pending returns the number of queued moves.
func (e *Engine) Pending() int {
	return e.flights.Len()
}

// Animating returns true if any move is queued.
func (e *Engine) Animating() bool {
	return e.flights.Len() > 0
}

// Velocity returns the shared velocity of the current batch.
func (e *Engine) Velocity() r2.Vec {
	return e.velocity
}

// Reset drops every queued move and zeroes the velocity.
// Blocks are never held by the engine between calls, so the board is unaffected.
func (e *Engine) Reset() {
	e.flights.Clear()
	e.velocity = r2.Vec{}
}

// Offset returns how far the block drawn at c has moved from its cell.
// Zero when the block is not in flight.
func (e *Engine) Offset(c board.Coordinate) r2.Vec {
	f, ok := e.flights.Get(packKey(c))
	if !ok || !f.started {
		return r2.Vec{}
	}
	return r2.Sub(f.pos, f.start)
}

// Advance integrates the shared velocity over dt and moves every queued block.
// Returns true while at least one block has not reached its destination.
// When the last block arrives the whole batch is committed to the board,
// the queue is cleared and the velocity reset.
//
// force must point from origins toward destinations; a zero force never completes.
func (e *Engine) Advance(b *board.Board, force r2.Vec, dt float64) bool {
	if e.flights.Len() == 0 {
		return false
	}

	e.velocity = r2.Add(e.velocity, r2.Scale(dt, force))
	step := r2.Scale(dt, e.velocity)

	allDone := true
	e.flights.ForEach(func(_ uint64, f *flight) bool {
		if !f.started {
			f.start = b.GridToWorld(f.from)
			f.dest = b.GridToWorld(f.to)
			f.pos = f.start
			f.started = true
		}
		if f.done {
			return true
		}

		blk, ok := b.TakeBlock(f.from)
		if !ok {
			panic(fmt.Sprintf("physics: no block at origin %s", f.from))
		}

		f.pos = r2.Add(f.pos, step)
		if r2.Norm(r2.Sub(f.pos, f.start)) >= r2.Norm(r2.Sub(f.dest, f.start)) {
			f.pos = f.dest
			f.done = true
		} else {
			allDone = false
		}

		// Still owned by its origin cell until the batch commits
		b.PlaceBlock(f.from, blk)
		return true
	})

	if !allDone {
		return true
	}

	e.commit(b)
	return false
}

// commit relocates every block of the finished batch in one pass.
func (e *Engine) commit(b *board.Board) {
	moves := make([]board.Move, 0, e.flights.Len())
	e.flights.ForEach(func(_ uint64, f *flight) bool {
		moves = append(moves, board.Move{From: f.from, To: f.to})
		return true
	})
	b.Apply(moves)
	e.Reset()
}
