package board

import "fmt"

// Move is a pending relocation of one block from its current cell to its settled cell.
type Move struct {
	From Coordinate
	To   Coordinate
}

// FindFallingBlocks returns the moves that close every vertical gap.
// Each column is scanned bottom to top; a block drops by the number of empty
// cells beneath it. Returns nil when the board is settled vertically.
// The scan is pure detection over the current board, not a simulation.
func (b *Board) FindFallingBlocks() []Move {
	var moves []Move

	for col := 0; col < b.cols; col++ {
		empty := 0
		for row := b.rows - 1; row >= 0; row-- {
			pos := C(row, col)
			if b.IsEmptyAt(pos) {
				empty++
			} else if empty > 0 {
				moves = append(moves, Move{From: pos, To: pos.Add(Coordinate{Row: empty})})
			}
		}
	}

	return moves
}

// FindShiftingBlocks returns the moves that close every empty column.
// Columns are scanned left to right; every block in a non-empty column that
// follows K empty columns moves K columns left.
// Returns nil when no empty column precedes a non-empty one.
func (b *Board) FindShiftingBlocks() []Move {
	var moves []Move

	empty := 0
	for col := 0; col < b.cols; col++ {
		if b.IsColumnEmpty(col) {
			empty++
			continue
		}
		if empty == 0 {
			continue
		}
		for row := 0; row < b.rows; row++ {
			pos := C(row, col)
			if !b.IsEmptyAt(pos) {
				moves = append(moves, Move{From: pos, To: pos.Sub(Coordinate{Col: empty})})
			}
		}
	}

	return moves
}

// HasGaps returns true if any block has an empty cell below it.
func (b *Board) HasGaps() bool {
	for col := 0; col < b.cols; col++ {
		gap := false
		for row := b.rows - 1; row >= 0; row-- {
			if b.IsEmptyAt(C(row, col)) {
				gap = true
			} else if gap {
				return true
			}
		}
	}
	return false
}

// ColumnsNeedShifting returns true if an empty column precedes a non-empty one.
func (b *Board) ColumnsNeedShifting() bool {
	emptySeen := false
	for col := 0; col < b.cols; col++ {
		if b.IsColumnEmpty(col) {
			emptySeen = true
		} else if emptySeen {
			return true
		}
	}
	return false
}

// Apply relocates every block of a batch of moves at once.
// All origins are taken before any destination is filled, so a block moving
// into a cell vacated by another move of the same batch never collides with it.
// A move without a block at its origin panics.
func (b *Board) Apply(moves []Move) {
	held := make([]Block, len(moves))
	for i, m := range moves {
		blk, ok := b.TakeBlock(m.From)
		if !ok {
			panic(fmt.Sprintf("board: no block at origin %s", m.From))
		}
		held[i] = blk
	}
	for i, m := range moves {
		b.PlaceBlock(m.To, held[i])
	}
}

// Settle resolves every pending fall and shift instantly, in the same order
// the animated cascade uses: falling to completion first, then shifting.
func (b *Board) Settle() {
	for {
		if moves := b.FindFallingBlocks(); moves != nil {
			b.Apply(moves)
			continue
		}
		if moves := b.FindShiftingBlocks(); moves != nil {
			b.Apply(moves)
			continue
		}
		return
	}
}
