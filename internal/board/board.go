// Package board implements the block grid: slot ownership, world/grid
// conversion, region discovery and cascade detection.
//
// The board is pure game state. It has no notion of time or rendering; the
// physics engine moves blocks through TakeBlock/PlaceBlock and the session
// drives everything once per frame.
package board

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// RandSource is the uniform index source used to pick block types.
// *math/rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// Board is a fixed rows×cols grid of optional blocks.
// Slots are stored in row-major order: index = row*cols + col.
type Board struct {
	rows      int
	cols      int
	blockSize float64
	origin    r2.Vec
	extent    r2.Vec
	slots     []*Block
	remaining int
}

// New creates a board filled with blocks of random types.
// The block edge is the largest square that fits the extent in both axes.
func New(origin, extent r2.Vec, rows, cols, paletteSize int, rng RandSource) *Board {
	b := newEmpty(origin, extent, rows, cols)

	for i := range b.slots {
		t := BlockType(rng.Intn(paletteSize))
		b.slots[i] = &Block{Type: t, Size: b.blockSize}
	}
	b.remaining = len(b.slots)

	return b
}

// FromTypes creates a board from an explicit layout of block types.
// layout[row][col] is the type index, or -1 for an empty slot.
// All rows must have the same length.
func FromTypes(origin, extent r2.Vec, layout [][]int) *Board {
	rows := len(layout)
	cols := 0
	if rows > 0 {
		cols = len(layout[0])
	}

	b := newEmpty(origin, extent, rows, cols)
	for row, line := range layout {
		if len(line) != cols {
			panic(fmt.Sprintf("board: row %d has %d columns, expected %d", row, len(line), cols))
		}
		for col, t := range line {
			if t < 0 {
				continue
			}
			b.slots[C(row, col).Key(cols)] = &Block{Type: BlockType(t), Size: b.blockSize}
			b.remaining++
		}
	}

	return b
}

func newEmpty(origin, extent r2.Vec, rows, cols int) *Board {
	size := 0.0
	if rows > 0 && cols > 0 {
		size = math.Min(extent.X/float64(cols), extent.Y/float64(rows))
	}

	return &Board{
		rows:      rows,
		cols:      cols,
		blockSize: size,
		origin:    origin,
		extent:    extent,
		slots:     make([]*Block, rows*cols),
	}
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// BlockSize returns the edge length of every block in world units.
func (b *Board) BlockSize() float64 { return b.blockSize }

// Origin returns the world position of the top-left corner.
func (b *Board) Origin() r2.Vec { return b.origin }

// Bounds returns the world rectangle covered by the board extent.
func (b *Board) Bounds() r2.Box {
	return r2.Box{Min: b.origin, Max: r2.Add(b.origin, b.extent)}
}

// BlocksRemaining returns the number of occupied slots.
func (b *Board) BlocksRemaining() int { return b.remaining }

// InBounds returns true if the coordinate is inside the grid.
func (b *Board) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < b.rows && c.Col >= 0 && c.Col < b.cols
}

// WorldToGrid maps a world point to the cell that contains it.
// Returns false if the point lies outside the board extent or past the last
// row or column when the extent is larger than the grid.
// Cell spans are half-open and use the same arithmetic as GridToWorld, so
// GridToWorld(c) always maps back to c.
func (b *Board) WorldToGrid(p r2.Vec) (Coordinate, bool) {
	local := r2.Sub(p, b.origin)
	if local.X < 0 || local.Y < 0 || local.X >= b.extent.X || local.Y >= b.extent.Y {
		return Coordinate{}, false
	}
	if b.blockSize <= 0 {
		return Coordinate{}, false
	}

	c := C(b.axisIndex(p.Y, b.origin.Y), b.axisIndex(p.X, b.origin.X))
	if !b.InBounds(c) {
		return Coordinate{}, false
	}
	return c, true
}

// axisIndex returns i such that start(i) <= v < start(i+1) along one axis,
// where start(i) = origin + i*blockSize. The division only gives a first
// guess; rounding can leave it one cell off near a boundary.
func (b *Board) axisIndex(v, origin float64) int {
	i := int(math.Floor((v - origin) / b.blockSize))
	switch {
	case origin+float64(i+1)*b.blockSize <= v:
		i++
	case i > 0 && origin+float64(i)*b.blockSize > v:
		i--
	}
	return i
}

// GridToWorld returns the world position of the top-left corner of a cell.
// No bounds check is performed.
func (b *Board) GridToWorld(c Coordinate) r2.Vec {
	return r2.Vec{
		X: b.origin.X + float64(c.Col)*b.blockSize,
		Y: b.origin.Y + float64(c.Row)*b.blockSize,
	}
}

// Block returns the block at the coordinate.
// Returns false for out-of-range or empty slots.
func (b *Board) Block(c Coordinate) (Block, bool) {
	if !b.InBounds(c) {
		return Block{}, false
	}
	blk := b.slots[c.Key(b.cols)]
	if blk == nil {
		return Block{}, false
	}
	return *blk, true
}

// IsEmptyAt returns true if the slot is vacant or out of range.
func (b *Board) IsEmptyAt(c Coordinate) bool {
	_, ok := b.Block(c)
	return !ok
}

// Region returns the maximal 4-connected set of same-type blocks containing start.
// Returns an empty set if start is empty or out of range.
func (b *Board) Region(start Coordinate) map[Coordinate]struct{} {
	region := make(map[Coordinate]struct{})

	first, ok := b.Block(start)
	if !ok {
		return region
	}

	stack := []Coordinate{start}
	region[start] = struct{}{}
	for len(stack) > 0 {
		pos := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range pos.Neighbors(b.rows, b.cols) {
			if _, seen := region[n]; seen {
				continue
			}
			blk, ok := b.Block(n)
			if !ok || blk.Type != first.Type {
				continue
			}
			region[n] = struct{}{}
			stack = append(stack, n)
		}
	}

	return region
}

// RemoveRegion removes the region under a world point.
// Returns the number of blocks removed; 0 if the point is off the board
// or over an empty slot, in which case the board is unchanged.
func (b *Board) RemoveRegion(p r2.Vec) int {
	start, ok := b.WorldToGrid(p)
	if !ok {
		return 0
	}

	region := b.Region(start)
	for pos := range region {
		b.slots[pos.Key(b.cols)] = nil
	}
	b.remaining -= len(region)

	return len(region)
}

// IsColumnEmpty returns true if every slot in the column is vacant.
func (b *Board) IsColumnEmpty(col int) bool {
	for row := b.rows - 1; row >= 0; row-- {
		if !b.IsEmptyAt(C(row, col)) {
			return false
		}
	}
	return true
}

// TakeBlock vacates a slot and hands its block to the caller.
// The remaining counter is not touched: a taken block is in hand, not removed,
// and must be given back with PlaceBlock before the frame ends.
func (b *Board) TakeBlock(c Coordinate) (Block, bool) {
	if !b.InBounds(c) {
		return Block{}, false
	}
	idx := c.Key(b.cols)
	blk := b.slots[idx]
	if blk == nil {
		return Block{}, false
	}
	b.slots[idx] = nil
	return *blk, true
}

// PlaceBlock puts a block into a vacant slot.
// Placing onto an occupied or out-of-range slot would lose a block and panics.
func (b *Board) PlaceBlock(c Coordinate, blk Block) {
	if !b.InBounds(c) {
		panic(fmt.Sprintf("board: place out of range at %s", c))
	}
	idx := c.Key(b.cols)
	if b.slots[idx] != nil {
		panic(fmt.Sprintf("board: place onto occupied slot %s", c))
	}
	b.slots[idx] = &blk
}

// Occupied counts the occupied slots by scanning the grid.
func (b *Board) Occupied() int {
	n := 0
	for _, blk := range b.slots {
		if blk != nil {
			n++
		}
	}
	return n
}

// HasMoves returns true if any block has a same-type orthogonal neighbor,
// i.e. some click would clear at least two blocks.
func (b *Board) HasMoves() bool {
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			blk, ok := b.Block(C(row, col))
			if !ok {
				continue
			}
			// Right and down cover every adjacent pair once
			if right, ok := b.Block(C(row, col+1)); ok && right.Type == blk.Type {
				return true
			}
			if down, ok := b.Block(C(row+1, col)); ok && down.Type == blk.Type {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	clone := *b
	clone.slots = make([]*Block, len(b.slots))
	for i, blk := range b.slots {
		if blk != nil {
			cp := *blk
			clone.slots[i] = &cp
		}
	}
	return &clone
}

// Coordinates returns the occupied coordinates in row-major order.
func (b *Board) Coordinates() []Coordinate {
	coords := make([]Coordinate, 0, b.remaining)
	for row := 0; row < b.rows; row++ {
		for col := 0; col < b.cols; col++ {
			c := C(row, col)
			if !b.IsEmptyAt(c) {
				coords = append(coords, c)
			}
		}
	}
	return coords
}
