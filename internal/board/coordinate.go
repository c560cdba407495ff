package board

import "fmt"

// Coordinate addresses a cell on the board.
// Row increases downward, Col increases to the right.
type Coordinate struct {
	Row int
	Col int
}

// C is a convenience constructor for Coordinate.
func C(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns the component-wise sum of two coordinates.
// c.Add(Coordinate{Row: n}) is the cell n rows below c.
func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

// Sub returns the component-wise difference of two coordinates.
// c.Sub(Coordinate{Col: k}) is the cell k columns left of c.
func (c Coordinate) Sub(o Coordinate) Coordinate {
	return Coordinate{Row: c.Row - o.Row, Col: c.Col - o.Col}
}

// Key returns the row-major flat index of the coordinate on a board
// with the given number of columns.
func (c Coordinate) Key(cols int) int {
	return c.Row*cols + c.Col
}

// Neighbors returns the in-bounds orthogonal neighbors (up, down, left, right).
func (c Coordinate) Neighbors(rows, cols int) []Coordinate {
	candidates := [4]Coordinate{
		C(c.Row-1, c.Col), // Up
		C(c.Row+1, c.Col), // Down
		C(c.Row, c.Col-1), // Left
		C(c.Row, c.Col+1), // Right
	}

	neighbors := make([]Coordinate, 0, 4)
	for _, n := range candidates {
		if n.Row >= 0 && n.Row < rows && n.Col >= 0 && n.Col < cols {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}
