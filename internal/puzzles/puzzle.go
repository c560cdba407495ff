// Package puzzles loads fixed starting boards from YAML files.
//
// A puzzle lists its rows top to bottom, one letter per cell:
//
//	R G B Y M C O W  block types 0..7
//	.                empty cell
package puzzles

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockbreaker/internal/board"
)

var (
	// ErrInvalidPuzzle wraps every parse failure.
	ErrInvalidPuzzle = errors.New("puzzles: invalid puzzle")
	// ErrNotFound is returned when no puzzle has the requested ID.
	ErrNotFound = errors.New("puzzles: puzzle not found")
)

// IDPrefix marks game IDs of runs played on a puzzle board.
const IDPrefix = "puzzle:"

// cellLetters maps puzzle letters to block types; the index is the type.
const cellLetters = "RGBYMCOW"

// Puzzle is a fixed starting board.
type Puzzle struct {
	ID       string
	Name     string
	Par      int // Target score, 0 if none
	Layout   [][]int
	FilePath string
}

// yamlPuzzle is the file representation of a puzzle.
type yamlPuzzle struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Par  int      `yaml:"par,omitempty"`
	Rows []string `yaml:"rows"`
}

// Parse decodes a YAML puzzle.
func Parse(data []byte) (Puzzle, error) {
	var yp yamlPuzzle
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Puzzle{}, fmt.Errorf("%w: %w", ErrInvalidPuzzle, err)
	}
	if yp.ID == "" {
		return Puzzle{}, fmt.Errorf("%w: no id", ErrInvalidPuzzle)
	}
	if len(yp.Rows) == 0 {
		return Puzzle{}, fmt.Errorf("%w: %s has no rows", ErrInvalidPuzzle, yp.ID)
	}

	p := Puzzle{ID: yp.ID, Name: yp.Name, Par: yp.Par}
	if p.Name == "" {
		p.Name = yp.ID
	}

	cols := -1
	for i, line := range yp.Rows {
		row, err := parseRow(line)
		if err != nil {
			return Puzzle{}, fmt.Errorf("%w: %s row %d: %w", ErrInvalidPuzzle, yp.ID, i, err)
		}
		if cols >= 0 && len(row) != cols {
			return Puzzle{}, fmt.Errorf("%w: %s row %d has %d cells, expected %d", ErrInvalidPuzzle, yp.ID, i, len(row), cols)
		}
		cols = len(row)
		p.Layout = append(p.Layout, row)
	}
	if cols == 0 {
		return Puzzle{}, fmt.Errorf("%w: %s has empty rows", ErrInvalidPuzzle, yp.ID)
	}
	if p.Palette() == 0 {
		return Puzzle{}, fmt.Errorf("%w: %s has no blocks", ErrInvalidPuzzle, yp.ID)
	}

	return p, nil
}

// parseRow reads one row. Spaces are ignored so rows can be aligned freely.
func parseRow(line string) ([]int, error) {
	var row []int
	for _, r := range strings.ToUpper(line) {
		switch {
		case r == ' ':
		case r == '.':
			row = append(row, -1)
		default:
			t := strings.IndexRune(cellLetters, r)
			if t < 0 {
				return nil, fmt.Errorf("unknown cell %q", r)
			}
			row = append(row, t)
		}
	}
	return row, nil
}

// Rows returns the board height.
func (p Puzzle) Rows() int { return len(p.Layout) }

// Cols returns the board width.
func (p Puzzle) Cols() int {
	if len(p.Layout) == 0 {
		return 0
	}
	return len(p.Layout[0])
}

// Palette returns the number of block types the board needs.
func (p Puzzle) Palette() int {
	top := -1
	for _, row := range p.Layout {
		for _, t := range row {
			top = max(top, t)
		}
	}
	return top + 1
}

// GameID returns the score key for runs on this puzzle.
func (p Puzzle) GameID() string {
	return IDPrefix + p.ID
}

// ToBoard builds the starting board with a world extent of one unit per cell.
func (p Puzzle) ToBoard() *board.Board {
	extent := r2.Vec{X: float64(p.Cols()), Y: float64(p.Rows())}
	return board.FromTypes(r2.Vec{}, extent, p.Layout)
}
