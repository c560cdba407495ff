package blockbreaker

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/blockbreaker/internal/board"
	"github.com/vovakirdan/blockbreaker/internal/core"
)

// layout maps the board's world space onto terminal cells.
// A block is one world unit; it covers scale rows and 2*scale columns,
// because terminal cells are roughly twice as tall as they are wide.
type layout struct {
	scale int
	inner core.Rect // Screen cells covered by the board
	hudY  int       // First HUD row
	fits  bool
}

// computeLayout picks the largest integer scale at which the board, its
// frame and the HUD fit on the screen, and centers the board.
func computeLayout(screenW, screenH, rows, cols, margin, hudRows int) layout {
	availW := screenW - 2*margin - 2
	availH := screenH - 2*margin - 2 - hudRows

	scale := 0
	if rows > 0 && cols > 0 {
		scale = min(availW/(2*cols), availH/rows)
	}
	if scale < 1 {
		return layout{}
	}

	w := cols * 2 * scale
	h := rows * scale
	x := (screenW - w) / 2
	y := margin + 1 + (availH-h)/2

	return layout{
		scale: scale,
		inner: core.NewRect(x, y, w, h),
		hudY:  y + h + 1,
		fits:  true,
	}
}

// frame returns the rectangle of the board outline.
func (l layout) frame() core.Rect {
	return core.NewRect(l.inner.X-1, l.inner.Y-1, l.inner.W+2, l.inner.H+2)
}

// toWorld converts a screen cell to the world point at its center.
func (l layout) toWorld(x, y int) r2.Vec {
	return r2.Vec{
		X: (float64(x-l.inner.X) + 0.5) / float64(2*l.scale),
		Y: (float64(y-l.inner.Y) + 0.5) / float64(l.scale),
	}
}

// toScreen converts a world point to the screen cell containing it.
func (l layout) toScreen(p r2.Vec) (int, int) {
	x := l.inner.X + int(math.Floor(p.X*float64(2*l.scale)))
	y := l.inner.Y + int(math.Floor(p.Y*float64(l.scale)))
	return x, y
}

// blockRect returns the screen cells of a block whose top-left corner is at p.
func (l layout) blockRect(p r2.Vec) core.Rect {
	x, y := l.toScreen(p)
	return core.NewRect(x, y, 2*l.scale, l.scale)
}

// cellCenter returns the world point at the middle of a board cell.
func cellCenter(b *board.Board, c board.Coordinate) r2.Vec {
	half := b.BlockSize() / 2
	return r2.Add(b.GridToWorld(c), r2.Vec{X: half, Y: half})
}
