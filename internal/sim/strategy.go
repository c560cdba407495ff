package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/blockbreaker/internal/board"
	"github.com/vovakirdan/blockbreaker/internal/session"
)

// ErrUnknownStrategy is returned for an unregistered strategy name.
var ErrUnknownStrategy = errors.New("sim: unknown strategy")

// Strategy picks the next cell to click on a settled board.
// Pick returns false when the board has no blocks left.
type Strategy interface {
	Name() string
	Pick(b *board.Board, rng *rand.Rand) (board.Coordinate, bool)
}

// Random clicks a uniformly chosen occupied cell.
type Random struct{}

func (Random) Name() string { return "random" }

func (Random) Pick(b *board.Board, rng *rand.Rand) (board.Coordinate, bool) {
	coords := b.Coordinates()
	if len(coords) == 0 {
		return board.Coordinate{}, false
	}
	return coords[rng.Intn(len(coords))], true
}

// Greedy clicks the largest region. Ties go to the first region in row-major order.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Pick(b *board.Board, _ *rand.Rand) (board.Coordinate, bool) {
	best, bestSize := board.Coordinate{}, 0
	for _, r := range regions(b) {
		if len(r.cells) > bestSize {
			best, bestSize = r.start, len(r.cells)
		}
	}
	return best, bestSize > 0
}

// Lookahead scores each region by its own points plus the best region left
// after the board settles, using a cloned board for every candidate.
type Lookahead struct {
	Score session.ScoreFunc
}

func (Lookahead) Name() string { return "lookahead" }

func (l Lookahead) Pick(b *board.Board, _ *rand.Rand) (board.Coordinate, bool) {
	score := l.Score
	if score == nil {
		score = session.MinusOneSquared
	}

	best, bestValue, found := board.Coordinate{}, -1, false
	for _, r := range regions(b) {
		next := b.Clone()
		next.RemoveRegion(cellCenter(next, r.start))
		next.Settle()

		follow := 0
		for _, nr := range regions(next) {
			follow = max(follow, score(len(nr.cells)))
		}

		value := score(len(r.cells)) + follow
		if value > bestValue {
			best, bestValue, found = r.start, value, true
		}
	}
	return best, found
}

var strategies = map[string]func(session.ScoreFunc) Strategy{
	"random":    func(session.ScoreFunc) Strategy { return Random{} },
	"greedy":    func(session.ScoreFunc) Strategy { return Greedy{} },
	"lookahead": func(f session.ScoreFunc) Strategy { return Lookahead{Score: f} },
}

// StrategyByName returns a built-in strategy.
// score is used by strategies that rank moves by points.
func StrategyByName(name string, score session.ScoreFunc) (Strategy, error) {
	mk, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return mk(score), nil
}

// StrategyNames returns the names of the built-in strategies, sorted.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type region struct {
	start board.Coordinate
	cells map[board.Coordinate]struct{}
}

// regions partitions the occupied cells into their regions, each keyed by
// its first cell in row-major order.
func regions(b *board.Board) []region {
	seen := make(map[board.Coordinate]struct{}, b.BlocksRemaining())
	var out []region
	for _, c := range b.Coordinates() {
		if _, ok := seen[c]; ok {
			continue
		}
		cells := b.Region(c)
		for rc := range cells {
			seen[rc] = struct{}{}
		}
		out = append(out, region{start: c, cells: cells})
	}
	return out
}

// cellCenter returns the world point at the middle of a cell.
func cellCenter(b *board.Board, c board.Coordinate) r2.Vec {
	p := b.GridToWorld(c)
	half := b.BlockSize() / 2
	return r2.Vec{X: p.X + half, Y: p.Y + half}
}
