package sim

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/blockbreaker/internal/board"
	"github.com/vovakirdan/blockbreaker/internal/config"
	"github.com/vovakirdan/blockbreaker/internal/session"
)

func fromTypes(layout [][]int) *board.Board {
	rows, cols := len(layout), len(layout[0])
	return board.FromTypes(r2.Vec{}, r2.Vec{X: float64(cols), Y: float64(rows)}, layout)
}

func miniOptions(games int, strategy Strategy) Options {
	return Options{
		Config:   config.Default(config.ModeMini),
		Games:    games,
		Workers:  2,
		Seed:     7,
		Strategy: strategy,
	}
}

func TestGreedyPicksLargestRegion(t *testing.T) {
	b := fromTypes([][]int{
		{0, 1, 1},
		{0, 1, 2},
		{2, 1, 2},
	})
	c, ok := Greedy{}.Pick(b, nil)
	require.True(t, ok)
	assert.Len(t, b.Region(c), 4)
}

func TestGreedyEmptyBoard(t *testing.T) {
	b := fromTypes([][]int{{-1, -1}})
	_, ok := Greedy{}.Pick(b, nil)
	assert.False(t, ok)
}

func TestRandomPicksOccupiedCell(t *testing.T) {
	b := fromTypes([][]int{
		{-1, -1, 3},
		{-1, 1, 2},
	})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		c, ok := Random{}.Pick(b, rng)
		require.True(t, ok)
		assert.False(t, b.IsEmptyAt(c), "picked empty cell %s", c)
	}
}

func TestLookaheadSeesCascade(t *testing.T) {
	// Clearing the lone 1 drops the 0 above it onto the bottom row,
	// joining a region of four. Greedy would take the bottom row instead.
	b := fromTypes([][]int{
		{2, 0, -1},
		{2, 1, -1},
		{0, 0, 0},
	})
	c, ok := Lookahead{Score: session.Squared}.Pick(b, nil)
	require.True(t, ok)

	blk, _ := b.Block(c)
	assert.Equal(t, board.BlockType(1), blk.Type)
	assert.Equal(t, 1, len(b.Region(c)))
	assert.Equal(t, 7, b.BlocksRemaining(), "pick must not touch the board")
}

func TestStrategyByName(t *testing.T) {
	for _, name := range StrategyNames() {
		s, err := StrategyByName(name, session.Squared)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	_, err := StrategyByName("oracle", nil)
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestRunEndsEveryGame(t *testing.T) {
	for _, name := range StrategyNames() {
		t.Run(name, func(t *testing.T) {
			strategy, err := StrategyByName(name, session.Squared)
			require.NoError(t, err)

			report, err := Run(miniOptions(6, strategy))
			require.NoError(t, err)
			require.Len(t, report.Runs, 6)

			for i, run := range report.Runs {
				assert.Equal(t, i, run.Game)
				assert.Equal(t, int64(7+i), run.Seed)
				assert.False(t, run.Capped, "game %d hit the frame cap", i)
				assert.True(t, run.Cleared, "every block is removable, so each game clears")
				assert.Zero(t, run.BlocksLeft)
				assert.Positive(t, run.Clicks)
			}
		})
	}
}

func TestRunIsReproducible(t *testing.T) {
	opts := miniOptions(4, Random{})
	first, err := Run(opts)
	require.NoError(t, err)

	opts.Workers = 1
	second, err := Run(opts)
	require.NoError(t, err)

	for i := range first.Runs {
		assert.Equal(t, first.Runs[i].Score, second.Runs[i].Score)
		assert.Equal(t, first.Runs[i].Frames, second.Runs[i].Frames)
	}
}

func TestPlayOneMatchesRun(t *testing.T) {
	opts := miniOptions(3, Greedy{})
	report, err := Run(opts)
	require.NoError(t, err)

	run, err := PlayOne(opts, opts.Seed+2)
	require.NoError(t, err)
	assert.Equal(t, report.Runs[2].Score, run.Score)
	assert.Equal(t, report.Runs[2].Clicks, run.Clicks)
}

func TestRunFrameCap(t *testing.T) {
	opts := miniOptions(1, Greedy{})
	opts.MaxFrames = 1

	report, err := Run(opts)
	require.NoError(t, err)
	run := report.Runs[0]
	assert.True(t, run.Capped)
	assert.Equal(t, 1, run.Frames)
	assert.Equal(t, 1, run.Clicks)
}

func TestRunRejectsBadOptions(t *testing.T) {
	_, err := Run(miniOptions(0, Greedy{}))
	assert.Error(t, err)

	opts := miniOptions(1, Greedy{})
	opts.Config.Board.Rows = 0
	_, err = Run(opts)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestReportAggregates(t *testing.T) {
	r := &Report{Strategy: "greedy", Runs: []RunResult{
		{Score: 1000, Clicks: 4, BlocksLeft: 0, Cleared: true},
		{Score: 2000, Clicks: 6, BlocksLeft: 2},
	}}
	assert.InDelta(t, 1500.0, r.AvgScore(), 1e-9)
	assert.InDelta(t, 5.0, r.AvgClicks(), 1e-9)
	assert.InDelta(t, 1.0, r.AvgBlocksLeft(), 1e-9)
	assert.Equal(t, 2000, r.BestScore())
	assert.InDelta(t, 0.5, r.ClearRate(), 1e-9)

	var buf bytes.Buffer
	r.WriteSummary(&buf, true)
	out := buf.String()
	assert.Contains(t, out, "Strategy:        greedy")
	assert.Contains(t, out, "Best score:      2,000")
	assert.Contains(t, out, "Cleared:         50.0%")
}

func TestEmptyReport(t *testing.T) {
	r := &Report{}
	assert.Zero(t, r.AvgScore())
	assert.Zero(t, r.ClearRate())
	assert.Zero(t, r.BestScore())
}
