// Package sim plays BlockBreaker games headlessly with a click strategy and
// aggregates the results.
package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/blockbreaker/internal/config"
	"github.com/vovakirdan/blockbreaker/internal/session"
)

const (
	DefaultDT        = 1.0 / 60
	DefaultMaxFrames = 200_000
)

// ErrInconsistent is returned when a finished game's remaining counter does
// not match the blocks actually on the board.
var ErrInconsistent = errors.New("sim: board counter out of sync")

// Options configures a simulation batch.
type Options struct {
	Config       config.BlockBreakerConfig
	Games        int
	Workers      int
	Seed         int64
	Strategy     Strategy
	DT           float64
	MaxFrames    int
	ShowProgress bool
}

// RunResult is the outcome of one simulated game.
type RunResult struct {
	Game       int
	Seed       int64
	Score      int
	Clicks     int
	Frames     int
	BlocksLeft int
	Cleared    bool
	Capped     bool // Hit the frame cap before game over
	PlayTime   time.Duration
}

// Report collects every run of a batch.
type Report struct {
	Strategy string
	Runs     []RunResult
	Elapsed  time.Duration
}

// Run plays opts.Games games, spread over opts.Workers goroutines.
// Game i uses seed opts.Seed+i, so a batch is reproducible regardless of
// the worker count.
func Run(opts Options) (*Report, error) {
	if opts.Games < 1 {
		return nil, fmt.Errorf("sim: games must be > 0, got %d", opts.Games)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.DT <= 0 {
		opts.DT = DefaultDT
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = DefaultMaxFrames
	}
	if opts.Strategy == nil {
		opts.Strategy = Greedy{}
	}
	scoreFn, err := opts.Config.ScoreFunc()
	if err != nil {
		return nil, err
	}

	runs := make([]RunResult, opts.Games)
	errs := make([]error, opts.Games)
	jobs := make(chan int)

	bar := pb.StartNew(opts.Games)
	if !opts.ShowProgress {
		bar.SetWriter(io.Discard)
	}

	wg := new(sync.WaitGroup)
	wg.Add(opts.Workers)
	for w := 0; w < opts.Workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				runs[i], errs[i] = playOne(opts, scoreFn, i)
				bar.Increment()
			}
		}()
	}
	for i := 0; i < opts.Games; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	used := time.Since(bar.StartTime())
	bar.Finish()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &Report{Strategy: opts.Strategy.Name(), Runs: runs, Elapsed: used}, nil
}

// PlayOne plays a single game with the given seed.
func PlayOne(opts Options, seed int64) (RunResult, error) {
	opts.Seed = seed
	if opts.DT <= 0 {
		opts.DT = DefaultDT
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = DefaultMaxFrames
	}
	if opts.Strategy == nil {
		opts.Strategy = Greedy{}
	}
	scoreFn, err := opts.Config.ScoreFunc()
	if err != nil {
		return RunResult{}, err
	}
	return playOne(opts, scoreFn, 0)
}

func playOne(opts Options, scoreFn session.ScoreFunc, game int) (RunResult, error) {
	cfg := opts.Config
	seed := opts.Seed + int64(game)
	rng := rand.New(rand.NewSource(seed))

	s := session.New(session.Options{
		Rows:    cfg.Board.Rows,
		Cols:    cfg.Board.Cols,
		Palette: cfg.Board.Palette,
		Extent:  r2.Vec{X: float64(cfg.Board.Cols), Y: float64(cfg.Board.Rows)},
		Gravity: cfg.Physics.Gravity,
		Score:   scoreFn,
		Rand:    rng,
	})

	res := RunResult{Game: game, Seed: seed}
	for res.Frames < opts.MaxFrames && s.State() != session.StateGameOver {
		f := session.Frame{DT: opts.DT}
		if s.State() == session.StatePlaying {
			if c, ok := opts.Strategy.Pick(s.Board(), rng); ok {
				f.Pointer = cellCenter(s.Board(), c)
				f.HasPointer = true
				f.Clicked = true
			}
		}
		s.Tick(f)
		res.Frames++
	}

	res.Score = s.Score()
	res.Clicks = s.Clicks()
	res.BlocksLeft = s.BlocksRemaining()
	res.Cleared = res.BlocksLeft == 0
	res.Capped = s.State() != session.StateGameOver
	res.PlayTime = time.Duration(float64(res.Frames) * opts.DT * float64(time.Second))

	if occupied := s.Board().Occupied(); occupied != res.BlocksLeft {
		return res, fmt.Errorf("%w: game %d seed %d: counter %d, occupied %d",
			ErrInconsistent, game, seed, res.BlocksLeft, occupied)
	}
	return res, nil
}

// AvgScore returns the mean score over all runs.
func (r *Report) AvgScore() float64 {
	return r.avg(func(run RunResult) int { return run.Score })
}

// AvgClicks returns the mean number of scoring clicks per run.
func (r *Report) AvgClicks() float64 {
	return r.avg(func(run RunResult) int { return run.Clicks })
}

// AvgBlocksLeft returns the mean number of blocks left per run.
func (r *Report) AvgBlocksLeft() float64 {
	return r.avg(func(run RunResult) int { return run.BlocksLeft })
}

// BestScore returns the highest score of the batch.
func (r *Report) BestScore() int {
	best := 0
	for _, run := range r.Runs {
		best = max(best, run.Score)
	}
	return best
}

// ClearRate returns the fraction of runs that emptied the board.
func (r *Report) ClearRate() float64 {
	if len(r.Runs) == 0 {
		return 0
	}
	cleared := 0
	for _, run := range r.Runs {
		if run.Cleared {
			cleared++
		}
	}
	return float64(cleared) / float64(len(r.Runs))
}

func (r *Report) avg(field func(RunResult) int) float64 {
	if len(r.Runs) == 0 {
		return 0
	}
	total := 0
	for _, run := range r.Runs {
		total += field(run)
	}
	return float64(total) / float64(len(r.Runs))
}

// WriteSummary prints the aggregate numbers, and every run when verbose is set.
func (r *Report) WriteSummary(w io.Writer, verbose bool) {
	p := message.NewPrinter(language.English)

	if verbose {
		p.Fprintf(w, "%5s %12s %8s %8s %6s %8s\n", "game", "seed", "score", "clicks", "left", "frames")
		for _, run := range r.Runs {
			p.Fprintf(w, "%5d %12d %8d %8d %6d %8d\n",
				run.Game, run.Seed, run.Score, run.Clicks, run.BlocksLeft, run.Frames)
		}
		p.Fprintln(w)
	}

	p.Fprintf(w, "Strategy:        %s\n", r.Strategy)
	p.Fprintf(w, "Games:           %d\n", len(r.Runs))
	p.Fprintf(w, "Avg score:       %.1f\n", r.AvgScore())
	p.Fprintf(w, "Best score:      %d\n", r.BestScore())
	p.Fprintf(w, "Avg clicks:      %.1f\n", r.AvgClicks())
	p.Fprintf(w, "Avg blocks left: %.1f\n", r.AvgBlocksLeft())
	p.Fprintf(w, "Cleared:         %.1f%%\n", r.ClearRate()*100)
	p.Fprintf(w, "Elapsed:         %s\n", r.Elapsed.Round(time.Millisecond))
}
