package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreaker/internal/core"
	"github.com/vovakirdan/blockbreaker/internal/storage"
)

// fakeGame records the frames it receives.
type fakeGame struct {
	state   core.GameState
	frames  []core.InputFrame
	resets  int
	resized [2]int
	elapsed float64
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{BlocksRemaining: 4}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	cp := in
	cp.Actions = make(map[core.Action]bool)
	for a, v := range in.Actions {
		cp.Actions[a] = v
	}
	g.frames = append(g.frames, cp)
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) Resize(width, height int) { g.resized = [2]int{width, height} }

func (g *fakeGame) Elapsed() float64 { return g.elapsed }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *fakeGame) {
	t.Helper()
	g := &fakeGame{}
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 50, Seed: 1})
	return m, g
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestNewModelResetsGame(t *testing.T) {
	_, g := newTestModel(t, nil)
	assert.Equal(t, 1, g.resets)
}

func TestTickDeltaTime(t *testing.T) {
	m, g := newTestModel(t, nil)
	start := time.Unix(1000, 0)

	m = update(t, m, TickMsg(start))
	m = update(t, m, TickMsg(start.Add(30*time.Millisecond)))
	m = update(t, m, TickMsg(start.Add(2*time.Second)))
	update(t, m, TickMsg(start.Add(time.Second)))

	require.Len(t, g.frames, 4)
	assert.InDelta(t, 0.02, g.frames[0].DT, 1e-9, "first tick uses the nominal interval")
	assert.InDelta(t, 0.03, g.frames[1].DT, 1e-9)
	assert.InDelta(t, maxFrameDT, g.frames[2].DT, 1e-9, "stalls are clamped")
	assert.Zero(t, g.frames[3].DT, "time going backwards yields zero")
}

func TestKeyAndMouseReachNextStep(t *testing.T) {
	m, g := newTestModel(t, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, tea.MouseMsg{X: 7, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg(time.Unix(1, 0)))
	update(t, m, TickMsg(time.Unix(1, int64(20*time.Millisecond))))

	require.Len(t, g.frames, 2)
	first := g.frames[0]
	assert.True(t, first.Has(core.ActionLeft))
	assert.True(t, first.Clicked)
	assert.True(t, first.HasPointer)
	assert.Equal(t, 7, first.PointerX)
	assert.Equal(t, 3, first.PointerY)

	second := g.frames[1]
	assert.False(t, second.Has(core.ActionLeft), "actions last one frame")
	assert.False(t, second.Clicked)
	assert.True(t, second.HasPointer, "pointer persists between frames")
}

func TestMouseMotionDoesNotClick(t *testing.T) {
	m, g := newTestModel(t, nil)
	m = update(t, m, tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionMotion})
	update(t, m, TickMsg(time.Unix(1, 0)))

	require.Len(t, g.frames, 1)
	assert.False(t, g.frames[0].Clicked)
	assert.Equal(t, 2, g.frames[0].PointerX)
}

func TestGameOverSavesOnce(t *testing.T) {
	store := openStore(t)
	m, g := newTestModel(t, store)

	g.state = core.GameState{Score: 120, GameOver: true, Clicks: 5}
	g.elapsed = 42
	for i := 0; i < 3; i++ {
		m = update(t, m, TickMsg(time.Unix(int64(i), 0)))
	}

	runs, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 120, runs[0].Score)
	assert.True(t, runs[0].Cleared)
	assert.Equal(t, 42*time.Second, runs[0].Duration)
}

func TestRestartSavesAbandonedBoard(t *testing.T) {
	store := openStore(t)
	m, g := newTestModel(t, store)

	g.state = core.GameState{Score: 30, Clicks: 2, BlocksRemaining: 9}
	m = update(t, m, runes("r"))
	update(t, m, TickMsg(time.Unix(1, 0)))

	assert.Equal(t, 2, g.resets)
	assert.Empty(t, g.frames, "restart tick does not step the game")

	runs, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Cleared)
	assert.Equal(t, 9, runs[0].BlocksRemaining)
}

func TestUntouchedBoardIsNotSaved(t *testing.T) {
	store := openStore(t)
	m, _ := newTestModel(t, store)

	_, cmd := m.Update(runes("q"))
	assert.NotNil(t, cmd)

	runs, err := store.TopScores("fake", 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.IsQuitting())
	assert.Empty(t, m.View())
}

func TestResizeKeepsResizableGame(t *testing.T) {
	m, g := newTestModel(t, nil)
	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, [2]int{100, 30}, g.resized)
	assert.Equal(t, 1, g.resets)
}

func TestHostedBackToMenu(t *testing.T) {
	m, g := newTestModel(t, nil)
	m.hosted = true

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.BackToMenu(), "esc pauses while playing")

	g.state.GameOver = true
	m = update(t, m, TickMsg(time.Unix(1, 0)))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())
}

func TestViewRendersGame(t *testing.T) {
	m, _ := newTestModel(t, nil)
	assert.Contains(t, m.View(), "fake")
}
