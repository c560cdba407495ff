package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockbreaker/internal/core"
	"github.com/vovakirdan/blockbreaker/internal/registry"
	"github.com/vovakirdan/blockbreaker/internal/storage"
)

func init() {
	registry.Register("fake_a", func() registry.Game { return &fakeGame{} })
	registry.Register("fake_b", func() registry.Game { return &fakeGame{} })
}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(MenuModel)
	require.True(t, ok)
	return out
}

func TestCenterTextUsesColumns(t *testing.T) {
	assert.Equal(t, "   abcd", centerText("abcd", 10))
	assert.Equal(t, "  漢字", centerText("漢字", 8))
	assert.Equal(t, "too wide", centerText("too wide", 4))
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 60, ScreenH: 20})
	require.Len(t, m.items, 2)

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor, "cursor stops at the top")

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor, "cursor stops at the bottom")

	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	res := m.Result()
	assert.Equal(t, "fake_b", res.GameID)
	assert.False(t, res.Quit)
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 60, ScreenH: 20})
	sb := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, sb.Result().WantsScoreboard)

	q := menuUpdate(t, m, runes("q"))
	assert.True(t, q.Result().Quit)
	assert.Empty(t, q.View())
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 60, ScreenH: 20})
	m = menuUpdate(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.Result().Config.ScreenW)
	assert.Equal(t, 40, m.Result().Config.ScreenH)
}

func TestMenuShowsBestScore(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveScore(&storage.Run{GameID: "fake_a", Score: 12345, Cleared: true})
	require.NoError(t, err)

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 20})
	assert.Contains(t, m.View(), "(best 12,345)")
}

func TestSessionModelMenuToGameAndBack(t *testing.T) {
	s := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 30}, "tester")
	assert.NotEmpty(t, s.ID())

	step := func(msg tea.Msg) {
		next, _ := s.Update(msg)
		var ok bool
		s, ok = next.(SessionModel)
		require.True(t, ok)
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, s.screen)
	assert.True(t, s.game.hosted)

	g, ok := s.game.game.(*fakeGame)
	require.True(t, ok)
	g.state.GameOver = true
	step(TickMsg(time.Unix(1, 0)))
	step(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, s.screen)
	assert.False(t, s.quitting)

	step(TickMsg(time.Unix(2, 0)))
	assert.Equal(t, screenMenu, s.screen, "stale tick is ignored")

	step(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, screenScores, s.screen)
	step(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, s.screen)

	step(runes("q"))
	assert.True(t, s.quitting)
}
