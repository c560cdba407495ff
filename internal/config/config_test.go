package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at empty temp dirs so only
// embedded defaults are visible.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func TestEmbeddedDefaultsMatchBuiltIn(t *testing.T) {
	isolate(t)

	for _, mode := range Modes() {
		t.Run(mode, func(t *testing.T) {
			cfg, err := Load(mode, "")
			require.NoError(t, err)
			assert.Equal(t, "embedded:"+mode+".yaml", cfg.Source)

			want := Default(mode)
			assert.Equal(t, want.Board, cfg.Board)
			assert.Equal(t, want.Scoring, cfg.Scoring)
			assert.Equal(t, want.Layout, cfg.Layout)
			assert.Equal(t, want.Physics, cfg.Physics)
		})
	}
}

func TestModeDefaults(t *testing.T) {
	mini := Default(ModeMini)
	assert.Equal(t, BoardConfig{Rows: 5, Cols: 5, Palette: 3}, mini.Board)
	assert.Equal(t, "squared", mini.Scoring.Formula)

	wide := Default(ModeWide)
	assert.Equal(t, 2*wide.Board.Rows, wide.Board.Cols)
	assert.Equal(t, "cubed", wide.Scoring.Formula)

	classic := Default("unknown")
	assert.Equal(t, 10, classic.Board.Rows)
	assert.Equal(t, "minus_one_squared", classic.Scoring.Formula)
}

func TestLoadCustomPathOverridesKeys(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  rows: 6\n  cols: 7\n  palette: 4\n"), 0o600))

	cfg, err := Load(ModeClassic, path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, BoardConfig{Rows: 6, Cols: 7, Palette: 4}, cfg.Board)
	assert.Equal(t, 45.0, cfg.Physics.Gravity, "keys absent from the file keep their defaults")
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	_, err := Load(ModeClassic, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: cannot read")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("board: [1, 2"), 0o600))
	_, err = Load(ModeClassic, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: cannot parse")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scoring:\n  formula: fibonacci\n"), 0o600))

	_, err := Load(ModeClassic, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "fibonacci")
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "blockbreaker.yaml"), []byte("board:\n  rows: 4\n"), 0o600))

	cfg, err := Load(ModeClassic, "")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Board.Rows, "local configs directory beats the embedded default")

	userDir := filepath.Join(home, ".blockbreaker", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "blockbreaker.yaml"), []byte("board:\n  rows: 3\n"), 0o600))

	cfg, err = Load(ModeClassic, "")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Board.Rows, "user config beats the local directory")
	assert.Equal(t, filepath.Join(userDir, "blockbreaker.yaml"), cfg.Source)
}

func TestLoadSkipsMalformedSearchPaths(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "blockbreaker_mini.yaml"), []byte(":::"), 0o600))

	cfg, err := Load(ModeMini, "")
	require.NoError(t, err)
	assert.Equal(t, "embedded:blockbreaker_mini.yaml", cfg.Source)
}

func TestLoadUnknownModeFallsBack(t *testing.T) {
	isolate(t)
	cfg, err := Load("no_such_mode", "")
	require.NoError(t, err)
	assert.Equal(t, "built-in", cfg.Source)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BlockBreakerConfig)
	}{
		{"zero rows", func(c *BlockBreakerConfig) { c.Board.Rows = 0 }},
		{"too many cols", func(c *BlockBreakerConfig) { c.Board.Cols = maxBoardSide + 1 }},
		{"palette too large", func(c *BlockBreakerConfig) { c.Board.Palette = 9 }},
		{"zero palette", func(c *BlockBreakerConfig) { c.Board.Palette = 0 }},
		{"negative gravity", func(c *BlockBreakerConfig) { c.Physics.Gravity = -1 }},
		{"zero max dt", func(c *BlockBreakerConfig) { c.Physics.MaxDT = 0 }},
		{"negative margin", func(c *BlockBreakerConfig) { c.Layout.Margin = -1 }},
		{"unknown formula", func(c *BlockBreakerConfig) { c.Scoring.Formula = "" }},
	}

	require.NoError(t, Default(ModeClassic).Validate())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default(ModeClassic)
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestScoreFunc(t *testing.T) {
	fn, err := Default(ModeWide).ScoreFunc()
	require.NoError(t, err)
	assert.Equal(t, 27, fn(3))
}

func TestPresets(t *testing.T) {
	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	_, err = ParsePreset("nightmare")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "config: "), err.Error())

	easy := Default(ModeClassic)
	ApplyPreset(&easy, DifficultyEasy)
	assert.Equal(t, 6, easy.Board.Palette)

	mini := Default(ModeMini)
	ApplyPreset(&mini, DifficultyEasy)
	assert.Equal(t, 2, mini.Board.Palette, "never below two types")

	hard := Default(ModeClassic)
	ApplyPreset(&hard, DifficultyHard)
	assert.Equal(t, BoardConfig{Rows: 12, Cols: 12, Palette: 8}, hard.Board)
	require.NoError(t, hard.Validate())

	normal := Default(ModeWide)
	ApplyPreset(&normal, DifficultyNormal)
	assert.Equal(t, Default(ModeWide).Board, normal.Board)
}
