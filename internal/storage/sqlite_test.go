package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, run Run) Run {
	t.Helper()
	if _, err := store.SaveScore(&run); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	return run
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAssignsIDs(t *testing.T) {
	store := openTestStore(t)

	run := save(t, store, Run{GameID: "blockbreaker", Score: 120, Cleared: true, Duration: 95 * time.Second})
	if run.ID == 0 {
		t.Error("SaveScore should set the row ID")
	}
	if len(run.RunID) != 36 {
		t.Errorf("SaveScore should generate a UUID run ID, got %q", run.RunID)
	}

	got, err := store.RunByID(run.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if got.Score != 120 || !got.Cleared || got.Duration != 95*time.Second || got.GameID != "blockbreaker" {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	missing, err := store.RunByID("no-such-run")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v; expected nil, nil", missing, err)
	}
}

func TestStoreKeepsGivenRunID(t *testing.T) {
	store := openTestStore(t)

	run := save(t, store, Run{RunID: "fixed-id", GameID: "blockbreaker_mini", Score: 5})
	if run.RunID != "fixed-id" {
		t.Errorf("RunID = %q, expected fixed-id", run.RunID)
	}

	dup := Run{RunID: "fixed-id", GameID: "blockbreaker_mini", Score: 6}
	if _, err := store.SaveScore(&dup); err == nil {
		t.Error("Saving a duplicate run ID should fail")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, Run{GameID: "blockbreaker", Score: 100})
	save(t, store, Run{GameID: "blockbreaker", Score: 50})
	save(t, store, Run{GameID: "blockbreaker", Score: 200})
	save(t, store, Run{GameID: "blockbreaker_wide", Score: 500})

	scores, err := store.TopScores("blockbreaker", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %+v", scores)
	}

	wide, err := store.TopScores("blockbreaker_wide", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(wide) != 1 {
		t.Errorf("Expected 1 wide score, got %d", len(wide))
	}
}

func TestStoreTopScoresTieBreaksOnDuration(t *testing.T) {
	store := openTestStore(t)

	save(t, store, Run{GameID: "g", Score: 10, Duration: 3 * time.Minute})
	save(t, store, Run{GameID: "g", Score: 10, Duration: time.Minute})

	scores, err := store.TopScores("g", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Duration != time.Minute {
		t.Errorf("Faster run should rank first on equal score, got %v", scores[0].Duration)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, Run{GameID: "test", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blockbreaker")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, Run{GameID: "blockbreaker", Score: 100})
	save(t, store, Run{GameID: "blockbreaker", Score: 300})
	save(t, store, Run{GameID: "blockbreaker", Score: 200})

	high, err = store.HighScore("blockbreaker")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, Run{GameID: "blockbreaker", Score: 100})
	save(t, store, Run{GameID: "blockbreaker", Score: 200})
	save(t, store, Run{GameID: "blockbreaker_mini", Score: 300})

	if err := store.ClearScores("blockbreaker"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	cleared, _ := store.TopScores("blockbreaker", 10)
	if len(cleared) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(cleared))
	}

	mini, _ := store.TopScores("blockbreaker_mini", 10)
	if len(mini) != 1 {
		t.Errorf("Other modes should not be affected by clearing")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, Run{GameID: "test", Score: i * 10})
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	save(t, store, Run{GameID: "blockbreaker", Score: 90, Cleared: true, Duration: 80 * time.Second})
	save(t, store, Run{GameID: "blockbreaker", Score: 30, Cleared: false, BlocksRemaining: 12, Duration: 10 * time.Second})
	save(t, store, Run{GameID: "blockbreaker", Score: 60, Cleared: true, Duration: 50 * time.Second})

	stats, err := store.GetGameStats("blockbreaker")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.ClearedCount != 2 {
		t.Errorf("counts = %d games, %d cleared; expected 3, 2", stats.GamesCount, stats.ClearedCount)
	}
	if stats.HighScore != 90 || stats.TotalScore != 180 || stats.AvgScore != 60 {
		t.Errorf("score aggregates wrong: %+v", stats)
	}
	if stats.FastestClear != 50*time.Second {
		t.Errorf("FastestClear = %v, expected 50s (abandoned runs do not count)", stats.FastestClear)
	}

	empty, err := store.GetGameStats("blockbreaker_wide")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.FastestClear != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("stats for an unplayed game should be zero: %+v", empty)
	}
}

func TestStoreAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	save(t, store, Run{GameID: "blockbreaker", Score: 10})
	save(t, store, Run{GameID: "blockbreaker_mini", Score: 20, Cleared: true, Duration: time.Second})
	save(t, store, Run{GameID: "blockbreaker_mini", Score: 40})

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	mini := all["blockbreaker_mini"]
	if mini == nil || mini.GamesCount != 2 || mini.HighScore != 40 || mini.ClearedCount != 1 {
		t.Errorf("mini stats = %+v", mini)
	}
	if all["blockbreaker"].FastestClear != 0 {
		t.Error("no cleared runs means no fastest clear")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
