package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, run := range []struct{ score, moves int }{{100, 10}, {50, 4}, {200, 20}} {
		if _, err := store.SaveScore("crush", run.score, run.moves); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	// Different mode
	if _, err := store.SaveScore("crush_auto", 500, 40); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("crush", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Moves != 20 {
		t.Errorf("Expected 20 moves on the best run, got %d", scores[0].Moves)
	}

	autoScores, err := store.TopScores("crush_auto", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(autoScores) != 1 {
		t.Errorf("Expected 1 auto score, got %d", len(autoScores))
	}
}

func TestStoreTiesPreferFewerMoves(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("crush", 90, 12)
	store.SaveScore("crush", 90, 7)

	scores, err := store.TopScores("crush", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Moves != 7 || scores[1].Moves != 12 {
		t.Errorf("Expected fewer moves first on equal score, got %v", scores)
	}
}

func TestStoreRunIDs(t *testing.T) {
	store := openTestStore(t)

	first, err := store.SaveScore("crush", 30, 2)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	second, err := store.SaveScore("crush", 30, 2)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("Run ID %q is not a UUID: %v", first, err)
	}
	if first == second {
		t.Error("Run IDs should be unique")
	}

	run, err := store.RunByID(first)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil || run.RunID != first || run.Score != 30 || run.Moves != 2 {
		t.Errorf("Unexpected run: %+v", run)
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown run, got %+v", missing)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100, i)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("crush")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("crush", 100, 1)
	store.SaveScore("crush", 300, 1)
	store.SaveScore("crush", 200, 1)

	high, err = store.HighScore("crush")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("crush", 100, 1)
	store.SaveScore("crush", 200, 1)
	store.SaveScore("crush_auto", 300, 1)

	if err := store.ClearScores("crush"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("crush", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	autoScores, _ := store.TopScores("crush_auto", 10)
	if len(autoScores) != 1 {
		t.Errorf("Auto scores should not be affected by clearing player scores")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("crush")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveScore("crush", 60, 3)
	store.SaveScore("crush", 120, 9)

	stats, err := store.GetGameStats("crush")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 120 || stats.TotalScore != 180 || stats.TotalMoves != 12 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 90 {
		t.Errorf("Expected average 90, got %v", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected last played time to be set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["crush"].GamesCount != 2 {
		t.Errorf("Unexpected all-games stats: %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
