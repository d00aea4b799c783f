package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-arcade-engine/internal/hiscore"
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

func TestStoreOpenCreatesNestedPath(t *testing.T) {
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

func TestStoreTopHiscores(t *testing.T) {
	store := openTestStore(t)

	submissions := []struct {
		game string
		item hiscore.Item
	}{
		{"catch", hiscore.Item{Name: "ANN", Score: 100}},
		{"catch", hiscore.Item{Name: "BOB", Score: 250}},
		{"catch", hiscore.Item{Name: "CAT", Score: 100}},
		{"other", hiscore.Item{Name: "DAN", Score: 900}},
	}
	for _, s := range submissions {
		if _, err := store.SaveHiscore("s1", s.game, s.item); err != nil {
			t.Fatalf("SaveHiscore() failed: %v", err)
		}
	}

	top, err := store.TopHiscores("catch", 10)
	if err != nil {
		t.Fatalf("TopHiscores() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopHiscores() returned %d records, expected 3", len(top))
	}

	expected := []string{"BOB", "ANN", "CAT"}
	for i, name := range expected {
		if top[i].Name != name {
			t.Errorf("TopHiscores()[%d].Name = %q, expected %q", i, top[i].Name, name)
		}
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be filled in by the database")
	}

	limited, err := store.TopHiscores("catch", 2)
	if err != nil {
		t.Fatalf("TopHiscores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("TopHiscores(limit 2) returned %d records", len(limited))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("catch")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0 for an empty archive", high)
	}

	store.SaveHiscore("s1", "catch", hiscore.Item{Name: "ANN", Score: 300})
	store.SaveHiscore("s1", "catch", hiscore.Item{Name: "BOB", Score: 200})
	store.SaveHiscore("s1", "other", hiscore.Item{Name: "CAT", Score: 500})

	high, err = store.HighScore("catch")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}

	if err := store.ClearHiscores("catch"); err != nil {
		t.Fatalf("ClearHiscores() failed: %v", err)
	}
	if top, _ := store.TopHiscores("catch", 10); len(top) != 0 {
		t.Errorf("TopHiscores() after clear = %d records, expected 0", len(top))
	}
	if top, _ := store.TopHiscores("other", 10); len(top) != 1 {
		t.Error("clearing one game should not affect another")
	}
}

func TestRecorderTagsSession(t *testing.T) {
	store := openTestStore(t)

	first := store.NewRecorder("catch")
	second := store.NewRecorder("catch")
	if first.SessionID() == second.SessionID() {
		t.Fatal("recorders should get distinct session ids")
	}
	if _, err := uuid.Parse(first.SessionID()); err != nil {
		t.Errorf("SessionID() = %q is not a UUID: %v", first.SessionID(), err)
	}

	if err := first.Record(hiscore.Item{Name: "ANN", Score: 10}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	first.Record(hiscore.Item{Name: "ANN", Score: 20})
	second.Record(hiscore.Item{Name: "BOB", Score: 30})

	records, err := store.SessionHiscores(first.SessionID())
	if err != nil {
		t.Fatalf("SessionHiscores() failed: %v", err)
	}
	if len(records) != 2 || records[0].Score != 10 || records[1].Score != 20 {
		t.Errorf("SessionHiscores() = %+v, expected ANN 10 then 20", records)
	}
	if records[0].GameID != "catch" {
		t.Errorf("GameID = %q, expected catch", records[0].GameID)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GameStats("catch")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.Submissions != 0 || empty.HighScore != 0 {
		t.Errorf("GameStats() on empty archive = %+v", empty)
	}

	a := store.NewRecorder("catch")
	b := store.NewRecorder("catch")
	a.Record(hiscore.Item{Name: "ANN", Score: 100})
	a.Record(hiscore.Item{Name: "ANN", Score: 200})
	b.Record(hiscore.Item{Name: "BOB", Score: 300})

	stats, err := store.GameStats("catch")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.Submissions != 3 || stats.Sessions != 2 || stats.HighScore != 300 {
		t.Errorf("GameStats() = %+v, expected 3 submissions, 2 sessions, high 300", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
}
