package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/horde/internal/config"
	"github.com/vovakirdan/horde/internal/core"
	"github.com/vovakirdan/horde/internal/sim"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveRun(Run{Scenario: "survival", Score: score, Kills: score / 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(Run{Scenario: "arena", Score: 500}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns("survival", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	expected := []int{200, 100, 50}
	for i, r := range runs {
		if r.Score != expected[i] {
			t.Errorf("runs[%d].Score = %d, expected %d", i, r.Score, expected[i])
		}
		if r.Snapshot != nil {
			t.Errorf("runs[%d] carries a snapshot in a listing", i)
		}
		if r.CreatedAt.IsZero() {
			t.Errorf("runs[%d].CreatedAt not parsed", i)
		}
	}

	limited, err := store.TopRuns("survival", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("survival")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty history, got %d", best)
	}

	store.SaveRun(Run{Scenario: "survival", Score: 100})
	store.SaveRun(Run{Scenario: "survival", Score: 300})

	best, err = store.BestScore("survival")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score 300, got %d", best)
	}
}

func TestStoreRunFromWorld(t *testing.T) {
	store := openTestStore(t)

	w, err := sim.NewWorld(config.Default(), core.RuntimeConfig{TickRate: 60, Seed: 77}, sim.Options{})
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	for range 240 {
		w.Step(core.NewInputFrame())
	}

	run, err := RunFromWorld("survival", w)
	if err != nil {
		t.Fatalf("RunFromWorld() failed: %v", err)
	}
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if got.Ticks != 240 || got.Seed != 77 || got.Scenario != "survival" {
		t.Errorf("run = %+v, expected 240 ticks, seed 77, survival", got)
	}

	snap, err := sim.DecodeSnapshot(got.Snapshot)
	if err != nil {
		t.Fatalf("DecodeSnapshot() failed: %v", err)
	}
	live := w.Snapshot()
	if snap.Hash() != live.Hash() {
		t.Errorf("stored snapshot hash = %x, expected %x", snap.Hash(), live.Hash())
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID(42)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for a missing run, got %+v", got)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Scenario: "survival", Score: 100})
	store.SaveRun(Run{Scenario: "arena", Score: 200})

	if err := store.ClearRuns("survival"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("survival", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 survival runs after clear, got %d", len(runs))
	}
	arena, _ := store.TopRuns("arena", 10)
	if len(arena) != 1 {
		t.Errorf("Expected arena runs untouched, got %d", len(arena))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Scenario: "survival", Score: 100, Kills: 10, Wave: 3})
	store.SaveRun(Run{Scenario: "survival", Score: 300, Kills: 30, Wave: 7})
	store.SaveRun(Run{Scenario: "stress", Score: 5})

	stats, err := store.Stats("survival")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 300 || stats.TotalKills != 40 || stats.MaxWave != 7 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}

	empty, err := store.Stats("arena")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["stress"] == nil || all["stress"].BestScore != 5 {
		t.Errorf("AllStats() = %v", all)
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Scenario != "stress" {
		t.Errorf("RecentRuns() = %+v, expected newest first", recent)
	}
}
