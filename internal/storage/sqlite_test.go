package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/brickrogue/internal/games/rogue"
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	summary := rogue.RunSummary{
		Score:           1200,
		Wave:            7,
		Coins:           85,
		Gems:            9,
		BricksDestroyed: 210,
		Reason:          rogue.ReasonLives,
		Duration:        3*time.Minute + 250*time.Millisecond,
	}
	id, err := store.SaveRun(NewRunRecord("alice", summary))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run id %q is not a uuid: %v", id, err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("saved run not found")
	}
	if got.Profile != "alice" || got.Score != 1200 || got.Wave != 7 || got.Coins != 85 ||
		got.Gems != 9 || got.Bricks != 210 || got.Reason != "lives" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Duration != summary.Duration {
		t.Errorf("Duration = %v, want %v", got.Duration, summary.Duration)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %v, %v; want nil, nil", missing, err)
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []RunRecord{
		{Profile: "alice", Score: 100, Wave: 2, Reason: "lives"},
		{Profile: "alice", Score: 300, Wave: 4, Reason: "overrun"},
		{Profile: "alice", Score: 300, Wave: 5, Reason: "lives"},
		{Profile: "alice", Score: 50, Wave: 1, Reason: "quit"},
		{Profile: "bob", Score: 900, Wave: 9, Reason: "lives"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("alice", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	wantWaves := []int{5, 4, 2}
	for i, r := range runs {
		if r.Profile != "alice" {
			t.Errorf("run %d belongs to %q", i, r.Profile)
		}
		if r.Wave != wantWaves[i] {
			t.Errorf("run %d wave = %d, want %d", i, r.Wave, wantWaves[i])
		}
	}

	recent, err := store.RecentRuns("alice", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 4 || recent[0].Score != 50 {
		t.Errorf("RecentRuns() = %d runs, newest score %d; want 4 runs, newest 50", len(recent), recent[0].Score)
	}
}

func TestStoreEmptyProfile(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{Score: 10, Wave: 1, Reason: "quit"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.Profile != DefaultProfile {
		t.Errorf("Profile = %q, want %q", got.Profile, DefaultProfile)
	}
}

func TestStoreBestWaveAndStats(t *testing.T) {
	store := openTestStore(t)

	wave, err := store.BestWave("alice")
	if err != nil {
		t.Fatalf("BestWave() failed: %v", err)
	}
	if wave != 0 {
		t.Errorf("BestWave() on empty profile = %d, want 0", wave)
	}

	for _, r := range []RunRecord{
		{Profile: "alice", Score: 100, Wave: 3, Bricks: 40, Reason: "lives", Duration: time.Minute},
		{Profile: "alice", Score: 300, Wave: 6, Bricks: 90, Reason: "lives", Duration: 2 * time.Minute},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	wave, err = store.BestWave("alice")
	if err != nil || wave != 6 {
		t.Errorf("BestWave() = %d, %v; want 6", wave, err)
	}

	stats, err := store.Stats("alice")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 300 || stats.BestWave != 6 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.TotalBricks != 130 {
		t.Errorf("TotalBricks = %d, want 130", stats.TotalBricks)
	}
	if stats.PlayTime != 3*time.Minute {
		t.Errorf("PlayTime = %v, want 3m", stats.PlayTime)
	}

	empty, err := store.Stats("nobody")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	for _, p := range []string{"alice", "alice", "bob"} {
		if _, err := store.SaveRun(RunRecord{Profile: p, Score: 1, Wave: 1, Reason: "quit"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	if err := store.ClearRuns("alice"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("alice", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	runs, _ = store.TopRuns("bob", 10)
	if len(runs) != 1 {
		t.Errorf("Other profiles should be untouched, got %d runs", len(runs))
	}

	profiles, err := store.Profiles()
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0] != "bob" {
		t.Errorf("Profiles() = %v, want [bob]", profiles)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.brickrogue/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".brickrogue", "runs.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
