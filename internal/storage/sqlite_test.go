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

func save(t *testing.T, store *Store, player string, score int) SessionRecord {
	t.Helper()
	rec, err := store.SaveSession(SessionRecord{Player: player, Score: score, LevelReached: 1})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	return rec
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

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

	rec, err := store.SaveSession(SessionRecord{
		Player:         "alice",
		Score:          2450,
		LevelReached:   3,
		LivesRemaining: 0,
		DotsCollected:  512,
		GhostsEaten:    7,
		Duration:       95*time.Second + 250*time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if rec.ID == 0 {
		t.Error("Expected inserted ID to be set")
	}
	if rec.RunID == "" {
		t.Error("Expected a generated run ID")
	}

	got, err := store.SessionByRunID(rec.RunID)
	if err != nil {
		t.Fatalf("SessionByRunID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected stored session to be found")
	}
	if got.Player != "alice" || got.Score != 2450 || got.LevelReached != 3 {
		t.Errorf("Unexpected session: %+v", got)
	}
	if got.DotsCollected != 512 || got.GhostsEaten != 7 {
		t.Errorf("Stats not stored: %+v", got)
	}
	if got.Duration != 95250*time.Millisecond {
		t.Errorf("Expected duration 1m35.25s, got %v", got.Duration)
	}
	if got.Won {
		t.Error("Expected run not to be won")
	}
}

func TestStoreRunIDsAreUnique(t *testing.T) {
	store := openTestStore(t)

	a := save(t, store, "alice", 10)
	b := save(t, store, "alice", 10)
	if a.RunID == b.RunID {
		t.Errorf("Expected distinct run IDs, both %q", a.RunID)
	}

	if _, err := store.SaveSession(SessionRecord{RunID: a.RunID, Score: 1}); err == nil {
		t.Error("Expected duplicate run ID to be rejected")
	}
}

func TestStoreAnonymousPlayer(t *testing.T) {
	store := openTestStore(t)

	rec := save(t, store, "", 100)
	if rec.Player != AnonymousPlayer {
		t.Errorf("Expected player %q, got %q", AnonymousPlayer, rec.Player)
	}
}

func TestStoreTopSessions(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "alice", 100)
	save(t, store, "bob", 500)
	first := save(t, store, "carol", 300)
	save(t, store, "dave", 300)
	save(t, store, "erin", 200)

	top, err := store.TopSessions(3)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 sessions with limit, got %d", len(top))
	}

	// Should be 500, 300, 300 with the earlier 300 first
	if top[0].Score != 500 || top[1].Score != 300 || top[2].Score != 300 {
		t.Errorf("Sessions not in expected order: %+v", top)
	}
	if top[1].RunID != first.RunID {
		t.Errorf("Expected earlier run to win the tie, got %s", top[1].Player)
	}
}

func TestStoreTopSessionsDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		save(t, store, "alice", i*10)
	}

	top, err := store.TopSessions(0)
	if err != nil {
		t.Fatalf("TopSessions() failed: %v", err)
	}
	if len(top) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(top))
	}
}

func TestStorePlayerBestAndHistory(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "alice", 100)
	save(t, store, "alice", 900)
	save(t, store, "alice", 400)
	save(t, store, "bob", 5000)

	best, err := store.PlayerBest("alice")
	if err != nil {
		t.Fatalf("PlayerBest() failed: %v", err)
	}
	if best == nil || best.Score != 900 {
		t.Errorf("Expected alice's best to be 900, got %+v", best)
	}

	history, err := store.PlayerSessions("alice", 10)
	if err != nil {
		t.Fatalf("PlayerSessions() failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Expected 3 runs for alice, got %d", len(history))
	}
	if history[0].Score != 400 {
		t.Errorf("Expected most recent run first, got %d", history[0].Score)
	}

	none, err := store.PlayerBest("zed")
	if err != nil {
		t.Fatalf("PlayerBest() failed: %v", err)
	}
	if none != nil {
		t.Errorf("Expected no best for unknown player, got %+v", none)
	}
}

func TestStoreSessionByRunIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.SessionByRunID("does-not-exist")
	if err != nil {
		t.Fatalf("SessionByRunID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for unknown run, got %+v", got)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty store, got %d", high)
	}

	save(t, store, "alice", 100)
	save(t, store, "bob", 300)
	save(t, store, "alice", 200)

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	records := []SessionRecord{
		{Player: "alice", Score: 1000, LevelReached: 2, GhostsEaten: 3, Duration: time.Minute},
		{Player: "bob", Score: 3000, LevelReached: 10, GhostsEaten: 9, Duration: 2 * time.Minute, Won: true},
	}
	for _, rec := range records {
		if _, err := store.SaveSession(rec); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 || st.Victories != 1 {
		t.Errorf("Expected 2 runs and 1 victory, got %d and %d", st.Runs, st.Victories)
	}
	if st.HighScore != 3000 || st.TotalScore != 4000 || st.AvgScore != 2000 {
		t.Errorf("Unexpected score stats: %+v", st)
	}
	if st.GhostsEaten != 12 || st.BestLevel != 10 {
		t.Errorf("Unexpected run stats: %+v", st)
	}
	if st.TotalPlaying != 3*time.Minute {
		t.Errorf("Expected 3m of play, got %v", st.TotalPlaying)
	}
	if st.LastPlayed.IsZero() {
		t.Error("Expected last played to be set")
	}
}

func TestStoreStatsEmpty(t *testing.T) {
	store := openTestStore(t)

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 0 || st.HighScore != 0 || !st.LastPlayed.IsZero() {
		t.Errorf("Expected zero stats, got %+v", st)
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "alice", 100)
	save(t, store, "alice", 200)
	save(t, store, "bob", 300)

	// Clear only alice
	if err := store.ClearSessions("alice"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	alice, _ := store.PlayerSessions("alice", 10)
	if len(alice) != 0 {
		t.Errorf("Expected 0 alice runs after clear, got %d", len(alice))
	}
	bob, _ := store.PlayerSessions("bob", 10)
	if len(bob) != 1 {
		t.Error("Bob's runs should not be affected by clearing alice")
	}

	if err := store.ClearSessions(""); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}
	top, _ := store.TopSessions(10)
	if len(top) != 0 {
		t.Errorf("Expected empty leaderboard, got %d runs", len(top))
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

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
