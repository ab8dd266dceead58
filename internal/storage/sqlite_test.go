package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/catapult/internal/catapult"
	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
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

func finishedRun(id string, score int, end time.Time) catapult.RunResult {
	return catapult.RunResult{
		ID:       id,
		Start:    end.Add(-10 * time.Second),
		End:      end,
		Score:    score,
		Hits:     1,
		Distance: float64(score) * 10,
		Name:     "tester",
		Outcome:  catapult.OutcomeStopped,
	}
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

func TestCreateThenUpdateRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := store.CreateRun(ctx, "run-1", now.Add(-time.Minute)); err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	// In-flight runs are not on the leaderboard
	if _, ok, err := store.TopScore(ctx, time.Time{}); err != nil || ok {
		t.Fatalf("TopScore() = ok %v err %v, want no entry", ok, err)
	}

	res := finishedRun("run-1", 42, now)
	res.Name = "averyveryverylongname"
	if err := store.UpdateRun(ctx, res); err != nil {
		t.Fatalf("UpdateRun() failed: %v", err)
	}

	top, ok, err := store.TopScore(ctx, time.Time{})
	if err != nil || !ok {
		t.Fatalf("TopScore() = ok %v err %v", ok, err)
	}
	if top.ID != "run-1" || top.Score != 42 {
		t.Errorf("TopScore() = %+v", top)
	}
	if top.Name != "averyveryv" {
		t.Errorf("Name = %q, want truncated", top.Name)
	}
	if top.Outcome != "stopped" {
		t.Errorf("Outcome = %q, want stopped", top.Outcome)
	}
	if top.End.UnixMilli() != now.UnixMilli() {
		t.Errorf("End = %v, want %v", top.End, now)
	}
}

func TestUpdateRunWithoutCreate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.UpdateRun(ctx, finishedRun("orphan", 7, time.Now())); err != nil {
		t.Fatalf("UpdateRun() failed: %v", err)
	}
	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "orphan" {
		t.Errorf("RecentRuns() = %+v", runs)
	}
}

func TestTopScoreWindow(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	runs := []catapult.RunResult{
		finishedRun("old", 500, now.Add(-8*24*time.Hour)),
		finishedRun("a", 100, now.Add(-time.Hour)),
		finishedRun("b", 300, now.Add(-2*time.Hour)),
	}
	for _, r := range runs {
		if err := store.UpdateRun(ctx, r); err != nil {
			t.Fatalf("UpdateRun() failed: %v", err)
		}
	}

	top, ok, err := store.TopScore(ctx, now.Add(-Week))
	if err != nil || !ok {
		t.Fatalf("TopScore() = ok %v err %v", ok, err)
	}
	if top.ID != "b" {
		t.Errorf("weekly top = %s, want b", top.ID)
	}

	top, _, _ = store.TopScore(ctx, time.Time{})
	if top.ID != "old" {
		t.Errorf("all-time top = %s, want old", top.ID)
	}
}

func TestTopAndRecentRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	scores := []int{50, 10, 90, 30}
	for i, s := range scores {
		r := finishedRun(string(rune('a'+i)), s, now.Add(time.Duration(i)*time.Second))
		if err := store.UpdateRun(ctx, r); err != nil {
			t.Fatalf("UpdateRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(ctx, 2, time.Time{})
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 2 || top[0].Score != 90 || top[1].Score != 50 {
		t.Errorf("TopRuns() = %+v", top)
	}

	recent, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 4 || recent[0].ID != "d" {
		t.Errorf("RecentRuns() first = %+v", recent)
	}

	st, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 4 || st.HighScore != 90 || st.AvgScore != 45 || st.TotalHits != 4 {
		t.Errorf("Stats() = %+v", st)
	}

	if err := store.ClearRuns(ctx); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	recent, _ = store.RecentRuns(ctx, 10)
	if len(recent) != 0 {
		t.Errorf("RecentRuns() after clear = %d entries", len(recent))
	}
}

func TestLoadSaveParams(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := config.DefaultParams()

	got, err := store.LoadParams(ctx, base)
	if err != nil {
		t.Fatalf("LoadParams() failed: %v", err)
	}
	if got != base {
		t.Error("LoadParams() without a stored document should return base")
	}

	changed := base
	changed.Player.Boost = 1234
	changed.Obstacles.Rocks.Bounce = 0.75
	changed.World.Width = 1 // not part of the stored sub-tree
	if err := store.SaveParams(ctx, changed); err != nil {
		t.Fatalf("SaveParams() failed: %v", err)
	}

	got, err = store.LoadParams(ctx, base)
	if err != nil {
		t.Fatalf("LoadParams() failed: %v", err)
	}
	if got.Player.Boost != 1234 || got.Obstacles.Rocks.Bounce != 0.75 {
		t.Errorf("LoadParams() did not apply stored values: %+v", got.Player)
	}
	if got.World.Width != base.World.Width {
		t.Errorf("World.Width = %v, want base %v", got.World.Width, base.World.Width)
	}

	if err := store.ResetParams(ctx); err != nil {
		t.Fatalf("ResetParams() failed: %v", err)
	}
	got, _ = store.LoadParams(ctx, base)
	if got != base {
		t.Error("LoadParams() after reset should return base")
	}
}

func TestLoadParamsRejectsHostileDocument(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	doc := "world: {width: 1e300}\nobstacles:\n  crates: {count: 1e11}\n  trees: {min: 3, max: 1}\nplayer:\n  gravity: .nan\n  speed: 2\n"
	if _, err := store.db.ExecContext(ctx,
		"INSERT INTO config (key, body, updated_at) VALUES (?, ?, ?)", tunablesKey, doc, millis(time.Now()),
	); err != nil {
		t.Fatal(err)
	}

	base := config.DefaultParams()
	got, err := store.LoadParams(ctx, base)
	if !config.IsInvalid(err) {
		t.Fatalf("LoadParams() error = %v, expected rejected values", err)
	}
	if got.Obstacles.Crates != base.Obstacles.Crates || got.Obstacles.Trees != base.Obstacles.Trees {
		t.Errorf("rejected obstacles should keep defaults, got %+v %+v", got.Obstacles.Crates, got.Obstacles.Trees)
	}
	if got.Player.Gravity != base.Player.Gravity {
		t.Errorf("player.gravity = %v, expected %v", got.Player.Gravity, base.Player.Gravity)
	}
	if got.Player.Speed != 2 {
		t.Errorf("player.speed = %v, expected the stored 2", got.Player.Speed)
	}
	if got.World != base.World {
		t.Errorf("stored world keys should be ignored, got %+v", got.World)
	}

	// A run built from the result spawns the default obstacle population.
	want := len(catapult.SpawnObstacles(core.NewRNG(1), base))
	if n := len(catapult.SpawnObstacles(core.NewRNG(1), got)); n != want {
		t.Errorf("spawned %d obstacles, expected %d", n, want)
	}
}
