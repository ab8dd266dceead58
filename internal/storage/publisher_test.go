package storage

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/catapult/internal/catapult"
	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
)

func TestPublisherWritesInOrder(t *testing.T) {
	store := openTestStore(t)
	pub := NewPublisher(store, nil, 0)

	now := time.Now()
	pub.RunStarted("run-1", now.Add(-time.Second))
	pub.RunFinished(finishedRun("run-1", 17, now))

	params := config.DefaultParams()
	params.Player.Speed = 999
	pub.ConfigChanged(params, nil)
	pub.Close()

	ctx := context.Background()
	top, ok, err := store.TopScore(ctx, time.Time{})
	if err != nil || !ok {
		t.Fatalf("TopScore() = ok %v err %v", ok, err)
	}
	if top.Score != 17 {
		t.Errorf("Score = %d, want 17", top.Score)
	}

	got, err := store.LoadParams(ctx, config.DefaultParams())
	if err != nil {
		t.Fatalf("LoadParams() failed: %v", err)
	}
	if got.Player.Speed != 999 {
		t.Errorf("Player.Speed = %v, want 999", got.Player.Speed)
	}
}

func TestPublisherDropsAfterClose(t *testing.T) {
	store := openTestStore(t)
	pub := NewPublisher(store, nil, 4)
	pub.Close()
	pub.Close()

	pub.RunFinished(finishedRun("late", 1, time.Now()))

	runs, err := store.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("RecentRuns() = %d entries, want 0", len(runs))
	}
}

func TestPublisherSurvivesClosedStore(t *testing.T) {
	store := openTestStore(t)
	pub := NewPublisher(store, nil, 4)
	store.Close()

	// Failures are logged and the worker keeps draining
	pub.RunStarted("x", time.Now())
	pub.RunFinished(finishedRun("x", 1, time.Now()))
	pub.Close()
}

func TestQueuedOverrideSurvivesReload(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.SaveParams(ctx, config.DefaultParams()); err != nil {
		t.Fatal(err)
	}

	pub := NewPublisher(store, nil, 0)
	release := make(chan struct{})
	pub.enqueue(job{name: "stall", fn: func(context.Context) error {
		<-release
		return nil
	}})

	holder := config.NewHolder(config.DefaultParams())
	applier := catapult.NewApplier(holder, core.NewRNG(3), pub, nil)
	v := applier.ApplyOverride(config.KeyPlayerBounce, core.Range{Min: 0.95, Max: 0.99})

	// End-of-run reload while the override still sits in the queue.
	version := holder.Version()
	stale, err := store.LoadParams(ctx, holder.Snapshot())
	if err != nil {
		t.Fatalf("LoadParams() failed: %v", err)
	}
	if holder.ReplaceIf(version, stale) {
		t.Error("reload replaced params while the override was queued")
	}
	if got := holder.Snapshot().Player.Bounce; got != v {
		t.Fatalf("player.bounce = %v, expected the override %v", got, v)
	}

	close(release)
	pub.Close()

	version = holder.Version()
	fresh, err := store.LoadParams(ctx, holder.Snapshot())
	if err != nil {
		t.Fatalf("LoadParams() failed: %v", err)
	}
	if !holder.ReplaceIf(version, fresh) {
		t.Error("reload should apply once the override is stored")
	}
	if got := holder.Snapshot().Player.Bounce; got != v {
		t.Errorf("player.bounce = %v after reload, expected %v", got, v)
	}
}

func TestDroppedConfigWriteIsAcknowledged(t *testing.T) {
	store := openTestStore(t)
	pub := NewPublisher(store, nil, 1)
	pub.Close()

	calls := 0
	pub.ConfigChanged(config.DefaultParams(), func() { calls++ })
	if calls != 1 {
		t.Errorf("done called %d times, expected 1", calls)
	}
}
