package catapult

import (
	"testing"

	"github.com/vovakirdan/catapult/internal/config"
	"github.com/vovakirdan/catapult/internal/core"
)

func TestApplyOverridePlayerBounce(t *testing.T) {
	holder := config.NewHolder(config.DefaultParams())
	rec := &recordingRecorder{}
	a := NewApplier(holder, core.NewRNG(99), rec, nil)

	v := a.ApplyOverride("player.bounce", core.Range{Min: 0.2, Max: 1})

	if v < 0.2 || v > 1 {
		t.Errorf("value %v outside [0.2, 1]", v)
	}
	if got := holder.Snapshot().Player.Bounce; got != v {
		t.Errorf("player.bounce = %v, expected %v", got, v)
	}
	if len(rec.configs) != 1 {
		t.Fatalf("ConfigChanged called %d times, expected 1", len(rec.configs))
	}
	if rec.configs[0].Player.Bounce != v {
		t.Error("persisted snapshot does not carry the new value")
	}
}

func TestApplyEveryEditKey(t *testing.T) {
	for _, e := range config.EditTable() {
		holder := config.NewHolder(config.DefaultParams())
		a := NewApplier(holder, core.NewRNG(1), nil, nil)
		v := a.Apply(e.Key)
		if !e.Range.Contains(v) {
			t.Errorf("%s: %v outside %+v", e.Key, v, e.Range)
		}
		got, err := holder.Snapshot().Get(e.Key)
		if err != nil || got != v {
			t.Errorf("%s: stored %v (%v), expected %v", e.Key, got, err, v)
		}
	}
}

func TestApplyUnknownKeyPanics(t *testing.T) {
	a := NewApplier(config.NewHolder(config.DefaultParams()), core.NewRNG(1), nil, nil)
	for _, key := range []string{"player.wings", "world.width"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Apply(%q) should panic", key)
				}
			}()
			a.Apply(key)
		}()
	}

	defer func() {
		if recover() == nil {
			t.Error("ApplyOverride with an unknown key should panic")
		}
	}()
	a.ApplyOverride("player.wings", core.Range{Min: 0, Max: 1})
}

func TestOverrideHeldUntilStored(t *testing.T) {
	holder := config.NewHolder(config.DefaultParams())
	pending := &deferredRecorder{}
	a := NewApplier(holder, core.NewRNG(5), pending, nil)

	v := a.ApplyOverride(config.KeyPlayerBounce, core.Range{Min: 0.95, Max: 0.99})
	if holder.Unsaved() != 1 {
		t.Fatalf("Unsaved() = %d, expected 1", holder.Unsaved())
	}

	// A reload carrying the old stored value must not undo the override.
	if holder.ReplaceIf(holder.Version(), config.DefaultParams()) {
		t.Error("ReplaceIf accepted a reload while the override was unsaved")
	}
	if got := holder.Snapshot().Player.Bounce; got != v {
		t.Errorf("player.bounce = %v, expected %v", got, v)
	}

	pending.flush()
	if holder.Unsaved() != 0 {
		t.Errorf("Unsaved() = %d after the write, expected 0", holder.Unsaved())
	}
	if !holder.ReplaceIf(holder.Version(), holder.Snapshot()) {
		t.Error("ReplaceIf should accept once the override is stored")
	}
}

// deferredRecorder holds config writes until flush.
type deferredRecorder struct {
	NopRecorder
	done []func()
}

func (r *deferredRecorder) ConfigChanged(_ config.Params, done func()) {
	r.done = append(r.done, done)
}

func (r *deferredRecorder) flush() {
	for _, fn := range r.done {
		fn()
	}
	r.done = nil
}
