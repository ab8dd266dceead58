package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() = %v", err)
	}
}

func TestValidateRejectsUnusableValues(t *testing.T) {
	tests := []struct {
		name string
		edit func(p *Params)
		keys []string
	}{
		{"huge count", func(p *Params) { p.Obstacles.Crates.Count = 1e11 }, []string{"obstacles.crates.count"}},
		{"negative count", func(p *Params) { p.Obstacles.Trees.Count = -1 }, []string{"obstacles.trees.count"}},
		{"nan", func(p *Params) { p.Player.Gravity = math.NaN() }, []string{"player.gravity"}},
		{"inf world", func(p *Params) { p.World.Width = math.Inf(1) }, []string{"world.width"}},
		{"inverted scale", func(p *Params) { p.Obstacles.Rocks.Min = 2; p.Obstacles.Rocks.Max = 1 },
			[]string{"obstacles.rocks.max", "obstacles.rocks.min"}},
		{"negative scale", func(p *Params) { p.Obstacles.Bushes.Min = -1 }, []string{"obstacles.bushes.min"}},
		{"zero speed", func(p *Params) { p.Player.Speed = 0 }, []string{"player.speed"}},
		{"long power window", func(p *Params) { p.Obstacles.Star.ActiveMS = MaxActiveMS + 1 }, []string{"obstacles.star.active_ms"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.edit(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, expected ErrInvalid", err)
			}
			var ie *InvalidError
			if !errors.As(err, &ie) || !slices.Equal(ie.Keys, tt.keys) {
				t.Errorf("keys = %v, expected %v", ie.Keys, tt.keys)
			}
		})
	}
}

func TestMergeFallsBackPerKey(t *testing.T) {
	base := DefaultParams()
	doc := []byte(`
obstacles:
  crates: {count: 1e11}
  rocks: {min: -3}
  mushrooms: {count: 8}
player:
  drag: .nan
  bounce: 0.3
`)
	got, err := Merge(base, doc)
	if !IsInvalid(err) {
		t.Fatalf("Merge() error = %v, expected an invalid-params error", err)
	}
	if got.Obstacles.Crates.Count != base.Obstacles.Crates.Count {
		t.Errorf("crates.count = %v, expected %v", got.Obstacles.Crates.Count, base.Obstacles.Crates.Count)
	}
	if got.Obstacles.Rocks.Min != base.Obstacles.Rocks.Min {
		t.Errorf("rocks.min = %v, expected %v", got.Obstacles.Rocks.Min, base.Obstacles.Rocks.Min)
	}
	if got.Player.Drag != base.Player.Drag {
		t.Errorf("player.drag = %v, expected %v", got.Player.Drag, base.Player.Drag)
	}
	// Valid keys in the same document still apply.
	if got.Obstacles.Mushrooms.Count != 8 || got.Player.Bounce != 0.3 {
		t.Errorf("valid keys lost: mushrooms=%v bounce=%v", got.Obstacles.Mushrooms.Count, got.Player.Bounce)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("merged params do not validate: %v", err)
	}
}

func TestLoadCustomPathInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostile.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  stumps:\n    count: 1e9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if !IsInvalid(err) {
		t.Fatalf("Load() error = %v, expected an invalid-params error", err)
	}
	if cfg != DefaultParams() {
		t.Errorf("rejected key should keep its default, got %+v", cfg.Obstacles.Stumps)
	}
}

func TestSanitizeWithInvalidBase(t *testing.T) {
	var base Params // zero scales do not validate
	p := DefaultParams()
	p.Player.Speed = math.Inf(-1)
	got, err := p.Sanitize(base)
	if !IsInvalid(err) {
		t.Fatalf("Sanitize() error = %v", err)
	}
	if got != base {
		t.Error("Sanitize should return base when the patched result does not validate")
	}
}
