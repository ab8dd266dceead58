package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	fromYAML, err := Merge(Params{}, DefaultYAML())
	if err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if fromYAML != DefaultParams() {
		t.Errorf("embedded defaults differ from DefaultParams():\n%+v\n%+v", fromYAML, DefaultParams())
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("player:\n  bounce: 0.3\nobstacles:\n  crates:\n    count: 9\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Player.Bounce != 0.3 {
		t.Errorf("player.bounce = %v, expected 0.3", cfg.Player.Bounce)
	}
	if cfg.Obstacles.Crates.Count != 9 {
		t.Errorf("crates.count = %v, expected 9", cfg.Obstacles.Crates.Count)
	}
	// Untouched keys keep their defaults.
	if cfg.Player.Gravity != 500 || cfg.Obstacles.Crates.Bounce != 0.4 {
		t.Errorf("missing keys should keep defaults, got %+v", cfg.Player)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("player: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	p := DefaultParams()
	p.Player.Speed = 2.5
	if err := Save(path, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != p {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestMergeKeepsBaseOnError(t *testing.T) {
	base := DefaultParams()
	got, err := Merge(base, []byte("{{{"))
	if err == nil {
		t.Fatal("expected error")
	}
	if got != base {
		t.Error("Merge should return base on error")
	}
}

func TestTunablesExcludeWorld(t *testing.T) {
	p := DefaultParams()
	data, err := MarshalTunables(p)
	if err != nil {
		t.Fatal(err)
	}
	var back Params
	back, err = Merge(Params{}, data)
	if err != nil {
		t.Fatal(err)
	}
	if back.World != (World{}) {
		t.Errorf("tunables should not carry world, got %+v", back.World)
	}
	if back.Player != p.Player || back.Obstacles != p.Obstacles {
		t.Error("tunables should carry obstacles and player")
	}
}

func TestGetSetUnknownKey(t *testing.T) {
	p := DefaultParams()
	if err := p.Set("player.wings", 1); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set unknown key error = %v, expected ErrUnknownKey", err)
	}
	if _, err := p.Get("obstacles.crates"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get unknown key error = %v, expected ErrUnknownKey", err)
	}
}
