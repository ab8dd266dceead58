package config

import "testing"

func TestEditTableKeysAreAddressable(t *testing.T) {
	table := EditTable()
	if len(table) != 13 {
		t.Fatalf("edit table has %d keys, expected 13", len(table))
	}

	seen := make(map[string]bool)
	for _, e := range table {
		if seen[e.Key] {
			t.Errorf("duplicate key %s", e.Key)
		}
		seen[e.Key] = true

		p := DefaultParams()
		v := (e.Range.Min + e.Range.Max) / 2
		if err := p.Set(e.Key, v); err != nil {
			t.Errorf("Set(%s): %v", e.Key, err)
			continue
		}
		got, err := p.Get(e.Key)
		if err != nil || got != v {
			t.Errorf("Get(%s) = %v, %v; expected %v", e.Key, got, err, v)
		}
		if e.Range.Min >= e.Range.Max {
			t.Errorf("%s has an empty range %+v", e.Key, e.Range)
		}
	}
}

func TestLookupEdit(t *testing.T) {
	e, ok := LookupEdit(KeyPlayerBounce)
	if !ok {
		t.Fatal("player.bounce should be in the edit table")
	}
	if e.Range.Min != 0.2 || e.Range.Max != 1 {
		t.Errorf("player.bounce range = %+v, expected [0.2, 1]", e.Range)
	}
	if _, ok := LookupEdit("world.width"); ok {
		t.Error("world.width should not be editable")
	}
}

func TestSetWritesNestedField(t *testing.T) {
	p := DefaultParams()
	if err := p.Set("obstacles.trees.count", 7.5); err != nil {
		t.Fatal(err)
	}
	if p.Obstacles.Trees.Count != 7.5 {
		t.Errorf("trees.count = %v, expected 7.5", p.Obstacles.Trees.Count)
	}
	if err := p.Set("player.start.x", 10); err != nil {
		t.Fatal(err)
	}
	if p.Player.Start.X != 10 {
		t.Errorf("start.x = %v, expected 10", p.Player.Start.X)
	}
}

func TestKeysSortedAndComplete(t *testing.T) {
	keys := Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted at %d: %s >= %s", i, keys[i-1], keys[i])
		}
	}
	if len(keys) != 22+24 {
		t.Errorf("len(Keys()) = %d, expected 46", len(keys))
	}
}
